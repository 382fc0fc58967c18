package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"communityboard/internal/config"
	"communityboard/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	UserService service.UserService
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		UserService: services.User,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
