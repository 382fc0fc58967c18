package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"communityboard/internal/config"
	handlers "communityboard/internal/handler"
)

func newTestHandlers(auth *MockAuthService, posts *MockPostService, users *MockUserService) *handlers.Handlers {
	return &handlers.Handlers{
		AuthService: auth,
		PostService: posts,
		UserService: users,
		Cfg:         &config.Config{MaxUploadSize: 5242880},
		Validate:    validator.New(),
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handlers.HealthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
