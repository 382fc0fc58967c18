package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"communityboard/cmd/app"
	"communityboard/internal/config"
	handlers "communityboard/internal/handler"
	"communityboard/internal/middleware"
	"communityboard/internal/models"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	adminOnly := middleware.RoleMiddleware(models.RoleAdmin)

	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	r.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/api/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	r.Handle("/api/posts/{id}/pin", adminOnly(http.HandlerFunc(handler.PinPost))).Methods(http.MethodPatch)
	r.HandleFunc("/api/posts/{id}/like", handler.ToggleLike).Methods(http.MethodPost)

	r.HandleFunc("/api/users/profile", handler.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/users/profile", handler.UpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/api/users/profile/image", handler.UploadProfileImage).Methods(http.MethodPost)

	r.Handle("/api/admin/users", adminOnly(http.HandlerFunc(handler.GetUsers))).Methods(http.MethodGet)
	r.Handle("/api/admin/users/{id}/role", adminOnly(http.HandlerFunc(handler.UpdateUserRole))).Methods(http.MethodPatch)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server is running on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
