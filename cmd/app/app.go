package app

import (
	"log"

	"communityboard/internal/config"
	"communityboard/internal/database"
	"communityboard/internal/repository"
	"communityboard/internal/service"
	"communityboard/internal/storage"
)

// App constructs the database, storage and service graph for the server.
// Everything is passed down explicitly; there are no package-level singletons.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
