package service

import (
	"communityboard/internal/config"
	"communityboard/internal/repository"
	"communityboard/internal/storage"
)

type Service struct {
	User UserService
	Post PostService
	Auth AuthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		User: NewUserService(rep.User, storage, cfg),
		Post: NewPostService(rep.Post, rep.User, storage, cfg),
		Auth: NewAuthService(rep.User, cfg),
	}
}
