package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"communityboard/internal/config"
	"communityboard/internal/models"
	"communityboard/internal/repository"
	"communityboard/internal/storage"
)

type UserPage struct {
	Users   []models.User
	LastID  string
	HasMore bool
}

type UserService interface {
	GetProfile(ctx context.Context, userID, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, displayName string) error
	UploadProfileImage(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error)
	SetRole(ctx context.Context, userID, role string) error
	ListUsers(ctx context.Context, params repository.ListUsersParams) (*UserPage, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

// GetProfile returns the caller's profile, creating a default one from the
// token identity when no row exists yet.
func (s *userService) GetProfile(ctx context.Context, userID, email string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	newUser := &models.User{
		UserID: userID,
		Email:  email,
		Role:   models.RoleUser,
	}

	if err := s.userRepo.CreateProfile(ctx, newUser); err != nil {
		return nil, err
	}
	log.Printf("Created new user profile for %s", userID)

	return newUser, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, displayName string) error {
	return s.userRepo.UpdateProfile(ctx, userID, displayName)
}

func (s *userService) UploadProfileImage(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	folder := "profile-images/" + userID

	objectName, photoURL, err := s.storage.UploadImage(ctx, folder, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := s.userRepo.UpdatePhotoURL(ctx, userID, photoURL); err != nil {
		s.storage.DeleteImage(ctx, objectName)
		return "", err
	}

	return photoURL, nil
}

func (s *userService) SetRole(ctx context.Context, userID, role string) error {
	return s.userRepo.UpdateRole(ctx, userID, role)
}

func (s *userService) ListUsers(ctx context.Context, params repository.ListUsersParams) (*UserPage, error) {
	users, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	page := &UserPage{
		Users:   users,
		HasMore: len(users) == params.Limit,
	}
	if len(users) > 0 {
		page.LastID = users[len(users)-1].UserID
	}

	return page, nil
}
