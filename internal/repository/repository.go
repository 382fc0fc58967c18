package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"communityboard/internal/models"
)

// ErrNotFound is returned when a referenced post or user does not exist.
var ErrNotFound = errors.New("not found")

type ListPostsParams struct {
	Limit      int
	CursorID   string
	PinnedOnly bool
	AuthorID   string
}

type ListUsersParams struct {
	Limit    int
	CursorID string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	FetchForView(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, params ListPostsParams) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SetPinned(ctx context.Context, postID string, pinned bool) error
	Delete(ctx context.Context, postID string) error
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	LikesByPostID(ctx context.Context, postID string) ([]string, error)
	LikesByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	CreateProfile(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, displayName string) error
	UpdatePhotoURL(ctx context.Context, userID, photoURL string) error
	UpdateRole(ctx context.Context, userID, role string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	List(ctx context.Context, params ListUsersParams) ([]models.User, error)
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
	}
}
