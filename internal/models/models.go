package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID                 string    `json:"uid" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	DisplayName            string    `json:"displayName" db:"display_name"`
	Role                   string    `json:"role" db:"role"`
	PhotoURL               string    `json:"photoURL" db:"photo_url"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID     string    `json:"id" db:"post_id"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	ImageURL   string    `json:"imageURL" db:"image_url"`
	Pinned     bool      `json:"pinned" db:"pinned"`
	Views      int       `json:"views" db:"views"`
	LikeCount  int       `json:"likeCount" db:"like_count"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
	Likes      []string  `json:"likes" db:"-"`
}
