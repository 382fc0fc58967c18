package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"communityboard/internal/config"
	"communityboard/internal/models"
	"communityboard/internal/repository"
	"communityboard/internal/storage"
)

type CreatePostRequest struct {
	AuthorID      string
	Title         string
	Content       string
	ImageFileName string
	ImageFile     io.Reader
	ImageSize     int64
}

type UpdatePostRequest struct {
	PostID     string
	Title      string
	Content    string
	CallerID   string
	CallerRole string
}

type PostPage struct {
	Posts   []models.Post
	LastID  string
	HasMore bool
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	ListPosts(ctx context.Context, params repository.ListPostsParams) (*PostPage, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) error
	DeletePost(ctx context.Context, postID, callerID, callerRole string) error
	SetPinned(ctx context.Context, postID string, pinned bool) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	author, err := p.userRepo.GetUserByID(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}

	authorName := author.DisplayName
	if authorName == "" {
		authorName = "Anonymous"
	}

	var objectName, imageURL string
	if req.ImageFile != nil {
		folder := "post-images/" + req.AuthorID
		objectName, imageURL, err = p.storage.UploadImage(ctx, folder, req.ImageFileName, req.ImageFile, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
	}

	post := &models.Post{
		AuthorID:   req.AuthorID,
		AuthorName: authorName,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   imageURL,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		if objectName != "" {
			p.storage.DeleteImage(ctx, objectName)
		}
		return nil, err
	}

	post.Likes = []string{}
	return post, nil
}

// GetPost counts the fetch as a view: the increment and the read happen in one
// atomic store operation and the returned post carries the incremented value.
func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.FetchForView(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes, err := p.postRepo.LikesByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Likes = likes
	if post.Likes == nil {
		post.Likes = []string{}
	}

	return post, nil
}

func (p *postService) ListPosts(ctx context.Context, params repository.ListPostsParams) (*PostPage, error) {
	posts, err := p.postRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(posts))
	for i := range posts {
		postIDs = append(postIDs, posts[i].PostID)
	}

	likes, err := p.postRepo.LikesByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Likes = likes[posts[i].PostID]
		if posts[i].Likes == nil {
			posts[i].Likes = []string{}
		}
	}

	page := &PostPage{
		Posts:   posts,
		HasMore: len(posts) == params.Limit,
	}
	if len(posts) > 0 {
		page.LastID = posts[len(posts)-1].PostID
	}

	return page, nil
}

func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) error {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return err
	}

	if !CanModify(post, req.CallerID, req.CallerRole) {
		return ErrForbidden
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}

	return p.postRepo.Update(ctx, post)
}

func (p *postService) DeletePost(ctx context.Context, postID, callerID, callerRole string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !CanModify(post, callerID, callerRole) {
		return ErrForbidden
	}

	// Best-effort image cleanup: a storage failure must not block deletion.
	if post.ImageURL != "" {
		objectName := p.storage.ObjectNameFromURL(post.ImageURL)
		if objectName != "" {
			if err := p.storage.DeleteImage(ctx, objectName); err != nil {
				log.Printf("Warning: failed to delete image for post %s: %v", postID, err)
			}
		}
	}

	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) SetPinned(ctx context.Context, postID string, pinned bool) error {
	return p.postRepo.SetPinned(ctx, postID, pinned)
}

// ToggleLike reads the membership first and then applies the matching set and
// counter operations. The returned count is computed optimistically from the
// pre-read value.
func (p *postService) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	liked, err := p.postRepo.HasLiked(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := p.postRepo.RemoveLike(ctx, postID, userID); err != nil {
			return false, 0, err
		}
		return false, post.LikeCount - 1, nil
	}

	if err := p.postRepo.AddLike(ctx, postID, userID); err != nil {
		return false, 0, err
	}
	return true, post.LikeCount + 1, nil
}
