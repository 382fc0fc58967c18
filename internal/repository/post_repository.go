package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"communityboard/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, author_id, author_name, title, content, image_url, pinned, views, like_count, created_at, updated_at)
		VALUES
		(:post_id, :author_id, :author_name, :title, :content, :image_url, :pinned, :views, :like_count, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// FetchForView increments the view counter and returns the updated row in a
// single statement. Every fetch counts as a view; the increment happens in the
// database so concurrent fetches never lose updates.
func (r *PostRepositoryImpl) FetchForView(ctx context.Context, postID string) (*models.Post, error) {
	query := `UPDATE posts SET views = views + 1 WHERE post_id = $1 RETURNING *`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	return &post, nil
}

// List pages posts in the fixed order pinned DESC, created_at DESC, post_id
// DESC. The cursor is the id of the last item of the previous page; "strictly
// after" is expressed as a row comparison on the three sort keys. A cursor
// that no longer resolves is ignored and listing restarts from the top.
func (r *PostRepositoryImpl) List(ctx context.Context, params ListPostsParams) ([]models.Post, error) {
	query := `SELECT * FROM posts`
	var conds []string
	var args []interface{}

	if params.CursorID != "" {
		var cursor struct {
			Pinned    bool      `db:"pinned"`
			CreatedAt time.Time `db:"created_at"`
		}
		err := r.db.GetContext(ctx, &cursor, `SELECT pinned, created_at FROM posts WHERE post_id = $1`, params.CursorID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to resolve cursor: %w", err)
		}
		if err == nil {
			args = append(args, cursor.Pinned, cursor.CreatedAt, params.CursorID)
			conds = append(conds, fmt.Sprintf("(pinned, created_at, post_id) < ($%d, $%d, $%d)",
				len(args)-2, len(args)-1, len(args)))
		}
	}

	if params.PinnedOnly {
		conds = append(conds, "pinned = TRUE")
	}

	if params.AuthorID != "" {
		args = append(args, params.AuthorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, params.Limit)
	query += fmt.Sprintf(" ORDER BY pinned DESC, created_at DESC, post_id DESC LIMIT $%d", len(args))

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) SetPinned(ctx context.Context, postID string, pinned bool) error {
	query := `UPDATE posts SET pinned = $1, updated_at = CURRENT_TIMESTAMP WHERE post_id = $2`

	result, err := r.db.ExecContext(ctx, query, pinned, postID)
	if err != nil {
		return fmt.Errorf("failed to update pin status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`

	var liked bool
	if err := r.db.GetContext(ctx, &liked, query, postID, userID); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return liked, nil
}

// AddLike pairs an idempotent set-add with a counter increment. The counter is
// maintained independently of the membership set, so it can drift under
// concurrent toggles from the same user; the set itself stays correct.
func (r *PostRepositoryImpl) AddLike(ctx context.Context, postID, userID string) error {
	insert := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, postID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}

	update := `UPDATE posts SET like_count = like_count + 1, updated_at = CURRENT_TIMESTAMP WHERE post_id = $1`

	if _, err := r.db.ExecContext(ctx, update, postID); err != nil {
		return fmt.Errorf("failed to increment like count: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) RemoveLike(ctx context.Context, postID, userID string) error {
	remove := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, remove, postID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}

	update := `UPDATE posts SET like_count = like_count - 1, updated_at = CURRENT_TIMESTAMP WHERE post_id = $1`

	if _, err := r.db.ExecContext(ctx, update, postID); err != nil {
		return fmt.Errorf("failed to decrement like count: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) LikesByPostID(ctx context.Context, postID string) ([]string, error) {
	query := `SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at`

	var userIDs []string
	if err := r.db.SelectContext(ctx, &userIDs, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get likes: %w", err)
	}

	return userIDs, nil
}

func (r *PostRepositoryImpl) LikesByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error) {
	likes := make(map[string][]string, len(postIDs))
	if len(postIDs) == 0 {
		return likes, nil
	}

	query := `SELECT post_id, user_id FROM post_likes WHERE post_id = ANY($1) ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, userID string
		if err := rows.Scan(&postID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan like row: %w", err)
		}
		likes[postID] = append(likes[postID], userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read likes: %w", err)
	}

	return likes, nil
}
