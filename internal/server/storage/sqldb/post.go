package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

const postViewSelect = `
	SELECT p.id, p.content, p.created_at, p.updated_at,
	       u.id AS author_id, u.username AS author_username,
	       u.first_name AS author_first_name, u.last_name AS author_last_name,
	       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

// newestFirst is the stable order of every post list.
const newestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

// CreatePost stores a new post
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, content, created_at, updated_at)
		VALUES (:id, :user_id, :content, :created_at, :updated_at)
	`

	post.CreatedAt = dbTime(post.CreatedAt)
	post.UpdatedAt = dbTime(post.UpdatedAt)

	if _, err := s.db.NamedExecContext(ctx, query, post); err != nil {
		if kind, _ := classify(err); kind == foreignKeyViolation {
			return storage.ErrReferenceNotFound
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetPost retrieves post with its author and counters
func (s *Storage) GetPost(ctx context.Context, postID string) (*models.PostView, error) {
	post := &models.PostView{}
	if err := s.db.GetContext(ctx, post, s.db.Rebind(postViewSelect+` WHERE p.id = ?`), postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// UpdatePostContent updates content and updated_at
func (s *Storage) UpdatePostContent(ctx context.Context, postID, content string, updatedAt time.Time) error {
	rows, err := s.exec(ctx,
		`UPDATE posts SET content = ?, updated_at = ? WHERE id = ?`,
		content, dbTime(updatedAt), postID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if rows == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

// DeletePost deletes post by ID
func (s *Storage) DeletePost(ctx context.Context, postID string) error {
	rows, err := s.exec(ctx, `DELETE FROM posts WHERE id = ?`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if rows == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

// listPostViews выполняет выборку постов с фильтром where (по алиасу p).
// При page == nil возвращается весь список, total = len.
func (s *Storage) listPostViews(ctx context.Context, where string, page *models.PageRequest, args ...any) ([]*models.PostView, int64, error) {
	query := postViewSelect + where + newestFirst

	posts := []*models.PostView{}
	if page == nil {
		if err := s.db.SelectContext(ctx, &posts, s.db.Rebind(query), args...); err != nil {
			return nil, 0, err
		}
		return posts, int64(len(posts)), nil
	}

	total, err := s.count(ctx, `SELECT COUNT(*) FROM posts p`+where, args...)
	if err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), page.Size, page.Offset())
	if err := s.db.SelectContext(ctx, &posts, s.db.Rebind(query+` LIMIT ? OFFSET ?`), pageArgs...); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ListPosts returns all posts, newest first
func (s *Storage) ListPosts(ctx context.Context, page *models.PageRequest) ([]*models.PostView, int64, error) {
	posts, total, err := s.listPostViews(ctx, "", page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// ListPostsByUser returns posts authored by userID
func (s *Storage) ListPostsByUser(ctx context.Context, userID string, page *models.PageRequest) ([]*models.PostView, int64, error) {
	posts, total, err := s.listPostViews(ctx, ` WHERE p.user_id = ?`, page, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list user posts: %w", err)
	}
	return posts, total, nil
}

// SearchPosts ищет посты по подстроке без учета регистра
func (s *Storage) SearchPosts(ctx context.Context, query string, page *models.PageRequest) ([]*models.PostView, int64, error) {
	posts, total, err := s.listPostViews(ctx, ` WHERE LOWER(p.content) LIKE ? ESCAPE '\'`, page, likePattern(query))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, total, nil
}

// ListPostsBetween returns posts created in [from, to]
func (s *Storage) ListPostsBetween(ctx context.Context, from, to time.Time) ([]*models.PostView, error) {
	posts, _, err := s.listPostViews(ctx, ` WHERE p.created_at >= ? AND p.created_at <= ?`, nil, dbTime(from), dbTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by date: %w", err)
	}
	return posts, nil
}

// CountPostsByUser returns the number of posts authored by userID
func (s *Storage) CountPostsByUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// ListFeed returns posts of the users that userID follows.
// Собственные посты не попадают в ленту: self-follow запрещен ограничением.
func (s *Storage) ListFeed(ctx context.Context, userID string, page *models.PageRequest) ([]*models.PostView, int64, error) {
	where := ` WHERE p.user_id IN (SELECT f.following_id FROM follows f WHERE f.follower_id = ?)`

	posts, total, err := s.listPostViews(ctx, where, page, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feed: %w", err)
	}
	return posts, total, nil
}
