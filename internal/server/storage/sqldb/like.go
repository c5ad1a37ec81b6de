package sqldb

import (
	"context"
	"fmt"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

const likeViewSelect = `
	SELECT l.id, l.post_id, l.user_id, u.username, l.created_at
	FROM likes l
	JOIN users u ON u.id = l.user_id
`

// CreateLike stores a like
func (s *Storage) CreateLike(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (id, user_id, post_id, created_at)
		VALUES (:id, :user_id, :post_id, :created_at)
	`

	like.CreatedAt = dbTime(like.CreatedAt)

	if _, err := s.db.NamedExecContext(ctx, query, like); err != nil {
		switch kind, _ := classify(err); kind {
		case uniqueViolation:
			return storage.ErrLikeExists
		case foreignKeyViolation:
			return storage.ErrReferenceNotFound
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}

	return nil
}

// DeleteLike removes the like of userID on postID
func (s *Storage) DeleteLike(ctx context.Context, userID, postID string) error {
	rows, err := s.exec(ctx, `DELETE FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	if rows == 0 {
		return storage.ErrLikeNotFound
	}

	return nil
}

// HasLiked reports whether userID liked postID
func (s *Storage) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) selectLikes(ctx context.Context, where string, arg any) ([]*models.LikeView, error) {
	likes := []*models.LikeView{}
	query := likeViewSelect + where + ` ORDER BY l.created_at DESC, l.id DESC`
	if err := s.db.SelectContext(ctx, &likes, s.db.Rebind(query), arg); err != nil {
		return nil, err
	}
	return likes, nil
}

// ListLikesForPost returns likes on postID, newest first
func (s *Storage) ListLikesForPost(ctx context.Context, postID string) ([]*models.LikeView, error) {
	likes, err := s.selectLikes(ctx, ` WHERE l.post_id = ?`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post likes: %w", err)
	}
	return likes, nil
}

// ListLikesByUser returns likes given by userID, newest first
func (s *Storage) ListLikesByUser(ctx context.Context, userID string) ([]*models.LikeView, error) {
	likes, err := s.selectLikes(ctx, ` WHERE l.user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user likes: %w", err)
	}
	return likes, nil
}

// CountLikesForPost returns the number of likes on postID
func (s *Storage) CountLikesForPost(ctx context.Context, postID string) (int64, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = ?`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count post likes: %w", err)
	}
	return n, nil
}

// CountLikesByUser returns the number of likes given by userID
func (s *Storage) CountLikesByUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM likes WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count user likes: %w", err)
	}
	return n, nil
}

// ListMostLiked returns posts with at least one like, most liked first
func (s *Storage) ListMostLiked(ctx context.Context, limit int) ([]*models.PostView, error) {
	query := postViewSelect + `
		WHERE EXISTS (SELECT 1 FROM likes lx WHERE lx.post_id = p.id)
		ORDER BY like_count DESC, p.created_at DESC, p.id DESC
		LIMIT ?
	`

	posts := []*models.PostView{}
	if err := s.db.SelectContext(ctx, &posts, s.db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to list most liked posts: %w", err)
	}
	return posts, nil
}
