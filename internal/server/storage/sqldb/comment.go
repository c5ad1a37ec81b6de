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

const commentViewSelect = `
	SELECT c.id, c.post_id, c.content, c.created_at, c.updated_at,
	       u.id AS author_id, u.username AS author_username,
	       u.first_name AS author_first_name, u.last_name AS author_last_name
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

// CreateComment stores a comment
func (s *Storage) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, post_id, content, created_at, updated_at)
		VALUES (:id, :user_id, :post_id, :content, :created_at, :updated_at)
	`

	comment.CreatedAt = dbTime(comment.CreatedAt)
	comment.UpdatedAt = dbTime(comment.UpdatedAt)

	if _, err := s.db.NamedExecContext(ctx, query, comment); err != nil {
		if kind, _ := classify(err); kind == foreignKeyViolation {
			return storage.ErrReferenceNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves comment with its author
func (s *Storage) GetComment(ctx context.Context, commentID string) (*models.CommentView, error) {
	comment := &models.CommentView{}
	if err := s.db.GetContext(ctx, comment, s.db.Rebind(commentViewSelect+` WHERE c.id = ?`), commentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// UpdateCommentContent updates content and updated_at
func (s *Storage) UpdateCommentContent(ctx context.Context, commentID, content string, updatedAt time.Time) error {
	rows, err := s.exec(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		content, dbTime(updatedAt), commentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if rows == 0 {
		return storage.ErrCommentNotFound
	}

	return nil
}

// DeleteComment deletes comment by ID
func (s *Storage) DeleteComment(ctx context.Context, commentID string) error {
	rows, err := s.exec(ctx, `DELETE FROM comments WHERE id = ?`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if rows == 0 {
		return storage.ErrCommentNotFound
	}

	return nil
}

func (s *Storage) listCommentViews(ctx context.Context, where, order string, page *models.PageRequest, arg any) ([]*models.CommentView, int64, error) {
	query := commentViewSelect + where + order

	comments := []*models.CommentView{}
	if page == nil {
		if err := s.db.SelectContext(ctx, &comments, s.db.Rebind(query), arg); err != nil {
			return nil, 0, err
		}
		return comments, int64(len(comments)), nil
	}

	total, err := s.count(ctx, `SELECT COUNT(*) FROM comments c`+where, arg)
	if err != nil {
		return nil, 0, err
	}

	if err := s.db.SelectContext(ctx, &comments, s.db.Rebind(query+` LIMIT ? OFFSET ?`), arg, page.Size, page.Offset()); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListCommentsForPost returns comments on postID in conversation order
func (s *Storage) ListCommentsForPost(ctx context.Context, postID string, page *models.PageRequest) ([]*models.CommentView, int64, error) {
	comments, total, err := s.listCommentViews(ctx,
		` WHERE c.post_id = ?`, ` ORDER BY c.created_at ASC, c.id ASC`, page, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list post comments: %w", err)
	}
	return comments, total, nil
}

// ListCommentsByUser returns comments written by userID, newest first
func (s *Storage) ListCommentsByUser(ctx context.Context, userID string, page *models.PageRequest) ([]*models.CommentView, int64, error) {
	comments, total, err := s.listCommentViews(ctx,
		` WHERE c.user_id = ?`, ` ORDER BY c.created_at DESC, c.id DESC`, page, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list user comments: %w", err)
	}
	return comments, total, nil
}

// CountCommentsForPost returns the number of comments on postID
func (s *Storage) CountCommentsForPost(ctx context.Context, postID string) (int64, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}

// SearchComments ищет комментарии по подстроке без учета регистра
func (s *Storage) SearchComments(ctx context.Context, query string) ([]*models.CommentView, error) {
	comments, _, err := s.listCommentViews(ctx,
		` WHERE LOWER(c.content) LIKE ? ESCAPE '\'`, ` ORDER BY c.created_at DESC, c.id DESC`, nil, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search comments: %w", err)
	}
	return comments, nil
}

// ListRecentComments returns the newest comments across all posts
func (s *Storage) ListRecentComments(ctx context.Context, limit int) ([]*models.CommentView, error) {
	query := commentViewSelect + ` ORDER BY c.created_at DESC, c.id DESC LIMIT ?`

	comments := []*models.CommentView{}
	if err := s.db.SelectContext(ctx, &comments, s.db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to list recent comments: %w", err)
	}
	return comments, nil
}
