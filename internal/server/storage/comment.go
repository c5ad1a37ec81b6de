package storage

import (
	"context"
	"time"

	"github.com/iudanet/gophsocial/internal/models"
)

// CommentStorage defines interface for comment persistence
type CommentStorage interface {
	// CreateComment returns ErrReferenceNotFound if the post or author is missing
	CreateComment(ctx context.Context, comment *models.Comment) error

	// GetComment returns ErrCommentNotFound if comment doesn't exist
	GetComment(ctx context.Context, commentID string) (*models.CommentView, error)

	UpdateCommentContent(ctx context.Context, commentID, content string, updatedAt time.Time) error
	DeleteComment(ctx context.Context, commentID string) error

	// ListCommentsForPost is ordered by created_at ASC
	ListCommentsForPost(ctx context.Context, postID string, page *models.PageRequest) ([]*models.CommentView, int64, error)

	// ListCommentsByUser is ordered by created_at DESC
	ListCommentsByUser(ctx context.Context, userID string, page *models.PageRequest) ([]*models.CommentView, int64, error)

	CountCommentsForPost(ctx context.Context, postID string) (int64, error)
	SearchComments(ctx context.Context, query string) ([]*models.CommentView, error)
	ListRecentComments(ctx context.Context, limit int) ([]*models.CommentView, error)
}
