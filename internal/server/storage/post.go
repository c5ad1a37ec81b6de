package storage

import (
	"context"
	"time"

	"github.com/iudanet/gophsocial/internal/models"
)

// PostStorage defines interface for post persistence.
// Every list is ordered by created_at DESC, id DESC.
// A nil page returns the whole list.
type PostStorage interface {
	// CreatePost returns ErrReferenceNotFound if the author is missing
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPost returns ErrPostNotFound if post doesn't exist
	GetPost(ctx context.Context, postID string) (*models.PostView, error)

	// UpdatePostContent returns ErrPostNotFound if post doesn't exist
	UpdatePostContent(ctx context.Context, postID, content string, updatedAt time.Time) error

	// DeletePost returns ErrPostNotFound if post doesn't exist
	DeletePost(ctx context.Context, postID string) error

	ListPosts(ctx context.Context, page *models.PageRequest) ([]*models.PostView, int64, error)
	ListPostsByUser(ctx context.Context, userID string, page *models.PageRequest) ([]*models.PostView, int64, error)
	SearchPosts(ctx context.Context, query string, page *models.PageRequest) ([]*models.PostView, int64, error)
	ListPostsBetween(ctx context.Context, from, to time.Time) ([]*models.PostView, error)
	CountPostsByUser(ctx context.Context, userID string) (int64, error)

	// ListFeed returns posts authored by users that userID follows
	ListFeed(ctx context.Context, userID string, page *models.PageRequest) ([]*models.PostView, int64, error)
}
