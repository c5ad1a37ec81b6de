package storage

import (
	"context"

	"github.com/iudanet/gophsocial/internal/models"
)

// LikeStorage defines interface for like persistence
type LikeStorage interface {
	// CreateLike returns ErrLikeExists or ErrReferenceNotFound
	CreateLike(ctx context.Context, like *models.Like) error

	// DeleteLike returns ErrLikeNotFound if the user has not liked the post
	DeleteLike(ctx context.Context, userID, postID string) error

	HasLiked(ctx context.Context, userID, postID string) (bool, error)
	ListLikesForPost(ctx context.Context, postID string) ([]*models.LikeView, error)
	ListLikesByUser(ctx context.Context, userID string) ([]*models.LikeView, error)
	CountLikesForPost(ctx context.Context, postID string) (int64, error)
	CountLikesByUser(ctx context.Context, userID string) (int64, error)

	// ListMostLiked returns liked posts ordered by like count DESC
	ListMostLiked(ctx context.Context, limit int) ([]*models.PostView, error)
}
