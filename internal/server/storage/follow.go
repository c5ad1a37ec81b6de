package storage

import (
	"context"

	"github.com/iudanet/gophsocial/internal/models"
)

// FollowStorage хранит граф подписок
type FollowStorage interface {
	// CreateFollow stores a new edge
	// Returns ErrFollowExists, ErrSelfFollow or ErrReferenceNotFound
	CreateFollow(ctx context.Context, follow *models.Follow) error

	// DeleteFollow removes the edge
	// Returns ErrFollowNotFound if there is no such edge
	DeleteFollow(ctx context.Context, followerID, followingID string) error

	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)

	// ListFollowing returns users that userID follows
	ListFollowing(ctx context.Context, userID string) ([]*models.User, error)

	// ListFollowers returns users following userID
	ListFollowers(ctx context.Context, userID string) ([]*models.User, error)

	CountFollowing(ctx context.Context, userID string) (int64, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)

	// ListMutual returns users followed by both userID and otherID
	ListMutual(ctx context.Context, userID, otherID string) ([]*models.User, error)

	// ListSuggestions returns users followed by people userID follows,
	// excluding userID and those it already follows
	ListSuggestions(ctx context.Context, userID string, limit int) ([]*models.User, error)
}
