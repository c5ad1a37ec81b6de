package service

import (
	"context"
	"errors"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

// FollowService управляет графом подписок
type FollowService struct {
	users   storage.UserStorage
	follows storage.FollowStorage
	cfg     *config
}

func (s *FollowService) ensureUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return mapUserErr("get user", err)
	}
	return nil
}

// Follow creates the edge followerID -> followingID.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}
	if err := s.ensureUser(ctx, followingID); err != nil {
		return nil, err
	}

	follow := &models.Follow{
		ID:          s.cfg.newID(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   s.cfg.timestamp(),
	}

	// дубликат ловит уникальный индекс (follower_id, following_id)
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		switch {
		case errors.Is(err, storage.ErrFollowExists):
			return nil, ErrAlreadyFollowing
		case errors.Is(err, storage.ErrSelfFollow):
			return nil, ErrSelfFollow
		case errors.Is(err, storage.ErrReferenceNotFound):
			return nil, ErrUserNotFound
		}
		return nil, internal("create follow", err)
	}

	return follow, nil
}

// Unfollow removes the edge; ErrNotFollowing when there is none.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := s.follows.DeleteFollow(ctx, followerID, followingID); err != nil {
		if errors.Is(err, storage.ErrFollowNotFound) {
			return ErrNotFollowing
		}
		return internal("delete follow", err)
	}
	return nil
}

// IsFollowing reports whether followerID follows followingID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	ok, err := s.follows.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return false, internal("check follow", err)
	}
	return ok, nil
}

// Following returns users that userID follows.
func (s *FollowService) Following(ctx context.Context, userID string) ([]*models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, internal("list following", err)
	}
	return users, nil
}

// Followers returns users following userID.
func (s *FollowService) Followers(ctx context.Context, userID string) ([]*models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, internal("list followers", err)
	}
	return users, nil
}

// FollowingCount returns how many users userID follows.
func (s *FollowService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}
	n, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return 0, internal("count following", err)
	}
	return n, nil
}

// FollowersCount returns how many users follow userID.
func (s *FollowService) FollowersCount(ctx context.Context, userID string) (int64, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}
	n, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return 0, internal("count followers", err)
	}
	return n, nil
}

// Mutual returns users followed by both userID and otherID.
func (s *FollowService) Mutual(ctx context.Context, userID, otherID string) ([]*models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, otherID); err != nil {
		return nil, err
	}
	users, err := s.follows.ListMutual(ctx, userID, otherID)
	if err != nil {
		return nil, internal("list mutual", err)
	}
	return users, nil
}

// Suggestions returns people followed by those userID follows.
func (s *FollowService) Suggestions(ctx context.Context, userID string, limit int) ([]*models.User, error) {
	if limit <= 0 || limit > models.MaxPageSize {
		limit = DefaultSuggestionLimit
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.ListSuggestions(ctx, userID, limit)
	if err != nil {
		return nil, internal("list suggestions", err)
	}
	return users, nil
}
