package service

import (
	"context"
	"errors"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

// LikeService управляет лайками
type LikeService struct {
	likes storage.LikeStorage
	posts storage.PostStorage
	users storage.UserStorage
	cfg   *config
}

func (s *LikeService) getPost(ctx context.Context, postID string) (*models.PostView, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, mapPostErr("get post", err)
	}
	return post, nil
}

// Like marks postID as liked by the caller. Liking your own post is rejected.
func (s *LikeService) Like(ctx context.Context, caller models.Identity, postID string) (*models.Like, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == caller.UserID {
		return nil, ErrOwnPostLike
	}

	like := &models.Like{
		ID:        s.cfg.newID(),
		UserID:    caller.UserID,
		PostID:    postID,
		CreatedAt: s.cfg.timestamp(),
	}

	if err := s.likes.CreateLike(ctx, like); err != nil {
		switch {
		case errors.Is(err, storage.ErrLikeExists):
			return nil, ErrAlreadyLiked
		case errors.Is(err, storage.ErrReferenceNotFound):
			return nil, ErrPostNotFound
		}
		return nil, internal("create like", err)
	}

	return like, nil
}

// Unlike removes the caller's like.
func (s *LikeService) Unlike(ctx context.Context, caller models.Identity, postID string) error {
	if _, err := s.getPost(ctx, postID); err != nil {
		return err
	}
	if err := s.likes.DeleteLike(ctx, caller.UserID, postID); err != nil {
		if errors.Is(err, storage.ErrLikeNotFound) {
			return ErrNotLiked
		}
		return internal("delete like", err)
	}
	return nil
}

// Toggle likes or unlikes the post and returns the new state.
func (s *LikeService) Toggle(ctx context.Context, caller models.Identity, postID string) (bool, error) {
	liked, err := s.HasLiked(ctx, caller, postID)
	if err != nil {
		return false, err
	}

	if liked {
		err := s.Unlike(ctx, caller, postID)
		// параллельный unlike уже снял отметку
		if err != nil && !errors.Is(err, ErrNotLiked) {
			return false, err
		}
		return false, nil
	}

	_, err = s.Like(ctx, caller, postID)
	if err != nil && !errors.Is(err, ErrAlreadyLiked) {
		return false, err
	}
	return true, nil
}

// HasLiked reports whether the caller liked the post.
func (s *LikeService) HasLiked(ctx context.Context, caller models.Identity, postID string) (bool, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return false, err
	}
	ok, err := s.likes.HasLiked(ctx, caller.UserID, postID)
	if err != nil {
		return false, internal("check like", err)
	}
	return ok, nil
}

// ForPost returns the likes on a post, newest first.
func (s *LikeService) ForPost(ctx context.Context, postID string) ([]*models.LikeView, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}
	likes, err := s.likes.ListLikesForPost(ctx, postID)
	if err != nil {
		return nil, internal("list post likes", err)
	}
	return likes, nil
}

// ByUser returns the likes given by a user, newest first.
func (s *LikeService) ByUser(ctx context.Context, userID string) ([]*models.LikeView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, mapUserErr("get user", err)
	}
	likes, err := s.likes.ListLikesByUser(ctx, userID)
	if err != nil {
		return nil, internal("list user likes", err)
	}
	return likes, nil
}

// CountForPost returns the number of likes on a post.
func (s *LikeService) CountForPost(ctx context.Context, postID string) (int64, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return 0, err
	}
	n, err := s.likes.CountLikesForPost(ctx, postID)
	if err != nil {
		return 0, internal("count post likes", err)
	}
	return n, nil
}

// CountByUser returns the number of likes given by a user.
func (s *LikeService) CountByUser(ctx context.Context, userID string) (int64, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return 0, mapUserErr("get user", err)
	}
	n, err := s.likes.CountLikesByUser(ctx, userID)
	if err != nil {
		return 0, internal("count user likes", err)
	}
	return n, nil
}

// MostLiked returns the most liked posts.
func (s *LikeService) MostLiked(ctx context.Context, limit int) ([]*models.PostView, error) {
	if limit <= 0 || limit > models.MaxPageSize {
		limit = DefaultTopLimit
	}
	posts, err := s.likes.ListMostLiked(ctx, limit)
	if err != nil {
		return nil, internal("list most liked", err)
	}
	return posts, nil
}
