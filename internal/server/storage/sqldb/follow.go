package sqldb

import (
	"context"
	"fmt"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

const prefixedUserColumns = `u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.bio, u.created_at, u.updated_at`

// CreateFollow stores a follower -> following edge
func (s *Storage) CreateFollow(ctx context.Context, follow *models.Follow) error {
	query := `
		INSERT INTO follows (id, follower_id, following_id, created_at)
		VALUES (:id, :follower_id, :following_id, :created_at)
	`

	follow.CreatedAt = dbTime(follow.CreatedAt)

	if _, err := s.db.NamedExecContext(ctx, query, follow); err != nil {
		switch kind, _ := classify(err); kind {
		case uniqueViolation:
			return storage.ErrFollowExists
		case checkViolation:
			return storage.ErrSelfFollow
		case foreignKeyViolation:
			return storage.ErrReferenceNotFound
		}
		return fmt.Errorf("failed to insert follow: %w", err)
	}

	return nil
}

// DeleteFollow removes the edge
func (s *Storage) DeleteFollow(ctx context.Context, followerID, followingID string) error {
	rows, err := s.exec(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	if rows == 0 {
		return storage.ErrFollowNotFound
	}

	return nil
}

// IsFollowing reports whether the edge exists
func (s *Storage) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	n, err := s.count(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) selectUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	users := []*models.User{}
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return users, nil
}

// ListFollowing returns users that userID follows, newest edge first
func (s *Storage) ListFollowing(ctx context.Context, userID string) ([]*models.User, error) {
	query := `
		SELECT ` + prefixedUserColumns + `
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC, u.id
	`

	users, err := s.selectUsers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// ListFollowers returns users following userID, newest edge first
func (s *Storage) ListFollowers(ctx context.Context, userID string) ([]*models.User, error) {
	query := `
		SELECT ` + prefixedUserColumns + `
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = ?
		ORDER BY f.created_at DESC, u.id
	`

	users, err := s.selectUsers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

// CountFollowing returns the number of users userID follows
func (s *Storage) CountFollowing(ctx context.Context, userID string) (int64, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return n, nil
}

// CountFollowers returns the number of followers of userID
func (s *Storage) CountFollowers(ctx context.Context, userID string) (int64, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM follows WHERE following_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return n, nil
}

// ListMutual returns users followed by both userID and otherID
func (s *Storage) ListMutual(ctx context.Context, userID, otherID string) ([]*models.User, error) {
	query := `
		SELECT ` + prefixedUserColumns + `
		FROM follows f1
		JOIN users u ON u.id = f1.following_id
		WHERE f1.follower_id = ?
		  AND f1.following_id IN (SELECT f2.following_id FROM follows f2 WHERE f2.follower_id = ?)
		ORDER BY u.username
	`

	users, err := s.selectUsers(ctx, query, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutual follows: %w", err)
	}
	return users, nil
}

// ListSuggestions returns friends-of-friends not yet followed by userID
func (s *Storage) ListSuggestions(ctx context.Context, userID string, limit int) ([]*models.User, error) {
	query := `
		SELECT DISTINCT ` + prefixedUserColumns + `
		FROM follows f1
		JOIN follows f2 ON f2.follower_id = f1.following_id
		JOIN users u ON u.id = f2.following_id
		WHERE f1.follower_id = ?
		  AND f2.following_id <> ?
		  AND f2.following_id NOT IN (SELECT f3.following_id FROM follows f3 WHERE f3.follower_id = ?)
		ORDER BY u.username
		LIMIT ?
	`

	users, err := s.selectUsers(ctx, query, userID, userID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return users, nil
}
