package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, bio, created_at, updated_at`

// userConflict maps a unique violation on users to the matching sentinel
func userConflict(detail string) error {
	if strings.Contains(detail, "email") {
		return storage.ErrEmailAlreadyExists
	}
	return storage.ErrUserAlreadyExists
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, bio, created_at, updated_at)
		VALUES (:id, :username, :email, :password_hash, :first_name, :last_name, :bio, :created_at, :updated_at)
	`

	user.CreatedAt = dbTime(user.CreatedAt)
	user.UpdatedAt = dbTime(user.UpdatedAt)

	if _, err := s.db.NamedExecContext(ctx, query, user); err != nil {
		// уникальность username и email гарантирует БД
		if kind, detail := classify(err); kind == uniqueViolation {
			return userConflict(detail)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (s *Storage) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user := &models.User{}
	if err := s.db.GetContext(ctx, user, s.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, `id = ?`, userID)
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `username = ?`, username)
}

// GetUserByEmail retrieves user by email (case-insensitive)
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `email = ?`, strings.ToLower(email))
}

// ListUsers returns all users ordered by username
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`

	users := []*models.User{}
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// SearchUsers ищет пользователей по подстроке без учета регистра
func (s *Storage) SearchUsers(ctx context.Context, field storage.UserSearchField, query string) ([]*models.User, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unknown search field %q", field)
	}

	// field проверен выше, подстановка в запрос безопасна
	q := `SELECT ` + userColumns + ` FROM users WHERE LOWER(` + string(field) + `) LIKE ? ESCAPE '\' ORDER BY username`

	users := []*models.User{}
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(q), likePattern(query)); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// UpdateUser updates user information
func (s *Storage) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = ?, email = ?, password_hash = ?, first_name = ?, last_name = ?, bio = ?, updated_at = ?
		WHERE id = ?
	`

	user.UpdatedAt = dbTime(user.UpdatedAt)

	rows, err := s.exec(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if kind, detail := classify(err); kind == uniqueViolation {
			return userConflict(detail)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// DeleteUser deletes user by ID
func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	rows, err := s.exec(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// UsernameExists reports whether the username is taken
func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return n > 0, nil
}

// EmailExists reports whether the email is taken
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, strings.ToLower(email))
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}
