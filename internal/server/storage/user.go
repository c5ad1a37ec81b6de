package storage

import (
	"context"

	"github.com/iudanet/gophsocial/internal/models"
)

// UserSearchField поле, по которому идет поиск пользователей
type UserSearchField string

const (
	SearchByUsername  UserSearchField = "username"
	SearchByFirstName UserSearchField = "first_name"
	SearchByLastName  UserSearchField = "last_name"
)

// Valid reports whether f is a known search field.
func (f UserSearchField) Valid() bool {
	switch f {
	case SearchByUsername, SearchByFirstName, SearchByLastName:
		return true
	}
	return false
}

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists or ErrEmailAlreadyExists on unique violations
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users ordered by username
	ListUsers(ctx context.Context) ([]*models.User, error)

	// SearchUsers does a case-insensitive substring match on field
	SearchUsers(ctx context.Context, field UserSearchField, query string) ([]*models.User, error)

	// UpdateUser updates profile fields, username and email
	// Returns ErrUserNotFound, ErrUserAlreadyExists or ErrEmailAlreadyExists
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes user by ID together with everything it owns
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID string) error

	// UsernameExists reports whether the username is taken
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether the email is taken
	EmailExists(ctx context.Context, email string) (bool, error)
}
