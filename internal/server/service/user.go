package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iudanet/gophsocial/internal/crypto"
	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
	"github.com/iudanet/gophsocial/internal/validation"
)

// UpdateUserInput частичное обновление профиля: nil поля не меняются
type UpdateUserInput struct {
	Username  *string `json:"username" validate:"omitnil,min=3,max=50,username"`
	Email     *string `json:"email" validate:"omitnil,email,max=255"`
	Password  *string `json:"password" validate:"omitnil,min=6,max=72"`
	FirstName *string `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitnil,min=1,max=100"`
	Bio       *string `json:"bio" validate:"omitnil,max=500"`
}

// UserService управляет профилями
type UserService struct {
	users  storage.UserStorage
	hasher crypto.PasswordHasher
	cfg    *config
}

func mapUserErr(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, storage.ErrUserAlreadyExists):
		return ErrUsernameTaken
	case errors.Is(err, storage.ErrEmailAlreadyExists):
		return ErrEmailTaken
	}
	return internal(op, err)
}

// Get returns the user by id.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr("get user", err)
	}
	return user, nil
}

// GetByUsername returns the user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, mapUserErr("get user by username", err)
	}
	return user, nil
}

// GetByEmail returns the user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapUserErr("get user by email", err)
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, internal("list users", err)
	}
	return users, nil
}

// Search ищет по username, first_name или last_name
func (s *UserService) Search(ctx context.Context, field, query string) ([]*models.User, error) {
	if field == "" {
		field = string(storage.SearchByUsername)
	}
	f := storage.UserSearchField(field)
	if !f.Valid() {
		return nil, invalid("field must be one of: username first_name last_name")
	}
	if strings.TrimSpace(query) == "" {
		return nil, invalid("q is required")
	}

	users, err := s.users.SearchUsers(ctx, f, strings.TrimSpace(query))
	if err != nil {
		return nil, internal("search users", err)
	}
	return users, nil
}

// Update меняет профиль. Менять можно только свой аккаунт.
func (s *UserService) Update(ctx context.Context, caller models.Identity, userID string, in UpdateUserInput) (*models.User, error) {
	if caller.UserID != userID {
		return nil, ErrForbidden
	}

	trim := func(p *string, lower bool) {
		if p == nil {
			return
		}
		*p = strings.TrimSpace(*p)
		if lower {
			*p = strings.ToLower(*p)
		}
	}
	trim(in.Username, false)
	trim(in.Email, true)
	trim(in.FirstName, false)
	trim(in.LastName, false)
	trim(in.Bio, false)

	if err := validate(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr("get user", err)
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, invalid(err.Error())
		}
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, internal("hash password", err)
		}
		user.PasswordHash = digest
	}
	user.UpdatedAt = s.cfg.timestamp()

	// конфликт username/email определяет уникальный индекс
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, mapUserErr("update user", err)
	}

	return user, nil
}

// Delete удаляет собственный аккаунт вместе с постами, лайками и подписками
func (s *UserService) Delete(ctx context.Context, caller models.Identity, userID string) error {
	if caller.UserID != userID {
		return ErrForbidden
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return mapUserErr("delete user", err)
	}
	return nil
}

// UsernameExists reports whether the username is taken.
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	ok, err := s.users.UsernameExists(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, internal("check username", err)
	}
	return ok, nil
}

// EmailExists reports whether the email is taken.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	ok, err := s.users.EmailExists(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, internal("check email", err)
	}
	return ok, nil
}
