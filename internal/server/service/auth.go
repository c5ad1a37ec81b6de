package service

import (
	"context"
	"errors"
	"log/slog"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/gophsocial/internal/crypto"
	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
	"github.com/iudanet/gophsocial/internal/validation"
)

// RegisterInput данные регистрации
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50,username"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Bio       string `json:"bio" validate:"max=500"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	ExpiresAt time.Time
	User      *models.User
	Token     string
}

// AuthService регистрирует пользователей и выдает токены
type AuthService struct {
	users  storage.UserStorage
	hasher crypto.PasswordHasher
	tokens TokenService
	logger *slog.Logger
	cfg    *config

	// хеш для сравнения, когда пользователь не найден
	dummyDigest string
}

func newAuthService(users storage.UserStorage, hasher crypto.PasswordHasher, tokens TokenService, logger *slog.Logger, cfg *config) (*AuthService, error) {
	digest, err := hasher.Hash("gophsocial-timing-dummy")
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}

	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		cfg:         cfg,
		dummyDigest: digest,
	}, nil
}

// Register создает аккаунт и сразу выдает токен.
// Пароль хешируется ровно один раз, уникальность обеспечивает хранилище.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Bio = strings.TrimSpace(in.Bio)

	if err := validate(in); err != nil {
		return nil, err
	}
	// bcrypt ограничен 72 байтами, а не рунами
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, invalid(err.Error())
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	now := s.cfg.timestamp()
	user := &models.User{
		ID:           s.cfg.newID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Bio:          in.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrUserAlreadyExists):
			return nil, ErrUsernameTaken
		case errors.Is(err, storage.ErrEmailAlreadyExists):
			return nil, ErrEmailTaken
		}
		return nil, internal("create user", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}

	s.logger.InfoContext(ctx, "User registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Login проверяет учетные данные. Любая неудача дает ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.lookup(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// выравниваем время ответа с веткой неверного пароля
			s.hasher.Verify(password, s.dummyDigest)
			s.logger.WarnContext(ctx, "Login failed: user not found",
				slog.String("login", usernameOrEmail),
			)
			return nil, ErrInvalidCredentials
		}
		return nil, internal("get user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "Login failed: invalid password",
			slog.String("user_id", user.ID),
		)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}

	s.logger.InfoContext(ctx, "User logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ValidateToken reports whether token is a live session token and whose it is.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (string, bool) {
	username, ok := s.tokens.Validate(token)
	if !ok {
		return "", false
	}

	// токен удаленного пользователя недействителен
	if _, err := s.users.GetUserByUsername(ctx, username); err != nil {
		return "", false
	}

	return username, true
}

func (s *AuthService) lookup(ctx context.Context, login string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, login)
	if err == nil || !errors.Is(err, storage.ErrUserNotFound) || !strings.Contains(login, "@") {
		return user, err
	}
	return s.users.GetUserByEmail(ctx, strings.ToLower(login))
}
