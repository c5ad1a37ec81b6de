package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/gophsocial/internal/client/api"
	"github.com/iudanet/gophsocial/internal/client/storage"
	"github.com/iudanet/gophsocial/internal/validation"
	pkgapi "github.com/iudanet/gophsocial/pkg/api"
)

var (
	// ErrNotLoggedIn нет сохраненной сессии
	ErrNotLoggedIn = errors.New("not logged in, run 'gophsocial login' first")
	// ErrSessionExpired сохраненный токен истек
	ErrSessionExpired = errors.New("session expired, run 'gophsocial login' again")
)

// Service предоставляет функции авторизации
type Service struct {
	apiClient *api.Client
	store     storage.AuthStorage
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient *api.Client, store storage.AuthStorage) *Service {
	return &Service{
		apiClient: apiClient,
		store:     store,
		now:       time.Now,
	}
}

// Status результат проверки сессии
type Status struct {
	Session *storage.AuthData
	// Valid сервер подтвердил токен
	Valid bool
	// Offline сервер недоступен, Valid не определен
	Offline bool
}

type registerForm struct {
	Username  string `json:"username" validate:"required,min=3,max=50,username"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// Register регистрирует нового пользователя
func (s *Service) Register(ctx context.Context, req pkgapi.RegisterRequest) (*storage.AuthData, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	// Проверяем до запроса, те же правила применяет сервер
	if err := validation.Struct(registerForm{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}); err != nil {
		return nil, fmt.Errorf("invalid registration data: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return s.save(ctx, resp)
}

// Login выполняет аутентификацию пользователя
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*storage.AuthData, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" {
		return nil, fmt.Errorf("username or email cannot be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.save(ctx, resp)
}

func (s *Service) save(ctx context.Context, resp *pkgapi.AuthResponse) (*storage.AuthData, error) {
	authData := &storage.AuthData{
		Username:  resp.User.Username,
		UserID:    resp.User.ID,
		Token:     resp.Token,
		ServerURL: s.apiClient.BaseURL(),
		ExpiresAt: resp.ExpiresAt.Unix(),
	}

	if err := s.store.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return authData, nil
}

// Logout выполняет выход из системы.
// Токены stateless, поэтому сервер не уведомляется: удаляется только локальная сессия.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// Session возвращает действующую сессию
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if authData.Expired(s.now()) {
		return authData, ErrSessionExpired
	}
	return authData, nil
}

// Status проверяет сессию локально и на сервере.
// Недоступный сервер не считается ошибкой.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	authData, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Validate(ctx, authData.Token)
	if err != nil {
		slog.Debug("token validation failed", slog.Any("error", err))
		return &Status{Session: authData, Offline: true}, nil
	}

	return &Status{Session: authData, Valid: resp.Valid}, nil
}
