package auth

import (
	"context"

	"github.com/iudanet/gophsocial/internal/client/storage"
	pkgapi "github.com/iudanet/gophsocial/pkg/api"
)

//go:generate moq -out service_mock.go . Sessions

// Sessions управляет локальной сессией клиента.
// Register и Login сохраняют полученный токен, остальные команды берут его через Session.
type Sessions interface {
	// Register регистрирует пользователя и сразу сохраняет сессию
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*storage.AuthData, error)

	// Login выполняет вход по username или email
	Login(ctx context.Context, usernameOrEmail, password string) (*storage.AuthData, error)

	// Logout удаляет локальную сессию
	Logout(ctx context.Context) error

	// Session возвращает действующую сессию.
	// ErrNotLoggedIn если сессии нет, ErrSessionExpired если токен истек.
	Session(ctx context.Context) (*storage.AuthData, error)

	// Status сверяет сохраненный токен с сервером
	Status(ctx context.Context) (*Status, error)
}

var _ Sessions = (*Service)(nil)
