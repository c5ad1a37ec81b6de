package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/handlers"
	"github.com/iudanet/gophsocial/pkg/api"
)

// TokenValidator проверяет session token и возвращает его subject (username)
type TokenValidator interface {
	Validate(token string) (string, bool)
}

// UserLookup находит аккаунт по username
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticate создает разрешающий middleware аутентификации.
// Валидный токен существующего пользователя кладет models.Identity в контекст.
// Отсутствующий, битый или просроченный токен оставляет запрос анонимным:
// middleware никогда не отклоняет запрос сам, это делает RequireIdentity.
func Authenticate(logger *slog.Logger, tokens TokenValidator, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := handlers.BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, ok := tokens.Validate(token)
			if !ok {
				logger.DebugContext(r.Context(), "Invalid access token, continuing anonymously")
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByUsername(r.Context(), username)
			if err != nil {
				logger.WarnContext(r.Context(), "Token subject not resolved",
					slog.String("username", username),
					slog.Any("error", err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := handlers.WithIdentity(r.Context(), models.Identity{UserID: user.ID, Username: user.Username})

			logger.DebugContext(ctx, "User authenticated",
				slog.String("user_id", user.ID),
				slog.String("username", user.Username),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity отвечает 401, если Authenticate не установил личность
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.IdentityFrom(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSONError пишет api.ErrorResponse без логгера
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: http.StatusText(status), Message: message})
}
