package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// AuthService то, что AuthHandler требует от сервиса аутентификации
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*service.AuthResult, error)
	ValidateToken(ctx context.Context, token string) (string, bool)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	auth   AuthService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

// Register обрабатывает POST /api/v1/auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	res, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, h.logger, authResponse(res), http.StatusCreated)
}

// Login обрабатывает POST /api/v1/auth/login
// Аутентификация по username или email
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	res, err := h.auth.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, h.logger, authResponse(res), http.StatusOK)
}

// Validate обрабатывает POST /api/v1/auth/validate
// Токен берется из тела или из заголовка Authorization
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req api.ValidateRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, h.logger, &req) {
			return
		}
	}
	if req.Token == "" {
		req.Token = BearerToken(r)
	}

	username, ok := h.auth.ValidateToken(r.Context(), req.Token)
	sendJSON(w, h.logger, api.ValidateResponse{Valid: ok, Username: username}, http.StatusOK)
}

// BearerToken извлекает токен из "Authorization: Bearer <token>".
// Пустая строка, если заголовка нет или формат другой.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func authResponse(res *service.AuthResult) api.AuthResponse {
	return api.AuthResponse{
		Token:     res.Token,
		Type:      api.TokenType,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.User),
	}
}
