package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// UserHandler обрабатывает запросы к профилям
type UserHandler struct {
	logger *slog.Logger
	users  *service.UserService
}

// NewUserHandler создает handler профилей
func NewUserHandler(logger *slog.Logger, users *service.UserService) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// Me обрабатывает GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), caller.UserID)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toUserResponse(user), http.StatusOK)
}

// List обрабатывает GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(users, toUserResponse), http.StatusOK)
}

// Search обрабатывает GET /api/v1/users/search?field=&q=
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.users.Search(r.Context(), q.Get("field"), q.Get("q"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(users, toUserResponse), http.StatusOK)
}

// Get обрабатывает GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toUserResponse(user), http.StatusOK)
}

// GetByUsername обрабатывает GET /api/v1/users/username/{username}
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toUserResponse(user), http.StatusOK)
}

// GetByEmail обрабатывает GET /api/v1/users/email/{email}
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toUserResponse(user), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/users/{id}
// Менять можно только свой профиль
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateUserInput{
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

	h.logger.InfoContext(r.Context(), "user updated", slog.String("user_id", user.ID))
	sendJSON(w, h.logger, toUserResponse(user), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "id")
	if err := h.users.Delete(r.Context(), caller, userID); err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user deleted", slog.String("user_id", userID))
	w.WriteHeader(http.StatusNoContent)
}

// UsernameExists обрабатывает GET /api/v1/users/exists/username/{username}
func (h *UserHandler) UsernameExists(w http.ResponseWriter, r *http.Request) {
	ok, err := h.users.UsernameExists(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.ExistsResponse{Exists: ok}, http.StatusOK)
}

// EmailExists обрабатывает GET /api/v1/users/exists/email/{email}
func (h *UserHandler) EmailExists(w http.ResponseWriter, r *http.Request) {
	ok, err := h.users.EmailExists(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.ExistsResponse{Exists: ok}, http.StatusOK)
}
