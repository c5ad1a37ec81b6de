package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// FollowHandler обрабатывает запросы графа подписок
type FollowHandler struct {
	logger  *slog.Logger
	follows *service.FollowService
}

// NewFollowHandler создает handler подписок
func NewFollowHandler(logger *slog.Logger, follows *service.FollowService) *FollowHandler {
	return &FollowHandler{logger: logger, follows: follows}
}

// Follow обрабатывает POST /api/v1/follows/{id}
// Вызывающий подписывается на пользователя id
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	follow, err := h.follows.Follow(r.Context(), caller.UserID, chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user followed",
		slog.String("follower_id", follow.FollowerID),
		slog.String("following_id", follow.FollowingID))
	sendJSON(w, h.logger, toFollowResponse(follow), http.StatusCreated)
}

// Unfollow обрабатывает DELETE /api/v1/follows/{id}
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.follows.Unfollow(r.Context(), caller.UserID, chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IsFollowing обрабатывает GET /api/v1/follows/{id}/following/{other}
func (h *FollowHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	ok, err := h.follows.IsFollowing(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "other"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.FollowingResponse{Following: ok}, http.StatusOK)
}

// Following обрабатывает GET /api/v1/follows/{id}/following
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	users, err := h.follows.Following(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(users, toUserResponse), http.StatusOK)
}

// Followers обрабатывает GET /api/v1/follows/{id}/followers
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	users, err := h.follows.Followers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(users, toUserResponse), http.StatusOK)
}

// FollowingCount обрабатывает GET /api/v1/follows/{id}/following/count
func (h *FollowHandler) FollowingCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.follows.FollowingCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.CountResponse{Count: n}, http.StatusOK)
}

// FollowersCount обрабатывает GET /api/v1/follows/{id}/followers/count
func (h *FollowHandler) FollowersCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.follows.FollowersCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.CountResponse{Count: n}, http.StatusOK)
}

// Mutual обрабатывает GET /api/v1/follows/{id}/mutual/{other}
func (h *FollowHandler) Mutual(w http.ResponseWriter, r *http.Request) {
	users, err := h.follows.Mutual(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "other"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(users, toUserResponse), http.StatusOK)
}

// Suggestions обрабатывает GET /api/v1/follows/{id}/suggestions?limit=
func (h *FollowHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	users, err := h.follows.Suggestions(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(users, toUserResponse), http.StatusOK)
}
