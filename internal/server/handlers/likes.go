package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// LikeHandler обрабатывает запросы лайков
type LikeHandler struct {
	logger *slog.Logger
	likes  *service.LikeService
}

// NewLikeHandler создает handler лайков
func NewLikeHandler(logger *slog.Logger, likes *service.LikeService) *LikeHandler {
	return &LikeHandler{logger: logger, likes: likes}
}

// Like обрабатывает POST /api/v1/likes/{id}
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	like, err := h.likes.Like(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, h.logger, api.LikeResponse{
		ID:        like.ID,
		PostID:    like.PostID,
		UserID:    like.UserID,
		Username:  caller.Username,
		CreatedAt: like.CreatedAt,
	}, http.StatusCreated)
}

// Unlike обрабатывает DELETE /api/v1/likes/{id}
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.likes.Unlike(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle обрабатывает POST /api/v1/likes/{id}/toggle
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	liked, err := h.likes.Toggle(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.LikedResponse{Liked: liked}, http.StatusOK)
}

// Status обрабатывает GET /api/v1/likes/{id}/status
func (h *LikeHandler) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	liked, err := h.likes.HasLiked(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.LikedResponse{Liked: liked}, http.StatusOK)
}

// ForPost обрабатывает GET /api/v1/likes/post/{id}
func (h *LikeHandler) ForPost(w http.ResponseWriter, r *http.Request) {
	likes, err := h.likes.ForPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(likes, toLikeResponse), http.StatusOK)
}

// CountForPost обрабатывает GET /api/v1/likes/post/{id}/count
func (h *LikeHandler) CountForPost(w http.ResponseWriter, r *http.Request) {
	n, err := h.likes.CountForPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.CountResponse{Count: n}, http.StatusOK)
}

// ByUser обрабатывает GET /api/v1/likes/user/{id}
func (h *LikeHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	likes, err := h.likes.ByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(likes, toLikeResponse), http.StatusOK)
}

// CountByUser обрабатывает GET /api/v1/likes/user/{id}/count
func (h *LikeHandler) CountByUser(w http.ResponseWriter, r *http.Request) {
	n, err := h.likes.CountByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.CountResponse{Count: n}, http.StatusOK)
}

// MostLiked обрабатывает GET /api/v1/likes/most-liked?limit=
func (h *LikeHandler) MostLiked(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	posts, err := h.likes.MostLiked(r.Context(), limit)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(posts, toPostResponse), http.StatusOK)
}
