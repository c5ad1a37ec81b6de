package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// CommentHandler обрабатывает запросы комментариев
type CommentHandler struct {
	logger   *slog.Logger
	comments *service.CommentService
}

// NewCommentHandler создает handler комментариев
func NewCommentHandler(logger *slog.Logger, comments *service.CommentService) *CommentHandler {
	return &CommentHandler{logger: logger, comments: comments}
}

// Create обрабатывает POST /api/v1/comments/post/{id}
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req api.ContentRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	comment, err := h.comments.Create(r.Context(), caller, chi.URLParam(r, "id"), service.CommentInput{Content: req.Content})
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toCommentResponse(comment), http.StatusCreated)
}

// ForPost обрабатывает GET /api/v1/comments/post/{id}
// Комментарии поста от старых к новым
func (h *CommentHandler) ForPost(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	comments, err := h.comments.ForPost(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPage(comments, toCommentResponse), http.StatusOK)
}

// CountForPost обрабатывает GET /api/v1/comments/post/{id}/count
func (h *CommentHandler) CountForPost(w http.ResponseWriter, r *http.Request) {
	n, err := h.comments.CountForPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.CountResponse{Count: n}, http.StatusOK)
}

// ByUser обрабатывает GET /api/v1/comments/user/{id}
func (h *CommentHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	comments, err := h.comments.ByUser(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPage(comments, toCommentResponse), http.StatusOK)
}

// Search обрабатывает GET /api/v1/comments/search?q=
func (h *CommentHandler) Search(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(comments, toCommentResponse), http.StatusOK)
}

// Recent обрабатывает GET /api/v1/comments/recent?limit=
func (h *CommentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	comments, err := h.comments.Recent(r.Context(), limit)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(comments, toCommentResponse), http.StatusOK)
}

// Get обрабатывает GET /api/v1/comments/{id}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toCommentResponse(comment), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req api.ContentRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	comment, err := h.comments.Update(r.Context(), caller, chi.URLParam(r, "id"), service.CommentInput{Content: req.Content})
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toCommentResponse(comment), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
