package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// PostHandler обрабатывает запросы к постам и ленте
type PostHandler struct {
	logger *slog.Logger
	posts  *service.PostService
}

// NewPostHandler создает handler постов
func NewPostHandler(logger *slog.Logger, posts *service.PostService) *PostHandler {
	return &PostHandler{logger: logger, posts: posts}
}

// Feed обрабатывает GET /api/v1/posts/feed?page=&size=
// Лента вызывающего: посты тех, на кого он подписан, от новых к старым
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	feed, err := h.posts.Feed(r.Context(), caller.UserID, page)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPage(feed, toPostResponse), http.StatusOK)
}

// Create обрабатывает POST /api/v1/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req api.ContentRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	post, err := h.posts.Create(r.Context(), caller, service.PostInput{Content: req.Content})
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", caller.UserID))
	sendJSON(w, h.logger, toPostResponse(post), http.StatusCreated)
}

// List обрабатывает GET /api/v1/posts?page=&size=
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	posts, err := h.posts.List(r.Context(), page)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPage(posts, toPostResponse), http.StatusOK)
}

// Search обрабатывает GET /api/v1/posts/search?q=
func (h *PostHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	posts, err := h.posts.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPage(posts, toPostResponse), http.StatusOK)
}

// Range обрабатывает GET /api/v1/posts/range?from=&to=
// Границы в RFC 3339, обе включительно
func (h *PostHandler) Range(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		sendError(w, h.logger, "from must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		sendError(w, h.logger, "to must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}

	posts, err := h.posts.Between(r.Context(), from, to)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toList(posts, toPostResponse), http.StatusOK)
}

// ListByUser обрабатывает GET /api/v1/posts/user/{id}
func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	posts, err := h.posts.ListByUser(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPage(posts, toPostResponse), http.StatusOK)
}

// CountByUser обрабатывает GET /api/v1/posts/user/{id}/count
func (h *PostHandler) CountByUser(w http.ResponseWriter, r *http.Request) {
	n, err := h.posts.CountByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, api.CountResponse{Count: n}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPostResponse(post), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/posts/{id}
// Редактировать может только автор
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req api.ContentRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	post, err := h.posts.Update(r.Context(), caller, chi.URLParam(r, "id"), service.PostInput{Content: req.Content})
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}
	sendJSON(w, h.logger, toPostResponse(post), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	postID := chi.URLParam(r, "id")
	if err := h.posts.Delete(r.Context(), caller, postID); err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "post deleted", slog.String("post_id", postID))
	w.WriteHeader(http.StatusNoContent)
}
