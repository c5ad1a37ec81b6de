package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/pkg/api"
)

// maxBodySize ограничение на размер тела запроса
const maxBodySize = 1 << 20

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(w, logger, resp, statusCode)
}

// statusOf maps a service error kind to an HTTP status.
func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// sendServiceError переводит ошибку сервиса в HTTP ответ.
// Детали внутренних ошибок остаются только в логе.
func sendServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := service.KindOf(err)
	status := statusOf(kind)

	var serr *service.Error
	if kind == service.KindInternal || !errors.As(err, &serr) {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		sendError(w, logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendError(w, logger, serr.Message, status)
}

// decodeJSON читает тело запроса. false означает, что ответ уже отправлен.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request body", slog.Any("error", err))
		sendError(w, logger, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// callerIdentity возвращает личность из контекста или отвечает 401
func callerIdentity(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (models.Identity, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		sendError(w, logger, "authentication required", http.StatusUnauthorized)
	}
	return id, ok
}

// parsePage читает page и size. Без page возвращается nil: весь список целиком.
func parsePage(r *http.Request) (*models.PageRequest, error) {
	q := r.URL.Query()
	rawPage := q.Get("page")
	if rawPage == "" {
		return nil, nil
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil {
		return nil, errors.New("page must be an integer")
	}

	size := models.DefaultPageSize
	if rawSize := q.Get("size"); rawSize != "" {
		size, err = strconv.Atoi(rawSize)
		if err != nil {
			return nil, errors.New("size must be an integer")
		}
	}

	return &models.PageRequest{Page: page, Size: size}, nil
}

// parseLimit читает необязательный limit; 0 означает значение по умолчанию
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}

func toPage[M, R any](p *models.Page[M], conv func(M) R) api.Page[R] {
	out := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, conv(item))
	}
	return api.Page[R]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.Total,
		TotalPages:    p.TotalPages(),
	}
}

func toList[M, R any](items []M, conv func(M) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, conv(item))
	}
	return out
}

// NotFound отвечает 404 для неизвестных маршрутов
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendError(w, logger, "route not found", http.StatusNotFound)
	}
}

// MethodNotAllowed отвечает 405 в формате api.ErrorResponse
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendError(w, logger, "method not allowed", http.StatusMethodNotAllowed)
	}
}
