package handlers

import (
	"context"

	"github.com/iudanet/gophsocial/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

// IdentityKey ключ для хранения models.Identity в контексте
const IdentityKey contextKey = "identity"

// WithIdentity кладет проверенную личность вызывающего в контекст
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom извлекает личность из контекста запроса
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(models.Identity)
	return id, ok
}
