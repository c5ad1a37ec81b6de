package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/handlers"
	"github.com/iudanet/gophsocial/internal/server/jwt"
	"github.com/iudanet/gophsocial/internal/server/storage"
	"github.com/iudanet/gophsocial/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockUserLookup is a mock implementation of UserLookup for testing
type mockUserLookup struct {
	users map[string]*models.User // username -> User
	calls int
}

func (m *mockUserLookup) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.calls++
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

// identityRecorder запоминает личность, увиденную следующим handler
type identityRecorder struct {
	identity models.Identity
	found    bool
	called   bool
}

func (rec *identityRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec.called = true
	rec.identity, rec.found = handlers.IdentityFrom(r.Context())
	w.WriteHeader(http.StatusOK)
}

func setupAuth(t *testing.T) (*jwt.Service, *mockUserLookup) {
	t.Helper()

	tokens, err := jwt.NewService("test-secret-key", time.Hour)
	require.NoError(t, err)

	users := &mockUserLookup{users: map[string]*models.User{
		"testuser": {ID: "user123", Username: "testuser"},
	}}
	return tokens, users
}

func TestAuthenticate(t *testing.T) {
	tokens, users := setupAuth(t)

	valid, _, err := tokens.Issue("testuser")
	require.NoError(t, err)

	ghost, _, err := tokens.Issue("deleted")
	require.NoError(t, err)

	expiredSvc, err := jwt.NewService("test-secret-key", time.Hour, jwt.WithClock(func() time.Time {
		return time.Now().Add(-48 * time.Hour)
	}))
	require.NoError(t, err)
	expired, _, err := expiredSvc.Issue("testuser")
	require.NoError(t, err)

	otherSvc, err := jwt.NewService("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, _, err := otherSvc.Issue("testuser")
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		wantIdentity bool
	}{
		{name: "valid token", header: "Bearer " + valid, wantIdentity: true},
		{name: "lowercase scheme", header: "bearer " + valid, wantIdentity: true},
		{name: "no header", header: ""},
		{name: "no bearer prefix", header: valid},
		{name: "empty bearer token", header: "Bearer "},
		{name: "whitespace bearer token", header: "Bearer  \t "},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong secret", header: "Bearer " + foreign},
		{name: "user no longer exists", header: "Bearer " + ghost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &identityRecorder{}
			handler := Authenticate(setupTestLogger(), tokens, users)(rec)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			// фильтр никогда не отклоняет запрос
			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, rec.called)
			assert.Equal(t, tt.wantIdentity, rec.found)
			if tt.wantIdentity {
				assert.Equal(t, models.Identity{UserID: "user123", Username: "testuser"}, rec.identity)
			}
		})
	}
}

func TestAuthenticate_SkipsLookupWithoutToken(t *testing.T) {
	tokens, users := setupAuth(t)
	handler := Authenticate(setupTestLogger(), tokens, users)(&identityRecorder{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Zero(t, users.calls)
}

func TestRequireIdentity(t *testing.T) {
	t.Run("anonymous rejected", func(t *testing.T) {
		rec := &identityRecorder{}
		handler := RequireIdentity(rec)

		req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, rec.called)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp api.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "authentication required", resp.Message)
		assert.Equal(t, "Unauthorized", resp.Error)
	})

	t.Run("identity passes", func(t *testing.T) {
		rec := &identityRecorder{}
		handler := RequireIdentity(rec)

		req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
		req = req.WithContext(handlers.WithIdentity(req.Context(), models.Identity{UserID: "u1", Username: "alice"}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, rec.called)
		assert.Equal(t, "alice", rec.identity.Username)
	})
}
