package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/gophsocial/internal/crypto"
	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/jwt"
	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/internal/server/storage/sqldb"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// testServer собирает handlers поверх in-memory SQLite
type testServer struct {
	svc    *service.Services
	router chi.Router
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqldb.New(context.Background(), sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := jwt.NewService("test-secret", jwt.DefaultTTL)
	require.NoError(t, err)

	logger := setupTestLogger()
	svc, err := service.New(store, crypto.NewBcryptHasher(bcrypt.MinCost), tokens, logger)
	require.NoError(t, err)

	users := NewUserHandler(logger, svc.Users)
	follows := NewFollowHandler(logger, svc.Follows)
	posts := NewPostHandler(logger, svc.Posts)
	likes := NewLikeHandler(logger, svc.Likes)
	comments := NewCommentHandler(logger, svc.Comments)

	r := chi.NewRouter()
	r.Get("/users/me", users.Me)
	r.Get("/users/{id}", users.Get)
	r.Put("/users/{id}", users.Update)
	r.Delete("/users/{id}", users.Delete)
	r.Get("/users/exists/username/{username}", users.UsernameExists)

	r.Post("/follows/{id}", follows.Follow)
	r.Delete("/follows/{id}", follows.Unfollow)
	r.Get("/follows/{id}/following", follows.Following)
	r.Get("/follows/{id}/followers/count", follows.FollowersCount)
	r.Get("/follows/{id}/following/{other}", follows.IsFollowing)

	r.Get("/posts/feed", posts.Feed)
	r.Post("/posts", posts.Create)
	r.Get("/posts", posts.List)
	r.Get("/posts/range", posts.Range)
	r.Get("/posts/{id}", posts.Get)
	r.Put("/posts/{id}", posts.Update)
	r.Delete("/posts/{id}", posts.Delete)

	r.Post("/likes/{id}", likes.Like)
	r.Post("/likes/{id}/toggle", likes.Toggle)
	r.Get("/likes/post/{id}/count", likes.CountForPost)
	r.Get("/likes/most-liked", likes.MostLiked)

	r.Post("/comments/post/{id}", comments.Create)
	r.Get("/comments/post/{id}", comments.ForPost)
	r.Delete("/comments/{id}", comments.Delete)

	return &testServer{svc: svc, router: r}
}

func (s *testServer) register(t *testing.T, username string) models.Identity {
	t.Helper()

	res, err := s.svc.Auth.Register(context.Background(), service.RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		FirstName: "First",
		LastName:  "Last",
	})
	require.NoError(t, err)
	return models.Identity{UserID: res.User.ID, Username: res.User.Username}
}

// do выполняет запрос; caller == nil означает анонимный запрос
func (s *testServer) do(t *testing.T, method, target string, caller *models.Identity, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req = req.WithContext(WithIdentity(req.Context(), *caller))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
