package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsocial/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "testuser", req.Username)
		assert.Equal(t, "secret123", req.Password)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "jwt-token",
			Type:  api.TokenType,
			User:  api.UserResponse{ID: "user-123", Username: "testuser"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Register(context.Background(), api.RegisterRequest{
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "user-123", resp.User.ID)
}

// TestClient_Errors проверяет обработку ошибок сервера
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		statusCode       int
		wantMessage      string
		wantUnauthorized bool
	}{
		{
			name:             "invalid credentials",
			statusCode:       http.StatusUnauthorized,
			body:             `{"error":"Unauthorized","message":"invalid credentials"}`,
			wantMessage:      "invalid credentials",
			wantUnauthorized: true,
		},
		{
			name:        "conflict",
			statusCode:  http.StatusConflict,
			body:        `{"error":"Conflict","message":"username already taken"}`,
			wantMessage: "username already taken",
		},
		{
			name:        "non JSON body",
			statusCode:  http.StatusBadGateway,
			body:        "upstream down",
			wantMessage: "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.Login(context.Background(), api.LoginRequest{UsernameOrEmail: "u", Password: "p"})
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantUnauthorized, IsUnauthorized(err))
		})
	}
}

// TestClient_BearerToken проверяет передачу токена в защищенные маршруты
func TestClient_BearerToken(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(api.Page[api.PostResponse]{
			Content: []api.PostResponse{{ID: "p1", Content: "hello"}},
			Size:    5,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.Feed(context.Background(), "tok", 1, 5)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/api/v1/posts/feed", gotPath)
	assert.Equal(t, "page=1&size=5", gotQuery)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "hello", page.Content[0].Content)
}

// TestClient_Unfollow проверяет ответ 204 без тела
func TestClient_Unfollow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/follows/user-2", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Unfollow(context.Background(), "tok", "user-2"))
}

// TestClient_UserByUsername проверяет экранирование username в пути
func TestClient_UserByUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/username/bob", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.UserResponse{ID: "u-bob", Username: "bob"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	user, err := client.UserByUsername(context.Background(), "tok", "bob")
	require.NoError(t, err)
	assert.Equal(t, "u-bob", user.ID)
}

// TestClient_ContextCanceled проверяет отмену запроса
func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL)
	_, err := client.Me(ctx, "tok")
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
}
