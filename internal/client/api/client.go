package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/gophsocial/pkg/api"
)

const apiPrefix = "/api/v1"

// Error ответ сервера с кодом не 2xx
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized сообщает, что сервер отверг токен или учетные данные
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL адрес сервера, с которым работает клиент
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Validate проверяет токен на сервере
func (c *Client) Validate(ctx context.Context, token string) (*api.ValidateResponse, error) {
	var resp api.ValidateResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/validate", "", api.ValidateRequest{Token: token}, &resp); err != nil {
		return nil, fmt.Errorf("validate request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает профиль владельца токена
func (c *Client) Me(ctx context.Context, token string) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/users/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &resp, nil
}

// UserByUsername находит пользователя по username
func (c *Client) UserByUsername(ctx context.Context, token, username string) (*api.UserResponse, error) {
	var resp api.UserResponse
	path := "/users/username/" + url.PathEscape(username)
	if err := c.doRequest(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &resp, nil
}

// CreatePost публикует пост
func (c *Client) CreatePost(ctx context.Context, token, content string) (*api.PostResponse, error) {
	var resp api.PostResponse
	if err := c.doRequest(ctx, http.MethodPost, "/posts", token, api.ContentRequest{Content: content}, &resp); err != nil {
		return nil, fmt.Errorf("create post failed: %w", err)
	}
	return &resp, nil
}

// Feed возвращает страницу ленты
func (c *Client) Feed(ctx context.Context, token string, page, size int) (*api.Page[api.PostResponse], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var resp api.Page[api.PostResponse]
	if err := c.doRequest(ctx, http.MethodGet, "/posts/feed?"+q.Encode(), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get feed failed: %w", err)
	}
	return &resp, nil
}

// Follow подписывает владельца токена на userID
func (c *Client) Follow(ctx context.Context, token, userID string) (*api.FollowResponse, error) {
	var resp api.FollowResponse
	if err := c.doRequest(ctx, http.MethodPost, "/follows/"+url.PathEscape(userID), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("follow failed: %w", err)
	}
	return &resp, nil
}

// Unfollow отменяет подписку
func (c *Client) Unfollow(ctx context.Context, token, userID string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/follows/"+url.PathEscape(userID), token, nil, nil); err != nil {
		return fmt.Errorf("unfollow failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос; token может быть пустым
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	target := c.baseURL + apiPrefix + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", api.TokenType+" "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &Error{StatusCode: resp.StatusCode, Message: errResp.Message}
		}
		return &Error{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	// 204 и прочие ответы без тела
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
