package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter := NewRateLimiter(10, 5, logger)
	defer limiter.Stop()

	assert.NotNil(t, limiter)
	assert.Equal(t, 5, limiter.burst)
	assert.NotNil(t, limiter.visitors)

	// burst меньше 1 поднимается до 1
	small := NewRateLimiter(1, 0, logger)
	defer small.Stop()
	assert.Equal(t, 1, small.burst)

	// повторный Stop не паникует
	small.Stop()
}

func TestRateLimiter_Allow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Burst within limit is allowed", func(t *testing.T) {
		limiter := NewRateLimiter(0.001, 5, logger)
		defer limiter.Stop()

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("192.168.1.1"), fmt.Sprintf("request %d should be allowed", i+1))
		}
		assert.False(t, limiter.Allow("192.168.1.1"), "request over burst should be denied")
	})

	t.Run("Different keys are tracked separately", func(t *testing.T) {
		limiter := NewRateLimiter(0.001, 2, logger)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("key1"))
		assert.True(t, limiter.Allow("key1"))
		assert.False(t, limiter.Allow("key1"), "key1 over limit")

		assert.True(t, limiter.Allow("key2"))
		assert.True(t, limiter.Allow("key2"))
		assert.False(t, limiter.Allow("key2"), "key2 over limit")
	})

	t.Run("Tokens refill over time", func(t *testing.T) {
		limiter := NewRateLimiter(50, 1, logger)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("refill"))
		assert.False(t, limiter.Allow("refill"), "should be rate limited")

		// 50 rps: новый токен через 20ms
		time.Sleep(40 * time.Millisecond)

		assert.True(t, limiter.Allow("refill"), "token should be refilled")
	})
}

func TestRateLimiter_Handler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(0.001, 2, logger)
	defer limiter.Stop()

	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	// разные порты одного IP делят bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001").Code)

	w := send("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code)
}

func TestRateLimiter_LogsExceededRequests(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	limiter := NewRateLimiter(0.001, 1, logger)
	defer limiter.Stop()

	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
		req.RemoteAddr = "172.16.0.1:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := logBuf.String()
	assert.Contains(t, out, "Rate limit exceeded")
	assert.Contains(t, out, "172.16.0.1")
	assert.Contains(t, out, "/api/v1/auth/register")
}

func TestRateLimiter_ClientIP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, proxies, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)
	behindProxy := NewRateLimiter(1, 1, logger, WithTrustedProxies([]*net.IPNet{proxies}))
	defer behindProxy.Stop()
	direct := NewRateLimiter(1, 1, logger)
	defer direct.Stop()

	tests := []struct {
		limiter    *RateLimiter
		headers    map[string]string
		name       string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For ignored without trusted proxies",
			limiter:    direct,
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			remoteAddr: "198.51.100.7:4444",
			expected:   "198.51.100.7",
		},
		{
			name:       "X-Real-IP ignored without trusted proxies",
			limiter:    direct,
			headers:    map[string]string{"X-Real-IP": "203.0.113.2"},
			remoteAddr: "198.51.100.7:4444",
			expected:   "198.51.100.7",
		},
		{
			name:       "X-Forwarded-For ignored from untrusted peer",
			limiter:    behindProxy,
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			remoteAddr: "198.51.100.7:4444",
			expected:   "198.51.100.7",
		},
		{
			name:       "X-Forwarded-For from trusted proxy",
			limiter:    behindProxy,
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.1",
		},
		{
			name:       "spoofed left hop is skipped",
			limiter:    behindProxy,
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.1"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.1",
		},
		{
			name:       "chain of trusted proxies",
			limiter:    behindProxy,
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.1",
		},
		{
			name:       "garbage hop falls back to peer",
			limiter:    behindProxy,
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "10.0.0.1",
		},
		{
			name:       "X-Real-IP from trusted proxy",
			limiter:    behindProxy,
			headers:    map[string]string{"X-Real-IP": "203.0.113.2"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.2",
		},
		{
			name:       "RemoteAddr without port",
			limiter:    direct,
			remoteAddr: "10.0.0.1:1234",
			expected:   "10.0.0.1",
		},
		{
			name:       "RemoteAddr IPv6",
			limiter:    direct,
			remoteAddr: "[::1]:8080",
			expected:   "::1",
		},
		{
			name:       "RemoteAddr unparsable",
			limiter:    behindProxy,
			remoteAddr: "pipe",
			expected:   "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, tt.limiter.clientIP(req))
		})
	}
}

// Смена X-Forwarded-For не дает новый bucket тому же соединению
func TestRateLimiter_SpoofedForwardedForSharesBucket(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(0.001, 1, logger)
	defer limiter.Stop()

	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	passed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "198.51.100.7:4444"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			passed++
		}
	}

	assert.Equal(t, 1, passed)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.visitors, 1)
}

func TestRateLimiter_CleanupIdle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(1, 1, logger)
	defer limiter.Stop()

	limiter.Allow("old")
	limiter.Allow("fresh")

	limiter.mu.Lock()
	limiter.visitors["old"].lastSeen = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	limiter.cleanupIdle(time.Now())

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.visitors, "old")
	assert.Contains(t, limiter.visitors, "fresh")
}
