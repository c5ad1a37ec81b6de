package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/gophsocial/pkg/api"
)

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error {
	return m.err
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		pingErr    error
		name       string
		wantStatus string
		wantDB     string
		wantCode   int
	}{
		{name: "healthy", wantCode: http.StatusOK, wantStatus: "ok", wantDB: "ok"},
		{name: "database down", pingErr: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "degraded", wantDB: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(setupTestLogger(), mockPinger{err: tt.pingErr}, "1.2.3")

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			w := httptest.NewRecorder()

			handler.Health(w, req)

			resp := w.Result()
			defer func() {
				err := resp.Body.Close()
				assert.NoError(t, err)
			}()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var healthResp api.HealthResponse
			err := json.NewDecoder(resp.Body).Decode(&healthResp)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, healthResp.Status)
			assert.Equal(t, tt.wantDB, healthResp.Database)
			assert.Equal(t, "1.2.3", healthResp.Version)
		})
	}
}
