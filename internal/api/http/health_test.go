package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, h *HealthHandler, method, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, path, nil))

	var resp HealthResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name  string
		store Pinger
		want  string
	}{
		{"no store", nil, "disabled"},
		{"store up", pingFunc(func(context.Context) error { return nil }), "up"},
		{"store down", pingFunc(func(context.Context) error { return errors.New("refused") }), "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := serveHealth(t, NewHealthHandler("test-service", "1.0.0", "redis", tt.store), http.MethodGet, "/health")

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "healthy", resp.Status)
			assert.Equal(t, "test-service", resp.Service)
			assert.Equal(t, "1.0.0", resp.Version)
			assert.Equal(t, tt.want, resp.Store)
		})
	}
}

func TestHealthCheck_Healthz(t *testing.T) {
	rr, resp := serveHealth(t, NewHealthHandler("svc", "v", "memory", nil), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "memory", resp.Driver)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr, _ := serveHealth(t, NewHealthHandler("svc", "v", "", nil), http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
