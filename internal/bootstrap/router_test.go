package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intriguedcoder/ai-document-generator/internal/generator"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	return BuildRouter(RouterDeps{
		ServiceName:   "docgen",
		Version:       "1.2.3",
		Driver:        "memory",
		CORSOrigins:   []string{"http://localhost:5173"},
		Store:         store.Instrument(store.NewMemoryStore(), m),
		Metrics:       m,
		Writer:        generator.NewWriter(generator.MockGenerator{}, generator.DefaultOptions(), m),
		RatePerMinute: 0,
	})
}

func TestBuildRouter_Root(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "operational", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestBuildRouter_AuthDisabledFlow(t *testing.T) {
	r := testRouter()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"title":"T","doc_type":"word","topic":"Sky"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "demo-user", list[0]["user_id"])

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBuildRouter_HealthAndMetrics(t *testing.T) {
	r := testRouter()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"store":"up"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "docgen_store_calls_total")
}
