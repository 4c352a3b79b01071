package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestOptionalUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalUser())
	r.GET("/who", func(c *gin.Context) { c.String(http.StatusOK, UserFirebaseUID(c)) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, DemoUser, rr.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("X-User-Id", " bob ")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "bob", rr.Body.String())
}
