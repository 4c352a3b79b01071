package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authctx "github.com/intriguedcoder/ai-document-generator/internal/auth"
)

type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if token != "good" {
		return nil, errors.New("bad signature")
	}
	return &auth.Token{UID: "alice", Claims: map[string]interface{}{"email": "alice@example.com"}}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(FirebaseAuthMiddleware(fakeVerifier{}))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, authctx.UserFirebaseUID(c)+"|"+authctx.UserEmail(c))
	})
	return r
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing authorization token"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "missing authorization token"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "invalid authentication credentials"},
		{"valid token", "Bearer good", http.StatusOK, "alice|alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			newRouter().ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.body)
		})
	}
}
