package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/api/http/middleware"
	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	authhttp "github.com/intriguedcoder/ai-document-generator/internal/auth/http"
	projectshttp "github.com/intriguedcoder/ai-document-generator/internal/projects/http"
)

type APIDeps struct {
	// Auth resolves the caller. Every /api route runs behind it.
	Auth     gin.HandlerFunc
	Users    *authhttp.Handler
	Projects *projectshttp.Handler
	Limiter  *middleware.RateLimiter
}

// RegisterAPI mounts the /api tree. Generation endpoints are rate limited
// per user.
func RegisterAPI(r *gin.Engine, dep APIDeps) *gin.RouterGroup {
	api := r.Group("/api")
	api.Use(dep.Auth)

	dep.Users.Register(api.Group("/auth"))

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if dep.Limiter != nil {
		limit = dep.Limiter.Middleware(auth.UserFirebaseUID)
	}
	dep.Projects.Register(api, limit)
	return api
}
