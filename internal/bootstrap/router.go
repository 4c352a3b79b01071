package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/intriguedcoder/ai-document-generator/internal/api/http"
	"github.com/intriguedcoder/ai-document-generator/internal/api/http/middleware"
	"github.com/intriguedcoder/ai-document-generator/internal/api/http/routes"
	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	authhttp "github.com/intriguedcoder/ai-document-generator/internal/auth/http"
	authmw "github.com/intriguedcoder/ai-document-generator/internal/auth/middleware"
	authservice "github.com/intriguedcoder/ai-document-generator/internal/auth/service"
	"github.com/intriguedcoder/ai-document-generator/internal/generator"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/history"
	projectshttp "github.com/intriguedcoder/ai-document-generator/internal/projects/http"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/service"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Driver      string
	CORSOrigins []string

	Store   store.ContentStore
	Metrics *metrics.Metrics
	Writer  *generator.Writer
	// Archiver is optional.
	Archiver service.Archiver

	// Verifier is nil when auth is disabled; callers are then identified by
	// the X-User-Id header.
	Verifier authmw.TokenVerifier
	Users    authservice.UserLookup

	RatePerMinute int
	RateBurst     int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-User-Email", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Driver, dep.Store)
	healthHandler.RegisterRoutes(r)

	if dep.Metrics != nil {
		r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "AI Document Generator API",
			"version": dep.Version,
			"status":  "operational",
		})
	})

	authMiddleware := auth.OptionalUser()
	if dep.Verifier != nil {
		authMiddleware = authmw.FirebaseAuthMiddleware(dep.Verifier)
	}

	projects := projectshttp.New(
		service.NewProjectService(dep.Store),
		service.NewRefinementService(dep.Store, dep.Writer, history.NewManager()),
		service.NewExportService(dep.Store, dep.Archiver, dep.Metrics),
		dep.Writer,
	)

	routes.RegisterAPI(r, routes.APIDeps{
		Auth:     authMiddleware,
		Users:    authhttp.New(authservice.NewAuthService(dep.Users)),
		Projects: projects,
		Limiter:  middleware.NewRateLimiter(dep.RatePerMinute, dep.RateBurst),
	})

	return r
}
