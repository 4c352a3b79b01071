package http

import (
	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/auth/service"
)

// Handler serves the signed-in user's own account data.
type Handler struct {
	authService *service.AuthService
}

func New(authService *service.AuthService) *Handler {
	return &Handler{authService: authService}
}

// Register mounts GET /me on rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetProfile)
}
