package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	"github.com/intriguedcoder/ai-document-generator/internal/auth/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/logging"
)

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), uid, auth.UserEmail(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		logging.FromContext(c.Request.Context(), "get_profile").WithError(err).Error("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
