package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

// errorStatus maps domain errors to responses. exposeDetail controls whether
// the wrapped message reaches the client.
var errorStatus = []struct {
	err          error
	code         int
	message      string
	exposeDetail bool
}{
	{domain.ErrNotFound, http.StatusNotFound, "not found", true},
	{domain.ErrForbidden, http.StatusForbidden, "access denied", false},
	{domain.ErrGenerationFailed, http.StatusBadGateway, "content generation failed", false},
	{domain.ErrPersistenceFailed, http.StatusServiceUnavailable, "storage unavailable", false},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid input", true},
	{domain.ErrKindMismatch, http.StatusBadRequest, "project type does not match export format", true},
}

func mapError(err error) (int, string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.exposeDetail {
				return e.code, err.Error()
			}
			return e.code, e.message
		}
	}
	return http.StatusInternalServerError, "internal error"
}

// writeError logs and renders err. The body carries both "error" and
// "detail" so older clients keep working.
func writeError(c *gin.Context, operation string, err error) {
	code, msg := mapError(err)
	entry := logging.FromContext(c.Request.Context(), operation).WithError(err).WithField("status", code)
	if code >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}
	c.JSON(code, gin.H{"ok": false, "error": msg, "detail": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg, "detail": msg})
}
