package http

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	"github.com/intriguedcoder/ai-document-generator/internal/export"
)

func (h *Handler) exportDocx(c *gin.Context)    { h.export(c, export.FormatDocx) }
func (h *Handler) exportPptx(c *gin.Context)    { h.export(c, export.FormatPptx) }
func (h *Handler) exportHistory(c *gin.Context) { h.export(c, export.FormatXlsx) }

func (h *Handler) export(c *gin.Context, format export.Format) {
	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	file, err := h.exports.Export(c.Request.Context(), auth.UserFirebaseUID(c), req.ProjectID, format)
	if err != nil {
		writeError(c, "export_"+string(format), err)
		return
	}
	c.Header("Content-Disposition", contentDisposition(file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// contentDisposition quotes or RFC 2231-encodes the name as needed.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
