package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/service"
)

const (
	defaultOutlineSections = 5
	minOutlineSections     = 3
	maxOutlineSections     = 10
)

func (h *Handler) suggestOutline(c *gin.Context) {
	var req outlineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	kind, err := domain.ParseDocKind(req.DocType)
	if err != nil {
		writeError(c, "suggest_outline", err)
		return
	}
	count := defaultOutlineSections
	if req.NumSections != nil {
		count = *req.NumSections
	}
	if count < minOutlineSections || count > maxOutlineSections {
		badRequest(c, "num_sections must be between 3 and 10")
		return
	}

	c.JSON(http.StatusOK, h.outlines.SuggestOutline(c.Request.Context(), req.Topic, kind, count))
}

func (h *Handler) generateContent(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	res, err := h.refinement.Generate(c.Request.Context(), auth.UserFirebaseUID(c), service.GenerateInput{
		ProjectID: req.ProjectID,
		SectionID: req.SectionID,
		Context:   req.Context,
		Tone:      req.Tone,
	})
	if err != nil {
		writeError(c, "generate_content", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// addSection reads section_title and order from the query string.
func (h *Handler) addSection(c *gin.Context) {
	order := 0
	if raw := c.Query("order"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "order must be an integer")
			return
		}
		order = n
	}
	section, err := h.projects.AddSection(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("project_id"), c.Query("section_title"), order)
	if err != nil {
		writeError(c, "add_section", err)
		return
	}
	c.JSON(http.StatusOK, section)
}
