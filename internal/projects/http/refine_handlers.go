package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

func (h *Handler) refine(c *gin.Context) {
	var req refineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	res, err := h.refinement.Refine(c.Request.Context(), auth.UserFirebaseUID(c), req.ProjectID, req.SectionID, req.RefinementPrompt)
	if err != nil {
		writeError(c, "refine_section", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// feedback accepts "like", "dislike" or null. null clears the rating.
func (h *Handler) feedback(c *gin.Context) {
	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	var fb *domain.Feedback
	if req.Feedback != nil {
		v := domain.Feedback(*req.Feedback)
		fb = &v
	}
	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	if err := h.refinement.RecordFeedback(c.Request.Context(), auth.UserFirebaseUID(c), req.ProjectID, req.SectionID, req.Version, fb, comment); err != nil {
		writeError(c, "add_feedback", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback saved successfully"})
}

func (h *Handler) revert(c *gin.Context) {
	var req revertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	res, err := h.refinement.Revert(c.Request.Context(), auth.UserFirebaseUID(c), req.ProjectID, req.SectionID, req.TargetVersion)
	if err != nil {
		writeError(c, "revert_version", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
