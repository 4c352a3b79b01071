package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/service"
)

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), auth.UserFirebaseUID(c))
	if err != nil {
		writeError(c, "list_projects", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	kind, err := domain.ParseDocKind(req.DocType)
	if err != nil {
		writeError(c, "create_project", err)
		return
	}

	in := service.CreateInput{
		Title:       req.Title,
		Kind:        kind,
		Topic:       req.Topic,
		Description: req.Description,
	}
	for _, s := range req.Sections {
		in.Sections = append(in.Sections, service.SectionInput{Title: s.Title, Content: s.Content, Order: s.Order})
	}

	p, err := h.projects.Create(c.Request.Context(), auth.UserFirebaseUID(c), in)
	if err != nil {
		writeError(c, "create_project", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("project_id"))
	if err != nil {
		writeError(c, "get_project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) updateProject(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body: "+err.Error())
		return
	}
	in := service.UpdateInput{Title: req.Title, Description: req.Description}
	if req.Sections != nil {
		in.Sections = *req.Sections
		if in.Sections == nil {
			in.Sections = []domain.Section{}
		}
	}

	p, err := h.projects.Update(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("project_id"), in)
	if err != nil {
		writeError(c, "update_project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("project_id")); err != nil {
		writeError(c, "delete_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
