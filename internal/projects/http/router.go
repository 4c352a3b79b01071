package http

import "github.com/gin-gonic/gin"

// Register attaches the project, generation, refinement and export routes.
// limit guards the endpoints that call the model.
func (h *Handler) Register(api *gin.RouterGroup, limit gin.HandlerFunc) {
	projects := api.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:project_id", h.getProject)
	projects.PUT("/:project_id", h.updateProject)
	projects.DELETE("/:project_id", h.deleteProject)

	generate := api.Group("/generate")
	generate.POST("/outline", limit, h.suggestOutline)
	generate.POST("/content", limit, h.generateContent)
	generate.POST("/add-section/:project_id", h.addSection)

	refine := api.Group("/refine")
	refine.POST("/refine", limit, h.refine)
	refine.POST("/feedback", h.feedback)
	refine.POST("/revert", h.revert)

	export := api.Group("/export")
	export.POST("/docx", h.exportDocx)
	export.POST("/pptx", h.exportPptx)
	export.POST("/history", h.exportHistory)
}
