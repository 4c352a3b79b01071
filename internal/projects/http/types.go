package http

import (
	"context"

	"github.com/intriguedcoder/ai-document-generator/internal/generator"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/service"
)

// OutlineSuggester is satisfied by *generator.Writer.
type OutlineSuggester interface {
	SuggestOutline(ctx context.Context, topic string, kind domain.DocKind, count int) generator.Outline
}

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	projects   *service.ProjectService
	refinement *service.RefinementService
	exports    *service.ExportService
	outlines   OutlineSuggester
}

func New(projects *service.ProjectService, refinement *service.RefinementService, exports *service.ExportService, outlines OutlineSuggester) *Handler {
	return &Handler{
		projects:   projects,
		refinement: refinement,
		exports:    exports,
		outlines:   outlines,
	}
}

type sectionInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type createProjectReq struct {
	Title       string         `json:"title" binding:"required"`
	DocType     string         `json:"doc_type" binding:"required"`
	Topic       string         `json:"topic" binding:"required"`
	Description *string        `json:"description"`
	Sections    []sectionInput `json:"sections" binding:"dive"`
}

type updateProjectReq struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Sections    *[]domain.Section `json:"sections"`
}

type outlineReq struct {
	Topic       string `json:"topic" binding:"required"`
	DocType     string `json:"doc_type" binding:"required"`
	NumSections *int   `json:"num_sections"`
}

type generateReq struct {
	ProjectID string `json:"project_id" binding:"required"`
	SectionID string `json:"section_id" binding:"required"`
	Context   string `json:"context"`
	Tone      string `json:"tone"`
}

type refineReq struct {
	ProjectID        string `json:"project_id" binding:"required"`
	SectionID        string `json:"section_id" binding:"required"`
	RefinementPrompt string `json:"refinement_prompt" binding:"required"`
}

type feedbackReq struct {
	ProjectID string  `json:"project_id" binding:"required"`
	SectionID string  `json:"section_id" binding:"required"`
	Version   int     `json:"version" binding:"required"`
	Feedback  *string `json:"feedback"`
	Comment   *string `json:"comment"`
}

type revertReq struct {
	ProjectID     string `json:"project_id" binding:"required"`
	SectionID     string `json:"section_id" binding:"required"`
	TargetVersion int    `json:"target_version" binding:"required"`
}

type exportReq struct {
	ProjectID string `json:"project_id" binding:"required"`
}
