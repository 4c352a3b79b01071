package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/intriguedcoder/ai-document-generator/internal/generator"
	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/diff"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/history"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

// Writer is the slice of the generator the orchestrator needs.
type Writer interface {
	GenerateSection(ctx context.Context, req generator.SectionRequest) (string, error)
	Refine(ctx context.Context, original, instruction, sectionTitle string) (string, error)
}

type RefineResult struct {
	SectionID string        `json:"section_id"`
	Content   string        `json:"content"`
	Version   int           `json:"version"`
	Diff      []diff.Change `json:"diff"`
}

type GenerateResult struct {
	SectionID string `json:"section_id"`
	Content   string `json:"content"`
	Version   int    `json:"version"`
}

type RevertResult struct {
	Message string `json:"message"`
	Content string `json:"content"`
}

type GenerateInput struct {
	ProjectID string
	SectionID string
	Context   string
	Tone      string
}

var allowedTones = map[string]bool{"professional": true, "casual": true, "academic": true}

// RefinementService coordinates the store, the writer and the version history
// for a single section.
type RefinementService struct {
	store   store.ContentStore
	writer  Writer
	history *history.Manager
	now     func() time.Time
}

func NewRefinementService(st store.ContentStore, w Writer, h *history.Manager) *RefinementService {
	if h == nil {
		h = history.NewManager()
	}
	return &RefinementService{store: st, writer: w, history: h, now: utcNow}
}

// Refine rewrites a section's current content per instruction, records the
// result as a new version and returns it with the word diff against the
// previous content. The writer is called once; a failure leaves the stored
// project untouched.
func (s *RefinementService) Refine(ctx context.Context, requester, projectID, sectionID, instruction string) (*RefineResult, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: refinement_prompt is required", domain.ErrInvalidInput)
	}
	log := logging.FromContext(ctx, "refine_section").WithFields(logrus.Fields{
		"project_id": projectID,
		"section_id": sectionID,
	})

	p, err := loadOwned(ctx, s.store, requester, projectID)
	if err != nil {
		return nil, err
	}
	section, err := findSection(p, sectionID)
	if err != nil {
		return nil, err
	}

	previous := section.Content
	generated, err := s.writer.Refine(ctx, previous, instruction, section.Title)
	if err != nil {
		log.WithError(err).Warn("refinement generation failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	v := s.history.Append(section, generated, instruction)
	changes := diff.Compute(previous, generated)

	now := s.now()
	if err := persistSections(ctx, s.store, p, &now); err != nil {
		log.WithError(err).Error("failed to persist refinement")
		return nil, err
	}

	log.WithField("version", v.Number).Info("section refined")
	return &RefineResult{SectionID: section.ID, Content: generated, Version: v.Number, Diff: changes}, nil
}

// Generate writes fresh content for a section and appends it as the next
// version. Earlier versions are kept.
func (s *RefinementService) Generate(ctx context.Context, requester string, in GenerateInput) (*GenerateResult, error) {
	tone := strings.ToLower(strings.TrimSpace(in.Tone))
	if tone == "" {
		tone = generator.DefaultTone
	}
	if !allowedTones[tone] {
		return nil, fmt.Errorf("%w: tone must be professional, casual or academic", domain.ErrInvalidInput)
	}
	log := logging.FromContext(ctx, "generate_content").WithFields(logrus.Fields{
		"project_id": in.ProjectID,
		"section_id": in.SectionID,
	})

	p, err := loadOwned(ctx, s.store, requester, in.ProjectID)
	if err != nil {
		return nil, err
	}
	section, err := findSection(p, in.SectionID)
	if err != nil {
		return nil, err
	}

	content, err := s.writer.GenerateSection(ctx, generator.SectionRequest{
		Kind:         p.Kind,
		Topic:        p.Topic,
		SectionTitle: section.Title,
		Context:      in.Context,
		Tone:         tone,
	})
	if err != nil {
		log.WithError(err).Warn("content generation failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	v := s.history.Append(section, content, fmt.Sprintf("Initial generation with %s tone", tone))

	now := s.now()
	if err := persistSections(ctx, s.store, p, &now); err != nil {
		log.WithError(err).Error("failed to persist generated content")
		return nil, err
	}

	log.WithField("version", v.Number).Info("section generated")
	return &GenerateResult{SectionID: section.ID, Content: content, Version: v.Number}, nil
}

// Revert makes an earlier version current again without touching the history.
func (s *RefinementService) Revert(ctx context.Context, requester, projectID, sectionID string, target int) (*RevertResult, error) {
	p, err := loadOwned(ctx, s.store, requester, projectID)
	if err != nil {
		return nil, err
	}
	section, err := findSection(p, sectionID)
	if err != nil {
		return nil, err
	}

	content, err := s.history.Revert(section, target)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := persistSections(ctx, s.store, p, &now); err != nil {
		return nil, err
	}

	logging.FromContext(ctx, "revert_version").WithFields(logrus.Fields{
		"project_id": projectID,
		"section_id": sectionID,
		"version":    target,
	}).Info("section reverted")
	return &RevertResult{Message: fmt.Sprintf("Reverted to version %d", target), Content: content}, nil
}

// RecordFeedback rates a version. It does not bump updated_at.
func (s *RefinementService) RecordFeedback(ctx context.Context, requester, projectID, sectionID string, version int, feedback *domain.Feedback, comment string) error {
	p, err := loadOwned(ctx, s.store, requester, projectID)
	if err != nil {
		return err
	}
	section, err := findSection(p, sectionID)
	if err != nil {
		return err
	}

	if err := s.history.RecordFeedback(section, version, feedback, comment); err != nil {
		return err
	}
	if err := persistSections(ctx, s.store, p, nil); err != nil {
		return err
	}

	logging.FromContext(ctx, "add_feedback").WithFields(logrus.Fields{
		"project_id": projectID,
		"section_id": sectionID,
		"version":    version,
	}).Info("feedback recorded")
	return nil
}
