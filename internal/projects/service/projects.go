package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

type SectionInput struct {
	Title   string
	Content string
	Order   int
}

type CreateInput struct {
	Title       string
	Kind        domain.DocKind
	Topic       string
	Description *string
	Sections    []SectionInput
}

// UpdateInput replaces whichever fields are set. Sections, when present,
// replace the whole list.
type UpdateInput struct {
	Title       *string
	Description *string
	Sections    []domain.Section
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store store.ContentStore
	newID func() string
	now   func() time.Time
}

func NewProjectService(st store.ContentStore) *ProjectService {
	return &ProjectService{
		store: st,
		newID: func() string { return uuid.New().String() },
		now:   utcNow,
	}
}

// List returns the requester's projects, most recently updated first.
func (s *ProjectService) List(ctx context.Context, requester string) ([]domain.Project, error) {
	projects, err := s.store.ListByOwner(ctx, requester)
	if err != nil {
		return nil, storeErr(err)
	}
	for i := range projects {
		fillEmpty(&projects[i])
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

// Create stores a new project. Supplied sections get fresh ids and an empty
// history; their content may be pre-filled.
func (s *ProjectService) Create(ctx context.Context, requester string, in CreateInput) (*domain.Project, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Topic) == "" {
		return nil, fmt.Errorf("%w: title and topic are required", domain.ErrInvalidInput)
	}
	if in.Kind != domain.KindWord && in.Kind != domain.KindSlides {
		return nil, fmt.Errorf("%w: unknown doc_type %q", domain.ErrInvalidInput, in.Kind)
	}

	now := s.now()
	p := &domain.Project{
		ID:          s.newID(),
		OwnerID:     requester,
		Title:       in.Title,
		Kind:        in.Kind,
		Topic:       in.Topic,
		Description: in.Description,
		Sections:    make([]domain.Section, 0, len(in.Sections)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, sec := range in.Sections {
		p.Sections = append(p.Sections, domain.Section{
			ID:       s.newID(),
			Title:    sec.Title,
			Content:  sec.Content,
			Order:    sec.Order,
			Versions: []domain.Version{},
		})
	}

	if err := s.store.Set(ctx, p); err != nil {
		return nil, storeErr(err)
	}
	logging.FromContext(ctx, "create_project").WithField("project_id", p.ID).Info("project created")
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, requester, projectID string) (*domain.Project, error) {
	return loadOwned(ctx, s.store, requester, projectID)
}

// Update merges title, description and sections and bumps updated_at.
func (s *ProjectService) Update(ctx context.Context, requester, projectID string, in UpdateInput) (*domain.Project, error) {
	p, err := loadOwned(ctx, s.store, requester, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	patch := domain.ProjectPatch{
		Title:       in.Title,
		Description: in.Description,
		Sections:    in.Sections,
		UpdatedAt:   &now,
	}
	candidate := *p
	patch.Apply(&candidate)
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	if err := s.store.Update(ctx, projectID, patch); err != nil {
		return nil, storeErr(err)
	}
	fillEmpty(&candidate)
	return &candidate, nil
}

func (s *ProjectService) Delete(ctx context.Context, requester, projectID string) error {
	if _, err := loadOwned(ctx, s.store, requester, projectID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, projectID); err != nil {
		return storeErr(err)
	}
	logging.FromContext(ctx, "delete_project").WithField("project_id", projectID).Info("project deleted")
	return nil
}

// AddSection appends an empty section to the project.
func (s *ProjectService) AddSection(ctx context.Context, requester, projectID, title string, order int) (*domain.Section, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: section_title is required", domain.ErrInvalidInput)
	}
	p, err := loadOwned(ctx, s.store, requester, projectID)
	if err != nil {
		return nil, err
	}

	section := domain.Section{
		ID:       s.newID(),
		Title:    title,
		Order:    order,
		Versions: []domain.Version{},
	}
	p.Sections = append(p.Sections, section)

	now := s.now()
	if err := persistSections(ctx, s.store, p, &now); err != nil {
		return nil, err
	}
	return &section, nil
}
