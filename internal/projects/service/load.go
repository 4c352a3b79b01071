// Package service holds the request-scoped orchestration behind the HTTP
// surface: load a project, check ownership, change it and write it back.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

func utcNow() time.Time { return time.Now().UTC() }

// loadOwned fetches a project and checks that requester owns it.
func loadOwned(ctx context.Context, st store.ContentStore, requester, projectID string) (*domain.Project, error) {
	p, err := st.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	if !p.OwnedBy(requester) {
		return nil, domain.ErrForbidden
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	fillEmpty(p)
	return p, nil
}

func findSection(p *domain.Project, sectionID string) (*domain.Section, error) {
	idx := p.FindSection(sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("section %s: %w", sectionID, domain.ErrNotFound)
	}
	return &p.Sections[idx], nil
}

// persistSections merges the project's sections back into the store,
// optionally bumping updated_at.
func persistSections(ctx context.Context, st store.ContentStore, p *domain.Project, updatedAt *time.Time) error {
	patch := domain.ProjectPatch{Sections: p.Sections, UpdatedAt: updatedAt}
	if err := st.Update(ctx, p.ID, patch); err != nil {
		return storeErr(err)
	}
	if updatedAt != nil {
		p.UpdatedAt = *updatedAt
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
}

// fillEmpty replaces nil slices so they encode as [] rather than null.
func fillEmpty(p *domain.Project) {
	if p.Sections == nil {
		p.Sections = []domain.Section{}
	}
	for i := range p.Sections {
		if p.Sections[i].Versions == nil {
			p.Sections[i].Versions = []domain.Version{}
		}
	}
}
