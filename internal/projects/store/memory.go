package store

import (
	"context"
	"sync"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

// MemoryStore keeps projects in process. Used for local runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]domain.Project)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(p)
	return &out, nil
}

func (s *MemoryStore) Set(_ context.Context, project *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = clone(*project)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, patch domain.ProjectPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	patch.Apply(&p)
	s.projects[id] = clone(p)
	return nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0)
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// clone copies the section and version slices so callers never share
// backing arrays with the stored record.
func clone(p domain.Project) domain.Project {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	if p.Sections != nil {
		sections := make([]domain.Section, len(p.Sections))
		for i, s := range p.Sections {
			if s.Versions != nil {
				versions := make([]domain.Version, len(s.Versions))
				copy(versions, s.Versions)
				for j := range versions {
					if versions[j].Feedback != nil {
						f := *versions[j].Feedback
						versions[j].Feedback = &f
					}
				}
				s.Versions = versions
			}
			sections[i] = s
		}
		p.Sections = sections
	}
	return p
}
