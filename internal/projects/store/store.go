// Package store persists projects as whole documents keyed by project id.
package store

import (
	"context"

	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

// ContentStore is a document store holding one record per project.
// Implementations return domain.ErrNotFound for missing ids. There is no
// cross-request locking; concurrent writers to the same project race and the
// last write wins.
type ContentStore interface {
	Get(ctx context.Context, id string) (*domain.Project, error)
	// Set writes the whole record, creating or replacing it.
	Set(ctx context.Context, project *domain.Project) error
	// Update merges the named top-level fields into an existing record.
	Update(ctx context.Context, id string, patch domain.ProjectPatch) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type instrumented struct {
	next    ContentStore
	metrics *metrics.Metrics
}

// Instrument counts every store call by method and outcome.
func Instrument(s ContentStore, m *metrics.Metrics) ContentStore {
	if m == nil {
		return s
	}
	return &instrumented{next: s, metrics: m}
}

func (i *instrumented) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := i.next.Get(ctx, id)
	i.metrics.ObserveStore("get", err)
	return p, err
}

func (i *instrumented) Set(ctx context.Context, project *domain.Project) error {
	err := i.next.Set(ctx, project)
	i.metrics.ObserveStore("set", err)
	return err
}

func (i *instrumented) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	err := i.next.Update(ctx, id, patch)
	i.metrics.ObserveStore("update", err)
	return err
}

func (i *instrumented) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	out, err := i.next.ListByOwner(ctx, ownerID)
	i.metrics.ObserveStore("list", err)
	return out, err
}

func (i *instrumented) Delete(ctx context.Context, id string) error {
	err := i.next.Delete(ctx, id)
	i.metrics.ObserveStore("delete", err)
	return err
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}
