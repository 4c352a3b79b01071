package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/intriguedcoder/ai-document-generator/internal/export"
	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

// Archiver keeps a copy of an exported file. Optional.
type Archiver interface {
	Archive(ctx context.Context, key string, body []byte, contentType string) error
}

// ExportFile is a rendered download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportService struct {
	store    store.ContentStore
	archiver Archiver
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewExportService(st store.ContentStore, archiver Archiver, m *metrics.Metrics) *ExportService {
	return &ExportService{store: st, archiver: archiver, metrics: m, now: utcNow}
}

// Export renders the requester's project. docx only accepts word projects and
// pptx only slides projects. Archiving failures are logged and ignored.
func (s *ExportService) Export(ctx context.Context, requester, projectID string, format export.Format) (*ExportFile, error) {
	p, err := loadOwned(ctx, s.store, requester, projectID)
	if err != nil {
		return nil, err
	}
	if !format.Accepts(p.Kind) {
		return nil, fmt.Errorf("%w: %s project cannot be exported as %s", domain.ErrKindMismatch, p.Kind, format)
	}

	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var buf bytes.Buffer
	if err := renderer.Render(&buf, p, now); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	s.metrics.ObserveExport(string(format))

	file := &ExportFile{
		Name:        export.FileName(p.Title, format),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}

	if s.archiver != nil {
		key := export.ArchiveKey(p.OwnerID, p.ID, file.Name, now)
		if err := s.archiver.Archive(ctx, key, file.Data, file.ContentType); err != nil {
			logging.FromContext(ctx, "export").WithError(err).WithField("key", key).Warn("failed to archive export")
		}
	}
	return file, nil
}
