// Package export renders a project into downloadable office files.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

type Format string

const (
	FormatDocx Format = "docx"
	FormatPptx Format = "pptx"
	FormatXlsx Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDocx, FormatPptx, FormatXlsx:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPptx:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatXlsx:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Accepts reports whether a project of the given kind can be exported in f.
// The history report works for both kinds.
func (f Format) Accepts(kind domain.DocKind) bool {
	switch f {
	case FormatDocx:
		return kind == domain.KindWord
	case FormatPptx:
		return kind == domain.KindSlides
	case FormatXlsx:
		return true
	}
	return false
}

// Renderer writes one project in one format.
type Renderer interface {
	Render(w io.Writer, p *domain.Project, at time.Time) error
}

func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatDocx:
		return WordRenderer{}, nil
	case FormatPptx:
		return SlidesRenderer{}, nil
	case FormatXlsx:
		return HistoryReport{}, nil
	}
	return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, f)
}

var unsafeNameChars = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "\"", "", ":", "_")

// FileName is the attachment name: the title with spaces replaced by
// underscores plus the format's extension.
func FileName(title string, f Format) string {
	name := unsafeNameChars.Replace(strings.TrimSpace(title))
	if name == "" {
		name = "document"
	}
	return name + "." + string(f)
}

// sortedSections returns the sections in export order without touching p.
func sortedSections(p *domain.Project) []domain.Section {
	out := make([]domain.Section, len(p.Sections))
	copy(out, p.Sections)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
