package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

var ErrEmptyOutput = errors.New("generator returned empty content")

const (
	outlineCacheTTL     = 30 * time.Minute
	outlineCacheCleanup = time.Hour
)

// Writer turns domain requests into prompts, calls the model and normalizes
// what comes back.
type Writer struct {
	gen      TextGenerator
	opts     Options
	metrics  *metrics.Metrics
	outlines *cache.Cache
}

func NewWriter(gen TextGenerator, opts Options, m *metrics.Metrics) *Writer {
	return &Writer{
		gen:      gen,
		opts:     opts,
		metrics:  m,
		outlines: cache.New(outlineCacheTTL, outlineCacheCleanup),
	}
}

// GenerateSection writes fresh content for one section.
func (w *Writer) GenerateSection(ctx context.Context, req SectionRequest) (string, error) {
	return w.call(ctx, "generate", sectionPrompt(req))
}

// Refine rewrites original per the user's instruction.
func (w *Writer) Refine(ctx context.Context, original, instruction, sectionTitle string) (string, error) {
	return w.call(ctx, "refine", refinePrompt(original, instruction, sectionTitle))
}

// SuggestOutline never fails: if the model cannot produce a usable outline a
// generic one is returned with Fallback set. Only model outlines are cached.
func (w *Writer) SuggestOutline(ctx context.Context, topic string, kind domain.DocKind, count int) Outline {
	if count <= 0 {
		count = 5
	}
	key := fmt.Sprintf("%s|%s|%d", strings.ToLower(strings.TrimSpace(topic)), kind, count)
	if cached, ok := w.outlines.Get(key); ok {
		return cached.(Outline)
	}

	log := logging.FromContext(ctx, "suggest_outline")
	start := time.Now()
	raw, err := w.gen.Generate(ctx, outlinePrompt(topic, kind, count), w.opts)
	w.metrics.ObserveGeneration("outline", time.Since(start), err)
	if err != nil {
		log.WithError(err).Warn("outline generation failed, using fallback")
		return fallbackOutline(topic, kind, count)
	}

	outline, err := parseOutline(raw)
	if err != nil {
		log.WithError(err).Warn("outline reply unusable, using fallback")
		return fallbackOutline(topic, kind, count)
	}
	if outline.Title == "" {
		outline.Title = topic
	}
	w.outlines.SetDefault(key, outline)
	return outline
}

func (w *Writer) call(ctx context.Context, op, prompt string) (string, error) {
	start := time.Now()
	raw, err := w.gen.Generate(ctx, prompt, w.opts)
	w.metrics.ObserveGeneration(op, time.Since(start), err)
	if err != nil {
		logging.FromContext(ctx, op).WithError(err).Error("text generation failed")
		return "", err
	}
	out := Normalize(raw)
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}
