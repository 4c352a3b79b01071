// Package history maintains the append-only version list of a section and
// keeps the section's current content pointing at the right snapshot.
package history

import (
	"fmt"
	"time"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

type Manager struct {
	now func() time.Time
}

func NewManager() *Manager {
	return &Manager{now: func() time.Time { return time.Now().UTC() }}
}

// NewManagerWithClock is used by tests that need stable timestamps.
func NewManagerWithClock(now func() time.Time) *Manager {
	return &Manager{now: now}
}

// Append records content as the next version of the section and makes it current.
// The number is always len(versions)+1, even after a revert.
func (m *Manager) Append(section *domain.Section, content, prompt string) domain.Version {
	v := domain.Version{
		Number:    len(section.Versions) + 1,
		Content:   content,
		Prompt:    prompt,
		Timestamp: m.now(),
	}
	section.Versions = append(section.Versions, v)
	section.Content = content
	return v
}

// RecordFeedback sets feedback and comment on an existing version in place.
// A nil feedback clears any earlier rating.
func (m *Manager) RecordFeedback(section *domain.Section, number int, feedback *domain.Feedback, comment string) error {
	if err := checkRange(section, number); err != nil {
		return err
	}
	if feedback != nil && !feedback.Valid() {
		return fmt.Errorf("%w: feedback must be like or dislike", domain.ErrInvalidInput)
	}

	v := &section.Versions[number-1]
	if feedback != nil {
		fb := *feedback
		v.Feedback = &fb
	} else {
		v.Feedback = nil
	}
	v.Comment = comment
	return nil
}

// Revert points the section's content at an earlier version. No version is
// added or removed.
func (m *Manager) Revert(section *domain.Section, number int) (string, error) {
	if err := checkRange(section, number); err != nil {
		return "", err
	}
	section.Content = section.Versions[number-1].Content
	return section.Content, nil
}

func checkRange(section *domain.Section, number int) error {
	if number < 1 || number > len(section.Versions) {
		return fmt.Errorf("%w: section %s has no version %d", domain.ErrNotFound, section.ID, number)
	}
	return nil
}
