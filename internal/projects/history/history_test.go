package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Minute)
	}
}

func sectionWithVersions(m *Manager, contents ...string) *domain.Section {
	s := &domain.Section{ID: "sec-1", Title: "Intro"}
	for i, c := range contents {
		m.Append(s, c, fmt.Sprintf("prompt %d", i+1))
	}
	return s
}

func TestAppend_NumbersAreContiguous(t *testing.T) {
	m := NewManagerWithClock(fixedClock())
	s := &domain.Section{ID: "sec-1"}

	for n := 1; n <= 5; n++ {
		v := m.Append(s, fmt.Sprintf("content %d", n), "p")
		assert.Equal(t, n, v.Number)
	}

	require.Len(t, s.Versions, 5)
	for i, v := range s.Versions {
		assert.Equal(t, i+1, v.Number)
		assert.Nil(t, v.Feedback)
		assert.Empty(t, v.Comment)
	}
	assert.Equal(t, "content 5", s.Content)
}

func TestAppend_UsesClock(t *testing.T) {
	m := NewManagerWithClock(fixedClock())
	s := &domain.Section{}

	v := m.Append(s, "x", "p")
	assert.Equal(t, time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC), v.Timestamp)
}

func TestRevert_SetsContentWithoutTouchingHistory(t *testing.T) {
	m := NewManagerWithClock(fixedClock())
	s := sectionWithVersions(m, "one", "two", "three")

	content, err := m.Revert(s, 2)
	require.NoError(t, err)

	assert.Equal(t, "two", content)
	assert.Equal(t, "two", s.Content)
	assert.Len(t, s.Versions, 3)
}

func TestRevert_OutOfRange(t *testing.T) {
	m := NewManager()
	s := sectionWithVersions(m, "one")

	for _, n := range []int{0, -1, 2} {
		_, err := m.Revert(s, n)
		assert.ErrorIs(t, err, domain.ErrNotFound, "version %d", n)
	}
	assert.Equal(t, "one", s.Content)
}

func TestAppendAfterRevert_ContinuesFromFullLength(t *testing.T) {
	m := NewManagerWithClock(fixedClock())
	s := sectionWithVersions(m, "one", "two", "three")

	_, err := m.Revert(s, 1)
	require.NoError(t, err)

	v := m.Append(s, "four", "again")

	assert.Equal(t, 4, v.Number)
	assert.Equal(t, "four", s.Content)
	assert.Len(t, s.Versions, 4)
}

func TestRecordFeedback(t *testing.T) {
	m := NewManagerWithClock(fixedClock())
	s := sectionWithVersions(m, "one", "two")
	like := domain.FeedbackLike

	require.NoError(t, m.RecordFeedback(s, 1, &like, "nice"))

	require.NotNil(t, s.Versions[0].Feedback)
	assert.Equal(t, domain.FeedbackLike, *s.Versions[0].Feedback)
	assert.Equal(t, "nice", s.Versions[0].Comment)
	assert.Nil(t, s.Versions[1].Feedback)
	assert.Equal(t, "two", s.Content, "feedback never changes current content")
	assert.Len(t, s.Versions, 2)

	require.NoError(t, m.RecordFeedback(s, 1, nil, ""))
	assert.Nil(t, s.Versions[0].Feedback)
	assert.Empty(t, s.Versions[0].Comment)
}

func TestRecordFeedback_OutOfRangeLeavesVersionsUnmodified(t *testing.T) {
	m := NewManagerWithClock(fixedClock())
	s := sectionWithVersions(m, "one", "two")
	before := make([]domain.Version, len(s.Versions))
	copy(before, s.Versions)
	dislike := domain.FeedbackDislike

	for _, n := range []int{0, 3, 99} {
		err := m.RecordFeedback(s, n, &dislike, "bad")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Equal(t, before, s.Versions)
}

func TestRecordFeedback_RejectsUnknownValue(t *testing.T) {
	m := NewManager()
	s := sectionWithVersions(m, "one")
	meh := domain.Feedback("meh")

	err := m.RecordFeedback(s, 1, &meh, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, s.Versions[0].Feedback)
}
