package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocKind is the output format a project is authored for.
type DocKind string

const (
	KindWord   DocKind = "word"
	KindSlides DocKind = "slides"
)

// ParseDocKind accepts the canonical names and the file-extension aliases
// ("docx", "pptx") older clients send.
func ParseDocKind(s string) (DocKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "docx":
		return KindWord, nil
	case "slides", "pptx":
		return KindSlides, nil
	}
	return "", fmt.Errorf("%w: unknown doc_type %q", ErrInvalidInput, s)
}

// Extension is the file extension used when the project is exported.
func (k DocKind) Extension() string {
	if k == KindSlides {
		return "pptx"
	}
	return "docx"
}

type Feedback string

const (
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

func (f Feedback) Valid() bool {
	return f == FeedbackLike || f == FeedbackDislike
}

// Version is an immutable content snapshot of a section. Number equals the
// 1-based position in Section.Versions.
type Version struct {
	Number    int       `json:"version" firestore:"version" bson:"version"`
	Content   string    `json:"content" firestore:"content" bson:"content"`
	Prompt    string    `json:"prompt" firestore:"prompt" bson:"prompt"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp" bson:"timestamp"`
	Feedback  *Feedback `json:"feedback" firestore:"feedback" bson:"feedback"`
	Comment   string    `json:"comment" firestore:"comment" bson:"comment"`
}

// Section is one titled unit of a project. Content mirrors the version most
// recently appended or reverted to.
type Section struct {
	ID       string    `json:"id" firestore:"id" bson:"id"`
	Title    string    `json:"title" firestore:"title" bson:"title"`
	Content  string    `json:"content" firestore:"content" bson:"content"`
	Order    int       `json:"order" firestore:"order" bson:"order"`
	Versions []Version `json:"versions" firestore:"versions" bson:"versions"`
}

// Project is the whole stored document: metadata plus the embedded sections.
type Project struct {
	ID          string    `json:"id" firestore:"-" bson:"_id"`
	OwnerID     string    `json:"user_id" firestore:"user_id" bson:"user_id"`
	Title       string    `json:"title" firestore:"title" bson:"title"`
	Kind        DocKind   `json:"doc_type" firestore:"doc_type" bson:"doc_type"`
	Topic       string    `json:"topic" firestore:"topic" bson:"topic"`
	Description *string   `json:"description" firestore:"description" bson:"description"`
	Sections    []Section `json:"sections" firestore:"sections" bson:"sections"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updated_at" bson:"updated_at"`
}

// ProjectPatch names the top-level fields a merge update touches. Nil fields
// are left alone.
type ProjectPatch struct {
	Title       *string
	Description *string
	Sections    []Section
	UpdatedAt   *time.Time
}

func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Sections == nil && p.UpdatedAt == nil
}

// Apply merges the patch into the project in place.
func (p ProjectPatch) Apply(project *Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = p.Description
	}
	if p.Sections != nil {
		project.Sections = p.Sections
	}
	if p.UpdatedAt != nil {
		project.UpdatedAt = *p.UpdatedAt
	}
}

// OwnedBy reports whether uid may read or mutate the project.
func (p *Project) OwnedBy(uid string) bool {
	return uid != "" && p.OwnerID == uid
}

// FindSection returns the index of the section with the given id, or -1.
func (p *Project) FindSection(id string) int {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the shape of a record loaded from a store.
func (p *Project) Validate() error {
	if p.OwnerID == "" {
		return fmt.Errorf("project %s: missing owner", p.ID)
	}
	if p.Kind != KindWord && p.Kind != KindSlides {
		return fmt.Errorf("project %s: invalid doc_type %q", p.ID, p.Kind)
	}
	seen := make(map[string]struct{}, len(p.Sections))
	for i := range p.Sections {
		s := &p.Sections[i]
		if s.ID == "" {
			return fmt.Errorf("project %s: section %d has no id", p.ID, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("project %s: duplicate section id %s", p.ID, s.ID)
		}
		seen[s.ID] = struct{}{}
		for j, v := range s.Versions {
			if v.Number != j+1 {
				return fmt.Errorf("project %s: section %s version %d at position %d", p.ID, s.ID, v.Number, j+1)
			}
		}
	}
	return nil
}
