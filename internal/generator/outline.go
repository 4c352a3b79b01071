package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

var errOutlineUnavailable = errors.New("outline generation unavailable")

type OutlineSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	KeyPoints   []string `json:"key_points,omitempty"`
}

type Outline struct {
	Title    string           `json:"title"`
	Sections []OutlineSection `json:"sections"`
	// Fallback is set when the outline did not come from the model.
	Fallback bool `json:"fallback,omitempty"`
}

// parseOutline accepts the model's reply, tolerating code fences and a
// "slides" key in place of "sections".
func parseOutline(raw string) (Outline, error) {
	body := stripCodeFence(raw)
	if i := strings.IndexByte(body, '{'); i > 0 {
		body = body[i:]
	}
	if j := strings.LastIndexByte(body, '}'); j >= 0 && j < len(body)-1 {
		body = body[:j+1]
	}

	var payload struct {
		Title    string           `json:"title"`
		Sections []OutlineSection `json:"sections"`
		Slides   []OutlineSection `json:"slides"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return Outline{}, fmt.Errorf("decode outline: %w", err)
	}

	sections := payload.Sections
	if len(sections) == 0 {
		sections = payload.Slides
	}
	kept := sections[:0]
	for _, s := range sections {
		s.Title = strings.TrimSpace(s.Title)
		if s.Title != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return Outline{}, errors.New("outline has no sections")
	}
	return Outline{Title: strings.TrimSpace(payload.Title), Sections: kept}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// fallbackOutline is a generic structure returned when the model is
// unavailable or its reply cannot be parsed.
func fallbackOutline(topic string, kind domain.DocKind, count int) Outline {
	if count <= 0 {
		count = 5
	}
	titles := []string{"Introduction", "Background", "Key Concepts", "Analysis", "Applications", "Challenges", "Future Outlook"}
	if kind == domain.KindSlides {
		titles = []string{"Title Slide", "Overview", "Key Points", "Details", "Examples", "Next Steps", "Summary"}
	}

	out := Outline{Title: topic, Fallback: true}
	for i := 0; i < count; i++ {
		var title string
		switch {
		case i == count-1 && count > 1:
			title = "Conclusion"
			if kind == domain.KindSlides {
				title = "Summary"
			}
		case i < len(titles)-1:
			title = titles[i]
		default:
			title = fmt.Sprintf("Part %d", i+1)
		}
		out.Sections = append(out.Sections, OutlineSection{
			Title:       title,
			Description: fmt.Sprintf("%s of %s", title, topic),
		})
	}
	return out
}
