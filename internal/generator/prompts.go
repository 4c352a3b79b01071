package generator

import (
	"fmt"
	"strings"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

var toneGuides = map[string]string{
	"professional": "Use a professional, business-appropriate tone.",
	"casual":       "Use a friendly, conversational tone.",
	"academic":     "Use a formal academic tone with precise terminology.",
}

const DefaultTone = "professional"

func toneGuide(tone string) string {
	if g, ok := toneGuides[strings.ToLower(strings.TrimSpace(tone))]; ok {
		return g
	}
	return toneGuides[DefaultTone]
}

// SectionRequest describes one section to write from scratch.
type SectionRequest struct {
	Kind         domain.DocKind
	Topic        string
	SectionTitle string
	Context      string
	Tone         string
}

func sectionPrompt(req SectionRequest) string {
	var b strings.Builder
	switch req.Kind {
	case domain.KindSlides:
		fmt.Fprintf(&b, "Write the content for a presentation slide titled %q.\n", req.SectionTitle)
		fmt.Fprintf(&b, "Presentation topic: %s\n", req.Topic)
		b.WriteString("Return 3 to 6 concise bullet points, one per line, each starting with \"- \".\n")
	default:
		fmt.Fprintf(&b, "Write the section %q of a document.\n", req.SectionTitle)
		fmt.Fprintf(&b, "Document topic: %s\n", req.Topic)
		b.WriteString("Return two to four well-structured paragraphs.\n")
	}
	if c := strings.TrimSpace(req.Context); c != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", c)
	}
	b.WriteString(toneGuide(req.Tone))
	b.WriteString("\nReturn only the content itself. Do not add an introduction, a heading or markdown formatting.")
	return b.String()
}

func refinePrompt(original, instruction, title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "Revise the section %q according to the instruction below.\n", title)
	} else {
		b.WriteString("Revise the text according to the instruction below.\n")
	}
	fmt.Fprintf(&b, "Instruction: %s\n\n", instruction)
	b.WriteString("Current text:\n")
	b.WriteString(original)
	b.WriteString("\n\nReturn only the revised text. Keep the existing structure unless the instruction asks otherwise. ")
	b.WriteString("Do not add an introduction or markdown formatting.")
	return b.String()
}

func outlinePrompt(topic string, kind domain.DocKind, count int) string {
	unit := "sections"
	if kind == domain.KindSlides {
		unit = "slides"
	}
	return fmt.Sprintf(`Create an outline for a %s about: %s
Produce exactly %d %s.
Respond with JSON only, in this shape:
{"title": "...", "sections": [{"title": "...", "description": "...", "key_points": ["..."]}]}`,
		kindNoun(kind), topic, count, unit)
}

func kindNoun(kind domain.DocKind) string {
	if kind == domain.KindSlides {
		return "presentation"
	}
	return "document"
}
