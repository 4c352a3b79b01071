package generator

import (
	"context"
	"strings"
)

// MockGenerator is a local stand-in used when no API key is configured. It
// never calls a model and answers deterministically.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, prompt string, _ Options) (string, error) {
	if strings.Contains(prompt, `"sections"`) {
		return "", errOutlineUnavailable
	}

	var sb strings.Builder
	sb.WriteString("Here is the content:\n")
	sb.WriteString("- Placeholder text generated without a language model.\n")
	sb.WriteString("- Configure GEMINI_API_KEY to enable real generation.\n")
	if first := firstLine(prompt); first != "" {
		sb.WriteString("- Request: ")
		sb.WriteString(first)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
