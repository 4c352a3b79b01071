package generator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// leadIns are boilerplate openings instruction-tuned models like to add.
var leadIns = []string{
	"here is the content for your slides:",
	"here is the content for your slide:",
	"here are the points for your slide:",
	"here are the bullet points:",
	"here is the generated content:",
	"here is the refined content:",
	"here's the refined version:",
	"here's the content:",
	"here is the content:",
	"here are the points:",
	"content for your slide:",
	"refined content:",
	"updated content:",
	"slide content:",
}

const bulletRunes = "•●◦▪▫→»*"

var (
	leadingDots    = regexp.MustCompile(`^\.{2,}\s*`)
	repeatedSpaces = regexp.MustCompile(` +`)
	manyNewlines   = regexp.MustCompile(`\n{3,}`)
)

// maxPasses bounds the fixpoint loop. Each pass removes every stacked
// lead-in, so real text settles in two or three passes.
const maxPasses = 64

// Normalize strips lead-in boilerplate and markdown emphasis from model
// output. It is applied until the text stops changing, so Normalize(Normalize(s))
// == Normalize(s).
func Normalize(s string) string {
	for i := 0; i < maxPasses; i++ {
		next := cleanMarkdown(stripLeadIns(s))
		if next == s {
			return next
		}
		s = next
	}
	return s
}

func stripLeadIns(s string) string {
	s = leadingDots.ReplaceAllString(strings.TrimSpace(s), "")
	for {
		matched := false
		for _, p := range leadIns {
			if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
				s = trimLeadPunct(s[len(p):])
				matched = true
				break
			}
		}
		if !matched {
			return s
		}
	}
}

// trimLeadPunct drops separators left behind by a lead-in, including ".."
// runs. A "- " bullet marker is kept.
func trimLeadPunct(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, ":"):
			s = s[1:]
		case strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "- "):
			s = s[1:]
		case strings.HasPrefix(s, ".."):
			s = strings.TrimLeft(s, ".")
		default:
			return s
		}
	}
}

func cleanMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			if r, size := utf8.DecodeRuneInString(line); strings.ContainsRune(bulletRunes, r) {
				line = "- " + strings.TrimSpace(line[size:])
			}
			line = leadingDots.ReplaceAllString(line, "")
		}
		lines[i] = line
	}
	s = strings.Join(lines, "\n")

	s = strings.ReplaceAll(s, "*", "")
	s = stripEmphasisUnderscores(s)
	s = repeatedSpaces.ReplaceAllString(s, " ")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// stripEmphasisUnderscores removes underscores that open or close an emphasis
// span and keeps the ones inside identifiers such as snake_case.
func stripEmphasisUnderscores(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		if r == '_' {
			prevWord := i > 0 && isWordRune(runes[i-1])
			nextWord := i+1 < len(runes) && isWordRune(runes[i+1])
			if !prevWord || !nextWord {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
