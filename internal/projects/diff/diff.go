// Package diff computes the word-level change list shown to users after a
// refinement. Results are display-only and never stored.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

type ChangeType string

const (
	Replace ChangeType = "replace"
	Delete  ChangeType = "delete"
	Insert  ChangeType = "insert"
)

// Change is one contiguous non-matching run. Replace carries Old and New,
// Delete and Insert carry Text.
type Change struct {
	Type ChangeType `json:"type"`
	Old  string     `json:"old,omitempty"`
	New  string     `json:"new,omitempty"`
	Text string     `json:"text,omitempty"`
}

// Compute aligns the whitespace-split tokens of original and refined and
// returns the non-equal opcodes in left-to-right order.
func Compute(original, refined string) []Change {
	a := strings.Fields(original)
	b := strings.Fields(refined)

	changes := []Change{}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			changes = append(changes, Change{
				Type: Replace,
				Old:  strings.Join(a[op.I1:op.I2], " "),
				New:  strings.Join(b[op.J1:op.J2], " "),
			})
		case 'd':
			changes = append(changes, Change{Type: Delete, Text: strings.Join(a[op.I1:op.I2], " ")})
		case 'i':
			changes = append(changes, Change{Type: Insert, Text: strings.Join(b[op.J1:op.J2], " ")})
		}
	}
	return changes
}
