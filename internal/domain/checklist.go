package domain

import (
	"fmt"
	"strings"
)

// Answer scale bounds. Every primary question is answered on 1..3.
const (
	ScaleMin = 1
	ScaleMax = 3
)

// ChecklistItem is a primary, scored checklist question.
type ChecklistItem struct {
	ID       string
	Question string
	Category string
	Weight   float64
	Advice   string
}

// Blank reports whether the item has no question text and is skipped.
func (c ChecklistItem) Blank() bool {
	return strings.TrimSpace(c.Question) == ""
}

// SecondaryItem is a follow-up check linked to one primary item.
type SecondaryItem struct {
	Question    string
	PrimaryLink string
}

// Answers maps a primary item ID to its score on the answer scale.
type Answers map[string]int

// ValidScore reports whether v lies on the answer scale.
func ValidScore(v int) bool {
	return v >= ScaleMin && v <= ScaleMax
}

// Validate checks every score against the answer scale.
func (a Answers) Validate() error {
	for id, v := range a {
		if !ValidScore(v) {
			return fmt.Errorf("%w: answer for %q is %d, expected %d-%d", ErrScoring, id, v, ScaleMin, ScaleMax)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
