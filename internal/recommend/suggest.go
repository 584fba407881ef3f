// Package recommend picks secondary follow-up checks for weak answers.
package recommend

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cxready/internal/domain"
)

// DefaultThreshold flags only answers at the lowest scale value. A threshold
// of 3 also flags partial answers.
const DefaultThreshold = 2

// ErrInvalidThreshold is returned for thresholds that cannot select any
// meaningful subset of the answer scale.
var ErrInvalidThreshold = errors.New("invalid weak-area threshold")

// Suggestions maps a weak primary item ID to its follow-up questions.
type Suggestions map[string][]string

// ValidateThreshold accepts values from ScaleMin (nothing is weak) to
// ScaleMax+1 (everything is weak).
func ValidateThreshold(threshold int) error {
	if threshold < domain.ScaleMin || threshold > domain.ScaleMax+1 {
		return fmt.Errorf("%w: %d (expected %d-%d)", ErrInvalidThreshold, threshold, domain.ScaleMin, domain.ScaleMax+1)
	}
	return nil
}

// Suggest returns, for every answer strictly below threshold, the linked
// secondary questions in the order they appear in secondary. Weak items
// without linked checks map to an empty slice.
func Suggest(secondary []domain.SecondaryItem, answers domain.Answers, threshold int) (Suggestions, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	out := make(Suggestions)
	for id, v := range answers {
		if v < threshold {
			out[id] = []string{}
		}
	}
	for _, s := range secondary {
		if qs, weak := out[s.PrimaryLink]; weak {
			out[s.PrimaryLink] = append(qs, s.Question)
		}
	}
	return out, nil
}

// Group is one weak item with its follow-up questions, for display.
type Group struct {
	Item      domain.ChecklistItem
	Score     int
	Questions []string
}

// Ordered arranges suggestions in item order. IDs not present in items are
// dropped.
func Ordered(items []domain.ChecklistItem, answers domain.Answers, s Suggestions) []Group {
	var out []Group
	for _, item := range items {
		qs, ok := s[item.ID]
		if !ok {
			continue
		}
		out = append(out, Group{Item: item, Score: answers[item.ID], Questions: qs})
	}
	return out
}
