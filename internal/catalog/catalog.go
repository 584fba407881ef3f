// Package catalog holds the primary and secondary checklist items an
// assessment is scored against. A Catalog is built once at startup and is
// read-only afterwards.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cxready/internal/domain"
)

// Catalog is the immutable set of checklist items.
type Catalog struct {
	primary   []domain.ChecklistItem
	secondary []domain.SecondaryItem
	byID      map[string]int
}

// New validates the given items and builds a Catalog. Primary items with a
// blank question are dropped. Secondary items with a blank question are
// dropped too; the remaining ones must link to a kept primary item.
func New(primary []domain.ChecklistItem, secondary []domain.SecondaryItem) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int)}
	var errs []error

	for i, item := range primary {
		if item.Blank() {
			continue
		}
		item.ID = strings.TrimSpace(item.ID)
		item.Question = strings.TrimSpace(item.Question)
		switch {
		case item.ID == "":
			errs = append(errs, fmt.Errorf("primary item %d: id is required", i+1))
			continue
		case item.Weight <= 0:
			errs = append(errs, fmt.Errorf("primary item %q: weight must be positive, got %g", item.ID, item.Weight))
			continue
		}
		if _, dup := c.byID[item.ID]; dup {
			errs = append(errs, fmt.Errorf("primary item %q: duplicate id", item.ID))
			continue
		}
		c.byID[item.ID] = len(c.primary)
		c.primary = append(c.primary, item)
	}

	for i, s := range secondary {
		if strings.TrimSpace(s.Question) == "" {
			continue
		}
		s.Question = strings.TrimSpace(s.Question)
		s.PrimaryLink = strings.TrimSpace(s.PrimaryLink)
		if s.PrimaryLink == "" {
			errs = append(errs, fmt.Errorf("secondary item %d: primary link is required", i+1))
			continue
		}
		if _, ok := c.byID[s.PrimaryLink]; !ok {
			errs = append(errs, fmt.Errorf("secondary item %d: primary link %q does not match a primary item", i+1, s.PrimaryLink))
			continue
		}
		c.secondary = append(c.secondary, s)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataLoad, errors.Join(errs...))
	}
	if len(c.primary) == 0 {
		return nil, fmt.Errorf("%w: no primary questions found", domain.ErrDataLoad)
	}
	return c, nil
}

// Primary returns the scored questions in source order.
func (c *Catalog) Primary() []domain.ChecklistItem {
	out := make([]domain.ChecklistItem, len(c.primary))
	copy(out, c.primary)
	return out
}

// Secondary returns the follow-up checks in source order.
func (c *Catalog) Secondary() []domain.SecondaryItem {
	out := make([]domain.SecondaryItem, len(c.secondary))
	copy(out, c.secondary)
	return out
}

// Item looks up a primary item by ID.
func (c *Catalog) Item(id string) (domain.ChecklistItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.ChecklistItem{}, false
	}
	return c.primary[i], true
}

// IDs returns the primary item IDs in source order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.primary))
	for i, item := range c.primary {
		ids[i] = item.ID
	}
	return ids
}

// SecondaryFor returns the follow-up checks linked to a primary item.
func (c *Catalog) SecondaryFor(id string) []domain.SecondaryItem {
	var out []domain.SecondaryItem
	for _, s := range c.secondary {
		if s.PrimaryLink == id {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of scored questions.
func (c *Catalog) Len() int {
	return len(c.primary)
}

// CheckAnswers verifies that answers reference known items, lie on the
// answer scale, and, when complete is set, cover every question.
func (c *Catalog) CheckAnswers(answers domain.Answers, complete bool) error {
	for id := range answers {
		if _, ok := c.byID[id]; !ok {
			return fmt.Errorf("%w: unknown question id %q", domain.ErrScoring, id)
		}
	}
	if err := answers.Validate(); err != nil {
		return err
	}
	if !complete {
		return nil
	}
	var missing []string
	for _, item := range c.primary {
		if _, ok := answers[item.ID]; !ok {
			missing = append(missing, item.ID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: unanswered questions: %s", domain.ErrScoring, strings.Join(missing, ", "))
	}
	return nil
}
