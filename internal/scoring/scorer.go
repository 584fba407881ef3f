// Package scoring turns a set of answers into a weighted readiness score.
package scoring

import (
	"fmt"

	"github.com/alexanderramin/cxready/internal/domain"
)

// Warning flags a question answered at the lowest scale value.
type Warning struct {
	ItemID   string
	Category string
	Advice   string
}

// CategoryScore is the weighted percentage of one category.
type CategoryScore struct {
	Category string
	Pct      float64
	Answered int
}

// Result is the outcome of scoring one assessment.
type Result struct {
	OverallPct float64
	Tier       domain.Tier
	Warnings   []Warning
	Categories []CategoryScore
	Earned     float64
	Possible   float64
}

// Score computes the weighted percentage of answers against items.
//
// Each answered item contributes answer*weight out of ScaleMax*weight.
// Items without an answer are left out of both sums. Sums run in item order,
// so the result does not depend on map iteration order.
func Score(items []domain.ChecklistItem, answers domain.Answers) (*Result, error) {
	index := make(map[string]domain.ChecklistItem, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	for id, v := range answers {
		item, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: answer references unknown question id %q", domain.ErrScoring, id)
		}
		if !domain.ValidScore(v) {
			return nil, fmt.Errorf("%w: answer for %q is %d, expected %d-%d", domain.ErrScoring, id, v, domain.ScaleMin, domain.ScaleMax)
		}
		if item.Weight <= 0 {
			return nil, fmt.Errorf("%w: question %q has weight %g, expected a positive weight", domain.ErrScoring, id, item.Weight)
		}
	}

	res := &Result{}
	type catSum struct {
		earned, possible float64
		answered         int
	}
	sums := make(map[string]*catSum)
	var order []string

	for _, item := range items {
		v, ok := answers[item.ID]
		if !ok {
			continue
		}
		earned := float64(v) * item.Weight
		possible := float64(domain.ScaleMax) * item.Weight
		res.Earned += earned
		res.Possible += possible

		cs, seen := sums[item.Category]
		if !seen {
			cs = &catSum{}
			sums[item.Category] = cs
			order = append(order, item.Category)
		}
		cs.earned += earned
		cs.possible += possible
		cs.answered++

		if v == domain.ScaleMin {
			res.Warnings = append(res.Warnings, Warning{
				ItemID:   item.ID,
				Category: item.Category,
				Advice:   item.Advice,
			})
		}
	}

	if res.Possible == 0 {
		return nil, fmt.Errorf("%w: no questions were answered", domain.ErrScoring)
	}

	res.OverallPct = clampPct(100 * res.Earned / res.Possible)
	res.Tier = ClassifyTier(res.OverallPct)
	for _, cat := range order {
		cs := sums[cat]
		res.Categories = append(res.Categories, CategoryScore{
			Category: cat,
			Pct:      clampPct(100 * cs.earned / cs.possible),
			Answered: cs.answered,
		})
	}
	return res, nil
}

// ClassifyTier maps a percentage onto a readiness tier.
// Above 80 is well developed; above 50 up to and including 80 needs
// improvement; 50 and below has significant gaps.
func ClassifyTier(pct float64) domain.Tier {
	switch {
	case pct > 80:
		return domain.TierWellDeveloped
	case pct > 50:
		return domain.TierNeedsImprovement
	default:
		return domain.TierSignificantGaps
	}
}

// WarnedCategories returns the distinct warned categories in warning order.
func (r *Result) WarnedCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range r.Warnings {
		if seen[w.Category] {
			continue
		}
		seen[w.Category] = true
		out = append(out, w.Category)
	}
	return out
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
