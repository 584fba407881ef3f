package assessmentlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cxready/internal/domain"
)

// Fixed columns around the per-question answer columns. Record IDs are not
// part of the delimited layout; only the SQLite backend keeps them.
var (
	leadingColumns  = []string{"timestamp", "name", "email", "project"}
	trailingColumns = []string{"overall_score"}
)

const timestampLayout = time.RFC3339

// errTornRow marks a row with fields missing at the end, as left by a write
// that stopped part way.
var errTornRow = errors.New("incomplete row")

// header returns the full column list for the given question IDs.
func header(questionIDs []string) []string {
	h := make([]string, 0, len(leadingColumns)+len(questionIDs)+len(trailingColumns))
	h = append(h, leadingColumns...)
	h = append(h, questionIDs...)
	h = append(h, trailingColumns...)
	return h
}

// questionColumns extracts the answer columns from a header and checks the
// fixed columns around them.
func questionColumns(h []string) ([]string, error) {
	min := len(leadingColumns) + len(trailingColumns)
	if len(h) < min {
		return nil, fmt.Errorf("header has %d columns, expected at least %d", len(h), min)
	}
	for i, want := range leadingColumns {
		if strings.TrimSpace(h[i]) != want {
			return nil, fmt.Errorf("header column %d is %q, expected %q", i+1, h[i], want)
		}
	}
	last := len(h) - len(trailingColumns)
	for i, want := range trailingColumns {
		if strings.TrimSpace(h[last+i]) != want {
			return nil, fmt.Errorf("header column %d is %q, expected %q", last+i+1, h[last+i], want)
		}
	}
	return h[len(leadingColumns):last], nil
}

// fits checks that every answered question has a column.
func fits(rec domain.AssessmentRecord, questionIDs []string) error {
	known := make(map[string]bool, len(questionIDs))
	for _, id := range questionIDs {
		known[id] = true
	}
	var extra []string
	for id := range rec.Answers {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	if len(extra) > 0 {
		return fmt.Errorf("%w: no column for question(s) %s", ErrSchemaMismatch, strings.Join(sortedStrings(extra), ", "))
	}
	return nil
}

// encodeRow lays out rec under the given question columns. Unanswered
// questions are left empty.
func encodeRow(rec domain.AssessmentRecord, questionIDs []string) []string {
	row := make([]string, 0, len(leadingColumns)+len(questionIDs)+len(trailingColumns))
	row = append(row,
		rec.Timestamp.UTC().Format(timestampLayout),
		rec.Name,
		rec.Email,
		rec.Project,
	)
	for _, id := range questionIDs {
		if v, ok := rec.Answers[id]; ok {
			row = append(row, strconv.Itoa(v))
		} else {
			row = append(row, "")
		}
	}
	// Full precision, so file and SQLite backends read back the same score.
	row = append(row, strconv.FormatFloat(rec.OverallPct, 'f', -1, 64))
	return row
}

// decodeRow is the inverse of encodeRow.
func decodeRow(row []string, questionIDs []string) (domain.AssessmentRecord, error) {
	want := len(leadingColumns) + len(questionIDs) + len(trailingColumns)
	if len(row) < want {
		return domain.AssessmentRecord{}, fmt.Errorf("%w: row has %d fields, expected %d", errTornRow, len(row), want)
	}
	if len(row) > want {
		return domain.AssessmentRecord{}, fmt.Errorf("row has %d fields, expected %d", len(row), want)
	}

	ts, err := time.Parse(timestampLayout, row[0])
	if err != nil {
		return domain.AssessmentRecord{}, fmt.Errorf("timestamp %q: %w", row[0], err)
	}
	rec := domain.AssessmentRecord{
		Timestamp: ts,
		Name:      row[1],
		Email:     row[2],
		Project:   row[3],
		Answers:   make(domain.Answers, len(questionIDs)),
	}

	for i, id := range questionIDs {
		cell := strings.TrimSpace(row[len(leadingColumns)+i])
		if cell == "" {
			continue
		}
		v, err := strconv.Atoi(cell)
		if err != nil || !domain.ValidScore(v) {
			return domain.AssessmentRecord{}, fmt.Errorf("answer for %q is %q", id, cell)
		}
		rec.Answers[id] = v
	}

	pct, err := strconv.ParseFloat(row[len(row)-1], 64)
	if err != nil {
		return domain.AssessmentRecord{}, fmt.Errorf("overall score %q: %w", row[len(row)-1], err)
	}
	rec.OverallPct = pct
	return rec, nil
}
