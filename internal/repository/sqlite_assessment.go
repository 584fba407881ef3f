package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/cxready/internal/db"
	"github.com/alexanderramin/cxready/internal/domain"
)

// SQLiteAssessmentRepo implements AssessmentRepo using a SQLite database.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssessmentRepo creates a new SQLiteAssessmentRepo.
func NewSQLiteAssessmentRepo(conn db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: conn}
}

// Create inserts the assessment and one row per answer. positions fixes the
// column order of answers on read; IDs missing from it sort after the
// known ones. Run it inside a transaction so both inserts land together.
func (r *SQLiteAssessmentRepo) Create(ctx context.Context, rec *domain.AssessmentRecord, positions map[string]int) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO assessments (id, recorded_at, name, email, project, overall_pct)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		formatTime(rec.Timestamp),
		rec.Name,
		rec.Email,
		rec.Project,
		rec.OverallPct,
	)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}

	for i, id := range orderedIDs(rec.Answers, positions) {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO assessment_answers (assessment_id, item_id, position, score)
			VALUES (?, ?, ?, ?)`, rec.ID, id, i, rec.Answers[id]); err != nil {
			return fmt.Errorf("inserting answer %q: %w", id, err)
		}
	}
	return nil
}

// List returns every assessment in insertion order.
func (r *SQLiteAssessmentRepo) List(ctx context.Context) ([]*domain.AssessmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, recorded_at, name, email, project, overall_pct
		FROM assessments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var out []*domain.AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessments: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i, rec := range out {
		ids[i] = rec.ID
	}
	answers, err := r.answersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, rec := range out {
		rec.Answers = answers[rec.ID]
		if rec.Answers == nil {
			rec.Answers = domain.Answers{}
		}
	}
	return out, nil
}

func (r *SQLiteAssessmentRepo) answersFor(ctx context.Context, ids []string) (map[string]domain.Answers, error) {
	out := make(map[string]domain.Answers, len(ids))
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	rows, err := r.db.QueryContext(ctx, `SELECT assessment_id, item_id, score
		FROM assessment_answers ORDER BY assessment_id, position`)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var assessmentID, itemID string
		var score int
		if err := rows.Scan(&assessmentID, &itemID, &score); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		if !want[assessmentID] {
			continue
		}
		a, ok := out[assessmentID]
		if !ok {
			a = domain.Answers{}
			out[assessmentID] = a
		}
		a[itemID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answers: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s scanner) (*domain.AssessmentRecord, error) {
	var rec domain.AssessmentRecord
	var recordedAt string
	if err := s.Scan(&rec.ID, &recordedAt, &rec.Name, &rec.Email, &rec.Project, &rec.OverallPct); err != nil {
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}
	ts, err := parseTime(recordedAt)
	if err != nil {
		return nil, err
	}
	rec.Timestamp = ts
	return &rec, nil
}

// orderedIDs sorts answer IDs by their known position, then by ID.
func orderedIDs(answers domain.Answers, positions map[string]int) []string {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		pi, iok := positions[ids[i]]
		pj, jok := positions[ids[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}
