package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/cxready/internal/catalog"
	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/google/uuid"
)

// PrimaryCSV is a small semicolon-delimited primary table. Row 3 has a
// blank question and is skipped on load.
const PrimaryCSV = `id;question;category;weight;advice
1;Do you map your customer journeys end to end?;Journey;2;Map the three journeys that drive most revenue.
2;Do you collect customer feedback after every interaction?;Feedback;3;Add a one-question survey to support tickets.
3;;Spare;;
4;Do frontline teams have authority to resolve issues?;Empowerment;1;Define a refund limit agents can approve alone.
`

// SecondaryCSV links follow-up checks to PrimaryCSV.
const SecondaryCSV = `question;primaryLink
Is every journey owned by a named person?;1
Are journey maps reviewed each quarter?;1
Do you close the loop with detractors within 48 hours?;2
`

// NewTestCatalog builds the catalog described by PrimaryCSV and SecondaryCSV.
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	primary, secondary := WriteChecklistFiles(t, t.TempDir())
	c, err := catalog.LoadFiles(primary, secondary, catalog.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to load test catalog: %v", err)
	}
	return c
}

// WriteChecklistFiles writes the fixture tables into dir and returns their
// paths.
func WriteChecklistFiles(t *testing.T, dir string) (primaryPath, secondaryPath string) {
	t.Helper()
	primaryPath = filepath.Join(dir, "primary.csv")
	secondaryPath = filepath.Join(dir, "secondary.csv")
	if err := os.WriteFile(primaryPath, []byte(PrimaryCSV), 0o644); err != nil {
		t.Fatalf("writing primary table: %v", err)
	}
	if err := os.WriteFile(secondaryPath, []byte(SecondaryCSV), 0o644); err != nil {
		t.Fatalf("writing secondary table: %v", err)
	}
	return primaryPath, secondaryPath
}

// Record options
type RecordOption func(*domain.AssessmentRecord)

func WithAnswers(a domain.Answers) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.Answers = a
	}
}

func WithOverallPct(pct float64) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.OverallPct = pct
	}
}

func WithTimestamp(ts time.Time) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.Timestamp = ts
	}
}

func WithProject(name string) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.Project = name
	}
}

// NewTestRecord returns a record answering every fixture question.
func NewTestRecord(name string, opts ...RecordOption) domain.AssessmentRecord {
	r := domain.AssessmentRecord{
		ID:         uuid.New().String(),
		Timestamp:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Name:       name,
		Email:      "respondent@example.com",
		Project:    "Checkout revamp",
		Answers:    domain.Answers{"1": 2, "2": 3, "4": 1},
		OverallPct: 75,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
