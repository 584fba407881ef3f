package repository

import (
	"context"

	"github.com/alexanderramin/cxready/internal/domain"
)

// AssessmentRepo stores completed assessments. It only ever inserts.
type AssessmentRepo interface {
	Create(ctx context.Context, rec *domain.AssessmentRecord, positions map[string]int) error
	List(ctx context.Context) ([]*domain.AssessmentRecord, error)
}

var _ AssessmentRepo = (*SQLiteAssessmentRepo)(nil)
