package service

import (
	"context"

	"github.com/alexanderramin/cxready/internal/app"
	"github.com/alexanderramin/cxready/internal/catalog"
	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/recommend"
	"github.com/alexanderramin/cxready/internal/scoring"
)

type AssessmentService interface {
	Catalog() *catalog.Catalog
	Threshold() int
	ScoreAssessment(ctx context.Context, answers domain.Answers) (*scoring.Result, error)
	SuggestSecondary(ctx context.Context, answers domain.Answers, threshold int) (recommend.Suggestions, error)
	LogAssessment(ctx context.Context, rec domain.AssessmentRecord) error
	app.SubmitAssessmentUseCase
	app.PreviewAssessmentUseCase
	app.ReadLogUseCase
	app.ExportLogUseCase
}
