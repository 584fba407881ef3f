package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/cxready/internal/app"
	"github.com/alexanderramin/cxready/internal/assessmentlog"
	"github.com/alexanderramin/cxready/internal/catalog"
	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/recommend"
	"github.com/alexanderramin/cxready/internal/scoring"
	"github.com/google/uuid"
)

type assessmentService struct {
	catalog   *catalog.Catalog
	log       assessmentlog.Log
	threshold int
	observer  UseCaseObserver
}

// NewAssessmentService wires the catalog and log together. A threshold of 0
// selects recommend.DefaultThreshold.
func NewAssessmentService(
	cat *catalog.Catalog,
	log assessmentlog.Log,
	threshold int,
	observers ...UseCaseObserver,
) (AssessmentService, error) {
	if cat == nil {
		return nil, errors.New("assessment service requires a catalog")
	}
	if log == nil {
		return nil, errors.New("assessment service requires a log")
	}
	if threshold == 0 {
		threshold = recommend.DefaultThreshold
	}
	if err := recommend.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &assessmentService{
		catalog:   cat,
		log:       log,
		threshold: threshold,
		observer:  useCaseObserverOrNoop(observers),
	}, nil
}

func (s *assessmentService) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *assessmentService) Threshold() int {
	return s.threshold
}

// ScoreAssessment requires an answer for every question in the catalog.
func (s *assessmentService) ScoreAssessment(_ context.Context, answers domain.Answers) (*scoring.Result, error) {
	if err := s.catalog.CheckAnswers(answers, true); err != nil {
		return nil, err
	}
	return scoring.Score(s.catalog.Primary(), answers)
}

// SuggestSecondary accepts partial answers. A threshold of 0 uses the
// service default.
func (s *assessmentService) SuggestSecondary(_ context.Context, answers domain.Answers, threshold int) (recommend.Suggestions, error) {
	if threshold == 0 {
		threshold = s.threshold
	}
	if err := s.catalog.CheckAnswers(answers, false); err != nil {
		return nil, err
	}
	return recommend.Suggest(s.catalog.Secondary(), answers, threshold)
}

func (s *assessmentService) LogAssessment(ctx context.Context, rec domain.AssessmentRecord) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"answers": len(rec.Answers)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-assessment",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	fields["assessment_id"] = rec.ID
	if err := s.checkRecord(rec); err != nil {
		return err
	}
	return s.log.Append(ctx, rec)
}

// checkRecord rejects records the log must never hold. Errors wrap
// domain.ErrLogWrite together with the underlying cause.
func (s *assessmentService) checkRecord(rec domain.AssessmentRecord) error {
	if err := (domain.Respondent{Name: rec.Name, Email: rec.Email, Project: rec.Project}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLogWrite, err)
	}
	if err := s.catalog.CheckAnswers(rec.Answers, false); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLogWrite, err)
	}
	if len(rec.Answers) == 0 {
		return fmt.Errorf("%w: %w: record has no answers", domain.ErrLogWrite, domain.ErrScoring)
	}
	if rec.OverallPct < 0 || rec.OverallPct > 100 {
		return fmt.Errorf("%w: overall score %.2f outside 0-100", domain.ErrLogWrite, rec.OverallPct)
	}
	return nil
}

func (s *assessmentService) Preview(ctx context.Context, req app.SubmitRequest) (*app.SubmitResponse, error) {
	return s.evaluate(ctx, req)
}

// Submit scores, suggests and appends in that order. A failed append is
// reported in LogErr; the score is still returned.
func (s *assessmentService) Submit(ctx context.Context, req app.SubmitRequest) (resp *app.SubmitResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project": req.Respondent.Project,
		"answers": len(req.Answers),
	}
	defer func() {
		eventErr := err
		if eventErr == nil && resp != nil {
			eventErr = resp.LogErr
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-assessment",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   eventErr == nil,
			Err:       eventErr,
			Fields:    fields,
		})
	}()

	resp, err = s.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	fields["assessment_id"] = resp.Record.ID
	fields["overall_pct"] = resp.Score.OverallPct
	fields["tier"] = string(resp.Score.Tier)
	fields["weak_items"] = len(resp.Suggestions)

	if logErr := s.log.Append(ctx, resp.Record); logErr != nil {
		resp.LogErr = logErr
		fields["logged"] = false
		return resp, nil
	}
	resp.Logged = true
	fields["logged"] = true
	return resp, nil
}

func (s *assessmentService) evaluate(ctx context.Context, req app.SubmitRequest) (*app.SubmitResponse, error) {
	if err := req.Respondent.Validate(); err != nil {
		return nil, err
	}

	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.threshold
	}
	if err := recommend.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	result, err := s.ScoreAssessment(ctx, req.Answers)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.SuggestSecondary(ctx, req.Answers, threshold)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	record := domain.AssessmentRecord{
		ID:         uuid.NewString(),
		Timestamp:  now.UTC().Truncate(time.Second),
		Name:       req.Respondent.Name,
		Email:      req.Respondent.Email,
		Project:    req.Respondent.Project,
		Answers:    req.Answers.Clone(),
		OverallPct: result.OverallPct,
	}

	return &app.SubmitResponse{
		Record:      record,
		Score:       result,
		Suggestions: suggestions,
		Groups:      recommend.Ordered(s.catalog.Primary(), req.Answers, suggestions),
		Threshold:   threshold,
	}, nil
}

func (s *assessmentService) ReadLog(ctx context.Context) ([]domain.AssessmentRecord, error) {
	return s.log.ReadAll(ctx)
}

// ExportLog writes the whole log as delimited text and returns the number
// of records written.
func (s *assessmentService) ExportLog(ctx context.Context, w io.Writer, delimiter rune) (n int, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export-log",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"records": n},
		})
	}()
	return assessmentlog.Export(ctx, s.log, w, s.catalog.IDs(), delimiter)
}
