package app

import (
	"time"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/recommend"
	"github.com/alexanderramin/cxready/internal/scoring"
)

// SubmitRequest carries one completed questionnaire.
type SubmitRequest struct {
	Respondent domain.Respondent
	Answers    domain.Answers
	// Threshold overrides the service's weak-area threshold when > 0.
	Threshold int
	// Now fixes the record timestamp; defaults to the current time.
	Now *time.Time
}

// SubmitResponse is the outcome of a submission. Score and suggestions are
// set whenever the answers were valid, even if logging failed.
type SubmitResponse struct {
	Record      domain.AssessmentRecord
	Score       *scoring.Result
	Suggestions recommend.Suggestions
	Groups      []recommend.Group
	Threshold   int
	// Logged is true once the record has been appended.
	Logged bool
	// LogErr holds the append failure, wrapping domain.ErrLogWrite.
	LogErr error
}
