package domain

import (
	"fmt"
	"strings"
	"time"
)

// AssessmentRecord is one completed assessment as written to the log.
type AssessmentRecord struct {
	ID         string
	Timestamp  time.Time
	Name       string
	Email      string
	Project    string
	Answers    Answers
	OverallPct float64
}

// Respondent identifies who filled in an assessment.
type Respondent struct {
	Name    string
	Email   string
	Project string
}

// Validate checks the respondent fields required for logging.
func (r Respondent) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: respondent name is required", ErrInvalidRespondent)
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("%w: respondent email is required", ErrInvalidRespondent)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: respondent email %q is not a valid address", ErrInvalidRespondent, r.Email)
	}
	if strings.TrimSpace(r.Project) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidRespondent)
	}
	return nil
}
