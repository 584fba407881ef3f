// Package assessmentlog appends completed assessments to a durable,
// append-only store and reads them back.
package assessmentlog

import (
	"context"
	"errors"

	"github.com/alexanderramin/cxready/internal/domain"
)

// Log is an append-only record of completed assessments.
type Log interface {
	// Append adds rec after all earlier records. Failures wrap
	// domain.ErrLogWrite.
	Append(ctx context.Context, rec domain.AssessmentRecord) error
	// ReadAll returns every record in append order. A log that does not
	// exist yet reads as empty.
	ReadAll(ctx context.Context) ([]domain.AssessmentRecord, error)
}

// ErrSchemaMismatch is returned when a record answers a question the log
// has no column for.
var ErrSchemaMismatch = errors.New("record does not fit log columns")

// Backend names a Log implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	return b == BackendFile || b == BackendSQLite
}
