package assessmentlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/cxready/internal/db"
	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/repository"
)

// SQLiteLog keeps assessments in SQLite. Each record and its answers are
// inserted in one transaction; triggers in the schema reject updates and
// deletes.
type SQLiteLog struct {
	db        *sql.DB
	uow       db.UnitOfWork
	positions map[string]int
}

// NewSQLiteLog creates a SQLiteLog. questionIDs fixes the order answers are
// stored in.
func NewSQLiteLog(database *sql.DB, uow db.UnitOfWork, questionIDs []string) *SQLiteLog {
	positions := make(map[string]int, len(questionIDs))
	for i, id := range questionIDs {
		positions[id] = i
	}
	return &SQLiteLog{db: database, uow: uow, positions: positions}
}

func (l *SQLiteLog) Append(ctx context.Context, rec domain.AssessmentRecord) error {
	err := l.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAssessmentRepo(tx).Create(ctx, &rec, l.positions)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLogWrite, err)
	}
	return nil
}

func (l *SQLiteLog) ReadAll(ctx context.Context) ([]domain.AssessmentRecord, error) {
	list, err := repository.NewSQLiteAssessmentRepo(l.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLogRead, err)
	}
	out := make([]domain.AssessmentRecord, 0, len(list))
	for _, rec := range list {
		out = append(out, *rec)
	}
	return out, nil
}
