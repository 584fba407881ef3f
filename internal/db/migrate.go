package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		recorded_at TEXT NOT NULL,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		project     TEXT NOT NULL,
		overall_pct REAL NOT NULL
		            CHECK(overall_pct >= 0 AND overall_pct <= 100)
	)`,

	`CREATE TABLE IF NOT EXISTS assessment_answers (
		assessment_id TEXT NOT NULL REFERENCES assessments(id),
		item_id       TEXT NOT NULL,
		position      INTEGER NOT NULL,
		score         INTEGER NOT NULL CHECK(score BETWEEN 1 AND 3),
		PRIMARY KEY (assessment_id, item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assessment_answers_assessment
		ON assessment_answers(assessment_id, position)`,

	// The log is append-only.
	`CREATE TRIGGER IF NOT EXISTS assessments_no_update
		BEFORE UPDATE ON assessments
		BEGIN SELECT RAISE(ABORT, 'assessment log is append-only'); END`,
	`CREATE TRIGGER IF NOT EXISTS assessments_no_delete
		BEFORE DELETE ON assessments
		BEGIN SELECT RAISE(ABORT, 'assessment log is append-only'); END`,
	`CREATE TRIGGER IF NOT EXISTS assessment_answers_no_update
		BEFORE UPDATE ON assessment_answers
		BEGIN SELECT RAISE(ABORT, 'assessment log is append-only'); END`,
	`CREATE TRIGGER IF NOT EXISTS assessment_answers_no_delete
		BEFORE DELETE ON assessment_answers
		BEGIN SELECT RAISE(ABORT, 'assessment log is append-only'); END`,
}
