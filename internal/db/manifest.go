package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Run is one split invocation as stored in the manifest.
type Run struct {
	UUID          string
	TagExpression string
	Language      string
	OutputDir     string
	Matched       bool
	Outputs       []Output
	Skipped       []string
}

// Output is one written split file.
type Output struct {
	Seq        int
	SourcePath string
	FilePath   string
	Scenario   string
	Tags       []string
}

// RecordRun stores a run and its outputs in a single transaction and returns
// the run's row id. A UUID is assigned when r.UUID is empty.
func RecordRun(sqlDB *sql.DB, r Run) (int64, error) {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}

	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (uuid, tag_expression, language, output_dir, matched) VALUES (?, ?, ?, ?, ?)`,
		r.UUID, r.TagExpression, r.Language, r.OutputDir, r.Matched,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, o := range r.Outputs {
		_, err := tx.Exec(
			`INSERT INTO outputs (run_id, seq, source_path, file_path, scenario, tags) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, o.Seq, o.SourcePath, o.FilePath, o.Scenario, strings.Join(o.Tags, " "),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting output %s: %w", o.FilePath, err)
		}
	}
	for _, path := range r.Skipped {
		if _, err := tx.Exec(`INSERT INTO skipped (run_id, source_path) VALUES (?, ?)`, runID, path); err != nil {
			return 0, fmt.Errorf("inserting skipped %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// LatestRunID returns the id of the most recent run, or sql.ErrNoRows.
func LatestRunID(sqlDB *sql.DB) (int64, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	return id, err
}
