package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// All is the ordered manifest schema. Append only; applied entries are
// tracked by index in schema_version.
var All = []string{
	`CREATE TABLE runs (
		id             INTEGER PRIMARY KEY,
		uuid           TEXT UNIQUE NOT NULL,
		tag_expression TEXT NOT NULL,
		language       TEXT NOT NULL,
		output_dir     TEXT NOT NULL,
		matched        INTEGER NOT NULL DEFAULT 0,
		created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE outputs (
		id          INTEGER PRIMARY KEY,
		run_id      INTEGER NOT NULL REFERENCES runs(id),
		seq         INTEGER NOT NULL,
		source_path TEXT NOT NULL,
		file_path   TEXT NOT NULL,
		scenario    TEXT NOT NULL,
		tags        TEXT NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE UNIQUE INDEX outputs_run_seq ON outputs (run_id, seq)`,
	`CREATE TABLE skipped (
		id          INTEGER PRIMARY KEY,
		run_id      INTEGER NOT NULL REFERENCES runs(id),
		source_path TEXT NOT NULL
	)`,
}

// Migrate brings the manifest schema up to len(All). Each migration runs in
// its own transaction together with the version bump.
func Migrate(db *sql.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for i := current; i < len(All); i++ {
		if err := applyMigration(db, i); err != nil {
			return err
		}
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, fmt.Errorf("creating schema_version table: %w", err)
	}

	var current int
	err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return 0, fmt.Errorf("initializing schema version: %w", err)
		}
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return current, nil
}

func applyMigration(db *sql.DB, i int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", i+1, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(All[i]); err != nil {
		return fmt.Errorf("migration %d failed: %w", i+1, err)
	}
	if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
		return fmt.Errorf("updating schema version to %d: %w", i+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", i+1, err)
	}
	return nil
}
