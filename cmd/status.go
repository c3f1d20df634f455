package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/chriserin/featsplit/internal/db"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the recorded split runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return RunStatus(cmd.OutOrStdout(), cfg.Manifest)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, manifestPath string) error {
	if err := requireManifest(manifestPath); err != nil {
		return err
	}

	sqlDB, err := db.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}
	defer sqlDB.Close()

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return fmt.Errorf("counting runs: %w", err)
	}
	fmt.Fprintf(w, "Runs: %d\n", count)

	runID, err := db.LatestRunID(sqlDB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding latest run: %w", err)
	}

	var uuid, tags, outputDir string
	var matched bool
	err = sqlDB.QueryRow(`SELECT uuid, tag_expression, output_dir, matched FROM runs WHERE id = ?`, runID).
		Scan(&uuid, &tags, &outputDir, &matched)
	if err != nil {
		return fmt.Errorf("reading run: %w", err)
	}
	if tags == "" {
		tags = "(all)"
	}
	fmt.Fprintf(w, "Latest: %s\n", uuid)
	fmt.Fprintf(w, "  tags: %s\n", tags)
	fmt.Fprintf(w, "  output: %s\n", outputDir)
	fmt.Fprintf(w, "  matched: %t\n", matched)

	rows, err := sqlDB.Query(`
		SELECT source_path, COUNT(*) AS cnt
		FROM outputs
		WHERE run_id = ?
		GROUP BY source_path
		ORDER BY source_path
	`, runID)
	if err != nil {
		return fmt.Errorf("querying output counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var cnt int
		if err := rows.Scan(&source, &cnt); err != nil {
			return fmt.Errorf("scanning output row: %w", err)
		}
		fmt.Fprintf(w, "  %s: %d\n", source, cnt)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var skipped int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM skipped WHERE run_id = ?`, runID).Scan(&skipped); err != nil {
		return fmt.Errorf("counting skipped: %w", err)
	}
	if skipped > 0 {
		fmt.Fprintf(w, "  skipped: %d\n", skipped)
	}
	return nil
}
