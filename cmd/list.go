package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/chriserin/featsplit/internal/db"
	"github.com/chriserin/featsplit/internal/splitter"
	"github.com/chriserin/featsplit/internal/ui"
	"github.com/spf13/cobra"
)

var sourceFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the split files of the latest run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return RunList(cmd.OutOrStdout(), cfg.Manifest, sourceFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&sourceFlag, "from", "", "Only list files split from this source feature (name without extension)")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	seq      int
	fileName string
	name     string
	tags     string
	source   string
}

func RunList(w io.Writer, manifestPath, sourceFilter string) error {
	if err := requireManifest(manifestPath); err != nil {
		return err
	}

	sqlDB, err := db.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}
	defer sqlDB.Close()

	runID, err := db.LatestRunID(sqlDB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding latest run: %w", err)
	}

	rows, err := sqlDB.Query(`
		SELECT seq, file_path, scenario, tags, source_path
		FROM outputs
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return fmt.Errorf("querying outputs: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&r.seq, &filePath, &r.name, &r.tags, &r.source); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)

		if sourceFilter != "" && splitter.Stem(r.source) != sourceFilter {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	// Compute column widths
	seqWidth, fileWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		if n := len(fmt.Sprint(r.seq)); n > seqWidth {
			seqWidth = n
		}
		if len(r.fileName) > fileWidth {
			fileWidth = len(r.fileName)
		}
		if len(r.name) > nameWidth {
			nameWidth = len(r.name)
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.seq, r.fileName, r.name, r.tags, seqWidth, fileWidth, nameWidth)
	}

	return nil
}
