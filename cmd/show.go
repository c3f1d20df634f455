package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chriserin/featsplit/internal/db"
	"github.com/chriserin/featsplit/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <seq>",
	Short: "Show a split file of the latest run by sequence number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return RunShow(cmd.OutOrStdout(), cfg.Manifest, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, manifestPath, rawSeq string) error {
	// Strip # prefix if present
	rawSeq = strings.TrimPrefix(rawSeq, "#")
	seq, err := strconv.Atoi(rawSeq)
	if err != nil {
		return fmt.Errorf("invalid sequence number: %s", rawSeq)
	}

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
		return fmt.Errorf("no split runs recorded, run `featsplit split` first")
	}
	if err != nil {
		return fmt.Errorf("finding latest run: %w", err)
	}

	var filePath, sourcePath string
	err = sqlDB.QueryRow(`
		SELECT file_path, source_path
		FROM outputs
		WHERE run_id = ? AND seq = ?
	`, runID, seq).Scan(&filePath, &sourcePath)
	if err != nil {
		return fmt.Errorf("split file #%d not found", seq)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	ui.ShowHeader(w, seq, filepath.Base(filePath), sourcePath)
	fmt.Fprintln(w)
	ui.ShowGherkin(w, string(content))

	return nil
}
