package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chriserin/featsplit/internal/config"
	"github.com/chriserin/featsplit/internal/db"
	"github.com/chriserin/featsplit/internal/splitter"
	"github.com/chriserin/featsplit/internal/ui"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split feature files into one file per scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return RunSplit(cmd.OutOrStdout(), cfg, logger)
	},
}

func init() {
	addSplitFlags(splitCmd)
	rootCmd.AddCommand(splitCmd)
}

// RunSplit splits every source feature selected by cfg into cfg.Output and
// records the run in the manifest.
func RunSplit(w io.Writer, cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := splitter.New(cfg.Tags,
		splitter.WithLogger(log),
		splitter.WithExtension(cfg.Extension))
	if err != nil {
		return err
	}

	paths, err := splitter.Discover(cfg.Source, cfg.Feature, cfg.Extension)
	if err != nil {
		return err
	}
	sources, err := splitter.Load(paths, cfg.Language)
	if err != nil {
		return err
	}

	prepared := false
	prepare := func() error {
		if prepared {
			return nil
		}
		prepared = true
		return prepareOutput(cfg.Output, cfg.Clean)
	}

	write := splitter.WriteFiles(cfg.Output)
	res, err := s.Run(sources, func(out splitter.Output) error {
		if err := prepare(); err != nil {
			return err
		}
		if err := write(out); err != nil {
			return err
		}
		ui.NewLine(w, filepath.Join(cfg.Output, out.Name))
		return nil
	})
	if err != nil {
		return err
	}
	if err := prepare(); err != nil {
		return err
	}

	for _, path := range res.Skipped {
		ui.SkipLine(w, path)
	}
	ui.SummaryLine(w, len(sources)-len(res.Skipped), len(res.Outputs))
	if !res.Matched {
		ui.NoMatch(w, cfg.Tags)
	}

	return recordRun(cfg, res)
}

func prepareOutput(dir string, clean bool) error {
	if clean {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("cleaning %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func recordRun(cfg *config.Config, res splitter.Result) error {
	sqlDB, err := db.Open(cfg.Manifest)
	if err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}
	defer sqlDB.Close()

	run := db.Run{
		TagExpression: cfg.Tags,
		Language:      cfg.Language,
		OutputDir:     cfg.Output,
		Matched:       res.Matched,
		Skipped:       res.Skipped,
	}
	for _, out := range res.Outputs {
		run.Outputs = append(run.Outputs, db.Output{
			Seq:        out.Seq,
			SourcePath: out.Source,
			FilePath:   filepath.Join(cfg.Output, out.Name),
			Scenario:   out.Scenario,
			Tags:       out.Tags,
		})
	}
	if _, err := db.RecordRun(sqlDB, run); err != nil {
		return err
	}
	return nil
}
