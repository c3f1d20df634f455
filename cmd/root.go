package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chriserin/featsplit/internal/config"
	"github.com/chriserin/featsplit/internal/splitter"
)

var (
	configPath string
	verbose    bool
	logger     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "featsplit",
	Short:        "featsplit — split feature files into one file per scenario",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error classes callers may need to tell apart.
func exitCode(err error) int {
	var cfgErr *config.Error
	var contentErr *splitter.ContentError
	var parseErr *splitter.ParseError
	var tagErr *splitter.TagExpressionError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &tagErr):
		return 2
	case errors.As(err, &contentErr):
		return 3
	case errors.As(err, &parseErr):
		return 4
	}
	return 1
}

// splitOptions are the flags shared by split and watch.
type splitOptions struct {
	source   string
	output   string
	tags     string
	language string
	feature  string
	clean    bool
}

var splitOpts splitOptions

func addSplitFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&splitOpts.source, "source", "", "Directory containing source feature files")
	f.StringVar(&splitOpts.output, "output", "", "Directory receiving split feature files")
	f.StringVar(&splitOpts.tags, "tags", "", "Tag expression selecting scenarios")
	f.StringVar(&splitOpts.language, "lang", "", "Gherkin language of the source files")
	f.StringVar(&splitOpts.feature, "feature", "", "Split only this feature file (name without extension)")
	f.BoolVar(&splitOpts.clean, "clean", false, "Remove the output directory before splitting")
}

// loadConfig reads the config file and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Source = splitOpts.source
	}
	if f.Changed("output") {
		cfg.Output = splitOpts.output
	}
	if f.Changed("tags") {
		cfg.Tags = splitOpts.tags
	}
	if f.Changed("lang") {
		cfg.Language = splitOpts.language
	}
	if f.Changed("feature") {
		cfg.Feature = splitOpts.feature
	}
	if f.Changed("clean") {
		cfg.Clean = splitOpts.clean
	}
	return cfg, nil
}

// requireManifest fails unless a split has already created the manifest.
func requireManifest(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no split runs recorded, run `featsplit split` first")
	}
	return nil
}
