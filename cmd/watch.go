package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chriserin/featsplit/internal/config"
	"github.com/chriserin/featsplit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Split once, then re-split whenever a source feature changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return RunWatch(ctx, cmd.OutOrStdout(), cfg, logger)
	},
}

func init() {
	addSplitFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

// RunWatch runs an initial split and keeps re-splitting until ctx is done.
// Errors from re-splits are logged, not returned.
func RunWatch(ctx context.Context, w io.Writer, cfg *config.Config, log *zap.Logger) error {
	if err := RunSplit(w, cfg, log); err != nil {
		return err
	}
	fmt.Fprintf(w, "watching %s for changes\n", cfg.Source)

	wt := watch.New(cfg.Source, cfg.Extension, func() error {
		return RunSplit(w, cfg, log)
	}, watch.WithLogger(log))
	return wt.Watch(ctx)
}
