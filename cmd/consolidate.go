package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/chriserin/featsplit/internal/report"
)

var (
	reportsDir string
	reportOut  string
)

var emptyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D18FF"))

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge cucumber JSON reports of split features into one report",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := reportsDir
		if !cmd.Flags().Changed("reports") {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir = cfg.Reports
		}
		return RunConsolidate(cmd.OutOrStdout(), dir, reportOut)
	},
}

func init() {
	consolidateCmd.Flags().StringVar(&reportsDir, "reports", "reports", "Directory of cucumber JSON reports")
	consolidateCmd.Flags().StringVar(&reportOut, "out", "", "Write the merged report to this file instead of stdout")
	rootCmd.AddCommand(consolidateCmd)
}

// RunConsolidate merges the reports in dir. The result goes to out, or to w
// when out is empty.
func RunConsolidate(w io.Writer, dir, out string) error {
	features, err := report.Consolidate(dir)
	if errors.Is(err, report.ErrNoReports) {
		fmt.Fprintln(w, emptyStyle.Render("No JSON files found in "+dir))
		return nil
	}
	if err != nil {
		return err
	}

	if out != "" {
		if err := report.Write(out, features); err != nil {
			return err
		}
		fmt.Fprintf(w, "merged %d features into %s\n", len(features), out)
		return nil
	}

	return report.Encode(w, features)
}
