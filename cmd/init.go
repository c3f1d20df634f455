package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chriserin/featsplit/internal/config"
	"github.com/chriserin/featsplit/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize featsplit in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout(), configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, cfgPath string) error {
	// config file
	created, err := config.WriteDefault(cfgPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "%s created\n", cfgPath)
	} else {
		fmt.Fprintf(w, "%s already exists\n", cfgPath)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// source directory
	if cfg.Source != "" {
		_, err = os.Stat(cfg.Source)
		sourceExists := err == nil
		if err := os.MkdirAll(cfg.Source, 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", cfg.Source, err)
		}
		if sourceExists {
			fmt.Fprintf(w, "%s/ already exists\n", cfg.Source)
		} else {
			fmt.Fprintf(w, "%s/ created\n", cfg.Source)
		}
	}

	// manifest
	_, err = os.Stat(cfg.Manifest)
	dbExists := err == nil
	sqlDB, err := db.Open(cfg.Manifest)
	if err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", cfg.Manifest)
	} else {
		fmt.Fprintf(w, "%s created\n", cfg.Manifest)
	}

	// gitignore
	entries := []string{filepath.Dir(cfg.Manifest) + "/"}
	if cfg.Output != "" {
		entries = append(entries, strings.TrimSuffix(cfg.Output, "/")+"/")
	}
	msgs, err := ensureGitignore(entries)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entries []string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	var msgs []string
	if os.IsNotExist(err) {
		msgs = append(msgs, ".gitignore created")
	} else if err != nil {
		return nil, err
	}

	present := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	content := string(data)
	changed := false
	for _, entry := range entries {
		if present[entry] {
			msgs = append(msgs, entry+" already in .gitignore")
			continue
		}
		if len(content) > 0 && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += entry + "\n"
		present[entry] = true
		changed = true
		msgs = append(msgs, entry+" added to .gitignore")
	}

	if !changed {
		return msgs, nil
	}
	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return msgs, nil
}
