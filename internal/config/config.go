// Package config loads .featsplit.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where commands look for the config file.
	DefaultPath = ".featsplit.yaml"

	// StateDir holds the manifest database.
	StateDir = ".featsplit"
)

const defaultConfigYAML = `# featsplit configuration

# Directory containing the source *.feature files.
source: features

# Directory receiving one feature file per scenario / example row.
output: .tmp/features

# Tag expression selecting scenarios, e.g. "@smoke and not @wip".
# Empty selects everything.
tags: ""

# Gherkin dialect of the source files.
language: en

# Split a single feature file by name (without extension).
# feature: login

# Remove the output directory before splitting.
clean: false

# Directory of cucumber JSON reports merged by "featsplit consolidate".
reports: reports
`

// Config holds the settings shared by all commands.
type Config struct {
	Source    string `yaml:"source"`
	Output    string `yaml:"output"`
	Tags      string `yaml:"tags"`
	Language  string `yaml:"language"`
	Feature   string `yaml:"feature,omitempty"`
	Clean     bool   `yaml:"clean"`
	Extension string `yaml:"extension,omitempty"`
	Reports   string `yaml:"reports,omitempty"`
	Manifest  string `yaml:"manifest,omitempty"`
}

// Error reports a required setting that is missing.
type Error struct {
	Field string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s path is not defined", e.Field)
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Language:  "en",
		Extension: "feature",
		Reports:   "reports",
		Manifest:  filepath.Join(StateDir, "manifest.db"),
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// WriteDefault writes the commented default config to path unless it exists.
// It reports whether the file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}

// Validate checks the paths a split needs.
func (c *Config) Validate() error {
	if c.Source == "" {
		return &Error{Field: "source"}
	}
	if c.Output == "" {
		return &Error{Field: "output"}
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.Extension == "" {
		c.Extension = def.Extension
	}
	if c.Manifest == "" {
		c.Manifest = def.Manifest
	}
}

func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("FEATSPLIT_TAGS"); ok {
		c.Tags = v
	}
	if v := os.Getenv("FEATSPLIT_LANG"); v != "" {
		c.Language = v
	}
}
