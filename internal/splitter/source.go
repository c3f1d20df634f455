package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chriserin/featsplit/internal/parser"
)

// Discover lists the feature files of dir in sorted order. When only is set,
// just dir/<only>.<ext> is returned.
func Discover(dir, only, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if only != "" {
		path := filepath.Join(dir, only+"."+ext)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("feature file %s: %w", path, err)
		}
		return []string{path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*."+ext))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads and parses each path. The first parse failure is returned as a
// *ParseError.
func Load(paths []string, language string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := parser.Parse(path, content, language)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		sources = append(sources, Source{Path: path, Stem: Stem(path), Document: doc})
	}
	return sources, nil
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
