// Package report merges cucumber JSON reports produced by parallel runs of
// split feature files back into one report per feature.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoReports is returned when the report directory holds no JSON files.
var ErrNoReports = errors.New("no JSON report files found")

// Feature is one feature entry of a cucumber JSON report. Fields are kept
// as raw JSON so unknown formatter fields survive the merge.
type Feature map[string]json.RawMessage

// Consolidate reads every *.json file in dir, in name order, and merges
// their features.
func Consolidate(dir string) ([]Feature, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	sort.Strings(paths)

	var all []Feature
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var features []Feature
		if err := json.Unmarshal(data, &features); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		all = append(all, features...)
	}
	return Merge(all)
}

// Merge groups features by id in first-seen order, concatenating their
// elements. Entries without elements are dropped.
func Merge(features []Feature) ([]Feature, error) {
	merged := []Feature{}
	index := map[string]int{}

	for _, f := range features {
		rawElements, ok := f["elements"]
		if !ok {
			continue
		}
		var elements []json.RawMessage
		if err := json.Unmarshal(rawElements, &elements); err != nil {
			return nil, fmt.Errorf("decoding elements: %w", err)
		}

		id := featureID(f)
		i, seen := index[id]
		if !seen {
			index[id] = len(merged)
			merged = append(merged, copyFeature(f))
			continue
		}

		var existing []json.RawMessage
		if err := json.Unmarshal(merged[i]["elements"], &existing); err != nil {
			return nil, fmt.Errorf("decoding elements: %w", err)
		}
		combined, err := json.Marshal(append(existing, elements...))
		if err != nil {
			return nil, fmt.Errorf("encoding elements: %w", err)
		}
		merged[i]["elements"] = combined
	}
	return merged, nil
}

// featureID returns the decoded id so differently escaped spellings of the
// same string group together. Non-string ids fall back to their raw text.
func featureID(f Feature) string {
	raw, ok := f["id"]
	if !ok {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return string(raw)
	}
	return id
}

func copyFeature(f Feature) Feature {
	out := make(Feature, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Encode writes features to w as indented JSON.
func Encode(w io.Writer, features []Feature) error {
	data, err := json.MarshalIndent(features, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Write encodes features as indented JSON into path.
func Write(path string, features []Feature) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := Encode(f, features); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
