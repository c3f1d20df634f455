package splitter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover_SortedFeatureFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "login.feature", "")
	writeFile(t, dir, "checkout.feature", "")
	writeFile(t, dir, "notes.txt", "")

	paths, err := Discover(dir, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "checkout.feature"),
		filepath.Join(dir, "login.feature"),
	}, paths)
}

func TestDiscover_SingleFeature(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "login.feature", "")
	writeFile(t, dir, "checkout.feature", "")

	paths, err := Discover(dir, "login", "feature")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "login.feature")}, paths)
}

func TestDiscover_SingleFeatureMissing(t *testing.T) {
	_, err := Discover(t.TempDir(), "nope", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_ParsesSources(t *testing.T) {
	dir := t.TempDir()
	login := writeFile(t, dir, "login.feature", loginFeature)
	empty := writeFile(t, dir, "empty.feature", "# nothing here\n")

	sources, err := Load([]string{login, empty}, "en")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "login", sources[0].Stem)
	assert.Equal(t, "Login", sources[0].Document.Feature.Name)
	assert.Equal(t, "empty", sources[1].Stem)
	assert.Nil(t, sources[1].Document.Feature)
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.feature", "Feature: A\n  Scenario: B\n    Given c\n  Feature: D\n")

	_, err := Load([]string{bad}, "en")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, bad, perr.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "gone.feature")}, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "login", Stem("features/login.feature"))
	assert.Equal(t, "a.b", Stem("/x/a.b.feature"))
}
