package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runShow(t *testing.T, seq string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunShow(&buf, loadTestConfig(t).Manifest, seq))
	return buf.String()
}

func TestShow_PrintsSplitFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", loginFeature)
	runSplit(t, loadTestConfig(t))

	out := runShow(t, "1")

	assert.Contains(t, out, "#1 login_1.feature")
	assert.Contains(t, out, "(from "+filepath.Join("features", "login.feature")+")")
	assert.Contains(t, out, "Background: \n")
	assert.Contains(t, out, "Scenario: Valid login")
	assert.Contains(t, out, "When I log in as \"alice\"")
}

func TestShow_AcceptsHashPrefix(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", loginFeature)
	runSplit(t, loadTestConfig(t))

	out := runShow(t, "#3")

	assert.Contains(t, out, "#3 login_3.feature")
	assert.Contains(t, out, "|guest|home|")
}

func TestShow_InvalidSeq(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunShow(&buf, loadTestConfig(t).Manifest, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sequence number: abc")
}

func TestShow_NotFound(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", loginFeature)
	runSplit(t, loadTestConfig(t))

	var buf bytes.Buffer
	err := RunShow(&buf, loadTestConfig(t).Manifest, "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split file #99 not found")
}

func TestShow_NoRuns(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunShow(&buf, loadTestConfig(t).Manifest, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no split runs recorded")
}
