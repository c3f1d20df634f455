package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(&buf, loadTestConfig(t).Manifest))
	return buf.String()
}

func TestStatus_NoRuns(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Equal(t, "Runs: 0\n", runStatus(t))
}

func TestStatus_SummarizesLatestRun(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", loginFeature)
	writeFeature(t, "checkout.feature", checkoutFeature)
	writeFeature(t, "empty.feature", "")
	runSplit(t, loadTestConfig(t))

	out := runStatus(t)

	assert.Contains(t, out, "Runs: 1\n")
	assert.Contains(t, out, "  tags: (all)\n")
	assert.Contains(t, out, "  output: .tmp/features\n")
	assert.Contains(t, out, "  matched: true\n")
	assert.Contains(t, out, "  "+filepath.Join("features", "checkout.feature")+": 1\n")
	assert.Contains(t, out, "  "+filepath.Join("features", "login.feature")+": 3\n")
	assert.Contains(t, out, "  skipped: 1\n")
}

func TestStatus_CountsRuns(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", loginFeature)
	runSplit(t, loadTestConfig(t))

	cfg := loadTestConfig(t)
	cfg.Tags = "@nothing"
	runSplit(t, cfg)

	out := runStatus(t)

	assert.Contains(t, out, "Runs: 2\n")
	assert.Contains(t, out, "  tags: @nothing\n")
	assert.Contains(t, out, "  matched: false\n")
}

func TestStatus_RequiresManifest(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	require.Error(t, RunStatus(&buf, loadTestConfig(t).Manifest))
}
