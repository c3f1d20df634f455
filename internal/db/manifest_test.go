package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openManifest(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func TestRecordRun_StoresOutputs(t *testing.T) {
	sqlDB := openManifest(t)

	runID, err := RecordRun(sqlDB, Run{
		TagExpression: "@smoke",
		Language:      "en",
		OutputDir:     "tmp",
		Matched:       true,
		Outputs: []Output{
			{Seq: 1, SourcePath: "features/login.feature", FilePath: "tmp/login_1.feature", Scenario: "Logs in", Tags: []string{"@ui", "@smoke"}},
			{Seq: 2, SourcePath: "features/login.feature", FilePath: "tmp/login_2.feature", Scenario: "Logs out"},
		},
		Skipped: []string{"features/empty.feature"},
	})
	require.NoError(t, err)

	var runUUID, expr string
	var matched bool
	require.NoError(t, sqlDB.QueryRow(`SELECT uuid, tag_expression, matched FROM runs WHERE id = ?`, runID).Scan(&runUUID, &expr, &matched))
	_, err = uuid.Parse(runUUID)
	assert.NoError(t, err)
	assert.Equal(t, "@smoke", expr)
	assert.True(t, matched)

	var tags string
	require.NoError(t, sqlDB.QueryRow(`SELECT tags FROM outputs WHERE run_id = ? AND seq = 1`, runID).Scan(&tags))
	assert.Equal(t, "@ui @smoke", tags)

	var skipped int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM skipped WHERE run_id = ?`, runID).Scan(&skipped))
	assert.Equal(t, 1, skipped)
}

func TestRecordRun_RollsBackOnFailure(t *testing.T) {
	sqlDB := openManifest(t)

	_, err := RecordRun(sqlDB, Run{
		Outputs: []Output{
			{Seq: 1, FilePath: "a"},
			{Seq: 1, FilePath: "b"},
		},
	})
	require.Error(t, err)

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestLatestRunID(t *testing.T) {
	sqlDB := openManifest(t)

	_, err := LatestRunID(sqlDB)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	_, err = RecordRun(sqlDB, Run{UUID: "first"})
	require.NoError(t, err)
	second, err := RecordRun(sqlDB, Run{UUID: "second"})
	require.NoError(t, err)

	latest, err := LatestRunID(sqlDB)
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}
