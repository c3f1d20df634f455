package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeReport(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

type decoded struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Elements []struct {
		Name string `json:"name"`
	} `json:"elements"`
}

func decode(t *testing.T, features []Feature) []decoded {
	t.Helper()
	data, err := json.Marshal(features)
	require.NoError(t, err)
	var out []decoded
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestConsolidate_MergesByID(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "login_1.json", `[{"id":"login","name":"Login","elements":[{"name":"one"}]}]`)
	writeReport(t, dir, "login_2.json", `[{"id":"login","name":"Login","elements":[{"name":"two"}]}]`)
	writeReport(t, dir, "numbers_3.json", `[{"id":"numbers","name":"Numbers","elements":[{"name":"three"}]}]`)
	writeReport(t, dir, "notes.txt", `not a report`)

	features, err := Consolidate(dir)
	require.NoError(t, err)

	got := decode(t, features)
	require.Len(t, got, 2)
	assert.Equal(t, "login", got[0].ID)
	require.Len(t, got[0].Elements, 2)
	assert.Equal(t, "one", got[0].Elements[0].Name)
	assert.Equal(t, "two", got[0].Elements[1].Name)
	assert.Equal(t, "numbers", got[1].ID)
	assert.Len(t, got[1].Elements, 1)
}

func TestMerge_GroupsEscapedIDs(t *testing.T) {
	var features []Feature
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"login","elements":[{"name":"a"}]},
		{"id":"\u006cogin","elements":[{"name":"b"}]}
	]`), &features))

	merged, err := Merge(features)
	require.NoError(t, err)
	require.Len(t, merged, 1)

	var elements []json.RawMessage
	require.NoError(t, json.Unmarshal(merged[0]["elements"], &elements))
	assert.Len(t, elements, 2)
}

func TestMerge_DropsEntriesWithoutElements(t *testing.T) {
	var features []Feature
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"a","elements":[]},
		{"id":"b"},
		{"id":"a","elements":[{"name":"x"}]}
	]`), &features))

	merged, err := Merge(features)
	require.NoError(t, err)
	got := decode(t, merged)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Len(t, got[0].Elements, 1)
}

func TestMerge_KeepsUnknownFields(t *testing.T) {
	var features []Feature
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"a","uri":"a.feature","elements":[]}]`), &features))

	merged, err := Merge(features)
	require.NoError(t, err)
	assert.JSONEq(t, `"a.feature"`, string(merged[0]["uri"]))
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	var features []Feature
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"a","elements":[{"name":"1"}]},
		{"id":"a","elements":[{"name":"2"}]}
	]`), &features))

	_, err := Merge(features)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"1"}]`, string(features[0]["elements"]))
}

func TestConsolidate_NoReports(t *testing.T) {
	_, err := Consolidate(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoReports))
}

func TestConsolidate_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "bad.json", `{`)
	_, err := Consolidate(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged.json")
	features := []Feature{{"id": json.RawMessage(`"a"`), "elements": json.RawMessage(`[]`)}}
	require.NoError(t, Write(path, features))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","elements":[]}]`, string(data))
}
