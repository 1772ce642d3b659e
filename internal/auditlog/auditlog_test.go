package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Action:    ActionImport,
		Filename:  "amex-jan.csv",
		FileID:    3,
		Details:   "imported 12, malformed 1",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.True(t, testTime.Equal(got.Timestamp))
	assert.Equal(t, ActionImport, got.Action)
	assert.Equal(t, "amex-jan.csv", got.Filename)
	assert.Equal(t, uint64(3), got.FileID)
	assert.Equal(t, "imported 12, malformed 1", got.Details)
}

func TestAppend_ExistingFileWritesOneHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Action = ActionReject
	e2.FileID = 0
	e2.Details = "duplicate"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionImport, entries[0].Action)
	assert.Equal(t, ActionReject, entries[1].Action)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "import-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,action"))
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestTimestampFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "import-log.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-01-15T10:30:00Z,import,amex-jan.csv,3,")
}
