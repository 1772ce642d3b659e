package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanInbox_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	inbox := filepath.Join(dir, "inbox")
	require.NoError(t, os.MkdirAll(filepath.Join(inbox, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(inbox, "bank.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "processed", "old.csv"), []byte("data"), 0o644))

	files, err := ScanInbox(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bank.CSV", files[0].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScanInbox_Missing(t *testing.T) {
	files, err := ScanInbox(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessedAndRejected(t *testing.T) {
	dir := t.TempDir()
	inbox := filepath.Join(dir, "inbox")
	require.NoError(t, os.MkdirAll(inbox, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "a.csv"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "b.csv"), []byte("b"), 0o644))

	require.NoError(t, MarkProcessed(dir, "a.csv"))
	require.NoError(t, MarkRejected(dir, "b.csv"))

	_, err := os.Stat(filepath.Join(inbox, "a.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(inbox, "processed", "a.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(inbox, "rejected", "b.csv"))
	assert.NoError(t, err)

	assert.Error(t, MarkProcessed(dir, "missing.csv"))
}
