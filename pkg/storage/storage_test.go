package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileWritesContent(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "wordlist.txt")

	require.NoError(t, s.SaveFile(path, []byte("the\t0.05\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "the\t0.05\n", string(data))
}

func TestSaveFileReplacesExisting(t *testing.T) {
	s := &Storage{}
	dir := t.TempDir()
	path := filepath.Join(dir, "wordlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale contents"), 0o644))

	require.NoError(t, s.SaveFile(path, []byte("fresh contents")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh contents", string(data))

	// The rename must not leave temp files behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wordlist.txt", entries[0].Name())
}

func TestSaveFileMissingDir(t *testing.T) {
	s := &Storage{}
	err := s.SaveFile(filepath.Join(t.TempDir(), "no-such-dir", "out.txt"), []byte("x"))
	require.Error(t, err)
}

func TestHasFile(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, s.HasFile(path))
	assert.False(t, s.HasFile(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestGetFileStats(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "sized.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	fs, err := s.GetFileStats(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), fs.SizeBytes)
	assert.False(t, fs.ModTime.IsZero())

	_, err = s.GetFileStats(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
