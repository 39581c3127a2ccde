package compressio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func writeZst(t *testing.T, path string, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func writeXz(t *testing.T, path string, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func readAll(t *testing.T, lr *LineReader) []string {
	t.Helper()
	var lines []string
	for lr.Scan() {
		lines = append(lines, lr.Text())
	}
	require.NoError(t, lr.Err())
	return lines
}

func TestOpenZst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.zst")
	writeZst(t, path, "first line\nsecond line\n")

	lr, err := Open(path)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"first line", "second line"}, readAll(t, lr))
	require.NoError(t, lr.Close())
}

func TestOpenZstdExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.zstd")
	writeZst(t, path, "only line\n")

	lr, err := Open(path)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"only line"}, readAll(t, lr))
}

func TestOpenXz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xz")
	writeXz(t, path, "alpha\nbeta\n")

	lr, err := Open(path)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"alpha", "beta"}, readAll(t, lr))
}

func TestOpenUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.gz")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	_, err := Open(path)
	require.Error(t, err)

	var ufe *UnsupportedFormatError
	require.True(t, errors.As(err, &ufe))
	assert.Contains(t, ufe.Error(), "unsupported compression format")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.zst"))
	require.Error(t, err)
}

func TestCloseEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.zst")
	writeZst(t, path, "a\nb\nc\nd\n")

	lr, err := Open(path)
	require.NoError(t, err)
	require.True(t, lr.Scan())

	// Closing mid-stream must release resources without error.
	require.NoError(t, lr.Close())
	// Close is idempotent.
	require.NoError(t, lr.Close())
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("x.zst"))
	assert.True(t, IsSupported("x.zstd"))
	assert.True(t, IsSupported("x.xz"))
	assert.True(t, IsSupported("x.bz2"))
	assert.False(t, IsSupported("x.gz"))
	assert.False(t, IsSupported("x.txt"))
}
