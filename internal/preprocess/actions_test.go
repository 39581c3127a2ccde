package preprocess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpustools/wordfreq-builder/models"
	"github.com/corpustools/wordfreq-builder/pkg/filter"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		outDir string
		input  string
		want   string
	}{
		{"zst in place", "", "/data/dump.jsonl.zst", "/data/dump.jsonl.txt"},
		{"zstd variant", "", "/data/dump.zstd", "/data/dump.txt"},
		{"xz into out dir", "/out", "/data/dump.xz", "/out/dump.txt"},
		{"bz2", "/out", "archive.bz2", "/out/archive.txt"},
		{"plain txt keeps name", "/out", "tweets.txt", "/out/tweets.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(tt.outDir, tt.input))
		})
	}
}

// upperFilter tags every non-empty line for testing the streaming plumbing.
type upperFilter struct{}

func (upperFilter) Process(line string, _ int, stats *filter.Stats) (models.TaggedLine, bool) {
	stats.Read++
	if line == "" {
		return models.TaggedLine{}, false
	}
	stats.Kept++
	return models.TaggedLine{Lang: "xx", Text: strings.ToUpper(line)}, true
}

func TestProcessFilePlain(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tweets.txt")
	require.NoError(t, os.WriteFile(input, []byte("one\n\ntwo\n"), 0o644))
	output := filepath.Join(dir, "tagged.txt")

	stats, err := processFile(input, output, upperFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Read)
	assert.Equal(t, 2, stats.Kept)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "xx\tONE\nxx\tTWO\n", string(data))
}

func TestProcessFileUnsupportedCompressed(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.rar")
	require.NoError(t, os.WriteFile(input, []byte("junk"), 0o644))

	// Reddit mode requires a recognized compressed format.
	_, err := processFile(input, filepath.Join(dir, "out.txt"), upperFilter{}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported compression format")
}
