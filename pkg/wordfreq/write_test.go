package wordfreq

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdering(t *testing.T) {
	merged := FrequencyMap{"low": 0.1, "high": 0.5, "mid": 0.3}
	entries := Rank(merged)
	require.Len(t, entries, 3)
	assert.Equal(t, "high", entries[0].Word)
	assert.Equal(t, "mid", entries[1].Word)
	assert.Equal(t, "low", entries[2].Word)
}

func TestRankTiesBreakByWord(t *testing.T) {
	merged := FrequencyMap{"beta": 0.2, "alpha": 0.2, "gamma": 0.2}
	entries := Rank(merged)
	assert.Equal(t, []Entry{
		{Word: "alpha", Freq: 0.2},
		{Word: "beta", Freq: 0.2},
		{Word: "gamma", Freq: 0.2},
	}, entries)
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{
		{Word: "the", Freq: 0.0523456},
		{Word: "of", Freq: 0.025},
	})
	require.NoError(t, err)
	assert.Equal(t, "the\t0.052346\nof\t0.025\n", buf.String())
}

func TestWriteOmitsBelowFloor(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{
		{Word: "kept", Freq: 1e-8},
		{Word: "dropped", Freq: 1e-10},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "dropped")
}

func TestWriteLinesNonIncreasing(t *testing.T) {
	merged := Merge([]FrequencyMap{
		{"a": 0.3, "b": 0.2, "c": 0.01},
		{"a": 0.25, "b": 0.21, "c": 0.02},
		{"a": 0.31, "b": 0.18, "d": 0.05},
	})
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Rank(merged)))

	prev := 1.0
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		parts := strings.Split(line, "\t")
		require.Len(t, parts, 2)
		f, err := strconv.ParseFloat(parts[1], 64)
		require.NoError(t, err)
		assert.LessOrEqual(t, f, prev)
		assert.GreaterOrEqual(t, f, 1e-9)
		prev = f
	}
}
