package wordfreq

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// minSerializedFreq is the floor below which merged entries are not worth
// persisting; they would round to zero in any downstream use.
const minSerializedFreq = 1e-9

// Entry is one row of the ranked output.
type Entry struct {
	Word string
	Freq float64
}

// Rank orders a merged map descending by frequency. Ties break ascending by
// word so that output is reproducible across runs.
func Rank(merged FrequencyMap) []Entry {
	entries := make([]Entry, 0, len(merged))
	for word, freq := range merged {
		entries = append(entries, Entry{Word: word, Freq: freq})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Freq != entries[j].Freq {
			return entries[i].Freq > entries[j].Freq
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Write serializes ranked entries as "word<TAB>frequency" lines, frequencies
// formatted to 5 significant digits, omitting entries below
// minSerializedFreq.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if e.Freq < minSerializedFreq {
			// Entries are sorted descending, so nothing after this
			// one is persistable either.
			break
		}
		if _, err := fmt.Fprintf(bw, "%s\t%.5g\n", e.Word, e.Freq); err != nil {
			return err
		}
	}
	return bw.Flush()
}
