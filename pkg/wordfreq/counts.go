// Package wordfreq converts word-count files into relative frequencies and
// merges frequency maps from independent sources into one ranked list.
package wordfreq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corpustools/wordfreq-builder/pkg/sanitize"
)

// TotalSentinel is the reserved word a count file uses to declare its total
// token count, the denominator for every frequency in that file.
const TotalSentinel = "__total__"

// FrequencyMap maps a normalized word to its relative frequency within one
// source. Reads of missing words yield 0, which the merger relies on.
type FrequencyMap map[string]float64

// ReadCountFile parses one count file into a FrequencyMap.
//
// The file is tab-separated "word<TAB>count" lines. Exactly one line carries
// TotalSentinel; it must appear before any word line, because frequencies
// cannot be computed without the denominator. Words are normalized by
// uncurling quotes and trimming surrounding apostrophes and spaces; words
// that normalize to the same spelling have their frequencies summed
// (accumulate, not overwrite: collisions are real mass, not duplicates).
func ReadCountFile(path string) (FrequencyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open count file: %w", err)
	}
	defer f.Close()

	fm, err := readCounts(f)
	if err != nil {
		return nil, fmt.Errorf("count file %s: %w", path, err)
	}
	return fm, nil
}

func readCounts(r io.Reader) (FrequencyMap, error) {
	freqs := make(FrequencyMap)
	total := -1

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}

		word, strcount, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: missing tab separator", lineNo)
		}
		count, err := strconv.Atoi(strings.TrimSpace(strcount))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid count %q", lineNo, strcount)
		}
		if count < 0 {
			return nil, fmt.Errorf("line %d: negative count %d", lineNo, count)
		}

		if word == TotalSentinel {
			total = count
			continue
		}

		// Correct for earlier steps that might not have handled curly
		// apostrophes consistently.
		word = strings.Trim(sanitize.UncurlQuotes(word), "' ")
		if word == "" {
			continue
		}
		if total < 0 {
			return nil, fmt.Errorf("line %d: word %q before %s line", lineNo, word, TotalSentinel)
		}
		if total == 0 {
			return nil, fmt.Errorf("line %d: word %q with declared total of zero", lineNo, word)
		}
		freqs[word] += float64(count) / float64(total)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	return freqs, nil
}

// ReadCountFiles parses each path in order, preserving source order for the
// merger (the first-two-zeros rule in Merge depends on it).
func ReadCountFiles(paths []string) ([]FrequencyMap, error) {
	maps := make([]FrequencyMap, 0, len(paths))
	for _, path := range paths {
		fm, err := ReadCountFile(path)
		if err != nil {
			return nil, err
		}
		maps = append(maps, fm)
	}
	return maps, nil
}
