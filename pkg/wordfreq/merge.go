package wordfreq

import "sort"

// lowEvidenceThreshold is the frequency below which a source is considered
// to have no real evidence for a word. Values this small are indistinguishable
// from transcription noise.
const lowEvidenceThreshold = 1e-8

// reservedMass is the share of probability mass the merged list keeps for
// itself; the remaining 1% is a rough estimate of how many tokens will be
// out-of-vocabulary for a list of this size.
const reservedMass = 0.99

// Merge combines frequency maps from independent sources, representing each
// word by the median of its frequency across sources.
//
// Missing evidence is handled asymmetrically: the first two sources with no
// real evidence for a word (absent, or below lowEvidenceThreshold) contribute
// a literal zero to the median; further low-evidence sources are ignored
// outright. A word attested by a single source therefore collapses to a zero
// median and is dropped, while a word with two supporting sources keeps a
// reasonable frequency. This suppresses per-corpus idiosyncrasies such as
// emoji and inconsistently-split contractions without rejecting words that
// merely have thin support. Because the first two low-evidence sources get
// the zero slots, source order must be fixed for deterministic output.
//
// Kept medians are normalized to sum to reservedMass. The result is empty,
// not an error, when no word survives.
func Merge(sources []FrequencyMap) FrequencyMap {
	vocab := make(map[string]struct{})
	for _, src := range sources {
		for word := range src {
			vocab[word] = struct{}{}
		}
	}

	merged := make(FrequencyMap)
	for word := range vocab {
		freqs := make([]float64, 0, len(sources))
		lowEvidence := 0
		for _, src := range sources {
			freq := src[word] // 0 when absent
			if freq < lowEvidenceThreshold {
				lowEvidence++
				if lowEvidence > 2 {
					continue
				}
				freqs = append(freqs, 0)
			} else {
				freqs = append(freqs, freq)
			}
		}
		if len(freqs) == 0 {
			continue
		}
		if m := median(freqs); m > 0 {
			merged[word] = m
		}
	}

	var total float64
	for _, freq := range merged {
		total += freq
	}
	if total == 0 {
		// Nothing survived; avoid dividing by zero.
		return FrequencyMap{}
	}
	for word := range merged {
		merged[word] = merged[word] / total * reservedMass
	}
	return merged
}

// median returns the statistical median: the middle element of the sorted
// values, or the mean of the two middle elements for even lengths. The input
// slice is sorted in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
