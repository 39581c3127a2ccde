// Package filter turns raw social-media records into language-tagged corpus
// lines, keeping only text likely to be genuine, readable, and not
// downvoted. Filtering decisions are silent exclusions; only unparseable
// records count as errors, and those are skipped and tallied rather than
// aborting the run, so one corrupt record cannot lose a whole archive.
package filter

// LanguageDetector identifies the language of a piece of text. The returned
// code is ISO 639-1, or "und" when the detector is not confident. Callers
// filter on the code only.
type LanguageDetector interface {
	Detect(text string) (code string, confidence float64)
}

// Stats counts what happened to the records of one input stream.
type Stats struct {
	Read        int
	Kept        int
	ParseErrors int
}

// Skipped returns the number of records excluded by a filter rule.
func (s Stats) Skipped() int {
	return s.Read - s.Kept - s.ParseErrors
}
