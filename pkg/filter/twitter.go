package filter

import (
	"regexp"
	"strings"

	"github.com/corpustools/wordfreq-builder/models"
	"github.com/corpustools/wordfreq-builder/pkg/langid"
	"github.com/corpustools/wordfreq-builder/pkg/sanitize"
)

// handlePattern matches @mentions: an at sign followed by characters that are
// neither whitespace nor punctuation.
var handlePattern = regexp.MustCompile(`@[^\s\p{P}]+`)

// tcoPattern matches Twitter's shortened links, which always live on t.co.
var tcoPattern = regexp.MustCompile(`http(?:s)?://t\.co/[a-zA-Z0-9]+`)

// TwitterFilter filters collected tweet lines. Lines may carry tab-separated
// metadata (tweet ID and such) before the text; collection was not consistent
// about it over the years, so the prefix is optional and simply dropped.
type TwitterFilter struct {
	detector LanguageDetector
}

// NewTwitterFilter builds a filter around the given detector.
func NewTwitterFilter(detector LanguageDetector) *TwitterFilter {
	return &TwitterFilter{detector: detector}
}

// Process examines one collected line and returns the tagged line and true
// when the tweet is kept.
func (f *TwitterFilter) Process(line string, lineNo int, stats *Stats) (models.TaggedLine, bool) {
	stats.Read++

	if i := strings.IndexByte(line, '\t'); i >= 0 {
		line = line[i+1:]
	}
	text := strings.TrimRight(line, " \t\r\n")
	text = handlePattern.ReplaceAllString(text, "")
	text = tcoPattern.ReplaceAllString(text, "")
	text = sanitize.FixSurrogates(sanitize.UnescapeHTML(text))
	text = strings.ReplaceAll(text, "\n", " ")
	if text == "" {
		return models.TaggedLine{}, false
	}

	lang, _ := f.detector.Detect(text)
	if lang == langid.Undetermined {
		return models.TaggedLine{}, false
	}

	stats.Kept++
	return models.TaggedLine{Lang: lang, Text: text}, true
}
