package filter

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/corpustools/wordfreq-builder/models"
	"github.com/corpustools/wordfreq-builder/pkg/banlist"
	"github.com/corpustools/wordfreq-builder/pkg/langid"
	"github.com/corpustools/wordfreq-builder/pkg/sanitize"
	"github.com/corpustools/wordfreq-builder/pkg/textnorm"
)

// RedditFilter filters Reddit JSON-lines records.
//
// A record survives only if all of these hold:
//   - it has a non-null score >= 2 (net upvotes)
//   - its body is present and not a deletion placeholder
//   - its subreddit is not in the banned set
//   - its body still contains text after markdown stripping
//   - the language detector is confident about its language
//   - posts in the majority language additionally need score > 2, since
//     there are more of those than we need
type RedditFilter struct {
	detector     LanguageDetector
	banned       *banlist.Set
	majorityLang string
	log          zerolog.Logger
}

// NewRedditFilter builds a filter. banned may be banlist.Empty().
func NewRedditFilter(detector LanguageDetector, banned *banlist.Set, majorityLang string, log zerolog.Logger) *RedditFilter {
	return &RedditFilter{
		detector:     detector,
		banned:       banned,
		majorityLang: majorityLang,
		log:          log,
	}
}

// Process examines one raw JSON line. It returns the tagged line and true
// when the record is kept. Unparseable lines are logged, counted in stats,
// and skipped.
func (f *RedditFilter) Process(line string, lineNo int, stats *Stats) (models.TaggedLine, bool) {
	stats.Read++

	var post models.RedditPost
	if err := json.Unmarshal([]byte(line), &post); err != nil {
		stats.ParseErrors++
		f.log.Warn().Int("line", lineNo).Err(err).Msg("skipping malformed record")
		return models.TaggedLine{}, false
	}

	if post.Score == nil || *post.Score < 2 {
		return models.TaggedLine{}, false
	}
	if post.Body == "" || post.Body == "[deleted]" || post.Body == "[removed]" {
		return models.TaggedLine{}, false
	}
	if f.banned.Contains(post.Subreddit) {
		return models.TaggedLine{}, false
	}

	md := sanitize.FixSurrogates(sanitize.UnescapeHTML(sanitize.FixLineBreaks(post.Body)))
	text := textnorm.StripMarkdown(md)
	text = strings.ReplaceAll(text, "\n", " ")
	text = sanitize.StripZeroWidth(text)
	text = textnorm.StripURLs(text)
	if text == "" {
		return models.TaggedLine{}, false
	}

	lang, _ := f.detector.Detect(text)
	if lang == langid.Undetermined {
		return models.TaggedLine{}, false
	}
	// Down-sample the overrepresented majority language: require net score
	// above the baseline gate.
	if lang == f.majorityLang && *post.Score <= 2 {
		return models.TaggedLine{}, false
	}

	stats.Kept++
	return models.TaggedLine{Lang: lang, Text: text}, true
}
