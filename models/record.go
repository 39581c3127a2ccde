package models

import "fmt"

// RedditPost is the subset of a Reddit JSON record the filter looks at.
// Score is a pointer because dumps contain posts with a literal null score.
type RedditPost struct {
	Body      string `json:"body"`
	Score     *int   `json:"score"`
	Subreddit string `json:"subreddit"`
}

// TaggedLine is one unit of the language-tagged corpus: a detected language
// code and the cleaned text. Text never contains a literal newline.
type TaggedLine struct {
	Lang string
	Text string
}

// String renders the tab-separated wire format.
func (t TaggedLine) String() string {
	return fmt.Sprintf("%s\t%s", t.Lang, t.Text)
}
