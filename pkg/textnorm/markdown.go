// Package textnorm flattens noisy social-media markup into approximate plain
// text. A real Markdown parser would spend a lot of cycles producing HTML and
// leave us with a new problem; regular expressions plus start-of-line rules
// get close enough for frequency counting.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// markdownURLPattern matches the [link title](url) syntax links usually take
// on Reddit. Group 1 is the title; group 2 picks up stray right brackets that
// fell out of bracket-in-bracket titles.
var markdownURLPattern = regexp.MustCompile(`\[([^\]]+)\](\]*)\(([^)]+)\)`)

// urlPattern matches bare HTTP(S) URLs as everything after the scheme up to
// the next space.
var urlPattern = regexp.MustCompile(`http(?:s)?://[^ ]*`)

// emphasisDelims are the inline formatting characters handled by
// stripEmphasis: *bold*, _italic_, ~strikethrough~ and their doubled forms.
var emphasisDelims = []rune{'*', '_', '~'}

// StripMarkdown removes most Markdown formatting from text.
//
// The order of passes is load-bearing: link syntax must be resolved before
// bare-URL stripping, otherwise the URL regex eats the link target together
// with the closing parenthesis and leaves the title glued to junk.
func StripMarkdown(text string) string {
	text = markdownURLPattern.ReplaceAllString(text, "$1$2")
	text = urlPattern.ReplaceAllString(text, "")
	for _, delim := range emphasisDelims {
		text = stripEmphasis(text, delim)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		// Leading >, #, *, - and spaces cover blockquotes, headings
		// and bullets in one trim.
		lines[i] = strings.TrimLeft(line, ">#*- ")
	}
	return strings.Join(lines, " ")
}

// isWordChar mirrors the regex \w class: letters, digits and underscore.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// stripEmphasis removes spans delimited by runs of delim, keeping the inner
// content. A span opens at a run of delim not preceded by a word character,
// its content contains no delim, and it closes with at least as many delim
// characters, not followed by a word character. This reproduces the
// backtracking-regex behavior (?<!\w)(d+)([^d]+)\1(?!\w), which RE2 cannot
// express directly.
func stripEmphasis(s string, delim rune) string {
	if !strings.ContainsRune(s, delim) {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(rs) {
		if rs[i] != delim {
			b.WriteRune(rs[i])
			i++
			continue
		}

		runStart := i
		runEnd := i
		for runEnd < len(rs) && rs[runEnd] == delim {
			runEnd++
		}

		// Try match starts at each offset inside the run, longest
		// opener first, like a regex engine advancing its start
		// position after a failed attempt.
		matched := false
		for start := runStart; start < runEnd; start++ {
			if start > 0 && isWordChar(rs[start-1]) {
				continue
			}
			opener := runEnd - start

			// Content runs to the next delim.
			contentEnd := runEnd
			for contentEnd < len(rs) && rs[contentEnd] != delim {
				contentEnd++
			}
			if contentEnd == runEnd || contentEnd == len(rs) {
				break // empty content or no closing run anywhere
			}

			closeEnd := contentEnd
			for closeEnd < len(rs) && rs[closeEnd] == delim {
				closeEnd++
			}
			if closeEnd-contentEnd < opener {
				continue // closing run too short for this opener
			}
			after := contentEnd + opener
			if after < len(rs) && isWordChar(rs[after]) {
				continue
			}

			// Unconsumed leading delims stay literal; the opener and
			// the matched part of the closer are dropped.
			b.WriteString(string(rs[runStart:start]))
			b.WriteString(string(rs[runEnd:contentEnd]))
			i = after
			matched = true
			break
		}
		if !matched {
			b.WriteString(string(rs[runStart:runEnd]))
			i = runEnd
		}
	}
	return b.String()
}

// StripURLs removes any remaining bare HTTP(S) URLs. Exposed for the record
// filters, which re-strip after flattening newlines.
func StripURLs(text string) string {
	return urlPattern.ReplaceAllString(text, "")
}
