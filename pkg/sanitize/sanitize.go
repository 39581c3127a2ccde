// Package sanitize provides the pure text fixers the preprocessing pipeline
// applies before language detection. Every function is total: any string in,
// a repaired string out, no side effects.
package sanitize

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// lineBreakReplacer maps the long tail of Unicode line separators onto "\n".
// CRLF first so it collapses to a single newline instead of two.
var lineBreakReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	" ", "\n",
	" ", "\n",
	"", "\n",
	"\v", "\n",
	"\f", "\n",
)

// FixLineBreaks normalizes all line-break conventions to "\n".
func FixLineBreaks(s string) string {
	return lineBreakReplacer.Replace(s)
}

// UnescapeHTML decodes HTML entities such as &amp; and &gt;. Reddit bodies
// are double-escaped in some dump vintages, so callers may apply this to text
// that contains no entities at all; that is a no-op.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// curlyQuoteReplacer undoes "smart" quote substitution so that apostrophe
// handling is consistent across sources.
var curlyQuoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"‟", `"`,
)

// UncurlQuotes replaces curly single and double quotes with their straight
// ASCII equivalents.
func UncurlQuotes(s string) string {
	return curlyQuoteReplacer.Replace(s)
}

// zeroWidth matches format characters that carry no visible content, chiefly
// the zero-width space Reddit clients insert to defeat markup.
var zeroWidth = runes.Remove(runes.In(unicode.Cf))

// StripZeroWidth drops zero-width and other invisible format characters.
func StripZeroWidth(s string) string {
	out, _, err := transform.String(zeroWidth, s)
	if err != nil {
		return s
	}
	return out
}

// FixSurrogates repairs UTF-16 surrogate code points that leaked into a
// string, a common artifact of JSON encoders that split astral characters
// into \uD800-\uDFFF escape pairs. Adjacent high/low surrogates are combined
// into the character they encode; lone surrogates become U+FFFD.
//
// Go's JSON decoder already combines well-formed pairs, so this only fires on
// text that was mangled upstream (surrogates encoded as individual 3-byte
// sequences, the "WTF-8" shape).
func FixSurrogates(s string) string {
	if !strings.Contains(s, "\xed") {
		// Surrogates in WTF-8 always start with byte 0xED.
		if !strings.ContainsRune(s, utf8.RuneError) {
			return s
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		hi, n := decodeSurrogate(s[i:])
		if n == 0 {
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		// Got a surrogate; look for its partner.
		lo, m := decodeSurrogate(s[i+n:])
		if m > 0 && utf16.IsSurrogate(hi) && utf16.IsSurrogate(lo) {
			if combined := utf16.DecodeRune(hi, lo); combined != utf8.RuneError {
				b.WriteRune(combined)
				i += n + m
				continue
			}
		}
		b.WriteRune(utf8.RuneError)
		i += n
	}
	return b.String()
}

// decodeSurrogate reads a UTF-16 surrogate encoded as a raw 3-byte sequence
// (0xED 0xA0..0xBF 0x80..0xBF). Returns the code point and byte length, or
// length 0 if s does not start with one.
func decodeSurrogate(s string) (rune, int) {
	if len(s) < 3 || s[0] != 0xed {
		return 0, 0
	}
	if s[1] < 0xa0 || s[1] > 0xbf || s[2] < 0x80 || s[2] > 0xbf {
		return 0, 0
	}
	r := rune(0xd000) | rune(s[1]&0x3f)<<6 | rune(s[2]&0x3f)
	return r, 3
}
