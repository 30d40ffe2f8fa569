package news

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const ellipsis = "..."

var (
	markupTag = regexp.MustCompile(`<[^>]+>`)
	// letters, digits, underscore, whitespace and basic punctuation survive
	disallowedRune = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}.,!?-]`)
)

// Clean strips markup tags and non-essential punctuation from raw feed text
// and collapses whitespace runs to a single space.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = markupTag.ReplaceAllString(text, "")
	text = disallowedRune.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cuts text to at most max runes and appends an ellipsis.
// The ellipsis is appended even when nothing was cut.
func Truncate(text string, max int) string {
	if max > 0 {
		if r := []rune(text); len(r) > max {
			text = string(r[:max])
		}
	}
	return text + ellipsis
}
