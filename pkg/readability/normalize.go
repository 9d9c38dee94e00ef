package readability

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TruncationMarker is appended when extracted content is cut at the
// configured maximum length.
const TruncationMarker = "...[truncated]"

var (
	horizontalWS = regexp.MustCompile(`[ \t\p{Zs}]+`)
	lineEdgeWS   = regexp.MustCompile(` *\n *`)
	blankLineRun = regexp.MustCompile(`\n{2,}`)
)

// NormalizeText collapses runs of horizontal whitespace into single spaces
// and runs of blank lines into single newlines, then trims the result.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = lineEdgeWS.ReplaceAllString(text, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Truncate cuts text to at most max bytes and appends the truncation
// marker. A max of 0 means unlimited. The cut backs up to a rune
// boundary so the result stays valid UTF-8.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + TruncationMarker
}
