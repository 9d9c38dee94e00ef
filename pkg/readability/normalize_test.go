package readability

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a  b\t\tc", "a b c"},
		{"collapses blank lines", "one\n\n\ntwo\n\nthree", "one\ntwo\nthree"},
		{"trims line edges", "  one  \n   two  ", "one\ntwo"},
		{"carriage returns", "one\r\n\r\ntwo\rthree", "one\ntwo\nthree"},
		{"non-breaking space", "a\u00a0\u00a0b", "a b"},
		{"trims result", "\n\n  body  \n\n", "body"},
		{"empty", "   \n\n  ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeText(tc.in))
		})
	}
}

func TestNormalizeText_Properties(t *testing.T) {
	in := "para  one\twith   gaps\n\n\n\npara\ttwo\n \n \npara three  \n"
	out := NormalizeText(in)

	assert.NotContains(t, out, "  ")
	assert.NotContains(t, out, "\t")
	assert.NotContains(t, out, "\n\n")
	assert.Equal(t, out, strings.TrimSpace(out))
}

func TestTruncate(t *testing.T) {
	text := strings.Repeat("x", 100)

	got := Truncate(text, 10)
	assert.Equal(t, strings.Repeat("x", 10)+TruncationMarker, got)

	assert.Equal(t, text, Truncate(text, 0), "zero max means unlimited")
	assert.Equal(t, text, Truncate(text, 100), "exact length is not truncated")
	assert.Equal(t, text, Truncate(text, 200), "shorter text is untouched")
}

func TestTruncate_KeepsValidUTF8(t *testing.T) {
	text := strings.Repeat("é", 30) // two bytes per rune

	got := Truncate(text, 5) // would split the third rune
	body := strings.TrimSuffix(got, TruncationMarker)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "éé", body)
	assert.LessOrEqual(t, len(body), 5)
}
