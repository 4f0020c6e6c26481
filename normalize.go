package pagetext

import (
	"regexp"
	"strings"
	"unicode"
)

// nonWordRe matches runs of characters that are not letters, numbers or '_'.
var nonWordRe = regexp.MustCompile(`[^\pL\pN_]+`)

// NormalizeSpace collapses every run of whitespace in s to a single space
// and trims both ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// (U+001C..U+001F), which HTML text routinely treats as whitespace too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// TokenizeURL drops everything up to the last "://" and joins the remaining
// word runs with single spaces. Leading or trailing separators survive as
// empty tokens, so "http://d/e/f/" becomes "d e f ".
func TokenizeURL(s string) string {
	if i := strings.LastIndex(s, "://"); i >= 0 {
		s = s[i+len("://"):]
	}
	return strings.Join(nonWordRe.Split(s, -1), " ")
}

// EscapeImageSource percent-encodes s byte by byte. Letters, digits and
// "_.-~()*!'" are left as-is; everything else, '/' included, is escaped.
func EscapeImageSource(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_.-~()*!'", c) >= 0
}
