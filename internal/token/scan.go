package token

import (
	"strings"
	"unicode/utf8"
)

// marker remembers where a pattern next occurs so that a scan moving
// forward searches each stretch of text once.
type marker struct {
	at   int
	find func(from int) int
}

func newMarker(find func(from int) int) *marker {
	return &marker{at: -1, find: find}
}

// next returns the first occurrence at or after from. from must not
// decrease between calls.
func (m *marker) next(from int) int {
	if m.at < from {
		m.at = m.find(from)
	}
	return m.at
}

func indexByteFrom(s string, from int, c byte) int {
	if from >= len(s) {
		return notFound
	}
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return notFound
	}
	return from + i
}

func indexFrom(s string, from int, sub string) int {
	if from > len(s) {
		return notFound
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return notFound
	}
	return from + i
}

func indexFuncFrom(s string, from int, f func(rune) bool) int {
	if from >= len(s) {
		return notFound
	}
	i := strings.IndexFunc(s[from:], f)
	if i < 0 {
		return notFound
	}
	return from + i
}

// runeLen returns the byte length of the first rune of s, 1 for invalid
// encodings.
func runeLen(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 1
	}
	return size
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
