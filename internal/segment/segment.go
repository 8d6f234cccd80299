// Package segment splits tokens into lines of spans that never cross a
// line boundary.
package segment

import (
	"strings"

	"github.com/kobzarvs/spanline/internal/token"
)

// Span is a token fragment that contains no newline.
type Span struct {
	Type    token.Type
	Content string
}

// Line is an ordered run of spans.
type Line []Span

// Equal reports whether both lines hold the same (type, content) pairs.
func (l Line) Equal(other Line) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Text returns the concatenated content of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Content)
	}
	return b.String()
}

// Split breaks tokens on newlines. It always returns one more line than
// there are newlines in the token contents; empty fragments are dropped.
func Split(tokens []token.Token) []Line {
	lines := make([]Line, 0, 1)
	var current Line
	for _, tok := range tokens {
		content := tok.Content
		for {
			nl := strings.IndexByte(content, '\n')
			if nl < 0 {
				break
			}
			if nl > 0 {
				current = append(current, Span{Type: tok.Type, Content: content[:nl]})
			}
			lines = append(lines, current)
			current = nil
			content = content[nl+1:]
		}
		if content != "" {
			current = append(current, Span{Type: tok.Type, Content: content})
		}
	}
	return append(lines, current)
}

// Join reconstructs the text the lines were split from.
func Join(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, s := range l {
			b.WriteString(s.Content)
		}
	}
	return b.String()
}
