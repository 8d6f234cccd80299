// Package document ties the highlighting pipeline together: text goes
// through a tokenizer and the segmenter into a reconciled surface, and
// caret positions are answered with delimiter matches from that surface.
package document

import (
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/spanline/internal/match"
	"github.com/kobzarvs/spanline/internal/reconcile"
	"github.com/kobzarvs/spanline/internal/segment"
	"github.com/kobzarvs/spanline/internal/token"
)

// Document owns the text and drives a Surface. It is not safe for
// concurrent use; callers serialize edits and caret queries.
type Document struct {
	tok     token.Tokenizer
	rules   []match.Rule
	surface reconcile.Surface

	text     string
	lineLens []int // rune count of each line
}

func New(tok token.Tokenizer, rules []match.Rule, surface reconcile.Surface) *Document {
	if tok == nil {
		tok = token.Plain{}
	}
	return &Document{tok: tok, rules: rules, surface: surface, lineLens: []int{0}}
}

// SetText replaces the whole text and brings the surface up to date.
func (d *Document) SetText(text string) reconcile.Stats {
	d.text = text
	d.lineLens = d.lineLens[:0]
	for _, line := range strings.Split(text, "\n") {
		d.lineLens = append(d.lineLens, utf8.RuneCountInString(line))
	}
	lines := segment.Split(d.tok.Tokenize(text))
	return reconcile.Reconcile(d.surface, lines)
}

func (d *Document) Text() string {
	return d.text
}

func (d *Document) Surface() reconcile.Surface {
	return d.surface
}

func (d *Document) Rules() []match.Rule {
	return d.rules
}

// LineCount returns the number of lines in the text; empty text has one.
func (d *Document) LineCount() int {
	return len(d.lineLens)
}

// LineLen returns the rune length of row, or 0 when row is out of range.
func (d *Document) LineLen(row int) int {
	if row < 0 || row >= len(d.lineLens) {
		return 0
	}
	return d.lineLens[row]
}

// Len returns the caret offset of the end of the text.
func (d *Document) Len() int {
	n := len(d.lineLens) - 1
	for _, l := range d.lineLens {
		n += l
	}
	return n
}

// Position converts a caret offset into a row and column. Offsets outside
// the text are clamped to its start or end.
func (d *Document) Position(caret int) (row, col int) {
	if caret <= 0 {
		return 0, 0
	}
	for row, l := range d.lineLens {
		if caret <= l {
			return row, caret
		}
		caret -= l + 1
	}
	last := len(d.lineLens) - 1
	return last, d.lineLens[last]
}

// Offset converts a row and column into a caret offset, clamping both.
func (d *Document) Offset(row, col int) int {
	row = max(0, min(row, len(d.lineLens)-1))
	col = max(0, min(col, d.lineLens[row]))
	off := 0
	for _, l := range d.lineLens[:row] {
		off += l + 1
	}
	return off + col
}

// Highlights returns the delimiter spans to highlight for a caret. The
// spans touching the caret on its own line are the boundaries; matching
// reads only the lines between a boundary and its partner.
func (d *Document) Highlights(caret int) []match.Location {
	row, col := d.Position(caret)
	lines := surfaceLines{surface: d.surface, ids: d.surface.Lines()}
	if row >= lines.Len() {
		return nil
	}
	before, after := boundaries(lines.Line(row), col)
	return match.FindIn(lines,
		match.Location{Line: row, Span: before},
		match.Location{Line: row, Span: after},
		d.rules)
}

// surfaceLines exposes surface lines to the matcher. Lines with unknown
// content read as empty.
type surfaceLines struct {
	surface reconcile.Surface
	ids     []reconcile.LineID
}

func (l surfaceLines) Len() int {
	return len(l.ids)
}

func (l surfaceLines) Line(i int) []segment.Span {
	spans, ok := l.surface.Spans(l.ids[i])
	if !ok {
		return nil
	}
	return spans
}

// boundaries returns the index of the span holding the rune before col and
// the one holding the rune at col.
func boundaries(spans []segment.Span, col int) (before, after int) {
	before, after = match.Absent, match.Absent
	start := 0
	for i, s := range spans {
		end := start + utf8.RuneCountInString(s.Content)
		if start < col && col <= end {
			before = i
		}
		if start <= col && col < end {
			after = i
		}
		start = end
	}
	return before, after
}
