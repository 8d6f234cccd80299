// Package match finds nested delimiter pairs around a caret.
package match

import (
	"cmp"
	"slices"

	"github.com/kobzarvs/spanline/internal/segment"
	"github.com/kobzarvs/spanline/internal/token"
)

// Descriptor identifies a delimiter span by type and literal content.
type Descriptor struct {
	Type    token.Type `toml:"type"`
	Content string     `toml:"content"`
}

func (d Descriptor) matches(s segment.Span) bool {
	return d.Type == s.Type && d.Content == s.Content
}

// Rule is a nestable delimiter pair. Any descriptor in Open opens a level
// and any descriptor in Close closes one.
type Rule struct {
	Open  []Descriptor `toml:"open"`
	Close []Descriptor `toml:"close"`
}

func (r Rule) opens(s segment.Span) bool {
	return slices.ContainsFunc(r.Open, func(d Descriptor) bool { return d.matches(s) })
}

func (r Rule) closes(s segment.Span) bool {
	return slices.ContainsFunc(r.Close, func(d Descriptor) bool { return d.matches(s) })
}

// Pair builds a rule with a single opening and closing literal.
func Pair(typ token.Type, open, close string) Rule {
	return Rule{
		Open:  []Descriptor{{Type: typ, Content: open}},
		Close: []Descriptor{{Type: typ, Content: close}},
	}
}

// Brackets returns rules for {}, () and [] symbols.
func Brackets() []Rule {
	return []Rule{
		Pair(token.Symbol, "{", "}"),
		Pair(token.Symbol, "(", ")"),
		Pair(token.Symbol, "[", "]"),
	}
}

// Absent marks a missing boundary span.
const Absent = -1

// Location addresses a span by line index and span index within the line.
type Location struct {
	Line int
	Span int
}

func (l Location) compare(o Location) int {
	if c := cmp.Compare(l.Line, o.Line); c != 0 {
		return c
	}
	return cmp.Compare(l.Span, o.Span)
}

// Lines gives the matcher one line of spans at a time, so a walk only
// touches the lines between a delimiter and its partner.
type Lines interface {
	Len() int
	Line(i int) []segment.Span
}

// Find returns the sorted indices of spans to highlight. before and after
// index the spans touching the caret on each side, or are Absent.
func Find(spans []segment.Span, before, after int, rules []Rule) []int {
	locs := FindIn(oneLine(spans), Location{Span: before}, Location{Span: after}, rules)
	if len(locs) == 0 {
		return nil
	}
	out := make([]int, len(locs))
	for i, l := range locs {
		out[i] = l.Span
	}
	return out
}

// FindIn returns the sorted locations of spans to highlight. Each side is
// resolved independently: a span that opens a rule is matched by walking
// forward, a span that closes one by walking backward, counting nesting
// levels of the same rule across line ends. Unmatched delimiters and
// boundaries whose Span is Absent highlight nothing.
func FindIn(lines Lines, before, after Location, rules []Rule) []Location {
	var out []Location
	for _, at := range [2]Location{before, after} {
		if at.Span < 0 || at.Line < 0 || at.Line >= lines.Len() {
			continue
		}
		spans := lines.Line(at.Line)
		if at.Span >= len(spans) {
			continue
		}
		if other, ok := pairOf(lines, at, spans[at.Span], rules); ok {
			out = append(out, at, other)
		}
	}
	slices.SortFunc(out, Location.compare)
	return slices.Compact(out)
}

type oneLine []segment.Span

func (l oneLine) Len() int { return 1 }

func (l oneLine) Line(int) []segment.Span { return l }

func pairOf(lines Lines, at Location, s segment.Span, rules []Rule) (Location, bool) {
	for _, r := range rules {
		switch {
		case r.opens(s):
			return walk(lines, at, 1, r.opens, r.closes)
		case r.closes(s):
			return walk(lines, at, -1, r.closes, r.opens)
		}
	}
	return Location{}, false
}

func walk(lines Lines, at Location, step int, deeper, shallower func(segment.Span) bool) (Location, bool) {
	depth := 1
	line, i := at.Line, at.Span
	spans := lines.Line(line)
	for {
		i += step
		for i < 0 || i >= len(spans) {
			line += step
			if line < 0 || line >= lines.Len() {
				return Location{}, false
			}
			spans = lines.Line(line)
			i = 0
			if step < 0 {
				i = len(spans) - 1
			}
		}
		switch s := spans[i]; {
		case deeper(s):
			depth++
		case shallower(s):
			depth--
			if depth == 0 {
				return Location{Line: line, Span: i}, true
			}
		}
	}
}
