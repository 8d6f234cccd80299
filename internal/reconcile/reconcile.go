// Package reconcile rewrites a rendered line structure in place so that it
// matches a new sequence of lines, reusing as many slots as it can.
package reconcile

import (
	"github.com/kobzarvs/spanline/internal/logger"
	"github.com/kobzarvs/spanline/internal/segment"
)

// Stats counts what a reconciliation did to the surface.
type Stats struct {
	Kept    int // slots in the unchanged prefix and suffix
	Reused  int // slots cleared and repopulated
	Created int
	Removed int
}

// Unchanged reports whether the surface was left untouched.
func (s Stats) Unchanged() bool {
	return s.Reused == 0 && s.Created == 0 && s.Removed == 0
}

// Reconcile makes the surface's lines equal to lines. The unchanged
// prefix and suffix are left alone; the window between them is rewritten
// by reusing old slots first, then creating or removing slots for the
// difference in length. Moved or reordered lines are not detected.
func Reconcile(s Surface, lines []segment.Line) Stats {
	old := s.Lines()

	first := 0
	for first < len(old) && first < len(lines) && sameLine(s, old[first], lines[first]) {
		first++
	}

	lastOld, lastNew := len(old)-1, len(lines)-1
	for lastOld >= first && lastNew >= first && sameLine(s, old[lastOld], lines[lastNew]) {
		lastOld--
		lastNew--
	}

	stats := Stats{Kept: first + (len(old) - 1 - lastOld)}

	ref := NoLine
	if lastOld+1 < len(old) {
		ref = old[lastOld+1]
	}
	for i := first; i <= lastNew; i++ {
		if i <= lastOld {
			id := old[i]
			s.ClearLine(id)
			fill(s, id, lines[i])
			stats.Reused++
			continue
		}
		id := s.CreateLine()
		fill(s, id, lines[i])
		s.InsertLineBefore(id, ref)
		stats.Created++
	}
	for i := lastNew + 1; i <= lastOld; i++ {
		s.RemoveLine(old[i])
		stats.Removed++
	}

	if !stats.Unchanged() {
		logger.Debug("reconciled lines",
			"kept", stats.Kept, "reused", stats.Reused,
			"created", stats.Created, "removed", stats.Removed)
	}
	return stats
}

func sameLine(s Surface, id LineID, want segment.Line) bool {
	spans, ok := s.Spans(id)
	if !ok {
		return false
	}
	return segment.Line(spans).Equal(want)
}

func fill(s Surface, id LineID, line segment.Line) {
	for _, span := range line {
		s.AppendSpan(id, span.Type, span.Content)
	}
}
