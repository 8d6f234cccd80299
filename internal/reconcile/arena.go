package reconcile

import (
	"slices"

	"github.com/kobzarvs/spanline/internal/segment"
	"github.com/kobzarvs/spanline/internal/token"
)

type slot struct {
	spans  []segment.Span
	known  bool
	live   bool
	placed bool
}

// Arena is an in-memory Surface backed by an indexed slice of slots.
// Removed slots are recycled; a recycled handle refers to a new line.
type Arena struct {
	slots []slot // index 0 is reserved for NoLine
	order []LineID
	free  []LineID
}

func NewArena() *Arena {
	return &Arena{slots: make([]slot, 1)}
}

func (a *Arena) Lines() []LineID {
	return slices.Clone(a.order)
}

// Len returns the number of placed lines.
func (a *Arena) Len() int {
	return len(a.order)
}

func (a *Arena) Spans(id LineID) ([]segment.Span, bool) {
	s := a.get(id)
	if s == nil || !s.known {
		return nil, false
	}
	return s.spans, true
}

func (a *Arena) CreateLine() LineID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id] = slot{live: true, known: true}
		return id
	}
	a.slots = append(a.slots, slot{live: true, known: true})
	return LineID(len(a.slots) - 1)
}

func (a *Arena) ClearLine(id LineID) {
	if s := a.get(id); s != nil {
		s.spans = nil
		s.known = true
	}
}

func (a *Arena) AppendSpan(id LineID, typ token.Type, content string) {
	if s := a.get(id); s != nil {
		s.spans = append(s.spans, segment.Span{Type: typ, Content: content})
	}
}

// InsertLineBefore places an unplaced line before ref, or at the end when
// ref is NoLine or not placed.
func (a *Arena) InsertLineBefore(id, ref LineID) {
	s := a.get(id)
	if s == nil || s.placed {
		return
	}
	s.placed = true
	if at := a.index(ref); at >= 0 {
		a.order = slices.Insert(a.order, at, id)
		return
	}
	a.order = append(a.order, id)
}

func (a *Arena) RemoveLine(id LineID) {
	s := a.get(id)
	if s == nil {
		return
	}
	if at := a.index(id); at >= 0 {
		a.order = slices.Delete(a.order, at, at+1)
	}
	a.slots[id] = slot{}
	a.free = append(a.free, id)
}

// Invalidate forgets the content of a slot, as if it had been modified
// behind the arena's back. The next reconciliation rebuilds it.
func (a *Arena) Invalidate(id LineID) {
	if s := a.get(id); s != nil {
		s.known = false
	}
}

// Snapshot returns a copy of the placed lines in order. Lines with unknown
// content are nil.
func (a *Arena) Snapshot() []segment.Line {
	out := make([]segment.Line, len(a.order))
	for i, id := range a.order {
		if spans, ok := a.Spans(id); ok && len(spans) > 0 {
			out[i] = slices.Clone(spans)
		}
	}
	return out
}

func (a *Arena) get(id LineID) *slot {
	if id <= NoLine || int(id) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id]
	if !s.live {
		return nil
	}
	return s
}

func (a *Arena) index(id LineID) int {
	if id == NoLine {
		return -1
	}
	return slices.Index(a.order, id)
}
