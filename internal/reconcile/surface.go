package reconcile

import (
	"github.com/kobzarvs/spanline/internal/segment"
	"github.com/kobzarvs/spanline/internal/token"
)

// LineID is a stable handle to a rendered line slot.
type LineID int

// NoLine is the zero handle; InsertLineBefore(id, NoLine) appends.
const NoLine LineID = 0

// Surface is a materialized, ordered collection of rendered lines.
type Surface interface {
	// Lines returns the current slots in display order.
	Lines() []LineID
	// Spans returns the spans last written to a slot. ok is false when
	// the slot's content is unknown.
	Spans(id LineID) (spans []segment.Span, ok bool)

	CreateLine() LineID
	ClearLine(id LineID)
	AppendSpan(id LineID, typ token.Type, content string)
	InsertLineBefore(id, ref LineID)
	RemoveLine(id LineID)
}
