package backend

import (
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/record"
)

// Call carries what every instruction needs: the semantic class that matched,
// the target function configured for it, the element's attributes and
// whether an argument list must be written.
type Call struct {
	Class    string
	Function string
	Attrs    document.Attrs
	PassArgs bool
}

// Syntax renders instructions for one backend.
type Syntax interface {
	Backend() Backend
	// Wrapper returns the markers placed before and after a container's
	// untouched children.
	Wrapper(call Call) (open, close string)
	// InlineCall renders an inline component around its text content.
	InlineCall(call Call, content string) string
	// CardGrid renders a whole card grid.
	CardGrid(call Call, columns int, cards []record.Card) string
	// Timeline renders a whole timeline.
	Timeline(call Call, orientation record.Orientation, events []record.Event) string
	// ProgressWrapper returns the markers around a progress indicator's children.
	ProgressWrapper(call Call, progress record.Progress) (open, close string)
}
