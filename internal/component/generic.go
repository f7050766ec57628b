package component

import (
	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

type wrapperExtraction struct {
	call     backend.Call
	children []*document.Element
}

func (wrapperExtraction) Empty() bool { return false }

type inlineExtraction struct {
	call    backend.Call
	content string
}

func (inlineExtraction) Empty() bool { return false }

// genericHandler wraps containers around their original children and turns
// inline spans into a single call over their text.
type genericHandler struct{}

func (genericHandler) Extract(in Input) (Extraction, error) {
	call := callFor(in.Entry, in.Element)
	if in.Entry.Namespace == Inline {
		return inlineExtraction{call: call, content: in.Element.PlainText()}, nil
	}
	return wrapperExtraction{call: call, children: in.Element.Children}, nil
}

func (genericHandler) Serialise(ex Extraction, syn backend.Syntax) (*Output, error) {
	format := syn.Backend().RawFormat()
	switch ex := ex.(type) {
	case inlineExtraction:
		code := syn.InlineCall(ex.call, ex.content)
		return &Output{Open: Instruction{Format: format, Code: code, Level: InlineLevel}}, nil
	case wrapperExtraction:
		open, closing := syn.Wrapper(ex.call)
		return &Output{
			Open:     blockInstruction(syn, open),
			Close:    &Instruction{Format: format, Code: closing, Level: BlockLevel},
			Threaded: ex.children,
		}, nil
	default:
		return nil, wrongExtraction("generic", ex)
	}
}
