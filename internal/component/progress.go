package component

import (
	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/record"
)

// Progress defaults used when attributes are absent or malformed.
const (
	DefaultProgressMin = 0
	DefaultProgressMax = 100
)

type progressExtraction struct {
	call     backend.Call
	progress record.Progress
	children []*document.Element
}

func (progressExtraction) Empty() bool { return false }

type progressHandler struct{}

func (progressHandler) Extract(in Input) (Extraction, error) {
	el := in.Element
	return progressExtraction{
		call:     callFor(in.Entry, el),
		progress: ExtractProgress(el, in.Path),
		children: el.Children,
	}, nil
}

func (progressHandler) Serialise(ex Extraction, syn backend.Syntax) (*Output, error) {
	p, ok := ex.(progressExtraction)
	if !ok {
		return nil, wrongExtraction(ClassProgress, ex)
	}
	open, closing := syn.ProgressWrapper(p.call, p.progress)
	return &Output{
		Open:     blockInstruction(syn, open),
		Close:    &Instruction{Format: syn.Backend().RawFormat(), Code: closing, Level: BlockLevel},
		Threaded: p.children,
	}, nil
}

// ExtractProgress reads value, min, max and label. A max that is not above
// min falls back to min plus the default span.
func ExtractProgress(el *document.Element, path string) record.Progress {
	p := record.Progress{
		Value: floatAttr(el, "value", 0),
		Min:   floatAttr(el, "min", DefaultProgressMin),
		Max:   floatAttr(el, "max", DefaultProgressMax),
		Label: firstAttr(el, "label", "title"),
	}
	if p.Max <= p.Min {
		p.Max = p.Min + (DefaultProgressMax - DefaultProgressMin)
	}
	if p.Label != "" {
		p.ID = ElementID(el, path, ClassProgress, "label")
	}
	return p
}
