package component

import (
	"fmt"

	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// Level says where an instruction may be substituted.
type Level int

const (
	BlockLevel Level = iota
	InlineLevel
)

// Instruction is generated backend code plus the level it belongs to.
type Instruction struct {
	Format string
	Code   string
	Level  Level
}

// Element wraps the instruction in a raw node of the matching level.
func (i Instruction) Element() *document.Element {
	if i.Level == InlineLevel {
		return document.NewRawInline(i.Format, i.Code)
	}
	return document.NewRawBlock(i.Format, i.Code)
}

// Output is what replaces a matched element: Open, then the Threaded
// original children, then Close when present.
type Output struct {
	Open     Instruction
	Close    *Instruction
	Threaded []*document.Element
}

// Nodes flattens the output into the elements substituted for the match.
func (o *Output) Nodes() []*document.Element {
	nodes := make([]*document.Element, 0, len(o.Threaded)+2)
	nodes = append(nodes, o.Open.Element())
	nodes = append(nodes, o.Threaded...)
	if o.Close != nil {
		nodes = append(nodes, o.Close.Element())
	}
	return nodes
}

// Input is what a handler extracts from.
type Input struct {
	Element *document.Element
	Entry   Entry
	// Path locates the element in the tree for error messages and ids.
	Path    string
	Mapping *Mapping
}

// Extraction is the typed intermediate a handler produces.
type Extraction interface {
	// Empty reports that nothing should be emitted.
	Empty() bool
}

// Handler extracts a record from a matched element and serialises it.
type Handler interface {
	Extract(in Input) (Extraction, error)
	// Serialise returns nil when the extraction yields no instruction.
	Serialise(ex Extraction, syn backend.Syntax) (*Output, error)
}

var handlers = map[Variant]Handler{
	VariantGeneric:  genericHandler{},
	VariantCardGrid: cardGridHandler{},
	VariantTimeline: timelineHandler{},
	VariantProgress: progressHandler{},
}

// HandlerFor returns the handler of a variant.
func HandlerFor(v Variant) (Handler, bool) {
	h, ok := handlers[v]
	return h, ok
}

// Render runs the handler of in.Entry: extract, then serialise unless the
// extraction is empty. A nil output means the element passes through.
func Render(in Input, syn backend.Syntax) (*Output, error) {
	h, ok := HandlerFor(in.Entry.Variant)
	if !ok {
		return nil, semerrors.NewComponentError(in.Entry.Class, fmt.Errorf("no handler for variant %q", in.Entry.Variant))
	}
	ex, err := h.Extract(in)
	if err != nil {
		return nil, err
	}
	if ex == nil || ex.Empty() {
		return nil, nil
	}
	return h.Serialise(ex, syn)
}

// ShouldPassArgs reports whether a call carries an argument list.
func ShouldPassArgs(cfg ComponentConfig, attrs document.Attrs) bool {
	return cfg.PassArgs || len(attrs) > 0
}

func callFor(entry Entry, el *document.Element) backend.Call {
	return backend.Call{
		Class:    entry.Class,
		Function: entry.Config.Function,
		Attrs:    el.Attrs,
		PassArgs: ShouldPassArgs(entry.Config, el.Attrs),
	}
}

func blockInstruction(syn backend.Syntax, code string) Instruction {
	return Instruction{Format: syn.Backend().RawFormat(), Code: code, Level: BlockLevel}
}

func wrongExtraction(class string, ex Extraction) error {
	return semerrors.NewComponentError(class, fmt.Errorf("unexpected extraction %T", ex))
}
