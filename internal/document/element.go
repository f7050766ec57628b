// Package document defines the element tree the rewrite pipeline operates on.
//
// Trees are produced by a front end (pandoc JSON or HTML) and consumed by the
// rewrite driver, which replaces whole nodes and never edits a node's fields in
// place. The only elements the pipeline creates itself are raw instruction
// nodes built with NewRawBlock and NewRawInline.
package document

import "strings"

// Kind is the coarse position of an element in the document flow.
type Kind int

const (
	KindContainer Kind = iota
	KindInline
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindInline:
		return "inline"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Type is the concrete node type within a Kind.
type Type string

const (
	TypeDiv       Type = "div"
	TypeHeading   Type = "heading"
	TypeRule      Type = "rule"
	TypePara      Type = "para"
	TypePlain     Type = "plain"
	TypeRawBlock  Type = "raw-block"
	TypeSpan      Type = "span"
	TypeText      Type = "text"
	TypeSpace     Type = "space"
	TypeBreak     Type = "break"
	TypeRawInline Type = "raw-inline"
	// TypeOpaque marks nodes the front end does not model; Raw carries the
	// original payload so the node can be written back unchanged.
	TypeOpaque Type = "opaque"
	// TypeCompound is a front-end node that is not a component carrier but
	// nests content: lists, quotes, tables, emphasis, links. Raw keeps the
	// node's own payload and Children holds one TypeSlot per nested list.
	TypeCompound Type = "compound"
	// TypeSlot is one nested block or inline list of a compound node. Its
	// Kind says which.
	TypeSlot Type = "slot"
)

// Element is a node of the document tree.
type Element struct {
	Kind Kind
	Type Type
	// Tag is the node name used by the front end ("SoftBreak", "section"),
	// kept so writers can reproduce the original node.
	Tag   string
	Level int
	// Text holds the literal for text nodes and the code of raw nodes.
	Text string
	// Format is the target format of raw nodes ("typst", "html").
	Format   string
	ID       string
	Classes  []string
	Attrs    Attrs
	Children []*Element
	Raw      []byte
}

// Document is a parsed document: its metadata and top-level blocks.
type Document struct {
	// Meta is the metadata decoded into plain Go values (maps, slices, strings, bools).
	Meta map[string]any
	// RawMeta is the undecoded metadata payload, kept for re-encoding.
	RawMeta []byte
	Blocks  []*Element
	// APIVersion is the pandoc API version the document was produced with.
	APIVersion []int
}

// NewRawBlock builds a block-level raw instruction.
func NewRawBlock(format, code string) *Element {
	return &Element{Kind: KindContainer, Type: TypeRawBlock, Format: format, Text: code}
}

// NewRawInline builds an inline-level raw instruction.
func NewRawInline(format, code string) *Element {
	return &Element{Kind: KindInline, Type: TypeRawInline, Format: format, Text: code}
}

// NewSlot builds the nested list of a compound node.
func NewSlot(kind Kind, children []*Element) *Element {
	return &Element{Kind: kind, Type: TypeSlot, Children: children}
}

// NewText builds a text leaf.
func NewText(text string) *Element {
	return &Element{Kind: KindText, Type: TypeText, Text: text}
}

// HasClass reports whether the element carries the class label.
func (e *Element) HasClass(class string) bool {
	if e == nil {
		return false
	}
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Attr returns the attribute value for key.
func (e *Element) Attr(key string) (Value, bool) {
	if e == nil {
		return Value{}, false
	}
	return e.Attrs.Get(key)
}

// AttrString returns the attribute rendered as a string, or "" when absent.
func (e *Element) AttrString(key string) string {
	v, ok := e.Attr(key)
	if !ok {
		return ""
	}
	return v.String()
}

// IsHeading reports whether the element is a heading block.
func (e *Element) IsHeading() bool { return e != nil && e.Type == TypeHeading }

// IsRule reports whether the element is a horizontal rule.
func (e *Element) IsRule() bool { return e != nil && e.Type == TypeRule }

// IsContainer reports whether the element is a generic block container.
func (e *Element) IsContainer() bool { return e != nil && e.Type == TypeDiv }

// IsRaw reports whether the element is a raw block or raw inline.
func (e *Element) IsRaw() bool {
	return e != nil && (e.Type == TypeRawBlock || e.Type == TypeRawInline)
}

// IsBlank reports whether the element holds only whitespace.
func (e *Element) IsBlank() bool {
	if e == nil {
		return true
	}
	switch e.Type {
	case TypeSpace, TypeBreak:
		return true
	case TypeText:
		return strings.TrimSpace(e.Text) == ""
	}
	return false
}

// Clone returns a shallow copy whose Classes, Attrs and Children slices are
// independent of the original.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.Classes = append([]string(nil), e.Classes...)
	c.Attrs = append(Attrs(nil), e.Attrs...)
	c.Children = append([]*Element(nil), e.Children...)
	return &c
}
