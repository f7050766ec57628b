// Package pandoc reads and writes documents in pandoc's JSON AST format.
//
// The node types the component pipeline inspects are modelled (Div, Header,
// HorizontalRule, Para, Plain, RawBlock and the Str, Space, SoftBreak,
// LineBreak, Span, RawInline inlines). Nodes that only nest content, such as
// lists, block quotes, tables, emphasis and links, become compound elements
// whose nested lists are decoded and whose other fields stay raw. Everything
// else is kept as an opaque element holding its original JSON.
package pandoc

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// APIVersion is the pandoc-types version written when a document carries none.
var APIVersion = []int{1, 23, 1}

type wireDocument struct {
	APIVersion []int             `json:"pandoc-api-version"`
	Meta       json.RawMessage   `json:"meta"`
	Blocks     []json.RawMessage `json:"blocks"`
}

type wireNode struct {
	T string          `json:"t"`
	C json.RawMessage `json:"c,omitempty"`
}

// Decode reads a pandoc JSON document.
func Decode(r io.Reader) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, semerrors.NewParseError("pandoc", 0, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses a pandoc JSON document held in memory.
func DecodeBytes(data []byte) (*document.Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, semerrors.NewParseError("pandoc", 0, err)
	}
	if wire.Blocks == nil {
		return nil, semerrors.NewStructuralError("document", "missing blocks array", nil)
	}

	meta, err := decodeMeta(wire.Meta)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{
		Meta:       meta,
		RawMeta:    append([]byte(nil), wire.Meta...),
		APIVersion: wire.APIVersion,
		Blocks:     make([]*document.Element, 0, len(wire.Blocks)),
	}

	for i, raw := range wire.Blocks {
		block, err := decodeBlock(raw, fmt.Sprintf("blocks[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, block)
	}
	return doc, nil
}

func decodeNode(raw json.RawMessage, path string) (wireNode, error) {
	var n wireNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return n, semerrors.NewStructuralError(path, "not a pandoc node", err)
	}
	if n.T == "" {
		return n, semerrors.NewStructuralError(path, "pandoc node without tag", nil)
	}
	return n, nil
}

// decodeTuple splits a node's content into exactly want parts.
func decodeTuple(n wireNode, want int, path string) ([]json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(n.C, &parts); err != nil {
		return nil, semerrors.NewStructuralError(path, fmt.Sprintf("%s content is not an array", n.T), err)
	}
	if len(parts) != want {
		return nil, semerrors.NewStructuralError(path, fmt.Sprintf("%s expects %d fields, got %d", n.T, want, len(parts)), nil)
	}
	return parts, nil
}

func decodeBlock(raw json.RawMessage, path string) (*document.Element, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}

	switch n.T {
	case "Div":
		parts, err := decodeTuple(n, 2, path)
		if err != nil {
			return nil, err
		}
		el := &document.Element{Kind: document.KindContainer, Type: document.TypeDiv}
		if err := decodeAttr(parts[0], el, path); err != nil {
			return nil, err
		}
		el.Children, err = decodeBlocks(parts[1], path)
		if err != nil {
			return nil, err
		}
		return el, nil

	case "Header":
		parts, err := decodeTuple(n, 3, path)
		if err != nil {
			return nil, err
		}
		el := &document.Element{Kind: document.KindContainer, Type: document.TypeHeading}
		if err := json.Unmarshal(parts[0], &el.Level); err != nil {
			return nil, semerrors.NewStructuralError(path, "Header level is not a number", err)
		}
		if err := decodeAttr(parts[1], el, path); err != nil {
			return nil, err
		}
		el.Children, err = decodeInlines(parts[2], path)
		if err != nil {
			return nil, err
		}
		return el, nil

	case "HorizontalRule":
		return &document.Element{Kind: document.KindContainer, Type: document.TypeRule}, nil

	case "Para", "Plain":
		typ := document.TypePara
		if n.T == "Plain" {
			typ = document.TypePlain
		}
		children, err := decodeInlines(n.C, path)
		if err != nil {
			return nil, err
		}
		return &document.Element{Kind: document.KindContainer, Type: typ, Children: children}, nil

	case "RawBlock":
		format, text, err := decodeRaw(n, path)
		if err != nil {
			return nil, err
		}
		return document.NewRawBlock(format, text), nil
	}

	if s, ok := blockShapes[n.T]; ok {
		return decodeCompound(document.KindContainer, n, raw, s, path)
	}
	return opaque(document.KindContainer, n.T, raw), nil
}

func decodeBlocks(raw json.RawMessage, path string) ([]*document.Element, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, semerrors.NewStructuralError(path, "block list is not an array", err)
	}
	out := make([]*document.Element, 0, len(items))
	for i, item := range items {
		block, err := decodeBlock(item, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}
	return out, nil
}

func decodeInline(raw json.RawMessage, path string) (*document.Element, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}

	switch n.T {
	case "Str":
		var text string
		if err := json.Unmarshal(n.C, &text); err != nil {
			return nil, semerrors.NewStructuralError(path, "Str content is not a string", err)
		}
		return document.NewText(text), nil

	case "Space", "SoftBreak":
		return &document.Element{Kind: document.KindText, Type: document.TypeSpace, Tag: n.T}, nil

	case "LineBreak":
		return &document.Element{Kind: document.KindText, Type: document.TypeBreak}, nil

	case "Span":
		parts, err := decodeTuple(n, 2, path)
		if err != nil {
			return nil, err
		}
		el := &document.Element{Kind: document.KindInline, Type: document.TypeSpan}
		if err := decodeAttr(parts[0], el, path); err != nil {
			return nil, err
		}
		el.Children, err = decodeInlines(parts[1], path)
		if err != nil {
			return nil, err
		}
		return el, nil

	case "RawInline":
		format, text, err := decodeRaw(n, path)
		if err != nil {
			return nil, err
		}
		return document.NewRawInline(format, text), nil
	}

	if s, ok := inlineShapes[n.T]; ok {
		return decodeCompound(document.KindInline, n, raw, s, path)
	}
	return opaque(document.KindInline, n.T, raw), nil
}

func decodeInlines(raw json.RawMessage, path string) ([]*document.Element, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, semerrors.NewStructuralError(path, "inline list is not an array", err)
	}
	out := make([]*document.Element, 0, len(items))
	for i, item := range items {
		inline, err := decodeInline(item, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, inline)
	}
	return out, nil
}

func decodeRaw(n wireNode, path string) (string, string, error) {
	parts, err := decodeTuple(n, 2, path)
	if err != nil {
		return "", "", err
	}
	var format, text string
	if err := json.Unmarshal(parts[0], &format); err != nil {
		return "", "", semerrors.NewStructuralError(path, "raw format is not a string", err)
	}
	if err := json.Unmarshal(parts[1], &text); err != nil {
		return "", "", semerrors.NewStructuralError(path, "raw text is not a string", err)
	}
	return format, text, nil
}

// decodeAttr reads a pandoc Attr triple: [identifier, [classes], [[key, value]]].
func decodeAttr(raw json.RawMessage, el *document.Element, path string) error {
	var attr struct {
		ID      string
		Classes []string
		Pairs   [][]string
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil || len(parts) != 3 {
		return semerrors.NewStructuralError(path, "attributes must be [id, classes, pairs]", err)
	}
	if err := json.Unmarshal(parts[0], &attr.ID); err != nil {
		return semerrors.NewStructuralError(path, "attribute id is not a string", err)
	}
	if err := json.Unmarshal(parts[1], &attr.Classes); err != nil {
		return semerrors.NewStructuralError(path, "attribute classes are not strings", err)
	}
	if err := json.Unmarshal(parts[2], &attr.Pairs); err != nil {
		return semerrors.NewStructuralError(path, "attribute pairs are not string pairs", err)
	}

	el.ID = attr.ID
	el.Classes = attr.Classes
	for _, pair := range attr.Pairs {
		if len(pair) != 2 {
			return semerrors.NewStructuralError(path, "attribute pair must have two entries", nil)
		}
		el.Attrs = el.Attrs.Set(pair[0], document.ParseValue(pair[1]))
	}
	return nil
}

func opaque(kind document.Kind, tag string, raw json.RawMessage) *document.Element {
	return &document.Element{
		Kind: kind,
		Type: document.TypeOpaque,
		Tag:  tag,
		Text: stringifyRaw(raw),
		Raw:  append([]byte(nil), raw...),
	}
}
