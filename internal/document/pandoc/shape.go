package pandoc

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// A shape describes where a node's content nests block or inline lists. It
// walks raw, hands every nested list to visit in document order and puts back
// whatever visit returns. Everything else is copied as is.
type shape func(raw json.RawMessage, visit slotFunc, path string) (json.RawMessage, error)

type slotFunc func(kind document.Kind, raw json.RawMessage) (json.RawMessage, error)

func keep(raw json.RawMessage, _ slotFunc, _ string) (json.RawMessage, error) {
	return raw, nil
}

func blockList(raw json.RawMessage, visit slotFunc, _ string) (json.RawMessage, error) {
	return visit(document.KindContainer, raw)
}

func inlineList(raw json.RawMessage, visit slotFunc, _ string) (json.RawMessage, error) {
	return visit(document.KindInline, raw)
}

// tuple matches a fixed-length array.
func tuple(parts ...shape) shape {
	return func(raw json.RawMessage, visit slotFunc, path string) (json.RawMessage, error) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, semerrors.NewStructuralError(path, "expected an array", err)
		}
		if len(items) != len(parts) {
			return nil, semerrors.NewStructuralError(path, fmt.Sprintf("expected %d fields, got %d", len(parts), len(items)), nil)
		}
		for i, part := range parts {
			out, err := part(items[i], visit, path)
			if err != nil {
				return nil, err
			}
			items[i] = out
		}
		return json.Marshal(items)
	}
}

// listOf matches an array whose items all have the same shape.
func listOf(item shape) shape {
	return func(raw json.RawMessage, visit slotFunc, path string) (json.RawMessage, error) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, semerrors.NewStructuralError(path, "expected an array", err)
		}
		for i := range items {
			out, err := item(items[i], visit, path)
			if err != nil {
				return nil, err
			}
			items[i] = out
		}
		return json.Marshal(items)
	}
}

// optional lets null stand in for s.
func optional(s shape) shape {
	return func(raw json.RawMessage, visit slotFunc, path string) (json.RawMessage, error) {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return raw, nil
		}
		return s(raw, visit, path)
	}
}

var (
	// Cell: attr, alignment, row span, col span, blocks.
	tableRows = listOf(tuple(keep, listOf(tuple(keep, keep, keep, keep, blockList))))
	caption   = tuple(optional(inlineList), blockList)
)

// blockShapes lists the pandoc blocks entered by the rewrite pass besides Div,
// Header, Para and Plain.
var blockShapes = map[string]shape{
	"BlockQuote":     blockList,
	"BulletList":     listOf(blockList),
	"OrderedList":    tuple(keep, listOf(blockList)),
	"DefinitionList": listOf(tuple(inlineList, listOf(blockList))),
	"LineBlock":      listOf(inlineList),
	"Figure":         tuple(keep, caption, blockList),
	// Table: attr, caption, col specs, head, bodies, foot.
	"Table": tuple(keep, caption, keep,
		tuple(keep, tableRows),
		listOf(tuple(keep, keep, tableRows, tableRows)),
		tuple(keep, tableRows),
	),
}

// inlineShapes lists the pandoc inlines entered besides Span.
var inlineShapes = map[string]shape{
	"Emph":        inlineList,
	"Underline":   inlineList,
	"Strong":      inlineList,
	"Strikeout":   inlineList,
	"Superscript": inlineList,
	"Subscript":   inlineList,
	"SmallCaps":   inlineList,
	"Quoted":      tuple(keep, inlineList),
	"Cite":        tuple(keep, inlineList),
	"Link":        tuple(keep, inlineList, keep),
	"Note":        blockList,
}

// decodeCompound reads a node with nested content, keeping the node's own
// JSON and decoding each nested list into a slot.
func decodeCompound(kind document.Kind, n wireNode, raw json.RawMessage, s shape, path string) (*document.Element, error) {
	el := &document.Element{
		Kind: kind,
		Type: document.TypeCompound,
		Tag:  n.T,
		Raw:  append([]byte(nil), raw...),
	}
	_, err := s(n.C, func(slotKind document.Kind, content json.RawMessage) (json.RawMessage, error) {
		slotPath := fmt.Sprintf("%s.children[%d]", path, len(el.Children))
		var (
			children []*document.Element
			err      error
		)
		if slotKind == document.KindInline {
			children, err = decodeInlines(content, slotPath)
		} else {
			children, err = decodeBlocks(content, slotPath)
		}
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, document.NewSlot(slotKind, children))
		return content, nil
	}, path)
	if err != nil {
		return nil, err
	}
	return el, nil
}

// encodeCompound rebuilds a compound node from its original JSON with every
// nested list replaced by its slot's current content.
func encodeCompound(el *document.Element, shapes map[string]shape) (any, error) {
	s, ok := shapes[el.Tag]
	if !ok || len(el.Raw) == 0 {
		return nil, fmt.Errorf("cannot encode %s node as pandoc", el.Tag)
	}
	var n wireNode
	if err := json.Unmarshal(el.Raw, &n); err != nil {
		return nil, fmt.Errorf("%s node payload: %w", el.Tag, err)
	}

	next := 0
	c, err := s(n.C, func(kind document.Kind, _ json.RawMessage) (json.RawMessage, error) {
		if next >= len(el.Children) {
			return nil, fmt.Errorf("%s node has fewer slots than nested lists", el.Tag)
		}
		slot := el.Children[next]
		next++
		var (
			items []any
			err   error
		)
		if kind == document.KindInline {
			items, err = encodeInlines(slot.Children)
		} else {
			items, err = encodeBlocks(slot.Children)
		}
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	}, el.Tag)
	if err != nil {
		return nil, err
	}
	return outNode{T: n.T, C: c}, nil
}
