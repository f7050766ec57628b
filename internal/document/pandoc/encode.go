package pandoc

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

type outNode struct {
	T string `json:"t"`
	C any    `json:"c,omitempty"`
}

type outDocument struct {
	APIVersion []int           `json:"pandoc-api-version"`
	Meta       json.RawMessage `json:"meta"`
	Blocks     []any           `json:"blocks"`
}

// Encode writes doc as pandoc JSON.
func Encode(w io.Writer, doc *document.Document) error {
	data, err := EncodeBytes(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeBytes serialises doc to pandoc JSON.
func EncodeBytes(doc *document.Document) ([]byte, error) {
	out := outDocument{
		APIVersion: doc.APIVersion,
		Meta:       doc.RawMeta,
		Blocks:     make([]any, 0, len(doc.Blocks)),
	}
	if len(out.APIVersion) == 0 {
		out.APIVersion = APIVersion
	}
	if len(out.Meta) == 0 {
		out.Meta = json.RawMessage("{}")
	}

	for _, block := range doc.Blocks {
		node, err := encodeBlock(block)
		if err != nil {
			return nil, err
		}
		out.Blocks = append(out.Blocks, node)
	}
	return json.Marshal(out)
}

func encodeBlock(el *document.Element) (any, error) {
	switch el.Type {
	case document.TypeDiv:
		children, err := encodeBlocks(el.Children)
		if err != nil {
			return nil, err
		}
		return outNode{T: "Div", C: []any{encodeAttr(el), children}}, nil
	case document.TypeHeading:
		children, err := encodeInlines(el.Children)
		if err != nil {
			return nil, err
		}
		return outNode{T: "Header", C: []any{el.Level, encodeAttr(el), children}}, nil
	case document.TypeRule:
		return outNode{T: "HorizontalRule"}, nil
	case document.TypePara, document.TypePlain:
		children, err := encodeInlines(el.Children)
		if err != nil {
			return nil, err
		}
		tag := "Para"
		if el.Type == document.TypePlain {
			tag = "Plain"
		}
		return outNode{T: tag, C: children}, nil
	case document.TypeRawBlock:
		return outNode{T: "RawBlock", C: []string{el.Format, el.Text}}, nil
	case document.TypeCompound:
		return encodeCompound(el, blockShapes)
	case document.TypeOpaque:
		return encodeOpaque(el, "RawBlock")
	}
	return nil, fmt.Errorf("cannot encode %s element as a pandoc block", el.Type)
}

func encodeBlocks(blocks []*document.Element) ([]any, error) {
	out := make([]any, 0, len(blocks))
	for _, block := range blocks {
		node, err := encodeBlock(block)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func encodeInline(el *document.Element) (any, error) {
	switch el.Type {
	case document.TypeText:
		return outNode{T: "Str", C: el.Text}, nil
	case document.TypeSpace:
		if el.Tag == "SoftBreak" {
			return outNode{T: "SoftBreak"}, nil
		}
		return outNode{T: "Space"}, nil
	case document.TypeBreak:
		return outNode{T: "LineBreak"}, nil
	case document.TypeSpan:
		children, err := encodeInlines(el.Children)
		if err != nil {
			return nil, err
		}
		return outNode{T: "Span", C: []any{encodeAttr(el), children}}, nil
	case document.TypeRawInline:
		return outNode{T: "RawInline", C: []string{el.Format, el.Text}}, nil
	case document.TypeCompound:
		return encodeCompound(el, inlineShapes)
	case document.TypeOpaque:
		return encodeOpaque(el, "RawInline")
	}
	return nil, fmt.Errorf("cannot encode %s element as a pandoc inline", el.Type)
}

func encodeInlines(inlines []*document.Element) ([]any, error) {
	out := make([]any, 0, len(inlines))
	for _, inline := range inlines {
		node, err := encodeInline(inline)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// encodeOpaque re-emits the original JSON of nodes read from pandoc. Opaque
// nodes from other front ends carry their Format and become raw nodes.
func encodeOpaque(el *document.Element, rawTag string) (any, error) {
	if el.Format != "" {
		return outNode{T: rawTag, C: []string{el.Format, string(el.Raw)}}, nil
	}
	if len(el.Raw) == 0 {
		return nil, fmt.Errorf("opaque %s node has no payload", el.Tag)
	}
	return json.RawMessage(el.Raw), nil
}

func encodeAttr(el *document.Element) []any {
	classes := el.Classes
	if classes == nil {
		classes = []string{}
	}
	pairs := make([][]string, 0, len(el.Attrs))
	for _, attr := range el.Attrs {
		pairs = append(pairs, []string{attr.Key, attr.Value.String()})
	}
	return []any{el.ID, classes, pairs}
}
