package htmldoc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/alexisbeaulieu97/semtheme/internal/codec"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

// htmlAttributes are written under their own name; other keys get a data- prefix.
var htmlAttributes = map[string]bool{
	"style": true, "title": true, "lang": true, "dir": true, "role": true,
	"hidden": true, "tabindex": true, "href": true, "src": true, "alt": true,
	"width": true, "height": true,
}

// Write serialises doc as HTML. Documents read with a head are written as a
// complete page; everything else is written as a fragment.
func Write(w io.Writer, doc *document.Document) error {
	bw := bufio.NewWriter(w)
	wr := writer{w: bw}

	page := len(doc.RawMeta) > 0
	if page {
		wr.str("<!DOCTYPE html>\n<html>\n<head>\n")
		wr.str(string(doc.RawMeta))
		wr.str("\n</head>\n<body>\n")
	}
	for _, block := range doc.Blocks {
		wr.block(block)
	}
	if page {
		wr.str("</body>\n</html>\n")
	}
	if wr.err != nil {
		return wr.err
	}
	return bw.Flush()
}

// String renders doc to a string.
func String(doc *document.Document) (string, error) {
	var b strings.Builder
	if err := Write(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

type writer struct {
	w   *bufio.Writer
	err error
}

func (wr *writer) str(s string) {
	if wr.err != nil {
		return
	}
	_, wr.err = wr.w.WriteString(s)
}

func (wr *writer) block(el *document.Element) {
	switch el.Type {
	case document.TypeDiv:
		tag := tagName(el, "div")
		wr.str(openTag(tag, el))
		wr.str("\n")
		for _, child := range el.Children {
			wr.block(child)
		}
		wr.str("</" + tag + ">\n")
	case document.TypeHeading:
		tag := fmt.Sprintf("h%d", clampLevel(el.Level))
		wr.str(openTag(tag, el))
		wr.inlines(el.Children)
		wr.str("</" + tag + ">\n")
	case document.TypeRule:
		wr.str("<hr>\n")
	case document.TypePara:
		wr.str(openTag("p", el))
		wr.inlines(el.Children)
		wr.str("</p>\n")
	case document.TypePlain:
		wr.inlines(el.Children)
		wr.str("\n")
	case document.TypeRawBlock, document.TypeOpaque:
		if code, ok := rawHTML(el); ok {
			wr.str(code)
			wr.str("\n")
		}
	case document.TypeCompound:
		wr.str(string(el.Raw))
		wr.str("\n")
		for _, slot := range el.Children {
			for _, child := range slot.Children {
				wr.block(child)
			}
		}
		wr.str("</" + el.Tag + ">\n")
	default:
		wr.inline(el)
	}
}

func (wr *writer) inlines(els []*document.Element) {
	for _, el := range els {
		wr.inline(el)
	}
}

func (wr *writer) inline(el *document.Element) {
	switch el.Type {
	case document.TypeText:
		wr.str(codec.EscapeHTML(el.Text))
	case document.TypeSpace:
		if el.Tag == "SoftBreak" {
			wr.str("\n")
		} else {
			wr.str(" ")
		}
	case document.TypeBreak:
		wr.str("<br>")
	case document.TypeSpan:
		wr.str(openTag("span", el))
		wr.inlines(el.Children)
		wr.str("</span>")
	case document.TypeRawInline, document.TypeOpaque:
		if code, ok := rawHTML(el); ok {
			wr.str(code)
		}
	case document.TypeCompound:
		wr.str(string(el.Raw))
		for _, slot := range el.Children {
			wr.inlines(slot.Children)
		}
		wr.str("</" + el.Tag + ">")
	default:
		wr.inlines(el.Children)
	}
}

// rawHTML returns the markup of raw and opaque nodes. Raw code for other
// formats is dropped; opaque nodes without markup fall back to their text.
func rawHTML(el *document.Element) (string, bool) {
	if el.Type == document.TypeOpaque {
		if el.Format == Format && len(el.Raw) > 0 {
			return string(el.Raw), true
		}
		return codec.EscapeHTML(el.Text), el.Text != ""
	}
	if el.Format == Format {
		return el.Text, true
	}
	return "", false
}

func openTag(name string, el *document.Element) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	if el.ID != "" {
		b.WriteString(` id="`)
		b.WriteString(codec.EscapeHTML(el.ID))
		b.WriteString(`"`)
	}
	if len(el.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(codec.EscapeHTML(strings.Join(el.Classes, " ")))
		b.WriteString(`"`)
	}
	for _, a := range el.Attrs {
		key := a.Key
		if !htmlAttributes[key] && !strings.HasPrefix(key, "aria-") {
			key = codec.DataAttribute(key)
		}
		if key == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(codec.EscapeHTML(a.Value.String()))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

func tagName(el *document.Element, fallback string) string {
	if el.Tag != "" && containerAtoms[atom.Lookup([]byte(el.Tag))] {
		return el.Tag
	}
	return fallback
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	}
	return level
}
