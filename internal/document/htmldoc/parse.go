// Package htmldoc reads HTML into the element model and writes it back.
//
// Sectioning elements become containers, headings, paragraphs, rules, spans
// and text are modelled, lists, quotes, tables and phrasing elements such as
// em or a become compound nodes whose content is parsed, and everything else
// is kept as an opaque node holding its original markup. Attributes follow pandoc's HTML reader: data-* keys lose
// their prefix and the values "true"/"false" become booleans.
package htmldoc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/alexisbeaulieu97/semtheme/internal/codec"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// Format is the raw format name of markup kept verbatim.
const Format = "html"

// sniffLen is how much of the input the HTML5 encoding prescan looks at.
const sniffLen = 1024

// decodeCharset wraps r in a decoder when the input declares a non-UTF-8
// encoding. Undeclared input is read as UTF-8 rather than the prescan's
// windows-1252 fallback.
func decodeCharset(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	enc, name, certain := charset.DetermineEncoding(head, "")
	if name == "utf-8" || (!certain && !bytes.Contains(bytes.ToLower(head), []byte("charset"))) {
		return br, nil
	}
	return transform.NewReader(br, enc.NewDecoder()), nil
}

var containerAtoms = map[atom.Atom]bool{
	atom.Div: true, atom.Section: true, atom.Article: true, atom.Aside: true,
	atom.Main: true, atom.Header: true, atom.Footer: true, atom.Nav: true, atom.Figure: true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// blockAtoms are kept opaque at block level; anything else not modelled is inline.
var blockAtoms = map[atom.Atom]bool{
	atom.Pre: true, atom.Form: true, atom.Details: true, atom.Fieldset: true,
	atom.Address: true, atom.Script: true, atom.Style: true, atom.Colgroup: true,
	atom.Template: true, atom.Video: true, atom.Audio: true, atom.Canvas: true,
	atom.Iframe: true, atom.Noscript: true,
}

// nestingBlockAtoms hold block content and become compound nodes.
var nestingBlockAtoms = map[atom.Atom]bool{
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Blockquote: true, atom.Figcaption: true, atom.Table: true, atom.Caption: true,
	atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Tr: true, atom.Td: true, atom.Th: true,
}

// nestingInlineAtoms hold phrasing content and become compound nodes.
var nestingInlineAtoms = map[atom.Atom]bool{
	atom.Em: true, atom.Strong: true, atom.B: true, atom.I: true, atom.U: true, atom.S: true,
	atom.Small: true, atom.Sup: true, atom.Sub: true, atom.Mark: true, atom.Q: true,
	atom.Cite: true, atom.A: true, atom.Abbr: true, atom.Del: true, atom.Ins: true,
}

// Parse reads an HTML document or fragment. The body's children become the
// document blocks; a non-empty head is kept in RawMeta and written back.
// Input in a legacy encoding declared by a BOM or a charset declaration is
// decoded to UTF-8; output is always UTF-8.
func Parse(r io.Reader) (*document.Document, error) {
	in, err := decodeCharset(r)
	if err != nil {
		return nil, semerrors.NewParseError("html", 0, err)
	}
	gq, err := goquery.NewDocumentFromReader(in)
	if err != nil {
		return nil, semerrors.NewParseError("html", 0, err)
	}

	doc := &document.Document{Meta: map[string]any{}}

	head := gq.Find("head").First()
	if head.Children().Length() > 0 {
		inner, err := head.Html()
		if err != nil {
			return nil, semerrors.NewParseError("html", 0, err)
		}
		doc.RawMeta = []byte(strings.TrimSpace(inner))
	}
	if title := strings.TrimSpace(gq.Find("head > title").First().Text()); title != "" {
		doc.Meta["title"] = title
	}

	body := gq.Find("body").First()
	if body.Length() == 0 {
		return doc, nil
	}
	p := parser{}
	doc.Blocks, err = p.blocks(body.Nodes[0], "blocks")
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct{}

// blocks converts the children of n in block context. Runs of inline content
// are collected into plain blocks.
func (p parser) blocks(n *html.Node, path string) ([]*document.Element, error) {
	var (
		out    []*document.Element
		inline []*document.Element
	)
	flush := func() {
		if len(inline) == 0 {
			return
		}
		blank := true
		for _, el := range inline {
			if !el.IsBlank() {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, &document.Element{
				Kind:     document.KindContainer,
				Type:     document.TypePlain,
				Children: inline,
			})
		}
		inline = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		childPath := fmt.Sprintf("%s[%d]", path, len(out))
		block, ok, err := p.block(c, childPath)
		if err != nil {
			return nil, err
		}
		if ok {
			flush()
			if block != nil {
				out = append(out, block)
			}
			continue
		}
		if el := p.inline(c); el != nil {
			inline = append(inline, el)
		}
	}
	flush()
	return out, nil
}

// block converts c when it is block-level. ok is false for inline nodes.
func (p parser) block(c *html.Node, path string) (*document.Element, bool, error) {
	if c.Type == html.CommentNode {
		return opaqueNode(document.KindContainer, c), true, nil
	}
	if c.Type != html.ElementNode {
		return nil, false, nil
	}

	switch {
	case containerAtoms[c.DataAtom]:
		el := &document.Element{Kind: document.KindContainer, Type: document.TypeDiv, Tag: c.Data}
		readAttrs(c, el)
		children, err := p.blocks(c, path+".children")
		if err != nil {
			return nil, true, err
		}
		el.Children = children
		return el, true, nil

	case headingLevels[c.DataAtom] > 0:
		el := &document.Element{Kind: document.KindContainer, Type: document.TypeHeading, Tag: c.Data, Level: headingLevels[c.DataAtom]}
		readAttrs(c, el)
		el.Children = p.inlines(c)
		return el, true, nil

	case c.DataAtom == atom.Hr:
		return &document.Element{Kind: document.KindContainer, Type: document.TypeRule, Tag: c.Data}, true, nil

	case c.DataAtom == atom.P:
		el := &document.Element{Kind: document.KindContainer, Type: document.TypePara, Tag: c.Data}
		readAttrs(c, el)
		el.Children = p.inlines(c)
		return el, true, nil

	case nestingBlockAtoms[c.DataAtom]:
		children, err := p.blocks(c, path+".children[0].children")
		if err != nil {
			return nil, true, err
		}
		return compoundNode(document.KindContainer, c, children), true, nil

	case blockAtoms[c.DataAtom]:
		return opaqueNode(document.KindContainer, c), true, nil
	}
	return nil, false, nil
}

func (p parser) inlines(n *html.Node) []*document.Element {
	var out []*document.Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := p.inline(c); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (p parser) inline(c *html.Node) *document.Element {
	switch c.Type {
	case html.TextNode:
		return document.NewText(c.Data)
	case html.CommentNode:
		return opaqueNode(document.KindInline, c)
	case html.ElementNode:
	default:
		return nil
	}

	switch c.DataAtom {
	case atom.Span:
		el := &document.Element{Kind: document.KindInline, Type: document.TypeSpan, Tag: c.Data}
		readAttrs(c, el)
		el.Children = p.inlines(c)
		return el
	case atom.Br:
		return &document.Element{Kind: document.KindText, Type: document.TypeBreak, Tag: c.Data}
	}
	if nestingInlineAtoms[c.DataAtom] {
		return compoundNode(document.KindInline, c, p.inlines(c))
	}
	return opaqueNode(document.KindInline, c)
}

func readAttrs(n *html.Node, el *document.Element) {
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			el.ID = a.Val
		case "class":
			el.Classes = strings.Fields(a.Val)
		default:
			key := strings.TrimPrefix(a.Key, "data-")
			el.Attrs = el.Attrs.Set(key, document.ParseValue(a.Val))
		}
	}
}

// compoundNode keeps the element's start tag verbatim in Raw; its parsed
// content sits in a single slot.
func compoundNode(kind document.Kind, n *html.Node, children []*document.Element) *document.Element {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteString(" ")
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteString(":")
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(codec.EscapeHTML(a.Val))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return &document.Element{
		Kind:     kind,
		Type:     document.TypeCompound,
		Tag:      n.Data,
		Format:   Format,
		Raw:      []byte(b.String()),
		Children: []*document.Element{document.NewSlot(kind, children)},
	}
}

func opaqueNode(kind document.Kind, n *html.Node) *document.Element {
	sel := goquery.NewDocumentFromNode(n).Selection
	raw, err := goquery.OuterHtml(sel)
	if err != nil {
		raw = ""
	}
	text := ""
	if n.Type == html.ElementNode {
		text = sel.Text()
	}
	return &document.Element{
		Kind:   kind,
		Type:   document.TypeOpaque,
		Tag:    n.Data,
		Format: Format,
		Text:   text,
		Raw:    []byte(raw),
	}
}
