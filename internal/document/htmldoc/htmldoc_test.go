package htmldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

const fragment = `<section class="card-grid" data-columns="2" data-compact="true">
  <div class="card" data-style="outlined">
    <h3>Alpha</h3>
    <p>Body <em>text</em> &amp; more</p>
    <hr>
    <p>Footer<br>line</p>
  </div>
</section>
<p>See <span class="badge" title="hint">New</span></p>
<ul><li>item</li></ul>
<!-- note -->`

func TestParseModelsComponentNodes(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	require.Empty(t, doc.RawMeta)
	require.Len(t, doc.Blocks, 4)

	grid := doc.Blocks[0]
	require.Equal(t, document.TypeDiv, grid.Type)
	require.Equal(t, "section", grid.Tag)
	require.Equal(t, []string{"card-grid"}, grid.Classes)
	require.Equal(t, "2", grid.AttrString("columns"))
	compact, ok := grid.Attr("compact")
	require.True(t, ok)
	require.True(t, compact.IsBool)

	require.Len(t, grid.Children, 1)
	card := grid.Children[0]
	require.True(t, card.HasClass("card"))
	require.Equal(t, "outlined", card.AttrString("style"))
	require.Len(t, card.Children, 4)
	require.True(t, card.Children[0].IsHeading())
	require.Equal(t, 3, card.Children[0].Level)
	require.Equal(t, "Alpha", card.Children[0].PlainText())
	require.Equal(t, "Body text & more", card.Children[1].PlainText())
	require.True(t, card.Children[2].IsRule())

	para := doc.Blocks[1]
	require.Equal(t, document.TypePara, para.Type)
	badge := para.Children[1]
	require.Equal(t, document.TypeSpan, badge.Type)
	require.Equal(t, "hint", badge.AttrString("title"))

	list := doc.Blocks[2]
	require.Equal(t, document.TypeCompound, list.Type)
	require.Equal(t, "ul", list.Tag)
	require.Equal(t, "<ul>", string(list.Raw))
	require.Equal(t, "item", list.PlainText())
	item := list.Children[0].Children[0]
	require.Equal(t, "li", item.Tag)
	require.Equal(t, document.TypePlain, item.Children[0].Children[0].Type)

	emph := card.Children[1].Children[1]
	require.Equal(t, document.TypeCompound, emph.Type)
	require.Equal(t, document.KindInline, emph.Kind)

	require.Equal(t, document.TypeOpaque, doc.Blocks[3].Type)
	require.Equal(t, "<!-- note -->", string(doc.Blocks[3].Raw))
}

func TestParseWrapsLooseInlineContent(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(`<div class="panel">Loose <b>bold</b> text<p>Para</p></div>`))
	require.NoError(t, err)

	panel := doc.Blocks[0]
	require.Len(t, panel.Children, 2)
	require.Equal(t, document.TypePlain, panel.Children[0].Type)
	require.Equal(t, "Loose bold text", panel.Children[0].PlainText())
	require.Equal(t, document.TypePara, panel.Children[1].Type)
}

func TestParseDecodesDeclaredCharset(t *testing.T) {
	t.Parallel()

	latin1 := []byte("<html><head><meta charset=\"iso-8859-1\"></head><body><p>caf\xe9</p></body></html>")
	doc, err := Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Equal(t, "café", doc.Blocks[0].PlainText())

	doc, err = Parse(strings.NewReader("<p>déjà vu</p>"))
	require.NoError(t, err)
	require.Equal(t, "déjà vu", doc.Blocks[0].PlainText())
}

func TestWriteRoundTripsFragment(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(`<div id="intro" class="panel" data-tone="warm"><p>Fish &amp; chips</p></div>`))
	require.NoError(t, err)

	out, err := String(doc)
	require.NoError(t, err)
	require.Equal(t,
		"<div id=\"intro\" class=\"panel\" data-tone=\"warm\">\n<p>Fish &amp; chips</p>\n</div>\n",
		out,
	)
}

func TestWriteRawAndForeignFormats(t *testing.T) {
	t.Parallel()

	doc := &document.Document{Blocks: []*document.Element{
		document.NewRawBlock("html", `<div class="sem-panel">`),
		{Kind: document.KindContainer, Type: document.TypePara, Children: []*document.Element{
			document.NewText("a < b"),
			document.NewRawInline("typst", "#dropped"),
			{Kind: document.KindInline, Type: document.TypeSpan, Attrs: document.Attrs{
				{Key: "role", Value: document.StringValue("note")},
				{Key: "level", Value: document.StringValue("2")},
			}, Children: []*document.Element{document.NewText("x")}},
		}},
		document.NewRawBlock("html", `</div>`),
	}}

	out, err := String(doc)
	require.NoError(t, err)
	require.Equal(t,
		"<div class=\"sem-panel\">\n<p>a &lt; b<span role=\"note\" data-level=\"2\">x</span></p>\n</div>\n",
		out,
	)
}

func TestNestingElementsRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(`<blockquote cite="https://example.com/?a=1&amp;b=2"><div class="panel"><p>Hi</p></div></blockquote>` +
		`<table><tr><td><span class="badge">ok</span></td></tr></table>` +
		`<p><a href="/x"><strong>go</strong></a></p>`))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)

	quote := doc.Blocks[0]
	require.Equal(t, document.TypeCompound, quote.Type)
	require.True(t, quote.Children[0].Children[0].HasClass("panel"))

	out, err := String(doc)
	require.NoError(t, err)
	require.Equal(t,
		"<blockquote cite=\"https://example.com/?a=1&amp;b=2\">\n"+
			"<div class=\"panel\">\n<p>Hi</p>\n</div>\n"+
			"</blockquote>\n"+
			"<table>\n<tbody>\n<tr>\n<td>\n<span class=\"badge\">ok</span>\n</td>\n</tr>\n</tbody>\n</table>\n"+
			"<p><a href=\"/x\"><strong>go</strong></a></p>\n",
		out,
	)
}

func TestWriteFullPage(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(`<!DOCTYPE html><html><head><title>Report</title></head><body><p>Hi</p></body></html>`))
	require.NoError(t, err)
	require.Equal(t, "Report", doc.Meta["title"])

	out, err := String(doc)
	require.NoError(t, err)
	require.Equal(t, "<!DOCTYPE html>\n<html>\n<head>\n<title>Report</title>\n</head>\n<body>\n<p>Hi</p>\n</body>\n</html>\n", out)
}
