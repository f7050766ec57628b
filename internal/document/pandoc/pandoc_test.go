package pandoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

const sampleDocument = `{
  "pandoc-api-version": [1, 23, 1],
  "meta": {
    "title": {"t": "MetaInlines", "c": [{"t": "Str", "c": "Report"}, {"t": "Space"}, {"t": "Str", "c": "2024"}]},
    "semtheme": {"t": "MetaMap", "c": {
      "components": {"t": "MetaMap", "c": {
        "inline": {"t": "MetaMap", "c": {
          "badge": {"t": "MetaMap", "c": {
            "function": {"t": "MetaInlines", "c": [{"t": "Str", "c": "pill"}]},
            "pass-args": {"t": "MetaBool", "c": true}
          }}
        }}
      }},
      "tags": {"t": "MetaList", "c": [{"t": "MetaString", "c": "a"}]}
    }}
  },
  "blocks": [
    {"t": "Div", "c": [["grid", ["card-grid"], [["columns", "2"], ["compact", "true"]]], [
      {"t": "Div", "c": [["", ["card"], [["style", "outlined"]]], [
        {"t": "Header", "c": [3, ["", [], []], [{"t": "Str", "c": "Alpha"}]]},
        {"t": "Para", "c": [{"t": "Str", "c": "Body"}, {"t": "SoftBreak"}, {"t": "Emph", "c": [{"t": "Str", "c": "text"}]}]},
        {"t": "HorizontalRule"},
        {"t": "Plain", "c": [{"t": "Code", "c": [["", [], []], "x := 1"]}]}
      ]]}
    ]]},
    {"t": "Para", "c": [{"t": "Span", "c": [["", ["badge"], []], [{"t": "Str", "c": "New"}]]}, {"t": "LineBreak"}, {"t": "RawInline", "c": ["html", "<br>"]}]},
    {"t": "BulletList", "c": [[{"t": "Plain", "c": [{"t": "Str", "c": "item"}]}]]},
    {"t": "RawBlock", "c": ["typst", "#pagebreak()"]}
  ]
}`

func TestDecodeModelsComponentNodes(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, []int{1, 23, 1}, doc.APIVersion)
	require.Len(t, doc.Blocks, 4)

	grid := doc.Blocks[0]
	require.Equal(t, document.TypeDiv, grid.Type)
	require.Equal(t, "grid", grid.ID)
	require.Equal(t, []string{"card-grid"}, grid.Classes)
	require.Equal(t, "2", grid.AttrString("columns"))
	compact, ok := grid.Attr("compact")
	require.True(t, ok)
	require.True(t, compact.IsBool)

	card := grid.Children[0]
	require.True(t, card.HasClass("card"))
	require.Len(t, card.Children, 4)
	require.True(t, card.Children[0].IsHeading())
	require.Equal(t, 3, card.Children[0].Level)
	require.Equal(t, "Alpha", card.Children[0].PlainText())
	require.Equal(t, "Body text", card.Children[1].PlainText())
	require.True(t, card.Children[2].IsRule())
	require.Equal(t, "x := 1", card.Children[3].PlainText())

	p := doc.Blocks[1]
	require.Equal(t, document.TypeSpan, p.Children[0].Type)
	require.Equal(t, document.KindInline, p.Children[0].Kind)
	require.Equal(t, document.TypeBreak, p.Children[1].Type)
	require.Equal(t, "html", p.Children[2].Format)

	list := doc.Blocks[2]
	require.Equal(t, document.TypeCompound, list.Type)
	require.Equal(t, "BulletList", list.Tag)
	require.Len(t, list.Children, 1)
	require.Equal(t, document.TypeSlot, list.Children[0].Type)
	require.Equal(t, document.KindContainer, list.Children[0].Kind)
	require.Equal(t, document.TypePlain, list.Children[0].Children[0].Type)
	require.Equal(t, "item", list.PlainText())

	emph := card.Children[1].Children[2]
	require.Equal(t, document.TypeCompound, emph.Type)
	require.Equal(t, document.KindInline, emph.Children[0].Kind)

	require.Equal(t, document.TypeRawBlock, doc.Blocks[3].Type)
	require.Equal(t, "#pagebreak()", doc.Blocks[3].Text)
}

func TestDecodeMetadata(t *testing.T) {
	t.Parallel()

	doc, err := DecodeBytes([]byte(sampleDocument))
	require.NoError(t, err)

	require.Equal(t, "Report 2024", doc.Meta["title"])
	semtheme, ok := doc.Meta["semtheme"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []any{"a"}, semtheme["tags"])

	badge := semtheme["components"].(map[string]any)["inline"].(map[string]any)["badge"].(map[string]any)
	require.Equal(t, "pill", badge["function"])
	require.Equal(t, true, badge["pass-args"])
}

func TestRoundTripPreservesDocument(t *testing.T) {
	t.Parallel()

	doc, err := DecodeBytes([]byte(sampleDocument))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, doc))
	require.JSONEq(t, sampleDocument, buf.String())
}

const tableCell = `[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Span","c":[["",["badge"],[]],[{"t":"Str","c":"ok"}]]}]}]]`

var nestedDocument = `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[
  {"t":"OrderedList","c":[[3,{"t":"Decimal"},{"t":"Period"}],[[{"t":"Plain","c":[{"t":"Str","c":"one"}]}],[{"t":"Plain","c":[{"t":"Str","c":"two"}]}]]]},
  {"t":"BlockQuote","c":[{"t":"Div","c":[["",["panel"],[]],[{"t":"Para","c":[{"t":"Str","c":"quoted"}]}]]}]},
  {"t":"Table","c":[["",[],[]],[null,[]],[[{"t":"AlignDefault"},{"t":"ColWidthDefault"}]],[["",[],[]],[]],
    [[["",[],[]],0,[],[[["",[],[]],[` + tableCell + `]]]]],[["",[],[]],[]]]},
  {"t":"Para","c":[{"t":"Link","c":[["",[],[]],[{"t":"Strong","c":[{"t":"Str","c":"go"}]}],["https://example.com",""]]},
    {"t":"Note","c":[{"t":"Para","c":[{"t":"Str","c":"aside"}]}]},
    {"t":"Code","c":[["",[],[]],"x"]}]}
]}`

func TestDecodeEntersNestingNodes(t *testing.T) {
	t.Parallel()

	doc, err := DecodeBytes([]byte(nestedDocument))
	require.NoError(t, err)

	list := doc.Blocks[0]
	require.Equal(t, "OrderedList", list.Tag)
	require.Len(t, list.Children, 2)
	require.Equal(t, "one\ntwo", list.PlainText())

	quote := doc.Blocks[1]
	require.Equal(t, document.TypeCompound, quote.Type)
	require.True(t, quote.Children[0].Children[0].HasClass("panel"))

	table := doc.Blocks[2]
	require.Equal(t, "Table", table.Tag)
	require.Len(t, table.Children, 2, "caption body and the one cell")
	cell := table.Children[1]
	require.Equal(t, document.KindContainer, cell.Kind)
	badge := cell.Children[0].Children[0]
	require.True(t, badge.HasClass("badge"))

	para := doc.Blocks[3]
	link := para.Children[0]
	require.Equal(t, document.TypeCompound, link.Type)
	require.Equal(t, "go", link.PlainText())
	require.Equal(t, document.TypeCompound, link.Children[0].Children[0].Type)
	note := para.Children[1]
	require.Equal(t, document.KindInline, note.Kind)
	require.Equal(t, document.KindContainer, note.Children[0].Kind)
	require.Equal(t, document.TypeOpaque, para.Children[2].Type)
	require.Equal(t, "gox", para.PlainText(), "notes are dropped")
}

func TestRoundTripPreservesNestingNodes(t *testing.T) {
	t.Parallel()

	doc, err := DecodeBytes([]byte(nestedDocument))
	require.NoError(t, err)

	data, err := EncodeBytes(doc)
	require.NoError(t, err)
	require.JSONEq(t, nestedDocument, string(data))
}

func TestEncodeReplacesSlotContent(t *testing.T) {
	t.Parallel()

	doc, err := DecodeBytes([]byte(nestedDocument))
	require.NoError(t, err)

	cell := doc.Blocks[2].Children[1]
	cell.Children[0].Children[0] = document.NewRawInline("typst", "#badge[ok]")

	data, err := EncodeBytes(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `{"t":"Plain","c":[{"t":"RawInline","c":["typst","#badge[ok]"]}]}`)
	require.Contains(t, string(data), `[3,{"t":"Decimal"},{"t":"Period"}]`)
}

func TestDecodeRejectsMalformedNestingNodes(t *testing.T) {
	t.Parallel()

	_, err := DecodeBytes([]byte(`{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"OrderedList","c":[[1,{"t":"Decimal"},{"t":"Period"}]]}]}`))
	var structural *semerrors.StructuralError
	require.ErrorAs(t, err, &structural)
	require.Equal(t, "blocks[0]", structural.Element)
}

func TestEncodeGeneratedRawNodes(t *testing.T) {
	t.Parallel()

	doc := &document.Document{Blocks: []*document.Element{
		document.NewRawBlock("typst", `#card-grid()`),
		{Kind: document.KindContainer, Type: document.TypePara, Children: []*document.Element{
			document.NewRawInline("html", `<span class="sem-badge">x</span>`),
		}},
	}}

	data, err := EncodeBytes(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{
	  "pandoc-api-version": [1, 23, 1],
	  "meta": {},
	  "blocks": [
	    {"t": "RawBlock", "c": ["typst", "#card-grid()"]},
	    {"t": "Para", "c": [{"t": "RawInline", "c": ["html", "<span class=\"sem-badge\">x</span>"]}]}
	  ]
	}`, string(data))
}

func TestDecodeRejectsMalformedStructures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		element string
	}{
		{
			name:    "div without content",
			input:   `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Div","c":[["",[],[]]]}]}`,
			element: "blocks[0]",
		},
		{
			name:    "nested header with bad level",
			input:   `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Div","c":[["",[],[]],[{"t":"Header","c":["x",["",[],[]],[]]}]]}]}`,
			element: "blocks[0].children[0]",
		},
		{
			name:    "attribute pair with three entries",
			input:   `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Div","c":[["",[],[["a","b","c"]]],[]]}]}`,
			element: "blocks[0]",
		},
		{
			name:    "missing blocks",
			input:   `{"pandoc-api-version":[1,23,1],"meta":{}}`,
			element: "document",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeBytes([]byte(tc.input))
			require.Error(t, err)
			var structural *semerrors.StructuralError
			require.ErrorAs(t, err, &structural)
			require.Equal(t, tc.element, structural.Element)
		})
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := DecodeBytes([]byte(`{"blocks": [`))
	var parseErr *semerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}
