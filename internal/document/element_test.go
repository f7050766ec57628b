package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func para(children ...*Element) *Element {
	return &Element{Kind: KindContainer, Type: TypePara, Children: children}
}

func space() *Element { return &Element{Kind: KindText, Type: TypeSpace} }

func TestPlainTextFlattensInlines(t *testing.T) {
	t.Parallel()

	span := &Element{Kind: KindInline, Type: TypeSpan, Children: []*Element{NewText("bold")}}
	p := para(NewText("Hello"), space(), span, space(), NewRawInline("html", "<b>"), NewText("!"))

	require.Equal(t, "Hello bold !", p.PlainText())
}

func TestBlocksTextSeparatesParagraphs(t *testing.T) {
	t.Parallel()

	blocks := []*Element{
		para(NewText("one")),
		{Kind: KindContainer, Type: TypeRule},
		para(NewText("two")),
	}
	require.Equal(t, "one\n\ntwo", BlocksText(blocks))

	div := &Element{Kind: KindContainer, Type: TypeDiv, Children: blocks}
	require.Equal(t, "one\n\ntwo", div.PlainText())
}

func TestOpaqueElementsUseTheirText(t *testing.T) {
	t.Parallel()

	code := &Element{Kind: KindInline, Type: TypeOpaque, Text: "x := 1"}
	require.Equal(t, "run x := 1", para(NewText("run"), space(), code).PlainText())
}

func TestAttrsSetReplacesInPlace(t *testing.T) {
	t.Parallel()

	attrs := Attrs{{Key: "a", Value: StringValue("1")}, {Key: "b", Value: StringValue("2")}}
	updated := attrs.Set("a", BoolValue(true))

	require.Len(t, updated, 2)
	require.Equal(t, "a", updated[0].Key)
	require.True(t, updated[0].Value.IsBool)
	require.Equal(t, "1", attrs[0].Value.Str, "original list is untouched")

	appended := attrs.Set("c", StringValue("3"))
	require.Len(t, appended, 3)
	require.Equal(t, Attrs{{Key: "b", Value: StringValue("2")}}, attrs.Without("a"))
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	cases := map[string]Value{
		"true":  BoolValue(true),
		"false": BoolValue(false),
		"True":  StringValue("True"),
		"42":    StringValue("42"),
	}
	for input, want := range cases {
		require.Equal(t, want, ParseValue(input), input)
		require.Equal(t, input, ParseValue(input).String())
	}
}

func TestElementHelpers(t *testing.T) {
	t.Parallel()

	div := &Element{
		Kind:    KindContainer,
		Type:    TypeDiv,
		Classes: []string{"card", "featured"},
		Attrs:   Attrs{{Key: "style", Value: StringValue("outlined")}},
	}
	require.True(t, div.HasClass("featured"))
	require.False(t, div.HasClass("Card"))
	require.True(t, div.IsContainer())
	require.Equal(t, "outlined", div.AttrString("style"))
	require.Equal(t, "", div.AttrString("color"))

	clone := div.Clone()
	clone.Classes[0] = "changed"
	require.Equal(t, "card", div.Classes[0])

	var nilElement *Element
	require.False(t, nilElement.HasClass("card"))
	require.True(t, nilElement.IsBlank())
	require.Equal(t, "", nilElement.PlainText())
	require.Equal(t, "container", KindContainer.String())
}
