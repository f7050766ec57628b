package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

func TestTypstStringEscapesQuotesAndBackslashes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`plain`:          `"plain"`,
		`say "hi"`:       `"say \"hi\""`,
		`C:\path`:        `"C:\\path"`,
		`\"`:             `"\\\""`,
		"naïve — 日本語":    `"naïve — 日本語"`,
		"line\nbreak #x": "\"line\nbreak #x\"",
	}
	for input, want := range cases {
		require.Equal(t, want, TypstString(input), input)
	}
}

func TestTypstStringRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{``, `"`, `\`, `a\"b`, `\\"\\`, `end\`, `"quoted" and \escaped\`}
	for _, input := range inputs {
		require.Equal(t, input, UnescapeTypstString(TypstString(input)), input)
	}
}

func TestTypstMarkupEscapesSpecials(t *testing.T) {
	t.Parallel()

	require.Equal(t, `\#1 \*new\* \[beta\]`, TypstMarkup("#1 *new* [beta]"))
	require.Equal(t, "Ünïcode", TypstMarkup("Ünïcode"))
}

func TestTypstValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "true", TypstValue(document.BoolValue(true)))
	require.Equal(t, `"42"`, TypstValue(document.StringValue("42")))
	require.Equal(t, `rgb("#ff8800")`, TypstValue(document.StringValue("#ff8800")))
	require.Equal(t, `"#zz"`, TypstValue(document.StringValue("#zz")))
	require.Equal(t, `"red"`, TypstValue(document.StringValue("red")), "colour names are bare only in colour fields")
}

func TestTypstFieldValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "red", TypstFieldValue("color", document.StringValue("red")))
	require.Equal(t, `"success"`, TypstFieldValue("color", document.StringValue("success")))
	require.Equal(t, `rgb("#abc")`, TypstFieldValue("colour", document.StringValue("#abc")))
	require.Equal(t, `"outlined"`, TypstFieldValue("style", document.StringValue("outlined")))
	require.Equal(t, "false", TypstFieldValue("color", document.BoolValue(false)))
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	require.Equal(t, "&amp;lt; &lt;b&gt; &quot;q&quot; &#39;s&#39;", EscapeHTML(`&lt; <b> "q" 's'`))
	require.Equal(t, "日本語", EscapeHTML("日本語"))
}

func TestClassName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sem-card", ClassName("sem", "card", "", ""))
	require.Equal(t, "sem-card__title", ClassName("sem", "card", "title", ""))
	require.Equal(t, "sem-card--outlined", ClassName("sem", "card", "", "Outlined"))
	require.Equal(t, "sem-card__footer--ff0000", ClassName("sem", "card", "footer", "#FF0000"))
	require.Equal(t, "badge--light-blue", ClassName("", "badge", "", "light blue"))
}

func TestDataAttribute(t *testing.T) {
	t.Parallel()

	require.Equal(t, "data-icon", DataAttribute("icon"))
	require.Equal(t, "data-max-value", DataAttribute("Max Value"))
	require.Equal(t, "", DataAttribute("!!"))
}
