// Package codec converts scalar values into backend literal syntax.
//
// Typst strings escape only backslash and double quote; HTML escaping covers
// the five markup-significant characters. Both leave every other rune,
// including non-ASCII text, untouched.
package codec

import (
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

var (
	typstStringEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	typstStringUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

	hexColour  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	typstIdent = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_-]*$`)
)

// IsTypstIdent reports whether s can be used as a typst identifier or named argument.
func IsTypstIdent(s string) bool {
	return typstIdent.MatchString(s)
}

// typstColours are typst's predefined colour bindings.
var typstColours = map[string]bool{
	"black": true, "gray": true, "silver": true, "white": true,
	"navy": true, "blue": true, "aqua": true, "teal": true,
	"eastern": true, "purple": true, "fuchsia": true, "maroon": true,
	"red": true, "orange": true, "yellow": true, "olive": true,
	"green": true, "lime": true,
}

// markupSpecials are characters with meaning in typst markup.
const markupSpecials = "\\#[]*_`$<>@=-+/~\"'"

// TypstString renders s as a typst string literal.
func TypstString(s string) string {
	return `"` + typstStringEscaper.Replace(s) + `"`
}

// UnescapeTypstString reverses TypstString. Input without surrounding quotes
// is unescaped as is.
func UnescapeTypstString(literal string) string {
	if len(literal) >= 2 && strings.HasPrefix(literal, `"`) && strings.HasSuffix(literal, `"`) {
		literal = literal[1 : len(literal)-1]
	}
	return typstStringUnescaper.Replace(literal)
}

// TypstMarkup escapes s for use inside a typst content block.
func TypstMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markupSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsHexColour reports whether s is a #rgb, #rgba, #rrggbb or #rrggbbaa colour.
func IsHexColour(s string) bool {
	return hexColour.MatchString(s)
}

// IsTypstColour reports whether s names one of typst's predefined colours.
func IsTypstColour(s string) bool {
	return typstColours[s]
}

// TypstColour renders a colour value: hex codes become rgb() calls, typst
// colour names stay bare identifiers, anything else is a quoted token the
// template resolves.
func TypstColour(s string) string {
	switch {
	case IsHexColour(s):
		return "rgb(" + TypstString(s) + ")"
	case IsTypstColour(s):
		return s
	default:
		return TypstString(s)
	}
}

// TypstValue renders an attribute value. Booleans pass through verbatim,
// colours are routed through TypstColour and every other string, numeric or
// not, stays quoted.
func TypstValue(v document.Value) string {
	if v.IsBool {
		return v.String()
	}
	if IsHexColour(v.Str) {
		return TypstColour(v.Str)
	}
	return TypstString(v.Str)
}

// TypstFieldValue renders a value for a named record field. Colour fields
// accept colour keywords as bare identifiers.
func TypstFieldValue(field string, v document.Value) string {
	if !v.IsBool && IsColourField(field) {
		return TypstColour(v.Str)
	}
	return TypstValue(v)
}

// IsColourField reports whether a field or attribute name holds a colour.
func IsColourField(name string) bool {
	switch name {
	case "color", "colour", "background", "fill", "stroke-color":
		return true
	}
	return false
}
