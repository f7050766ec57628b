package codec

import (
	"regexp"
	"strings"
)

// A Replacer makes a single pass, so the entities it emits are never escaped twice.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var modifierInvalid = regexp.MustCompile(`[^a-z0-9-]+`)

// EscapeHTML escapes & < > " ' as HTML entities. The same escaping is used for
// text content and attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ClassName builds a prefix-block__element--modifier class name. Element and
// modifier are optional.
func ClassName(prefix, block, element, modifier string) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('-')
	}
	b.WriteString(block)
	if element != "" {
		b.WriteString("__")
		b.WriteString(element)
	}
	if modifier = Modifier(modifier); modifier != "" {
		b.WriteString("--")
		b.WriteString(modifier)
	}
	return b.String()
}

// Modifier normalises a free-form token into a class-name modifier.
func Modifier(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	token = strings.TrimPrefix(token, "#")
	token = modifierInvalid.ReplaceAllString(token, "-")
	return strings.Trim(token, "-")
}

// DataAttribute turns an attribute key into a data-* attribute name.
func DataAttribute(key string) string {
	key = Modifier(key)
	if key == "" {
		return ""
	}
	return "data-" + key
}
