package pandoc

import (
	"strings"

	json "github.com/goccy/go-json"
)

// blockTags end with a line break when stringified so adjacent blocks do not run together.
var blockTags = map[string]bool{
	"Para": true, "Plain": true, "Header": true, "CodeBlock": true, "LineBlock": true,
}

// stringifyRaw flattens an undecoded pandoc node to plain text the way
// pandoc.utils.stringify does: Str/Code/Math contribute their text, spaces
// and breaks become whitespace, notes and raw content are dropped.
func stringifyRaw(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	var b strings.Builder
	stringifyValue(&b, v)
	return strings.TrimSpace(b.String())
}

func stringifyValue(b *strings.Builder, v any) {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			stringifyValue(b, item)
		}
	case map[string]any:
		tag, _ := val["t"].(string)
		if tag == "" {
			return
		}
		stringifyNode(b, tag, val["c"])
	}
}

func stringifyNode(b *strings.Builder, tag string, c any) {
	switch tag {
	case "Str", "MetaString":
		if s, ok := c.(string); ok {
			b.WriteString(s)
		}
	case "Space", "SoftBreak":
		b.WriteByte(' ')
	case "LineBreak":
		b.WriteByte('\n')
	case "Code", "Math", "CodeBlock":
		if parts, ok := c.([]any); ok && len(parts) == 2 {
			if s, ok := parts[1].(string); ok {
				b.WriteString(s)
			}
		}
	case "Quoted":
		if parts, ok := c.([]any); ok && len(parts) == 2 {
			b.WriteByte('"')
			stringifyValue(b, parts[1])
			b.WriteByte('"')
		}
	case "Link", "Image", "Span", "Div", "Cite":
		// The content sits second in all of these: [attr|citations, inlines, ...].
		if parts, ok := c.([]any); ok && len(parts) >= 2 {
			stringifyValue(b, parts[1])
		}
	case "Header":
		if parts, ok := c.([]any); ok && len(parts) == 3 {
			stringifyValue(b, parts[2])
		}
	case "Note", "RawInline", "RawBlock", "HorizontalRule":
	default:
		stringifyValue(b, c)
	}
	if blockTags[tag] {
		b.WriteByte('\n')
	}
}
