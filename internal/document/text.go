package document

import "strings"

// PlainText flattens an element to its text content. Spaces and breaks
// become single spaces; blocks inside a container are separated by blank lines.
func (e *Element) PlainText() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	e.writeText(&b)
	return strings.TrimSpace(b.String())
}

// BlocksText flattens a block sequence, separating blocks with a blank line.
func BlocksText(blocks []*Element) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if text := block.PlainText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (e *Element) writeText(b *strings.Builder) {
	switch e.Type {
	case TypeText:
		b.WriteString(e.Text)
	case TypeSpace:
		b.WriteByte(' ')
	case TypeBreak:
		b.WriteByte('\n')
	case TypeRawBlock, TypeRawInline, TypeRule:
	case TypeOpaque:
		b.WriteString(e.Text)
		for _, child := range e.Children {
			child.writeText(b)
		}
	case TypeDiv:
		b.WriteString(BlocksText(e.Children))
	case TypeCompound:
		e.writeCompoundText(b)
	case TypeSlot:
		if e.Kind == KindContainer {
			b.WriteString(BlocksText(e.Children))
			return
		}
		for _, child := range e.Children {
			child.writeText(b)
		}
	default:
		for _, child := range e.Children {
			child.writeText(b)
		}
	}
}

// writeCompoundText follows pandoc's stringify: quotes keep their marks,
// notes are dropped and block slots go on separate lines.
func (e *Element) writeCompoundText(b *strings.Builder) {
	switch e.Tag {
	case "Note":
		return
	case "Quoted":
		b.WriteByte('"')
		defer b.WriteByte('"')
	}
	for i, slot := range e.Children {
		if i > 0 && slot.Kind == KindContainer {
			b.WriteByte('\n')
		}
		slot.writeText(b)
	}
}
