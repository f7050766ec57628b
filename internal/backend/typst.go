package backend

import (
	"slices"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/semtheme/internal/codec"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/record"
)

// TypstSyntax renders typst function calls.
type TypstSyntax struct{}

// Backend implements Syntax.
func (TypstSyntax) Backend() Backend { return Typst }

// Wrapper renders "#fn(args)[" / "]", or "#fn[" / "]" without arguments.
func (s TypstSyntax) Wrapper(call Call) (string, string) {
	return "#" + call.Function + s.argumentList(call) + "[", "]"
}

// InlineCall renders "#fn(args)[content]" with content escaped as markup.
func (s TypstSyntax) InlineCall(call Call, content string) string {
	return "#" + call.Function + s.argumentList(call) + "[" + codec.TypstMarkup(content) + "]"
}

// CardGrid renders the grid call: columns, the grid's other attributes as
// named arguments, then one dictionary per card.
func (TypstSyntax) CardGrid(call Call, columns int, cards []record.Card) string {
	records := make([]record.Record, 0, len(cards))
	for _, c := range cards {
		records = append(records, c)
	}
	params := append([]string{"columns: " + strconv.Itoa(columns)}, namedArgs(call.Attrs, "columns")...)
	return recordCall(call.Function, params, records)
}

// Timeline renders the timeline call: orientation, the container's other
// attributes as named arguments, then one dictionary per event.
func (TypstSyntax) Timeline(call Call, orientation record.Orientation, events []record.Event) string {
	records := make([]record.Record, 0, len(events))
	for _, e := range events {
		records = append(records, e)
	}
	if orientation == "" {
		orientation = record.Vertical
	}
	params := append([]string{"orientation: " + codec.TypstString(string(orientation))}, namedArgs(call.Attrs, "orientation")...)
	return recordCall(call.Function, params, records)
}

// ProgressWrapper renders progress like any other container.
func (s TypstSyntax) ProgressWrapper(call Call, _ record.Progress) (string, string) {
	return s.Wrapper(call)
}

// argumentList returns "(k: v, ...)" when the call passes arguments, "()"
// when arguments are forced but none exist, and "" otherwise.
func (TypstSyntax) argumentList(call Call) string {
	if !call.PassArgs {
		return ""
	}
	return "(" + strings.Join(namedArgs(call.Attrs), ", ") + ")"
}

// namedArgs renders attributes as "key: value", leaving out skipped keys and
// keys that are not typst identifiers.
func namedArgs(attrs document.Attrs, skip ...string) []string {
	args := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		if !codec.IsTypstIdent(attr.Key) || slices.Contains(skip, attr.Key) {
			continue
		}
		args = append(args, attr.Key+": "+codec.TypstFieldValue(attr.Key, attr.Value))
	}
	return args
}

func recordCall(function string, params []string, records []record.Record) string {
	var b strings.Builder
	b.WriteString("#")
	b.WriteString(function)
	b.WriteString("(\n")
	for _, p := range params {
		b.WriteString("  ")
		b.WriteString(p)
		b.WriteString(",\n")
	}
	for _, r := range records {
		b.WriteString("  ")
		b.WriteString(dictionary(r.Fields()))
		b.WriteString(",\n")
	}
	b.WriteString(")")
	return b.String()
}

// dictionary renders fields as a typst dictionary literal.
func dictionary(fields []record.Field) string {
	if len(fields) == 0 {
		return "(:)"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+": "+typstRecordValue(f))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func typstRecordValue(f record.Field) string {
	if f.Name == "color" {
		return codec.TypstFieldValue(f.Name, f.Value)
	}
	if f.Value.IsBool {
		return f.Value.String()
	}
	return codec.TypstString(f.Value.Str)
}

var _ Syntax = TypstSyntax{}
