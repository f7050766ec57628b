// Package record holds the typed values component extractors pull out of a
// container before code generation. Records live for a single rewrite pass.
package record

import "github.com/alexisbeaulieu97/semtheme/internal/document"

// Field is one labelled entry of a serialised record.
type Field struct {
	Name  string
	Value document.Value
}

// Record is anything that serialises to an ordered list of labelled fields.
type Record interface {
	Fields() []Field
}

// CardStyle is the visual variant of a card.
type CardStyle string

const (
	CardStyleSubtle   CardStyle = "subtle"
	CardStyleOutlined CardStyle = "outlined"
	CardStyleFilled   CardStyle = "filled"
)

// ParseCardStyle returns the style for a known token.
func ParseCardStyle(s string) (CardStyle, bool) {
	switch CardStyle(s) {
	case CardStyleSubtle, CardStyleOutlined, CardStyleFilled:
		return CardStyle(s), true
	}
	return "", false
}

// Card is one card of a card grid. Empty strings mean the field is absent.
type Card struct {
	// ID anchors aria-labelledby in markup output; it is not serialised as a field.
	ID      string
	Title   string
	Content string
	Footer  string
	Style   CardStyle
	Colour  string
}

// Empty reports whether the card has none of title, content or footer.
func (c Card) Empty() bool {
	return c.Title == "" && c.Content == "" && c.Footer == ""
}

// Fields lists populated fields: title, content, footer, style, color.
func (c Card) Fields() []Field {
	fields := make([]Field, 0, 5)
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, Field{Name: name, Value: document.StringValue(value)})
		}
	}
	add("title", c.Title)
	add("content", c.Content)
	add("footer", c.Footer)
	add("style", string(c.Style))
	add("color", c.Colour)
	return fields
}

// Event is one entry of a timeline. Date and title are always serialised.
type Event struct {
	Date        string
	Title       string
	Description string
}

// Empty reports whether both date and title are empty.
func (e Event) Empty() bool {
	return e.Date == "" && e.Title == ""
}

// Fields lists date, title and, when present, description.
func (e Event) Fields() []Field {
	fields := []Field{
		{Name: "date", Value: document.StringValue(e.Date)},
		{Name: "title", Value: document.StringValue(e.Title)},
	}
	if e.Description != "" {
		fields = append(fields, Field{Name: "description", Value: document.StringValue(e.Description)})
	}
	return fields
}

// Orientation is the layout axis of a timeline.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Progress describes a progress indicator.
type Progress struct {
	ID    string
	Value float64
	Min   float64
	Max   float64
	Label string
}

// Percent returns the completed share clamped to [0, 100].
func (p Progress) Percent() float64 {
	span := p.Max - p.Min
	if span <= 0 {
		return 0
	}
	pct := (p.Value - p.Min) / span * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
