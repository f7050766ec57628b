package backend

import (
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/semtheme/internal/codec"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/record"
)

// modifierKeys are attributes rendered as BEM modifiers instead of data-* attributes.
var modifierKeys = map[string]bool{
	"style": true, "variant": true, "color": true, "colour": true, "size": true,
}

// roles gives generic containers an ARIA role where one applies.
var roles = map[string]string{
	"divider": "separator",
}

// HTMLSyntax renders markup for the standard and presentation DOM backends.
type HTMLSyntax struct {
	Prefix string
	// Presentation adds the --presentation root modifier and honours
	// incremental=true by marking items as reveal fragments.
	Presentation bool
}

// Backend implements Syntax.
func (s HTMLSyntax) Backend() Backend {
	if s.Presentation {
		return RevealJS
	}
	return HTML
}

// Wrapper renders an opening div carrying the component classes and a closing div.
func (s HTMLSyntax) Wrapper(call Call) (string, string) {
	tag := s.componentTag("div", call)
	if role, ok := roles[call.Class]; ok {
		tag.set("role", role)
	}
	return tag.open(), "</div>"
}

// InlineCall renders a span holding the escaped content.
func (s HTMLSyntax) InlineCall(call Call, content string) string {
	return s.componentTag("span", call).open() + codec.EscapeHTML(content) + "</span>"
}

// CardGrid renders the grid container with one card element per record.
func (s HTMLSyntax) CardGrid(call Call, columns int, cards []record.Card) string {
	cols := strconv.Itoa(columns)
	root := s.rootTag("div", call.Class)
	root.set("style", "--"+s.Prefix+"-columns: "+cols+";")
	root.set("data-columns", cols)

	incremental := s.incremental(call.Attrs)

	var b strings.Builder
	b.WriteString(root.open())
	b.WriteString("\n")
	for _, card := range cards {
		b.WriteString(s.card(card, incremental))
		b.WriteString("\n")
	}
	b.WriteString("</div>")
	return b.String()
}

func (s HTMLSyntax) card(c record.Card, incremental bool) string {
	tag := newTag("div", codec.ClassName(s.Prefix, "card", "", ""))
	if c.Style != "" {
		tag.addClass(codec.ClassName(s.Prefix, "card", "", string(c.Style)))
	}
	s.applyColour(tag, "card", c.Colour)
	if incremental {
		tag.addClass("fragment")
	}
	if c.Title != "" && c.ID != "" {
		tag.set("aria-labelledby", c.ID)
	}

	var b strings.Builder
	b.WriteString(tag.open())
	if c.Title != "" {
		title := newTag("div", codec.ClassName(s.Prefix, "card", "title", ""))
		if c.ID != "" {
			title.set("id", c.ID)
		}
		b.WriteString(title.open())
		b.WriteString(codec.EscapeHTML(c.Title))
		b.WriteString("</div>")
	}
	if c.Content != "" {
		b.WriteString(newTag("div", codec.ClassName(s.Prefix, "card", "content", "")).open())
		b.WriteString(paragraphs(c.Content))
		b.WriteString("</div>")
	}
	if c.Footer != "" {
		b.WriteString(newTag("div", codec.ClassName(s.Prefix, "card", "footer", "")).open())
		b.WriteString(codec.EscapeHTML(c.Footer))
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	return b.String()
}

// Timeline renders an ordered list with one item per event.
func (s HTMLSyntax) Timeline(call Call, orientation record.Orientation, events []record.Event) string {
	root := s.rootTag("ol", "timeline")
	root.addClass(codec.ClassName(s.Prefix, "timeline", "", string(orientation)))
	incremental := s.incremental(call.Attrs)

	var b strings.Builder
	b.WriteString(root.open())
	b.WriteString("\n")
	for _, e := range events {
		item := newTag("li", codec.ClassName(s.Prefix, "timeline", "event", ""))
		if incremental {
			item.addClass("fragment")
		}
		b.WriteString(item.open())
		if e.Date != "" {
			b.WriteString(newTag("time", codec.ClassName(s.Prefix, "timeline", "date", "")).open())
			b.WriteString(codec.EscapeHTML(e.Date))
			b.WriteString("</time>")
		}
		if e.Title != "" {
			b.WriteString(newTag("span", codec.ClassName(s.Prefix, "timeline", "title", "")).open())
			b.WriteString(codec.EscapeHTML(e.Title))
			b.WriteString("</span>")
		}
		if e.Description != "" {
			b.WriteString(newTag("div", codec.ClassName(s.Prefix, "timeline", "description", "")).open())
			b.WriteString(paragraphs(e.Description))
			b.WriteString("</div>")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>")
	return b.String()
}

// ProgressWrapper renders an accessible progress bar; the element's children
// follow the bar inside the same wrapper.
func (s HTMLSyntax) ProgressWrapper(call Call, p record.Progress) (string, string) {
	root := s.rootTag("div", call.Class)
	root.set("role", "progressbar")
	root.set("aria-valuenow", formatNumber(p.Value))
	root.set("aria-valuemin", formatNumber(p.Min))
	root.set("aria-valuemax", formatNumber(p.Max))
	if p.Label != "" && p.ID != "" {
		root.set("aria-labelledby", p.ID)
	}

	var b strings.Builder
	b.WriteString(root.open())
	b.WriteString(newTag("div", codec.ClassName(s.Prefix, call.Class, "track", "")).open())
	bar := newTag("div", codec.ClassName(s.Prefix, call.Class, "bar", ""))
	bar.set("style", "width: "+formatNumber(p.Percent())+"%;")
	b.WriteString(bar.open())
	b.WriteString("</div></div>")
	if p.Label != "" {
		label := newTag("span", codec.ClassName(s.Prefix, call.Class, "label", ""))
		if p.ID != "" {
			label.set("id", p.ID)
		}
		b.WriteString(label.open())
		b.WriteString(codec.EscapeHTML(p.Label))
		b.WriteString("</span>")
	}
	return b.String(), "</div>"
}

// componentTag builds the root tag of a generic component: block class,
// modifiers from style-like attributes and data-* for everything else.
func (s HTMLSyntax) componentTag(name string, call Call) *tag {
	t := s.rootTag(name, call.Class)
	if !call.PassArgs {
		return t
	}
	for _, attr := range call.Attrs {
		switch {
		case codec.IsColourField(attr.Key) && !attr.Value.IsBool:
			s.applyColour(t, call.Class, attr.Value.Str)
		case modifierKeys[attr.Key] && !attr.Value.IsBool:
			t.addClass(codec.ClassName(s.Prefix, call.Class, "", attr.Value.Str))
		default:
			if key := codec.DataAttribute(attr.Key); key != "" {
				t.set(key, attr.Value.String())
			}
		}
	}
	return t
}

func (s HTMLSyntax) rootTag(name, block string) *tag {
	t := newTag(name, codec.ClassName(s.Prefix, block, "", ""))
	if s.Presentation {
		t.addClass(codec.ClassName(s.Prefix, block, "", "presentation"))
	}
	return t
}

// applyColour turns hex colours into a custom property and tokens into a modifier.
func (s HTMLSyntax) applyColour(t *tag, block, colour string) {
	switch {
	case colour == "":
	case codec.IsHexColour(colour):
		t.appendStyle("--" + s.Prefix + "-" + block + "-color: " + colour + ";")
	default:
		t.addClass(codec.ClassName(s.Prefix, block, "", colour))
	}
}

func (s HTMLSyntax) incremental(attrs document.Attrs) bool {
	if !s.Presentation {
		return false
	}
	v, ok := attrs.Get("incremental")
	return ok && v.IsBool && v.Bool
}

func paragraphs(text string) string {
	parts := strings.Split(text, "\n\n")
	if len(parts) == 1 {
		return codec.EscapeHTML(text)
	}
	var b strings.Builder
	for _, p := range parts {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(codec.EscapeHTML(p))
		b.WriteString("</p>")
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// tag accumulates an element's classes and attributes in insertion order.
type tag struct {
	name    string
	classes []string
	attrs   []document.Attr
}

func newTag(name string, classes ...string) *tag {
	return &tag{name: name, classes: classes}
}

func (t *tag) addClass(class string) {
	for _, c := range t.classes {
		if c == class {
			return
		}
	}
	t.classes = append(t.classes, class)
}

func (t *tag) set(key, value string) {
	for i, a := range t.attrs {
		if a.Key == key {
			t.attrs[i].Value = document.StringValue(value)
			return
		}
	}
	t.attrs = append(t.attrs, document.Attr{Key: key, Value: document.StringValue(value)})
}

func (t *tag) appendStyle(decl string) {
	for i, a := range t.attrs {
		if a.Key == "style" {
			t.attrs[i].Value = document.StringValue(a.Value.Str + " " + decl)
			return
		}
	}
	t.set("style", decl)
}

func (t *tag) open() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(t.name)
	if len(t.classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(codec.EscapeHTML(strings.Join(t.classes, " ")))
		b.WriteString(`"`)
	}
	for _, a := range t.attrs {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(codec.EscapeHTML(a.Value.String()))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

var _ Syntax = HTMLSyntax{}
