package component

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/record"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

var datedHeading = regexp.MustCompile(`^([^:]+):\s*(.+)$`)

// SplitHeading splits "date: title" on the first colon. Text without a colon
// is all title.
func SplitHeading(text string) (date, title string) {
	text = strings.TrimSpace(text)
	m := datedHeading.FindStringSubmatch(text)
	if m == nil {
		return "", text
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

type timelineExtraction struct {
	call        backend.Call
	orientation record.Orientation
	events      []record.Event
}

func (e timelineExtraction) Empty() bool { return len(e.events) == 0 }

type timelineHandler struct{}

func (timelineHandler) Extract(in Input) (Extraction, error) {
	el := in.Element
	orientation := record.Vertical
	if in.Entry.Class == ClassHorizontalTimeline || el.HasClass(ClassHorizontalTimeline) ||
		strings.EqualFold(firstAttr(el, "orientation"), string(record.Horizontal)) {
		orientation = record.Horizontal
	}

	entry := in.Entry
	if orientation == record.Horizontal && entry.Class != ClassHorizontalTimeline && in.Mapping != nil {
		if horizontal, ok := in.Mapping.Lookup(Container, ClassHorizontalTimeline); ok {
			entry.Config = horizontal.Config
		}
	}

	events, err := ExtractEvents(el, in.Path, entry.Class)
	if err != nil {
		return nil, err
	}
	return timelineExtraction{
		call: backend.Call{
			Class:    entry.Class,
			Function: entry.Config.Function,
			Attrs:    el.Attrs.Without("orientation"),
			PassArgs: true,
		},
		orientation: orientation,
		events:      events,
	}, nil
}

func (timelineHandler) Serialise(ex Extraction, syn backend.Syntax) (*Output, error) {
	tl, ok := ex.(timelineExtraction)
	if !ok {
		return nil, wrongExtraction(ClassTimeline, ex)
	}
	return &Output{Open: blockInstruction(syn, syn.Timeline(tl.call, tl.orientation, tl.events))}, nil
}

// ExtractEvents reads the events of a timeline. Children labelled "event" take
// date and title from their attributes; bare headings are split with
// SplitHeading and collect the blocks that follow them as description.
func ExtractEvents(el *document.Element, path, class string) ([]record.Event, error) {
	var (
		events  []record.Event
		pending *record.Event
		desc    []*document.Element
	)
	flush := func() {
		if pending == nil {
			return
		}
		pending.Description = document.BlocksText(desc)
		if !pending.Empty() {
			events = append(events, *pending)
		}
		pending, desc = nil, nil
	}

	for i, child := range el.Children {
		switch {
		case child.HasClass(ClassEvent):
			if !child.IsContainer() {
				return nil, semerrors.NewStructuralError(childPath(path, i),
					fmt.Sprintf("%q label on a %s element inside %s; events must be block containers", ClassEvent, child.Type, class), nil)
			}
			flush()
			if ev := extractEvent(child); !ev.Empty() {
				events = append(events, ev)
			}
		case child.IsHeading():
			flush()
			date, title := SplitHeading(child.PlainText())
			pending = &record.Event{Date: date, Title: title}
		case pending != nil:
			desc = append(desc, child)
		}
	}
	flush()
	return events, nil
}

func extractEvent(el *document.Element) record.Event {
	ev := record.Event{
		Date:  firstAttr(el, "date"),
		Title: firstAttr(el, "title"),
	}
	rest := el.Children
	if ev.Title == "" && len(rest) > 0 && rest[0].IsHeading() {
		date, title := SplitHeading(rest[0].PlainText())
		if ev.Date == "" {
			ev.Date = date
		} else if date != "" {
			title = date + ": " + title
		}
		ev.Title = title
		rest = rest[1:]
	}
	ev.Description = document.BlocksText(rest)
	return ev
}
