package component

import (
	"fmt"

	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/record"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// DefaultColumns is used when a grid has no usable columns attribute.
const DefaultColumns = 3

type cardGridExtraction struct {
	call    backend.Call
	columns int
	cards   []record.Card
}

func (e cardGridExtraction) Empty() bool { return len(e.cards) == 0 }

type cardGridHandler struct{}

func (cardGridHandler) Extract(in Input) (Extraction, error) {
	grid := in.Element
	ex := cardGridExtraction{
		call: backend.Call{
			Class:    in.Entry.Class,
			Function: in.Entry.Config.Function,
			Attrs:    grid.Attrs,
			PassArgs: true,
		},
		columns: intAttr(grid, "columns", DefaultColumns),
	}

	for i, child := range grid.Children {
		if !child.HasClass(ClassCard) {
			continue
		}
		path := childPath(in.Path, i)
		if !child.IsContainer() {
			return nil, semerrors.NewStructuralError(path,
				fmt.Sprintf("%q label on a %s element inside %s; cards must be block containers", ClassCard, child.Type, in.Entry.Class), nil)
		}
		card := ExtractCard(child, path)
		if card.Empty() {
			continue
		}
		ex.cards = append(ex.cards, card)
	}
	return ex, nil
}

func (cardGridHandler) Serialise(ex Extraction, syn backend.Syntax) (*Output, error) {
	grid, ok := ex.(cardGridExtraction)
	if !ok {
		return nil, wrongExtraction(ClassCardGrid, ex)
	}
	return &Output{Open: blockInstruction(syn, syn.CardGrid(grid.call, grid.columns, grid.cards))}, nil
}

// ExtractCard reads one card container. The first heading is the title, a
// horizontal rule switches to the footer, and every other child is content.
func ExtractCard(el *document.Element, path string) record.Card {
	var (
		title   string
		titled  bool
		footer  bool
		content []*document.Element
		foot    []*document.Element
	)
	for _, child := range el.Children {
		switch {
		case child.IsHeading() && !titled:
			title = child.PlainText()
			titled = true
		case child.IsRule():
			footer = true
		case footer:
			foot = append(foot, child)
		default:
			content = append(content, child)
		}
	}

	card := record.Card{
		Title:   title,
		Content: document.BlocksText(content),
		Footer:  document.BlocksText(foot),
		Colour:  firstAttr(el, "color", "colour"),
	}
	if style, ok := record.ParseCardStyle(firstAttr(el, "style")); ok {
		card.Style = style
	}
	if card.Title != "" {
		card.ID = ElementID(el, path, ClassCard, "title")
	}
	return card
}

func childPath(parent string, i int) string {
	return fmt.Sprintf("%s.children[%d]", parent, i)
}
