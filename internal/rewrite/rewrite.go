// Package rewrite walks a document once, top-down, and replaces every element
// whose classes resolve to a component with backend instructions.
package rewrite

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/component"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/logger"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// Stats counts what a pass did.
type Stats struct {
	// Visited is the number of elements inspected.
	Visited int
	// Replaced is the number of elements turned into instructions.
	Replaced int
	// PassedThrough is the number of elements no class resolved for.
	PassedThrough int
	// Skipped is the number of matched elements left untouched because
	// extraction produced nothing, such as a grid without cards.
	Skipped int
	// Classes counts replacements per matched class.
	Classes map[string]int
}

// Driver rewrites documents for one backend. A nil Syntax leaves documents unchanged.
type Driver struct {
	Mapping *component.Mapping
	Syntax  backend.Syntax
	Logger  *logger.Logger
}

// New builds a driver. A nil mapping uses the built-in table.
func New(mapping *component.Mapping, syn backend.Syntax, log *logger.Logger) *Driver {
	if mapping == nil {
		mapping = component.NewMapping()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Driver{Mapping: mapping, Syntax: syn, Logger: log}
}

// Rewrite transforms doc in place. Generated instructions are never revisited;
// children threaded through a wrapper are. Unmatched elements are descended into.
func (d *Driver) Rewrite(ctx context.Context, doc *document.Document) (Stats, error) {
	stats := Stats{Classes: map[string]int{}}
	if doc == nil || d.Syntax == nil {
		return stats, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	w := walker{driver: d, ctx: ctx, stats: &stats}
	blocks, err := w.list(doc.Blocks, "blocks[%d]", "")
	if err != nil {
		return stats, err
	}
	doc.Blocks = blocks
	return stats, nil
}

type walker struct {
	driver *Driver
	ctx    context.Context
	stats  *Stats
}

// list rewrites a sibling sequence. format builds each child's path from the
// parent path and index.
func (w walker) list(nodes []*document.Element, format, parent string) ([]*document.Element, error) {
	out := make([]*document.Element, 0, len(nodes))
	for i, node := range nodes {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}
		path := parent + fmt.Sprintf(format, i)
		replaced, err := w.visit(node, path)
		if err != nil {
			return nil, err
		}
		out = append(out, replaced...)
	}
	return out, nil
}

func (w walker) visit(node *document.Element, path string) ([]*document.Element, error) {
	if node == nil {
		return nil, nil
	}
	if node.Type == document.TypeSlot {
		return w.descend(node, path)
	}
	w.stats.Visited++

	entry, ok := w.driver.Mapping.ResolveElement(node)
	if !ok {
		w.stats.PassedThrough++
		return w.descend(node, path)
	}

	out, err := component.Render(component.Input{
		Element: node,
		Entry:   entry,
		Path:    path,
		Mapping: w.driver.Mapping,
	}, w.driver.Syntax)
	if err != nil {
		return nil, err
	}
	if out == nil {
		w.stats.Skipped++
		w.driver.Logger.WithFields(map[string]any{"class": entry.Class, "path": path}).
			Debug("component produced no output; element left unchanged")
		return w.descend(node, path)
	}

	wantInline := node.Kind == document.KindInline
	if (out.Open.Level == component.InlineLevel) != wantInline {
		return nil, semerrors.NewComponentError(entry.Class,
			fmt.Errorf("instruction level does not match element at %s", path))
	}

	if len(out.Threaded) > 0 {
		threaded, err := w.list(out.Threaded, ".children[%d]", path)
		if err != nil {
			return nil, err
		}
		out.Threaded = threaded
	}

	w.stats.Replaced++
	w.stats.Classes[entry.Class]++
	w.driver.Logger.WithFields(map[string]any{
		"class":    entry.Class,
		"function": entry.Config.Function,
		"variant":  string(entry.Variant),
		"path":     path,
	}).Debug("component rewritten")
	return out.Nodes(), nil
}

// descend rewrites the children of an unmatched element, including the slots
// of compound nodes such as lists and emphasis. Opaque nodes keep their
// original payload and are not entered.
func (w walker) descend(node *document.Element, path string) ([]*document.Element, error) {
	if node.Type == document.TypeOpaque || node.IsRaw() || len(node.Children) == 0 {
		return []*document.Element{node}, nil
	}
	children, err := w.list(node.Children, ".children[%d]", path)
	if err != nil {
		return nil, err
	}
	node.Children = children
	return []*document.Element{node}, nil
}
