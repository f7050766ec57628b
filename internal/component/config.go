package component

import "github.com/alexisbeaulieu97/semtheme/internal/document"

// Namespace separates container classes from inline classes. Each is resolved independently.
type Namespace int

const (
	Container Namespace = iota
	Inline
)

func (n Namespace) String() string {
	if n == Inline {
		return "inline"
	}
	return "container"
}

// NamespaceOf returns the namespace an element's classes are resolved in, or
// false for elements that cannot carry components.
func NamespaceOf(el *document.Element) (Namespace, bool) {
	switch el.Type {
	case document.TypeDiv:
		return Container, true
	case document.TypeSpan:
		return Inline, true
	}
	return 0, false
}

// ComponentConfig is the target of a semantic class.
type ComponentConfig struct {
	// Function is the target function name; markup output uses the class label instead.
	Function string
	// PassArgs forces an argument list even when the element has no attributes.
	PassArgs bool
}

// Variant is the closed set of handler kinds a class can dispatch to.
type Variant string

const (
	VariantGeneric  Variant = "generic"
	VariantCardGrid Variant = "card-grid"
	VariantTimeline Variant = "timeline"
	VariantProgress Variant = "progress"
)

// Built-in class labels.
const (
	ClassValueBox           = "value-box"
	ClassPanel              = "panel"
	ClassProgress           = "progress"
	ClassDivider            = "divider"
	ClassExecutiveSummary   = "executive-summary"
	ClassCardGrid           = "card-grid"
	ClassTimeline           = "timeline"
	ClassHorizontalTimeline = "horizontal-timeline"
	ClassBadge              = "badge"

	// ClassCard and ClassEvent mark the sub-containers of grids and timelines.
	ClassCard  = "card"
	ClassEvent = "event"
)

// builtinVariants maps built-in classes with specialised extraction to their
// variant; every other class is generic.
var builtinVariants = map[string]Variant{
	ClassCardGrid:           VariantCardGrid,
	ClassTimeline:           VariantTimeline,
	ClassHorizontalTimeline: VariantTimeline,
	ClassProgress:           VariantProgress,
}

// VariantOf returns the handler variant for a class label.
func VariantOf(class string) Variant {
	if v, ok := builtinVariants[class]; ok {
		return v
	}
	return VariantGeneric
}

// Table is one layer of class configuration, split by namespace.
type Table struct {
	Container map[string]ComponentConfig
	Inline    map[string]ComponentConfig
}

func (t Table) namespace(ns Namespace) map[string]ComponentConfig {
	if ns == Inline {
		return t.Inline
	}
	return t.Container
}

// Builtins returns a fresh copy of the built-in table. Function names default
// to the class label.
func Builtins() Table {
	container := []string{
		ClassValueBox, ClassPanel, ClassProgress, ClassDivider,
		ClassExecutiveSummary, ClassCardGrid, ClassTimeline, ClassHorizontalTimeline,
	}
	t := Table{
		Container: make(map[string]ComponentConfig, len(container)),
		Inline:    map[string]ComponentConfig{ClassBadge: {Function: ClassBadge}},
	}
	for _, class := range container {
		t.Container[class] = ComponentConfig{Function: class}
	}
	return t
}
