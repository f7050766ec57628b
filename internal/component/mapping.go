package component

import (
	"sort"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

// Entry is a resolved class: its label, namespace, configuration and handler variant.
type Entry struct {
	Class     string
	Namespace Namespace
	Config    ComponentConfig
	Variant   Variant
	// Overridden is true when the configuration came from a user table.
	Overridden bool
}

// Mapping resolves class labels to entries. It is built once per document and
// only read afterwards.
type Mapping struct {
	builtin  Table
	override Table
}

// NewMapping layers the given tables over the built-ins. Later layers replace
// earlier ones key by key; an entry always replaces the whole configuration.
func NewMapping(layers ...Table) *Mapping {
	m := &Mapping{
		builtin: Builtins(),
		override: Table{
			Container: map[string]ComponentConfig{},
			Inline:    map[string]ComponentConfig{},
		},
	}
	for _, layer := range layers {
		for class, cfg := range layer.Container {
			m.override.Container[class] = cfg
		}
		for class, cfg := range layer.Inline {
			m.override.Inline[class] = cfg
		}
	}
	return m
}

// Lookup returns the entry for one class label, checking user overrides first.
func (m *Mapping) Lookup(ns Namespace, class string) (Entry, bool) {
	if cfg, ok := m.override.namespace(ns)[class]; ok {
		return Entry{Class: class, Namespace: ns, Config: cfg, Variant: VariantOf(class), Overridden: true}, true
	}
	if cfg, ok := m.builtin.namespace(ns)[class]; ok {
		return Entry{Class: class, Namespace: ns, Config: cfg, Variant: VariantOf(class)}, true
	}
	return Entry{}, false
}

// Resolve tests class labels in declaration order and returns the first match.
func (m *Mapping) Resolve(ns Namespace, classes []string) (Entry, bool) {
	for _, class := range classes {
		if entry, ok := m.Lookup(ns, class); ok {
			return entry, true
		}
	}
	return Entry{}, false
}

// ResolveElement resolves an element in its own namespace.
func (m *Mapping) ResolveElement(el *document.Element) (Entry, bool) {
	ns, ok := NamespaceOf(el)
	if !ok {
		return Entry{}, false
	}
	return m.Resolve(ns, el.Classes)
}

// Entries lists every resolvable class of a namespace sorted by label.
func (m *Mapping) Entries(ns Namespace) []Entry {
	seen := map[string]bool{}
	var classes []string
	for _, t := range []Table{m.override, m.builtin} {
		for class := range t.namespace(ns) {
			if !seen[class] {
				seen[class] = true
				classes = append(classes, class)
			}
		}
	}
	sort.Strings(classes)

	entries := make([]Entry, 0, len(classes))
	for _, class := range classes {
		entry, _ := m.Lookup(ns, class)
		entries = append(entries, entry)
	}
	return entries
}
