// Package backend selects the output backend for a render and provides the
// per-backend syntax strategy components generate instructions with.
//
// Backends are mutually exclusive for one document build. Detect maps a
// pandoc output format name to a Backend once; New returns the matching
// Syntax, which every component then uses without further branching.
package backend

import "strings"

// Backend identifies an output syntax.
type Backend int

const (
	// None means the output format is not supported; components pass through.
	None Backend = iota
	Typst
	HTML
	RevealJS
)

func (b Backend) String() string {
	switch b {
	case Typst:
		return "typst"
	case HTML:
		return "html"
	case RevealJS:
		return "revealjs"
	default:
		return "none"
	}
}

// IsDOM reports whether the backend produces HTML markup.
func (b Backend) IsDOM() bool {
	return b == HTML || b == RevealJS
}

// RawFormat is the raw-node format name instructions are tagged with.
func (b Backend) RawFormat() string {
	switch b {
	case Typst:
		return "typst"
	case HTML, RevealJS:
		return "html"
	default:
		return ""
	}
}

// Detect maps a pandoc format name to a backend. Extension suffixes such as
// "+smart" or "-raw_html" are ignored.
func Detect(format string) Backend {
	name := strings.ToLower(strings.TrimSpace(format))
	if i := strings.IndexAny(name, "+-"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "typst":
		return Typst
	case "html", "html4", "html5":
		return HTML
	case "revealjs":
		return RevealJS
	default:
		return None
	}
}

// Names lists the format names Detect recognises.
func Names() []string {
	return []string{"typst", "html", "html4", "html5", "revealjs"}
}

// Options tune the syntax strategies.
type Options struct {
	// Prefix is the CSS class prefix for markup output.
	Prefix string
}

// DefaultPrefix is the CSS class prefix used when none is configured.
const DefaultPrefix = "sem"

// New returns the syntax strategy for b, or false when b is None.
func New(b Backend, opts Options) (Syntax, bool) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	switch b {
	case Typst:
		return TypstSyntax{}, true
	case HTML:
		return HTMLSyntax{Prefix: prefix}, true
	case RevealJS:
		return HTMLSyntax{Prefix: prefix, Presentation: true}, true
	default:
		return nil, false
	}
}
