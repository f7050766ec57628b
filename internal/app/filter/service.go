// Package filter coordinates one document run: configuration, decoding,
// backend selection, rewriting and encoding.
package filter

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/internal/component"
	"github.com/alexisbeaulieu97/semtheme/internal/config"
	"github.com/alexisbeaulieu97/semtheme/internal/document"
	"github.com/alexisbeaulieu97/semtheme/internal/document/htmldoc"
	"github.com/alexisbeaulieu97/semtheme/internal/document/pandoc"
	"github.com/alexisbeaulieu97/semtheme/internal/logger"
	"github.com/alexisbeaulieu97/semtheme/internal/rewrite"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// InputFormat names a document front end.
type InputFormat string

const (
	FromPandoc InputFormat = "pandoc"
	FromHTML   InputFormat = "html"
)

// Request configures a single run.
type Request struct {
	Input  io.Reader
	Output io.Writer
	From   InputFormat
	// Target is the output format name as pandoc spells it; empty falls back
	// to the configured backend.
	Target     string
	ConfigPath string
	// Prefix overrides the configured DOM class prefix.
	Prefix string
	Logger *logger.Logger
}

// Result describes a completed run.
type Result struct {
	Backend  backend.Backend
	Stats    rewrite.Stats
	Config   *config.Config
	Duration time.Duration
}

// Service runs documents through the rewrite pipeline.
type Service struct{}

// NewService constructs a filter service.
func NewService() *Service {
	return &Service{}
}

// Run decodes the input, rewrites it for the target backend and encodes the
// result. Metadata configuration wins over the file, which wins over built-ins.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := req.Logger
	if log == nil {
		log = logger.Nop()
	}
	if req.Input == nil || req.Output == nil {
		return nil, fmt.Errorf("filter request needs an input and an output")
	}
	from := req.From
	if from == "" {
		from = FromPandoc
	}

	start := time.Now()

	fileCfg, err := loadFile(req.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := decode(from, req.Input)
	if err != nil {
		return nil, err
	}

	metaCfg, err := config.FromMetadata(doc.Meta)
	if err != nil {
		return nil, err
	}
	cfg := config.Merge(fileCfg, metaCfg)

	target := req.Target
	if target == "" {
		target = cfg.Backend
	}
	b := backend.Detect(target)
	if from == FromHTML && b == backend.Typst {
		return nil, semerrors.NewValidationError("target", "html input can only be rendered for html or revealjs", nil)
	}

	prefix := req.Prefix
	if prefix == "" {
		prefix = cfg.Prefix
	}

	runLog := log.WithFields(map[string]any{"backend": b.String(), "from": string(from)})
	syn, ok := backend.New(b, backend.Options{Prefix: prefix})
	if !ok {
		runLog.WithField("target", target).Debug("no backend for target format; passing document through")
	}

	driver := rewrite.New(component.NewMapping(cfg.Table()), syn, runLog)
	stats, err := driver.Rewrite(ctx, doc)
	if err != nil {
		runLog.Error(err, "rewrite failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := encode(from, req.Output, doc); err != nil {
		return nil, err
	}

	result := &Result{Backend: b, Stats: stats, Config: cfg, Duration: time.Since(start)}
	runLog.WithFields(map[string]any{
		"visited":        stats.Visited,
		"replaced":       stats.Replaced,
		"passed_through": stats.PassedThrough,
		"skipped":        stats.Skipped,
		"duration_ms":    result.Duration.Milliseconds(),
	}).Info("document rewritten")
	return result, nil
}

// Mapping builds the merged class mapping for a configuration file, as used
// for documents without metadata overrides.
func (s *Service) Mapping(configPath string) (*component.Mapping, *config.Config, error) {
	cfg, err := loadFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return component.NewMapping(cfg.Table()), cfg, nil
}

func loadFile(path string) (*config.Config, error) {
	if path == "" {
		return nil, nil
	}
	return config.ParseConfig(path)
}

func decode(from InputFormat, r io.Reader) (*document.Document, error) {
	switch from {
	case FromPandoc:
		return pandoc.Decode(r)
	case FromHTML:
		return htmldoc.Parse(r)
	}
	return nil, semerrors.NewValidationError("from", fmt.Sprintf("unknown input format %q", from), nil)
}

func encode(from InputFormat, w io.Writer, doc *document.Document) error {
	if from == FromHTML {
		return htmldoc.Write(w, doc)
	}
	return pandoc.Encode(w, doc)
}
