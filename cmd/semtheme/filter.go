package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/semtheme/internal/app/filter"
	"github.com/alexisbeaulieu97/semtheme/internal/backend"
	"github.com/alexisbeaulieu97/semtheme/pkg/diff"
	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

func newFilterCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [FORMAT]",
		Short: "Rewrite a pandoc JSON document read from stdin",
		Long: "filter reads a pandoc JSON document on stdin and writes the rewritten document\n" +
			"to stdout. FORMAT is the pandoc output format (" + formatList() + ");\n" +
			"without it the configured backend is used. Other formats pass through unchanged.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return runFilter(cmd, flags, target)
		},
	}
	return cmd
}

func runFilter(cmd *cobra.Command, flags *rootFlags, target string) error {
	return runDocument(cmd, flags, documentOptions{
		operation: "filter document",
		from:      filter.FromPandoc,
		target:    target,
		input:     cmd.InOrStdin(),
		output:    cmd.OutOrStdout(),
	})
}

type documentOptions struct {
	operation string
	from      filter.InputFormat
	target    string
	prefix    string
	input     io.Reader
	output    io.Writer
	// diff writes a line diff of input against the result instead of the result.
	diff bool
}

// runDocument buffers the result so a failed run writes nothing.
func runDocument(cmd *cobra.Command, flags *rootFlags, opts documentOptions) error {
	log, err := flags.newLogger(cmd)
	if err != nil {
		return newCommandError(opts.operation, "configuring logger", err, "Use one of debug, info, warn or error for --log-level.")
	}

	var original []byte
	input := opts.input
	if opts.diff {
		if original, err = io.ReadAll(opts.input); err != nil {
			return newCommandError(opts.operation, "reading input", err, "Check that the input is readable.")
		}
		input = bytes.NewReader(original)
	}

	var buf bytes.Buffer
	_, err = filter.NewService().Run(cmd.Context(), filter.Request{
		Input:      input,
		Output:     &buf,
		From:       opts.from,
		Target:     opts.target,
		ConfigPath: flags.configPath,
		Prefix:     opts.prefix,
		Logger:     log,
	})
	if err != nil {
		return newCommandError(opts.operation, describeFailure(err), err, suggestionFor(err))
	}

	result := buf.Bytes()
	if opts.diff {
		result = []byte(diff.Unified(readable(original, opts.from), readable(result, opts.from), "input", "output"))
	}

	if _, err := opts.output.Write(result); err != nil {
		return newCommandError(opts.operation, "writing output", err, "Check that the output destination is writable.")
	}
	return nil
}

// readable indents pandoc JSON so the diff has one value per line.
func readable(data []byte, from filter.InputFormat) []byte {
	if from != filter.FromPandoc {
		return data
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return data
	}
	out.WriteString("\n")
	return out.Bytes()
}

func describeFailure(err error) string {
	var (
		parseErr      *semerrors.ParseError
		validationErr *semerrors.ValidationError
		structuralErr *semerrors.StructuralError
		componentErr  *semerrors.ComponentError
	)
	switch {
	case errors.As(err, &parseErr):
		return fmt.Sprintf("reading %s", parseErr.Path)
	case errors.As(err, &validationErr):
		return "validating configuration"
	case errors.As(err, &structuralErr):
		return fmt.Sprintf("document structure at %s", structuralErr.Element)
	case errors.As(err, &componentErr):
		return fmt.Sprintf("rendering component %q", componentErr.Component)
	}
	return "running the pipeline"
}

func suggestionFor(err error) string {
	var (
		parseErr      *semerrors.ParseError
		validationErr *semerrors.ValidationError
		structuralErr *semerrors.StructuralError
	)
	switch {
	case errors.As(err, &parseErr) && errors.Is(err, os.ErrNotExist):
		return "Check that the file exists and you have permission to read it."
	case errors.As(err, &parseErr):
		return "Check the input syntax; filter input must be pandoc JSON (pandoc -t json)."
	case errors.As(err, &validationErr):
		return "Fix the configuration value named above and try again."
	case errors.As(err, &structuralErr):
		return "Cards and events must be divs (::: card / ::: event) directly inside their grid or timeline."
	}
	return "Re-run with --verbose for details."
}

func formatList() string {
	return strings.Join(backend.Names(), ", ")
}
