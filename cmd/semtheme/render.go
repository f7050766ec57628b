package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/semtheme/internal/app/filter"
)

type renderOptions struct {
	from   string
	to     string
	input  string
	output string
	prefix string
	diff   bool
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Rewrite a pandoc JSON or HTML document outside of pandoc",
		Example: "  semtheme render --to typst -i report.json -o report.typst.json\n" +
			"  semtheme render --from html --to html5 -i page.html -o page.out.html\n" +
			"  semtheme render --to html5 --diff -i report.json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Input format: pandoc or html (default: from the input extension)")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Target format ("+formatList()+")")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "Input file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "CSS class prefix for html output")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a diff of the input against the rewritten document")

	return cmd
}

func runRender(cmd *cobra.Command, flags *rootFlags, opts *renderOptions) error {
	from, err := inputFormat(opts.from, opts.input)
	if err != nil {
		return newCommandError("render document", "choosing the input format", err, "Use --from pandoc or --from html.")
	}

	var in io.Reader = cmd.InOrStdin()
	if opts.input != "-" {
		file, err := os.Open(opts.input)
		if err != nil {
			return newCommandError("render document", fmt.Sprintf("opening input %q", opts.input), err, "Check that the file exists and you have permission to read it.")
		}
		defer file.Close()
		in = file
	}

	out := &deferredFile{path: opts.output, stdout: cmd.OutOrStdout()}
	err = runDocument(cmd, flags, documentOptions{
		operation: "render document",
		from:      from,
		target:    opts.to,
		prefix:    opts.prefix,
		input:     in,
		output:    out,
		diff:      opts.diff,
	})
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = newCommandError("render document", fmt.Sprintf("writing output %q", opts.output), closeErr, "Check that the output destination is writable.")
	}
	return err
}

func inputFormat(flag, path string) (filter.InputFormat, error) {
	switch strings.ToLower(flag) {
	case "pandoc", "json":
		return filter.FromPandoc, nil
	case "html":
		return filter.FromHTML, nil
	case "":
	default:
		return "", fmt.Errorf("unknown input format %q", flag)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return filter.FromHTML, nil
	}
	return filter.FromPandoc, nil
}

// deferredFile creates its file on first write, so a failed run leaves no
// empty output behind. Later writes append to the same file.
type deferredFile struct {
	path   string
	stdout io.Writer
	file   *os.File
}

func (d *deferredFile) Write(p []byte) (int, error) {
	if d.path == "-" || d.path == "" {
		return d.stdout.Write(p)
	}
	if d.file == nil {
		file, err := os.Create(d.path)
		if err != nil {
			return 0, err
		}
		d.file = file
	}
	return d.file.Write(p)
}

// Close closes the file if one was created.
func (d *deferredFile) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
