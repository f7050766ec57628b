package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/semtheme/internal/logger"
)

type rootFlags struct {
	configPath string
	verbose    bool
	logLevel   string
}

// newLogger writes to the command's stderr; stdout carries documents.
func (f *rootFlags) newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	level := f.logLevel
	if f.verbose {
		level = "debug"
	}
	out := cmd.ErrOrStderr()
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: isTerminal(out),
		Writer:        out,
	})
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "semtheme [FORMAT]",
		Short: "semtheme turns semantic divs and spans into typst or HTML components",
		Long: "semtheme rewrites semantic containers and inline spans of a pandoc document into\n" +
			"backend instructions. Run as a pandoc JSON filter, the target format is the\n" +
			"first argument: pandoc --filter semtheme -t typst.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// pandoc invokes filters with the target format as the only argument.
			if len(args) == 0 {
				return cmd.Help()
			}
			return runFilter(cmd, flags, args[0])
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", os.Getenv("SEMTHEME_CONFIG"), "Path to a YAML or TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newFilterCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newComponentsCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
