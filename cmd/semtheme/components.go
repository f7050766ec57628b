package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/semtheme/internal/app/filter"
	"github.com/alexisbeaulieu97/semtheme/internal/component"
)

type componentsOptions struct {
	jsonOutput bool
}

func newComponentsCmd(flags *rootFlags) *cobra.Command {
	opts := &componentsOptions{}

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List the semantic classes and the functions they map to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponents(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runComponents(cmd *cobra.Command, flags *rootFlags, opts *componentsOptions) error {
	mapping, _, err := filter.NewService().Mapping(flags.configPath)
	if err != nil {
		return newCommandError("list components", "loading configuration", err, suggestionFor(err))
	}

	groups := []componentGroup{
		{Namespace: component.Container, Entries: mapping.Entries(component.Container)},
		{Namespace: component.Inline, Entries: mapping.Entries(component.Inline)},
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.jsonOutput:
		return renderComponentsJSON(out, groups)
	case isTerminal(out):
		return renderComponentsStyled(out, groups)
	}
	return renderComponentsTable(out, groups)
}

type componentGroup struct {
	Namespace component.Namespace
	Entries   []component.Entry
}

type componentJSON struct {
	Class      string `json:"class"`
	Namespace  string `json:"namespace"`
	Function   string `json:"function"`
	PassArgs   bool   `json:"pass_args"`
	Handler    string `json:"handler"`
	Overridden bool   `json:"overridden"`
}

type componentsJSONPayload struct {
	Version    string          `json:"version"`
	Count      int             `json:"count"`
	Components []componentJSON `json:"components"`
}

func renderComponentsJSON(w io.Writer, groups []componentGroup) error {
	payload := componentsJSONPayload{Version: "1.0", Components: []componentJSON{}}
	for _, g := range groups {
		for _, e := range g.Entries {
			payload.Components = append(payload.Components, componentJSON{
				Class:      e.Class,
				Namespace:  g.Namespace.String(),
				Function:   e.Config.Function,
				PassArgs:   e.Config.PassArgs,
				Handler:    string(e.Variant),
				Overridden: e.Overridden,
			})
		}
	}
	payload.Count = len(payload.Components)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderComponentsTable(w io.Writer, groups []componentGroup) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "CLASS\tNAMESPACE\tFUNCTION\tARGS\tHANDLER\tSOURCE")
	for _, g := range groups {
		for _, e := range g.Entries {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Class, g.Namespace, e.Config.Function, argsLabel(e.Config.PassArgs), e.Variant, sourceLabel(e.Overridden))
		}
	}
	return writer.Flush()
}

func renderComponentsStyled(w io.Writer, groups []componentGroup) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("semtheme components"))
	b.WriteString("\n")

	for _, g := range groups {
		b.WriteString(sectionStyle.Render(strings.ToUpper(g.Namespace.String())))
		b.WriteString("\n")

		width := 0
		for _, e := range g.Entries {
			width = max(width, lipgloss.Width(e.Class))
		}
		column := lipgloss.NewStyle().Width(width + 2)

		b.WriteString(headerStyle.Render(column.Render("class") + "function"))
		b.WriteString("\n")
		for _, e := range g.Entries {
			line := classStyle.Inherit(column).Render(e.Class) + e.Config.Function
			if e.Config.PassArgs {
				line += mutedStyle.Render(" (always passes args)")
			}
			if e.Variant != component.VariantGeneric {
				line += mutedStyle.Render(" [" + string(e.Variant) + "]")
			}
			if e.Overridden {
				line += " " + overrideTag.Render("config")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func argsLabel(pass bool) string {
	if pass {
		return "always"
	}
	return "when set"
}

func sourceLabel(overridden bool) string {
	if overridden {
		return "config"
	}
	return "built-in"
}
