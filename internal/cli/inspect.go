package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/syssam/relgen/compiler/gen"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [schema.yaml]",
		Short: "Print the classes, collections and fields of a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			if len(args) == 1 {
				cfg.Schema = args[0]
			}
			g, err := plan(cfg)
			if err != nil {
				return err
			}
			renderGraph(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func renderGraph(w io.Writer, g *gen.Graph) {
	classes := table.NewWriter()
	classes.SetOutputMirror(w)
	classes.SetStyle(table.StyleLight)
	classes.AppendHeader(table.Row{"Class", "Collection", "Scalars", "Links"})
	for _, t := range g.Nodes {
		classes.AppendRow(table.Row{t.Name, t.Collection, len(t.Scalars()), len(t.Links())})
	}
	classes.Render()

	fields := table.NewWriter()
	fields.SetOutputMirror(w)
	fields.SetStyle(table.StyleLight)
	fields.AppendHeader(table.Row{"Class", "Field", "Type", "Fetch"})
	for _, t := range g.Nodes {
		for _, f := range t.Fields {
			fields.AppendRow(table.Row{t.Name, f.Name, fieldType(f), fetchMode(f)})
		}
	}
	fields.Render()
	_, _ = fmt.Fprintf(w, "(%d classes)\n", len(g.Nodes))
}

func fieldType(f *gen.Field) string {
	switch {
	case !f.IsLink():
		return f.Type.String()
	case f.Many():
		return "[]" + f.Target.Name
	default:
		return f.Target.Name
	}
}

func fetchMode(f *gen.Field) string {
	switch {
	case f.Eager():
		return "prefetch"
	case f.Lazy():
		return "lazy"
	default:
		return ""
	}
}
