package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowforge/pkg/document"
	"github.com/matzehuels/flowforge/pkg/render"
)

// exportCommand creates the export command for rendering graph diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		catalogPaths []string
		format       string
		output       string
		detailed     bool
	)

	cmd := &cobra.Command{
		Use:   "export [graph file]",
		Short: "Export a graph as a Graphviz diagram",
		Long: `Export a graph document as a Graphviz diagram.

Exec links render as solid edges and data links as dashed edges tinted with
the registry color of the producing port's type. Supported formats are "dot"
(the Graphviz source) and "svg" (rendered via the embedded Graphviz engine).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], catalogPaths, format, output, detailed)
		},
	}

	cmd.Flags().StringArrayVarP(&catalogPaths, "catalog", "c", nil, "catalog document (repeatable, merged in order)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include port names and values in node labels")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, catalogPaths []string, format, output string, detailed bool) error {
	cat, err := loadCatalog(catalogPaths)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	doc, err := document.Load(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	g, warnings, err := document.Import(cat, doc)
	if err != nil {
		return fmt.Errorf("restore graph: %w", err)
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}

	dot := render.ToDOT(g, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render SVG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (want dot or svg)", format)
	}

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = base + "." + format
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Export complete")
	printFile(output)
	printStats(g.NodeCount(), g.LinkCount(), false)
	return nil
}
