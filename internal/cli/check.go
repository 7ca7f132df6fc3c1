package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowforge/pkg/document"
)

// checkCommand creates the check command for validating graph documents.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		catalogPaths []string
		fix          bool
	)

	cmd := &cobra.Command{
		Use:   "check [graph file]",
		Short: "Validate a graph document against a catalog",
		Long: `Validate a graph document against a node type catalog.

Check loads the graph the same way generate does and reports every entity
that would be skipped or repaired: nodes with unknown types, connections
with unresolvable endpoints, and links the connection rules no longer
permit. Nothing is written unless --fix is given, in which case the
repaired graph is written back to the input file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(args[0], catalogPaths, fix)
		},
	}

	cmd.Flags().StringArrayVarP(&catalogPaths, "catalog", "c", nil, "catalog document (repeatable, merged in order)")
	cmd.Flags().BoolVar(&fix, "fix", false, "write the repaired graph back to the input file")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (c *CLI) runCheck(input string, catalogPaths []string, fix bool) error {
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

	if len(warnings) == 0 {
		printSuccess("Graph is valid")
		printStats(g.NodeCount(), g.LinkCount(), false)
		return nil
	}

	printWarning("%d problem(s) found", len(warnings))
	for _, w := range warnings {
		printDetail("%s", w)
	}

	if !fix {
		printNewline()
		printNextStep("Repair", "flowforge check --fix "+input)
		return fmt.Errorf("graph has %d problem(s)", len(warnings))
	}

	if err := document.Save(document.Export(g), input); err != nil {
		return fmt.Errorf("write repaired graph: %w", err)
	}
	printSuccess("Repaired graph written")
	printFile(input)
	printStats(g.NodeCount(), g.LinkCount(), false)
	return nil
}
