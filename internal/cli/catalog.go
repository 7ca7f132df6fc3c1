package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	cat "github.com/matzehuels/flowforge/pkg/catalog"
)

// catalogCommand creates the catalog inspection command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect node type catalogs",
	}

	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogShowCommand())

	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand() *cobra.Command {
	var catalogPaths []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories and node types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadCatalog(catalogPaths)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			for _, name := range slices.Sorted(maps.Keys(reg.Categories)) {
				category := reg.Categories[name]
				fmt.Println(StyleTitle.Render(name))
				for _, typ := range slices.Sorted(maps.Keys(category.Nodes)) {
					def := category.Nodes[typ]
					line := "  " + StyleValue.Render(typ)
					if def.Title != "" && def.Title != typ {
						line += " " + StyleDim.Render(def.Title)
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&catalogPaths, "catalog", "c", nil, "catalog document (repeatable, merged in order)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand() *cobra.Command {
	var catalogPaths []string

	cmd := &cobra.Command{
		Use:   "show [category/type]",
		Short: "Show one node type definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, typ, ok := strings.Cut(args[0], "/")
			if !ok {
				return fmt.Errorf("expected category/type, got %q", args[0])
			}

			reg, err := loadCatalog(catalogPaths)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			def, err := reg.Lookup(category, typ)
			if err != nil {
				return err
			}

			printKeyValue("Type", category+"/"+typ)
			printKeyValue("Title", def.Title)
			if def.Description != "" {
				printKeyValue("Description", def.Description)
			}
			if def.Value != nil {
				printKeyValue("Value", fmt.Sprintf("%s (default: %v)", def.Value.Type, def.Value.Default))
			}

			printPorts("Inputs", def.Inputs)
			printPorts("Outputs", def.Outputs)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&catalogPaths, "catalog", "c", nil, "catalog document (repeatable, merged in order)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func printPorts(label string, ports []cat.PortDef) {
	if len(ports) == 0 {
		return
	}
	fmt.Println(StyleTitle.Render(label))
	for _, p := range ports {
		line := "  " + StyleValue.Render(p.Type)
		if p.Name != "" {
			line += " " + p.Name
		}
		if p.Implicit {
			line += " " + StyleDim.Render("(implicit)")
		}
		fmt.Println(line)
	}
}
