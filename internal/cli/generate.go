package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowforge/pkg/cache"
	"github.com/matzehuels/flowforge/pkg/codegen"
	"github.com/matzehuels/flowforge/pkg/document"
	"github.com/matzehuels/flowforge/pkg/observability"
)

// generateCommand creates the generate command for compiling graphs to code.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		catalogPaths []string
		output       string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "generate [graph file]",
		Short: "Compile a graph document into code",
		Long: `Compile a graph document into target-language source text.

The generate command loads one or more catalog documents (merged in order),
restores the graph against them, and expands the catalog's code templates
starting from every entry node. Entities the document references but the
catalog no longer defines are skipped with a warning.

Results are cached locally keyed on the exact input files, so repeated runs
with unchanged inputs are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], catalogPaths, output, noCache)
		},
	}

	cmd.Flags().StringArrayVarP(&catalogPaths, "catalog", "c", nil, "catalog document (repeatable, merged in order)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

// runGenerate loads the inputs, compiles the graph, and writes the result.
func (c *CLI) runGenerate(ctx context.Context, input string, catalogPaths []string, output string, noCache bool) error {
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

	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	key, err := inputsKey(append(catalogPaths, input))
	if err != nil {
		return err
	}

	var code string
	cached := false
	if data, ok, getErr := store.Get(ctx, key); getErr == nil && ok {
		code = string(data)
		cached = true
	}
	if !cached {
		p := newProgress(c.Logger)
		observability.Compiler().OnGenerateStart(ctx, g.NodeCount(), g.LinkCount())
		start := time.Now()

		code, err = codegen.New(g).Generate()
		observability.Compiler().OnGenerateComplete(ctx, g.NodeCount(), len(code), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		p.done(fmt.Sprintf("Generated %d lines", strings.Count(code, "\n")))

		if err := store.Set(ctx, key, []byte(code), 0); err != nil {
			c.Logger.Debug("cache write failed", "err", err)
		}
	}

	if output == "" {
		fmt.Print(code)
		return nil
	}
	if err := os.WriteFile(output, []byte(code), 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Generation complete")
	printFile(output)
	printStats(g.NodeCount(), g.LinkCount(), cached)
	return nil
}

// inputsKey derives the cache key from the raw bytes of every input file.
func inputsKey(paths []string) (string, error) {
	inputs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", p, err)
		}
		inputs = append(inputs, data)
	}
	return cache.GenerationKey(inputs...), nil
}
