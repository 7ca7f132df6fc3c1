// Package cli implements the flowforge command-line interface.
//
// This package provides commands for generating code from flow graph
// documents, checking and repairing graphs, exporting diagrams, and
// inspecting node type catalogs. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Compile a graph document into target-language code
//   - check: Validate a graph document and report repairs
//   - export: Render a graph as a Graphviz DOT or SVG diagram
//   - catalog: Inspect the loaded node type catalog
//   - cache: Manage the generation cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowforge/pkg/buildinfo"
	"github.com/matzehuels/flowforge/pkg/cache"
	"github.com/matzehuels/flowforge/pkg/catalog"
)

// appName is the application name used for directories and display.
const appName = "flowforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowforge",
		Short:        "Flowforge compiles visual flow graphs into code",
		Long:         `Flowforge is a CLI tool for working with visual programming graphs: it validates graph documents against a node type catalog and compiles them into target-language source text via the catalog's code templates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadCatalog loads and merges all catalog documents, in order.
func loadCatalog(paths []string) (*catalog.Catalog, error) {
	return catalog.Load(paths...)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flowforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
