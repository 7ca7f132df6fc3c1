// Package pkg provides the core libraries for Flowforge graph compilation.
//
// # Overview
//
// Flowforge turns visual programming graphs into source text. Graphs are
// built from node types declared in external catalog documents; connections
// carry either control flow (exec links) or values (data links); a template
// compiler expands the catalog's code snippets into a complete program. The
// pkg directory is organized into these areas:
//
//  1. [catalog] - Node type registry loaded from JSON/TOML/YAML documents
//  2. [flow] - The graph itself: nodes, ports, links, connection rules
//  3. [codegen] - The template compiler
//  4. [document] - Graph document serialization and forgiving restore
//  5. [render] - Graphviz DOT/SVG export
//  6. [cache] - Content-addressed cache for generated artifacts
//  7. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through Flowforge:
//
//	Catalog documents (JSON/TOML/YAML)
//	         ↓
//	    [catalog] package (merge + validate)
//	         ↓
//	    [flow] package (graph construction + connection rules)
//	         ↓
//	    [codegen] package (entry discovery + template expansion)
//	         ↓
//	    Generated source text
//
// # Quick Start
//
// Load a catalog, build a graph, and generate code:
//
//	import (
//	    "github.com/matzehuels/flowforge/pkg/catalog"
//	    "github.com/matzehuels/flowforge/pkg/codegen"
//	    "github.com/matzehuels/flowforge/pkg/flow"
//	)
//
//	// 1. Load the node type catalog
//	cat, _ := catalog.Load("nodes.json")
//
//	// 2. Build a graph
//	g := flow.New(cat)
//	start, _ := g.AddNode(0, 0, "flow", "start")
//	print, _ := g.AddNode(200, 0, "flow", "print")
//	g.Connect(
//	    flow.PortRef{Node: start.ID, Dir: flow.Output, Index: 0},
//	    flow.PortRef{Node: print.ID, Dir: flow.Input, Index: 0},
//	)
//
//	// 3. Generate code
//	code, _ := codegen.New(g).Generate()
//
// # Main Packages
//
// [catalog] - The node type registry. Documents merge additively (later
// files add categories or overwrite individual node types), and every port
// definition is validated on the way in. The reserved port kinds "exec" and
// "data" drive connection legality.
//
// [flow] - Graph state: nodes instantiated from catalog definitions with
// per-instance port records, links addressed by (node, direction, index),
// monotonic never-reused ID counters, and the connection validator
// (CanConnect, Connect, ValidateConnections). Also provides layout and
// hit-testing primitives for interactive frontends.
//
// [codegen] - Single-pass recursive compiler. Entry nodes are nodes whose
// exec input is unconnected; exec recursion is guarded by a shared visited
// set, data resolution by an active set that reports cycles instead of
// diverging.
//
// [document] - Serialization boundary. Restoring a graph skips entities
// that no longer resolve and reports them, then runs the repair pass so the
// restored graph always satisfies the connection invariants.
//
// [render] - Diagram export via Graphviz (DOT text or embedded SVG
// rendering).
//
// [cache] - File-based cache keyed on SHA-256 of the exact input documents,
// used by the CLI to skip recompilation of unchanged graphs.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/flow/...     # Specific package
//	go test -run Example       # Examples only
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/catalog
// [flow]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/flow
// [codegen]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/codegen
// [document]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/document
// [render]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flowforge/pkg/buildinfo
package pkg
