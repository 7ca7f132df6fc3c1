// Package render exports flow graphs as Graphviz diagrams.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowforge/pkg/catalog"
	"github.com/matzehuels/flowforge/pkg/flow"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes port names and the node's value in labels.
	// When false, only title and ID are shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format. Exec links render as solid
// edges, data links as dashed edges tinted with the registry color of the
// producing port's type. The resulting DOT string can be rendered with
// [RenderSVG].
func ToDOT(g *flow.Graph, opts Options) string {
	cat := g.Catalog()

	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
		if color := cat.CategoryColor(n.Category); color != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		fmt.Fprintf(&buf, "  n%d -> n%d%s;\n", l.From.Node, l.To.Node, edgeAttrs(g, l))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *flow.Node, detailed bool) string {
	label := fmt.Sprintf("%s #%d", n.Title, n.ID)
	if !detailed {
		return label
	}

	var parts []string
	if n.HasValue() {
		parts = append(parts, fmt.Sprintf("value: %v", n.Value))
	}
	for _, p := range n.Inputs {
		if p.Name != "" {
			parts = append(parts, "in: "+p.Name)
		}
	}
	for _, p := range n.Outputs {
		if p.Name != "" {
			parts = append(parts, "out: "+p.Name)
		}
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func edgeAttrs(g *flow.Graph, l *flow.Link) string {
	kind, ok := g.PortKind(l.From)
	if !ok || kind == catalog.KindExec {
		return ""
	}

	attrs := []string{"style=dashed"}
	if dt, ok := g.Catalog().TypeInfo(kind); ok && dt.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", dt.Color))
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin, which keeps downstream embedding simple.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
