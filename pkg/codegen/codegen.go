// Package codegen compiles a flow graph into target-language text.
//
// Compilation is a single synchronous pass over the current graph snapshot:
// entry nodes (nodes whose exec input is unconnected) are discovered in
// creation order, each is expanded recursively along exec links with a shared
// visited set, and the non-empty blocks are joined under a header comment.
// Generate performs no mutation; callers must serialize graph mutation
// against an in-flight Generate call.
package codegen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/flowforge/pkg/catalog"
	"github.com/matzehuels/flowforge/pkg/errors"
	"github.com/matzehuels/flowforge/pkg/flow"
)

// unresolvedRe matches a leftover placeholder together with the newline and
// indentation in front of it, so stripping never leaves a blank stub line.
var unresolvedRe = regexp.MustCompile(`(?:\n[ \t]*)?\$\{[^}]+\}`)

// Generator compiles one graph. It is cheap to construct and single-use
// state (the visited set) is reset on every Generate call, so one Generator
// may be reused across calls.
type Generator struct {
	graph *flow.Graph
	now   func() time.Time

	// visited guards exec recursion: a node is expanded at most once per
	// Generate call, whichever entry reaches it first.
	visited map[int]bool

	// active tracks the data-resolution chain currently being expanded.
	// Revisiting a node on the same chain is a cyclic data dependency.
	active map[int]bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the timestamp source used for the generated header.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator for the given graph.
func New(graph *flow.Graph, opts ...Option) *Generator {
	g := &Generator{
		graph: graph,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate compiles the whole graph and returns the generated text.
//
// It fails with a NO_ENTRY_POINT error when the graph has no node whose exec
// input is unconnected, and with a CYCLIC_DATA error when value resolution
// runs into a data-link cycle. On error no partial output is returned.
func (g *Generator) Generate() (string, error) {
	g.visited = make(map[int]bool)
	g.active = make(map[int]bool)

	cat := g.graph.Catalog()

	var entries []*flow.Node
	for _, n := range g.graph.Nodes() {
		def, err := cat.Lookup(n.Category, n.Type)
		if err != nil {
			continue
		}
		if g.isEntry(n, def) {
			entries = append(entries, n)
		}
	}
	if len(entries) == 0 {
		return "", errors.New(errors.ErrCodeNoEntryPoint, "graph has no entry node")
	}

	var blocks []string
	for _, n := range entries {
		code, err := g.compile(n)
		if err != nil {
			return "", err
		}
		if code != "" {
			blocks = append(blocks, code)
		}
	}

	var b strings.Builder
	b.WriteString(g.header(cat))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n")
	return b.String(), nil
}

// OutputCode resolves the code produced by a single output port, following
// data links upstream. This is the expression-side entry point; exec
// recursion is not involved.
func (g *Generator) OutputCode(from flow.PortRef) (string, error) {
	g.active = make(map[int]bool)
	return g.outputCode(from)
}

// header renders the leading comment line using the catalog's comment style.
func (g *Generator) header(cat *catalog.Catalog) string {
	style := cat.CodeGen.CommentStyle
	if style == "" {
		style = "//"
	}
	return fmt.Sprintf("%s Generated by flowforge on %s",
		style, g.now().UTC().Format(time.RFC3339))
}

// isEntry reports whether the node roots a control-flow chain: its
// definition declares an exec input and no link terminates there. Implicit
// exec inputs cannot be connected, so nodes with one are always entries.
func (g *Generator) isEntry(n *flow.Node, def *catalog.NodeType) bool {
	for i, p := range n.Inputs {
		if p.IsExec() {
			_, linked := g.graph.LinkInto(flow.PortRef{Node: n.ID, Dir: flow.Input, Index: i})
			return !linked
		}
	}
	if in, ok := def.ExecInput(); ok && in.Implicit {
		return true
	}
	return false
}

// compile expands one node's exec template. Revisits contribute nothing; the
// guard is set on entry so mutually recursive exec paths terminate.
func (g *Generator) compile(n *flow.Node) (string, error) {
	if g.visited[n.ID] {
		return "", nil
	}
	g.visited[n.ID] = true

	def, err := g.graph.Catalog().Lookup(n.Category, n.Type)
	if err != nil {
		return "", nil
	}
	in, ok := def.ExecInput()
	if !ok || in.Code == "" {
		return "", nil
	}

	out := substituteValue(in.Code, n)

	for i, p := range n.Inputs {
		if p.IsExec() || p.Name == "" {
			continue
		}
		l, linked := g.graph.LinkInto(flow.PortRef{Node: n.ID, Dir: flow.Input, Index: i})
		if !linked {
			continue
		}
		code, err := g.outputCode(l.From)
		if err != nil {
			return "", err
		}
		out = strings.ReplaceAll(out, "${"+p.Name+"}", code)
	}

	for i, p := range n.Outputs {
		if !p.IsExec() || p.Name == "" {
			continue
		}
		l, linked := g.graph.LinkFrom(flow.PortRef{Node: n.ID, Dir: flow.Output, Index: i})
		if !linked {
			continue
		}
		body := ""
		if next, exists := g.graph.Node(l.To.Node); exists {
			body, err = g.compile(next)
			if err != nil {
				return "", err
			}
		}
		out = spliceBlock(out, p.Name, body)
	}

	out = strings.ReplaceAll(out, "${nodeId}", strconv.Itoa(n.ID))
	out = unresolvedRe.ReplaceAllString(out, "")
	return out, nil
}

// outputCode resolves the template of the producing output port, chaining
// through upstream data links. Unlike exec recursion this has no visited
// set, so an expression chain compiles into one nested expression; the
// active set turns a genuine cycle into a CYCLIC_DATA error instead of
// unbounded descent.
func (g *Generator) outputCode(from flow.PortRef) (string, error) {
	n, exists := g.graph.Node(from.Node)
	if !exists {
		return "", nil
	}
	if g.active[n.ID] {
		return "", errors.New(errors.ErrCodeCyclicData,
			"cyclic data dependency through node %d (%s/%s)", n.ID, n.Category, n.Type)
	}
	g.active[n.ID] = true
	defer delete(g.active, n.ID)

	p, ok := n.Port(flow.Output, from.Index)
	if !ok {
		return "", nil
	}
	def, err := g.graph.Catalog().Lookup(n.Category, n.Type)
	if err != nil {
		return "", nil
	}
	od, ok := def.Output(p.Name, p.Kind)
	if !ok || od.Code == "" {
		return "", nil
	}

	out := substituteValue(od.Code, n)

	for i, ip := range n.Inputs {
		if ip.IsExec() || ip.Name == "" {
			continue
		}
		l, linked := g.graph.LinkInto(flow.PortRef{Node: n.ID, Dir: flow.Input, Index: i})
		if !linked {
			continue
		}
		code, err := g.outputCode(l.From)
		if err != nil {
			return "", err
		}
		out = strings.ReplaceAll(out, "${"+ip.Name+"}", code)
	}

	out = strings.ReplaceAll(out, "${nodeId}", strconv.Itoa(n.ID))
	return out, nil
}

// substituteValue fills ${value} from the node's value slot. Nodes without a
// held value leave the placeholder for the final strip.
func substituteValue(tmpl string, n *flow.Node) string {
	if !n.HasValue() {
		return tmpl
	}
	return strings.ReplaceAll(tmpl, "${value}", renderValue(n.ValueType, n.Value))
}

// renderValue produces the textual form of a value slot. Scalars render as
// plain tokens, so a float slot holding 5 emits "5" and string slots emit
// their raw text (templates add quoting where the target language needs it).
// Structured values serialize to their document form.
func renderValue(t catalog.ValueType, v any) string {
	if !t.Scalar() {
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}

// spliceBlock substitutes an exec placeholder with a compiled downstream
// block. Every line of the block is prefixed with the indentation that
// preceded the placeholder, and a newline in front of the placeholder is
// kept in front of the first line. An empty block removes the placeholder
// together with its leading newline and indent, leaving no blank stub.
func spliceBlock(tmpl, name, body string) string {
	re := regexp.MustCompile(`(\n)?([ \t]*)` + regexp.QuoteMeta("${"+name+"}"))
	return re.ReplaceAllStringFunc(tmpl, func(m string) string {
		if body == "" {
			return ""
		}
		sub := re.FindStringSubmatch(m)
		lines := strings.Split(body, "\n")
		for i := range lines {
			lines[i] = sub[2] + lines[i]
		}
		return sub[1] + strings.Join(lines, "\n")
	})
}
