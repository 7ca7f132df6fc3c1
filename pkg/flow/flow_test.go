package flow

import (
	"testing"

	"github.com/matzehuels/flowforge/pkg/catalog"
	"github.com/matzehuels/flowforge/pkg/errors"
)

// testCatalog builds a small catalog with control-flow, constant, and math
// node types used across the package tests.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	doc := &catalog.Document{
		Categories: map[string]*catalog.Category{
			"flow": {
				Nodes: map[string]*catalog.NodeType{
					"start": {
						Title:   "Start",
						Inputs:  []catalog.PortDef{{Type: catalog.KindExec, Implicit: true, Code: "${next}"}},
						Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "next"}},
					},
					"print": {
						Title: "Print",
						Inputs: []catalog.PortDef{
							{Type: catalog.KindExec, Code: "print(${text})\n${next}"},
							{Type: "string", Name: "text"},
						},
						Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "next"}},
					},
				},
			},
			"const": {
				Nodes: map[string]*catalog.NodeType{
					"number": {
						Title:   "Number",
						Value:   &catalog.ValueDef{Type: catalog.ValueFloat, Default: 5.0},
						Outputs: []catalog.PortDef{{Type: "float", Code: "${value}"}},
					},
					"text": {
						Title:   "Text",
						Value:   &catalog.ValueDef{Type: catalog.ValueString},
						Outputs: []catalog.PortDef{{Type: "string", Code: "\"${value}\""}},
					},
				},
			},
			"math": {
				Nodes: map[string]*catalog.NodeType{
					"add": {
						Title: "Add",
						Inputs: []catalog.PortDef{
							{Type: "float", Name: "A"},
							{Type: "float", Name: "B"},
						},
						Outputs: []catalog.PortDef{{Type: "float", Code: "${A} + ${B}"}},
					},
				},
			},
		},
	}
	if err := c.Merge(doc); err != nil {
		t.Fatalf("merge test catalog: %v", err)
	}
	return c
}

func mustAdd(t *testing.T, g *Graph, category, typ string) *Node {
	t.Helper()
	n, err := g.AddNode(0, 0, category, typ)
	if err != nil {
		t.Fatalf("AddNode(%s/%s): %v", category, typ, err)
	}
	return n
}

func TestAddNode(t *testing.T) {
	g := New(testCatalog(t))

	start := mustAdd(t, g, "flow", "start")
	print := mustAdd(t, g, "flow", "print")

	// IDs are assigned by a monotonic counter in creation order.
	if start.ID != 0 || print.ID != 1 {
		t.Errorf("IDs = %d, %d, want 0, 1", start.ID, print.ID)
	}

	// Implicit exec input is not instantiated on the start node.
	if len(start.Inputs) != 0 {
		t.Errorf("start inputs = %d, want 0 (implicit filtered)", len(start.Inputs))
	}
	if len(start.Outputs) != 1 {
		t.Errorf("start outputs = %d, want 1", len(start.Outputs))
	}

	// Explicit ports are copied in definition order.
	if print.Inputs[0].Kind != catalog.KindExec || print.Inputs[1].Name != "text" {
		t.Errorf("print input ports wrong: %+v, %+v", print.Inputs[0], print.Inputs[1])
	}

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
}

func TestAddNodeUnknownDefinition(t *testing.T) {
	g := New(testCatalog(t))

	_, err := g.AddNode(0, 0, "flow", "warp")
	if !errors.Is(err, errors.ErrCodeDefinitionNotFound) {
		t.Errorf("error = %v, want DEFINITION_NOT_FOUND", err)
	}
	if g.NodeCount() != 0 {
		t.Error("failed construction must not leave a partial node")
	}
}

func TestNodeIDsNeverReused(t *testing.T) {
	g := New(testCatalog(t))

	a := mustAdd(t, g, "flow", "start")
	g.RemoveNode(a.ID)
	b := mustAdd(t, g, "flow", "start")

	if b.ID != a.ID+1 {
		t.Errorf("ID after delete = %d, want %d", b.ID, a.ID+1)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := New(testCatalog(t))

	num := mustAdd(t, g, "const", "number")
	add := mustAdd(t, g, "math", "add")
	other := mustAdd(t, g, "const", "number")

	l1, err := g.Connect(
		PortRef{Node: num.ID, Dir: Output, Index: 0},
		PortRef{Node: add.ID, Dir: Input, Index: 0},
	)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	l2, err := g.Connect(
		PortRef{Node: other.ID, Dir: Output, Index: 0},
		PortRef{Node: add.ID, Dir: Input, Index: 1},
	)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	g.RemoveNode(num.ID)

	// Exactly the links touching the deleted node are gone.
	for _, l := range g.Links() {
		if l.ID == l1.ID {
			t.Error("link touching deleted node survived")
		}
	}
	if g.LinkCount() != 1 || g.Links()[0].ID != l2.ID {
		t.Errorf("links after deletion = %d, want only link %d", g.LinkCount(), l2.ID)
	}

	// Repair pass finds nothing left to fix.
	if removed := g.ValidateConnections(); len(removed) != 0 {
		t.Errorf("ValidateConnections after cascade = %d removals, want 0", len(removed))
	}
}

func TestInsertNode(t *testing.T) {
	g := New(testCatalog(t))

	if _, err := g.InsertNode(7, 0, 0, "flow", "start"); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	if _, err := g.InsertNode(7, 0, 0, "flow", "start"); err != ErrDuplicateNodeID {
		t.Errorf("duplicate insert error = %v, want ErrDuplicateNodeID", err)
	}

	// Counter advanced past the restored ID.
	n := mustAdd(t, g, "flow", "print")
	if n.ID != 8 {
		t.Errorf("next ID = %d, want 8", n.ID)
	}
}

func TestInsertLink(t *testing.T) {
	g := New(testCatalog(t))
	num := mustAdd(t, g, "const", "number")
	add := mustAdd(t, g, "math", "add")

	out := PortRef{Node: num.ID, Dir: Output, Index: 0}
	in := PortRef{Node: add.ID, Dir: Input, Index: 0}

	// Reversed argument order is normalized.
	l, err := g.InsertLink(3, in, out)
	if err != nil {
		t.Fatalf("InsertLink: %v", err)
	}
	if l.From != out || l.To != in {
		t.Errorf("link not normalized: from %v to %v", l.From, l.To)
	}
	if g.NextLinkID() != 4 {
		t.Errorf("NextLinkID = %d, want 4", g.NextLinkID())
	}

	tests := []struct {
		name    string
		id      int
		a, b    PortRef
		wantErr error
	}{
		{"duplicate id", 3, out, in, ErrDuplicateLinkID},
		{"unknown node", 9, PortRef{Node: 99, Dir: Output}, in, ErrUnknownPort},
		{"bad index", 9, PortRef{Node: num.ID, Dir: Output, Index: 5}, in, ErrUnknownPort},
		{"same node", 9, PortRef{Node: add.ID, Dir: Output, Index: 0}, in, ErrSameNode},
		{"same direction", 9, in, PortRef{Node: add.ID, Dir: Input, Index: 1}, ErrSameDirection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.InsertLink(tt.id, tt.a, tt.b); err != tt.wantErr {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutAndHitTesting(t *testing.T) {
	g := New(testCatalog(t))

	print := mustAdd(t, g, "flow", "print")
	print.MoveTo(100, 50)

	// Layout is idempotent.
	x0, y0 := print.Inputs[0].X, print.Inputs[0].Y
	print.Layout()
	if print.Inputs[0].X != x0 || print.Inputs[0].Y != y0 {
		t.Error("Layout not idempotent")
	}

	// Inputs flush left, outputs flush right, stacked below the title band.
	if print.Inputs[0].X != print.X {
		t.Errorf("input X = %v, want %v", print.Inputs[0].X, print.X)
	}
	if print.Outputs[0].X != print.X+print.Width {
		t.Errorf("output X = %v, want %v", print.Outputs[0].X, print.X+print.Width)
	}
	if print.Inputs[1].Y <= print.Inputs[0].Y {
		t.Error("ports not stacked downward")
	}

	if got := g.NodeAt(print.X+1, print.Y+1); got != print {
		t.Error("NodeAt missed the node")
	}
	if got := g.NodeAt(-100, -100); got != nil {
		t.Errorf("NodeAt(-100,-100) = %v, want nil", got)
	}

	ref, ok := g.PortAt(print.Inputs[1].X+2, print.Inputs[1].Y-1, 8)
	if !ok || ref != (PortRef{Node: print.ID, Dir: Input, Index: 1}) {
		t.Errorf("PortAt = %v, %v", ref, ok)
	}
	if _, ok := g.PortAt(-1000, -1000, 8); ok {
		t.Error("PortAt found a port out of range")
	}
}

func TestNodesCreationOrder(t *testing.T) {
	g := New(testCatalog(t))
	mustAdd(t, g, "flow", "start")
	mustAdd(t, g, "const", "number")
	mustAdd(t, g, "flow", "print")

	nodes := g.Nodes()
	for i, n := range nodes {
		if n.ID != i {
			t.Errorf("Nodes()[%d].ID = %d, want %d", i, n.ID, i)
		}
	}
}

func TestHasValue(t *testing.T) {
	g := New(testCatalog(t))

	num := mustAdd(t, g, "const", "number")
	if !num.HasValue() {
		t.Error("number node should carry its default value")
	}

	// Text declares a slot but no default: absent until set.
	txt := mustAdd(t, g, "const", "text")
	if txt.HasValue() {
		t.Error("text node has no default, HasValue should be false")
	}
	txt.Value = "hi"
	if !txt.HasValue() {
		t.Error("HasValue after set = false")
	}

	// Print declares no slot at all.
	p := mustAdd(t, g, "flow", "print")
	p.Value = "stray"
	if p.HasValue() {
		t.Error("node without a value slot must never report a value")
	}
}
