package codegen_test

import (
	"testing"
	"time"

	"github.com/matzehuels/flowforge/pkg/catalog"
	"github.com/matzehuels/flowforge/pkg/codegen"
	"github.com/matzehuels/flowforge/pkg/errors"
	"github.com/matzehuels/flowforge/pkg/flow"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c := catalog.New()
	err := c.Merge(&catalog.Document{
		Categories: map[string]*catalog.Category{
			"flow": {Nodes: map[string]*catalog.NodeType{
				"start": {
					Title:   "Start",
					Inputs:  []catalog.PortDef{{Type: catalog.KindExec, Implicit: true, Code: "${next}"}},
					Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "next"}},
				},
				"emit": {
					Title:   "Emit",
					Inputs:  []catalog.PortDef{{Type: catalog.KindExec, Implicit: true, Code: "print(${nodeId});\n${next}"}},
					Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "next"}},
				},
				"done": {
					Title:  "Done",
					Inputs: []catalog.PortDef{{Type: catalog.KindExec, Code: "done();"}},
				},
				"print": {
					Title: "Print",
					Inputs: []catalog.PortDef{
						{Type: catalog.KindExec, Code: "print(${text})\n${next}"},
						{Type: "string", Name: "text"},
					},
					Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "next"}},
				},
				"step": {
					Title:   "Step",
					Inputs:  []catalog.PortDef{{Type: catalog.KindExec, Code: "n${nodeId}();\n${next}"}},
					Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "next"}},
				},
				"loop": {
					Title:   "Loop",
					Inputs:  []catalog.PortDef{{Type: catalog.KindExec, Implicit: true, Code: "while (true) {\n    ${body}\n}"}},
					Outputs: []catalog.PortDef{{Type: catalog.KindExec, Name: "body"}},
				},
				"show": {
					Title: "Show",
					Inputs: []catalog.PortDef{
						{Type: catalog.KindExec, Implicit: true, Code: "show(${val})"},
						{Type: "float", Name: "val"},
					},
				},
			}},
			"const": {Nodes: map[string]*catalog.NodeType{
				"number": {
					Title:   "Number",
					Value:   &catalog.ValueDef{Type: catalog.ValueFloat, Default: 5.0},
					Outputs: []catalog.PortDef{{Type: "float", Code: "${value}"}},
				},
				"text": {
					Title:   "Text",
					Value:   &catalog.ValueDef{Type: catalog.ValueString, Default: "hi"},
					Outputs: []catalog.PortDef{{Type: "string", Code: "\"${value}\""}},
				},
				"vec": {
					Title:   "Vector",
					Value:   &catalog.ValueDef{Type: catalog.ValueFloat3, Default: []any{1.0, 2.0, 3.0}},
					Outputs: []catalog.PortDef{{Type: "float3", Code: "vec(${value})"}},
				},
			}},
			"math": {Nodes: map[string]*catalog.NodeType{
				"add": {
					Title: "Add",
					Inputs: []catalog.PortDef{
						{Type: "float", Name: "A"},
						{Type: "float", Name: "B"},
					},
					Outputs: []catalog.PortDef{{Type: "float", Code: "${A} + ${B}"}},
				},
				"pass": {
					Title:   "Pass",
					Inputs:  []catalog.PortDef{{Type: "float", Name: "X"}},
					Outputs: []catalog.PortDef{{Type: "float", Code: "f(${X})"}},
				},
			}},
		},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	return c
}

func addNode(t *testing.T, g *flow.Graph, category, typ string) *flow.Node {
	t.Helper()
	n, err := g.AddNode(0, 0, category, typ)
	if err != nil {
		t.Fatalf("AddNode(%s/%s) error = %v", category, typ, err)
	}
	return n
}

func connect(t *testing.T, g *flow.Graph, from *flow.Node, fromIdx int, to *flow.Node, toIdx int) {
	t.Helper()
	_, err := g.Connect(
		flow.PortRef{Node: from.ID, Dir: flow.Output, Index: fromIdx},
		flow.PortRef{Node: to.ID, Dir: flow.Input, Index: toIdx},
	)
	if err != nil {
		t.Fatalf("Connect(%d -> %d) error = %v", from.ID, to.ID, err)
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}
}

const testHeader = "// Generated by flowforge on 2024-01-02T03:04:05Z"

func TestGenerateLinearChain(t *testing.T) {
	g := flow.New(testCatalog(t))
	emit := addNode(t, g, "flow", "emit")
	done := addNode(t, g, "flow", "done")
	connect(t, g, emit, 0, done, 0)

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := testHeader + "\n\nprint(0);\ndone();\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateNoEntryPoint(t *testing.T) {
	g := flow.New(testCatalog(t))
	addNode(t, g, "const", "number")
	addNode(t, g, "math", "add")

	_, err := codegen.New(g).Generate()
	if err == nil {
		t.Fatal("Generate() expected error on graph without entry nodes")
	}
	if !errors.Is(err, errors.ErrCodeNoEntryPoint) {
		t.Errorf("Generate() error = %v, want code %s", err, errors.ErrCodeNoEntryPoint)
	}
}

func TestGenerateEmptyGraphFails(t *testing.T) {
	g := flow.New(testCatalog(t))
	if _, err := codegen.New(g).Generate(); !errors.Is(err, errors.ErrCodeNoEntryPoint) {
		t.Errorf("Generate() error = %v, want code %s", err, errors.ErrCodeNoEntryPoint)
	}
}

func TestOutputCodeExpression(t *testing.T) {
	g := flow.New(testCatalog(t))
	five := addNode(t, g, "const", "number")
	three := addNode(t, g, "const", "number")
	three.Value = 3.0
	add := addNode(t, g, "math", "add")

	connect(t, g, five, 0, add, 0)
	connect(t, g, three, 0, add, 1)

	got, err := codegen.New(g).OutputCode(flow.PortRef{Node: add.ID, Dir: flow.Output, Index: 0})
	if err != nil {
		t.Fatalf("OutputCode() error = %v", err)
	}
	if got != "5 + 3" {
		t.Errorf("OutputCode() = %q, want %q", got, "5 + 3")
	}
}

func TestOutputCodeNestedExpression(t *testing.T) {
	// (1 + 2) + 3 without any exec link: pure-expression chains compile into
	// a single nested expression.
	g := flow.New(testCatalog(t))
	one := addNode(t, g, "const", "number")
	one.Value = 1.0
	two := addNode(t, g, "const", "number")
	two.Value = 2.0
	three := addNode(t, g, "const", "number")
	three.Value = 3.0
	inner := addNode(t, g, "math", "add")
	outer := addNode(t, g, "math", "add")

	connect(t, g, one, 0, inner, 0)
	connect(t, g, two, 0, inner, 1)
	connect(t, g, inner, 0, outer, 0)
	connect(t, g, three, 0, outer, 1)

	got, err := codegen.New(g).OutputCode(flow.PortRef{Node: outer.ID, Dir: flow.Output, Index: 0})
	if err != nil {
		t.Fatalf("OutputCode() error = %v", err)
	}
	if got != "1 + 2 + 3" {
		t.Errorf("OutputCode() = %q, want %q", got, "1 + 2 + 3")
	}
}

func TestGenerateDataInput(t *testing.T) {
	g := flow.New(testCatalog(t))
	start := addNode(t, g, "flow", "start")
	print := addNode(t, g, "flow", "print")
	text := addNode(t, g, "const", "text")

	connect(t, g, start, 0, print, 0)
	connect(t, g, text, 0, print, 1)

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := testHeader + "\n\nprint(\"hi\")\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateUnconnectedDataInputStripped(t *testing.T) {
	g := flow.New(testCatalog(t))
	start := addNode(t, g, "flow", "start")
	print := addNode(t, g, "flow", "print")
	connect(t, g, start, 0, print, 0)

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := testHeader + "\n\nprint()\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateExecCycleEmitsEachNodeOnce(t *testing.T) {
	// start -> a -> b -> a. The revisit of a contributes nothing and the
	// dangling placeholder is removed without leaving a blank line.
	g := flow.New(testCatalog(t))
	start := addNode(t, g, "flow", "start")
	a := addNode(t, g, "flow", "step")
	b := addNode(t, g, "flow", "step")

	connect(t, g, start, 0, a, 0)
	connect(t, g, a, 0, b, 0)
	connect(t, g, b, 0, a, 0)

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := testHeader + "\n\nn1();\nn2();\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateReindentsExecBlocks(t *testing.T) {
	g := flow.New(testCatalog(t))
	loop := addNode(t, g, "flow", "loop")
	a := addNode(t, g, "flow", "step")
	b := addNode(t, g, "flow", "step")

	connect(t, g, loop, 0, a, 0)
	connect(t, g, a, 0, b, 0)

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := testHeader + "\n\nwhile (true) {\n    n1();\n    n2();\n}\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateSharedVisitedAcrossEntries(t *testing.T) {
	// Two entries converge on the same terminal node. It is emitted as part
	// of the first entry only.
	g := flow.New(testCatalog(t))
	e1 := addNode(t, g, "flow", "emit")
	e2 := addNode(t, g, "flow", "emit")
	done := addNode(t, g, "flow", "done")

	connect(t, g, e1, 0, done, 0)
	connect(t, g, e2, 0, done, 0)

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := testHeader + "\n\nprint(0);\ndone();\n\nprint(1);\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateCyclicDataFails(t *testing.T) {
	g := flow.New(testCatalog(t))
	show := addNode(t, g, "flow", "show")
	a := addNode(t, g, "math", "pass")
	b := addNode(t, g, "math", "pass")

	connect(t, g, a, 0, b, 0)
	connect(t, g, b, 0, show, 0)

	// Close the data cycle a -> b -> a. InsertLink performs only structural
	// checks, mirroring what a hand-edited document can contain.
	if _, err := g.InsertLink(99,
		flow.PortRef{Node: b.ID, Dir: flow.Output, Index: 0},
		flow.PortRef{Node: a.ID, Dir: flow.Input, Index: 0},
	); err != nil {
		t.Fatalf("InsertLink() error = %v", err)
	}

	_, err := codegen.New(g).Generate()
	if err == nil {
		t.Fatal("Generate() expected error on cyclic data dependencies")
	}
	if !errors.Is(err, errors.ErrCodeCyclicData) {
		t.Errorf("Generate() error = %v, want code %s", err, errors.ErrCodeCyclicData)
	}
}

func TestOutputCodeDiamondIsNotACycle(t *testing.T) {
	// One producer feeding both inputs of the same consumer resolves twice
	// without tripping the cycle guard.
	g := flow.New(testCatalog(t))
	five := addNode(t, g, "const", "number")
	add := addNode(t, g, "math", "add")

	connect(t, g, five, 0, add, 0)
	connect(t, g, five, 0, add, 1)

	got, err := codegen.New(g).OutputCode(flow.PortRef{Node: add.ID, Dir: flow.Output, Index: 0})
	if err != nil {
		t.Fatalf("OutputCode() error = %v", err)
	}
	if got != "5 + 5" {
		t.Errorf("OutputCode() = %q, want %q", got, "5 + 5")
	}
}

func TestRenderStructuredValue(t *testing.T) {
	g := flow.New(testCatalog(t))
	vec := addNode(t, g, "const", "vec")

	got, err := codegen.New(g).OutputCode(flow.PortRef{Node: vec.ID, Dir: flow.Output, Index: 0})
	if err != nil {
		t.Fatalf("OutputCode() error = %v", err)
	}
	if got != "vec([1,2,3])" {
		t.Errorf("OutputCode() = %q, want %q", got, "vec([1,2,3])")
	}
}

func TestHeaderUsesCommentStyle(t *testing.T) {
	c := testCatalog(t)
	c.CodeGen.CommentStyle = "#"

	g := flow.New(c)
	addNode(t, g, "flow", "start")

	got, err := codegen.New(g, codegen.WithClock(fixedClock())).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	wantPrefix := "# Generated by flowforge on 2024-01-02T03:04:05Z"
	if len(got) < len(wantPrefix) || got[:len(wantPrefix)] != wantPrefix {
		t.Errorf("Generate() = %q, want prefix %q", got, wantPrefix)
	}
}
