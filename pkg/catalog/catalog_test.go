package catalog

import (
	"testing"

	"github.com/matzehuels/flowforge/pkg/errors"
)

func baseDoc() *Document {
	return &Document{
		CodeGen:   CodeGenOptions{Language: "lua", CommentStyle: "--"},
		DataTypes: map[string]DataType{"float": {Name: "Float", Color: "#6b9bd1"}},
		Categories: map[string]*Category{
			"math": {
				Color: "#3a6ea5",
				Nodes: map[string]*NodeType{
					"add": {
						Title: "Add",
						Inputs: []PortDef{
							{Type: "float", Name: "A"},
							{Type: "float", Name: "B"},
						},
						Outputs: []PortDef{{Type: "float", Code: "${A} + ${B}"}},
					},
				},
			},
		},
	}
}

func TestLookup(t *testing.T) {
	c := New()
	if err := c.Merge(baseDoc()); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	def, err := c.Lookup("math", "add")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if def.Title != "Add" {
		t.Errorf("Title = %q, want Add", def.Title)
	}
	if def.Category != "math" {
		t.Errorf("Category = %q, want math (filled from category key)", def.Category)
	}

	if _, err := c.Lookup("math", "missing"); !errors.Is(err, errors.ErrCodeDefinitionNotFound) {
		t.Errorf("Lookup(missing) error = %v, want DEFINITION_NOT_FOUND", err)
	}
	if _, err := c.Lookup("nope", "add"); !errors.Is(err, errors.ErrCodeDefinitionNotFound) {
		t.Errorf("Lookup(bad category) error = %v, want DEFINITION_NOT_FOUND", err)
	}
}

func TestMergeSemantics(t *testing.T) {
	c := New()
	if err := c.Merge(baseDoc()); err != nil {
		t.Fatalf("Merge base: %v", err)
	}

	// Second document: overwrites math/add, adds math/mul and a new category.
	second := &Document{
		Categories: map[string]*Category{
			"math": {
				Nodes: map[string]*NodeType{
					"add": {Title: "Addition", Outputs: []PortDef{{Type: "float", Code: "${A}+${B}"}}},
					"mul": {Title: "Multiply", Outputs: []PortDef{{Type: "float", Code: "${A}*${B}"}}},
				},
			},
			"logic": {
				Nodes: map[string]*NodeType{
					"branch": {Title: "Branch", Inputs: []PortDef{{Type: KindExec}}},
				},
			},
		},
	}
	if err := c.Merge(second); err != nil {
		t.Fatalf("Merge second: %v", err)
	}

	add, err := c.Lookup("math", "add")
	if err != nil {
		t.Fatalf("Lookup add: %v", err)
	}
	if add.Title != "Addition" {
		t.Errorf("overwritten Title = %q, want Addition", add.Title)
	}
	if _, err := c.Lookup("math", "mul"); err != nil {
		t.Errorf("Lookup mul after merge: %v", err)
	}
	if _, err := c.Lookup("logic", "branch"); err != nil {
		t.Errorf("Lookup branch after merge: %v", err)
	}

	// First document's category color survives the second merge.
	if got := c.CategoryColor("math"); got != "#3a6ea5" {
		t.Errorf("CategoryColor(math) = %q, want #3a6ea5", got)
	}
	if got := c.CodeGen.CommentStyle; got != "--" {
		t.Errorf("CommentStyle = %q, want --", got)
	}
}

func TestMergeValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{
			name: "bad data type name",
			doc:  &Document{DataTypes: map[string]DataType{"bad name": {}}},
		},
		{
			name: "empty category name",
			doc:  &Document{Categories: map[string]*Category{"": {}}},
		},
		{
			name: "port without type",
			doc: &Document{Categories: map[string]*Category{
				"x": {Nodes: map[string]*NodeType{
					"y": {Title: "Y", Inputs: []PortDef{{Name: "A"}}},
				}},
			}},
		},
		{
			name: "port name with placeholder chars",
			doc: &Document{Categories: map[string]*Category{
				"x": {Nodes: map[string]*NodeType{
					"y": {Title: "Y", Inputs: []PortDef{{Type: "float", Name: "${A}"}}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.Merge(tt.doc)
			if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("Merge error = %v, want INVALID_CATALOG", err)
			}
		})
	}
}

func TestTypeInfo(t *testing.T) {
	c := New()
	if err := c.Merge(baseDoc()); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if dt, ok := c.TypeInfo("float"); !ok || dt.Name != "Float" {
		t.Errorf("TypeInfo(float) = %+v, %v", dt, ok)
	}
	// Unknown names are accepted as data kinds with no metadata.
	if _, ok := c.TypeInfo("quaternion"); ok {
		t.Error("TypeInfo(quaternion) ok = true, want false")
	}
}

func TestNodeTypePortHelpers(t *testing.T) {
	def := &NodeType{
		Title: "For Loop",
		Inputs: []PortDef{
			{Type: KindExec, Implicit: true, Code: "for i = 1, ${count} do\n\t${body}\nend"},
			{Type: "int", Name: "count"},
		},
		Outputs: []PortDef{
			{Type: KindExec, Name: "body"},
			{Type: "int", Name: "index", Code: "i"},
		},
	}

	exec, ok := def.ExecInput()
	if !ok {
		t.Fatal("ExecInput not found")
	}
	if exec.Code == "" {
		t.Error("ExecInput template missing")
	}

	// Implicit ports are excluded from instantiation order.
	if got := len(def.VisibleInputs()); got != 1 {
		t.Errorf("VisibleInputs = %d ports, want 1", got)
	}
	if got := len(def.VisibleOutputs()); got != 2 {
		t.Errorf("VisibleOutputs = %d ports, want 2", got)
	}

	// Output matching: by name first, then by kind.
	if p, ok := def.Output("index", "int"); !ok || p.Code != "i" {
		t.Errorf("Output(index) = %+v, %v", p, ok)
	}
	if p, ok := def.Output("", "int"); !ok || p.Name != "index" {
		t.Errorf("Output(by kind) = %+v, %v", p, ok)
	}
	if _, ok := def.Output("missing", "float"); ok {
		t.Error("Output(missing) ok = true, want false")
	}
}

func TestValueTypeScalar(t *testing.T) {
	for _, vt := range []ValueType{ValueBool, ValueInt, ValueFloat, ValueString} {
		if !vt.Scalar() {
			t.Errorf("%s.Scalar() = false, want true", vt)
		}
	}
	for _, vt := range []ValueType{ValueColor, ValueFloat3} {
		if vt.Scalar() {
			t.Errorf("%s.Scalar() = true, want false", vt)
		}
	}
}
