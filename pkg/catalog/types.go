package catalog

// Reserved port kind names. Every other kind is an ordinary data type name
// resolved against the registry by string equality.
const (
	// KindExec is the control-flow port kind. Connecting two exec ports
	// expresses "run B after A", not a value dependency.
	KindExec = "exec"

	// KindData is the wildcard data kind. A data-kind input accepts any
	// producer; a data-kind output only feeds data-kind inputs.
	KindData = "data"
)

// ValueType names the scalar or structured value slot a node type can declare.
type ValueType string

// Supported value slot types.
const (
	ValueBool   ValueType = "bool"
	ValueInt    ValueType = "int"
	ValueFloat  ValueType = "float"
	ValueString ValueType = "string"
	ValueColor  ValueType = "color"
	ValueFloat3 ValueType = "float3"
)

// Scalar reports whether the value type renders as a plain token rather than
// a serialized structure.
func (t ValueType) Scalar() bool {
	switch t {
	case ValueBool, ValueInt, ValueFloat, ValueString:
		return true
	}
	return false
}

// CodeGenOptions carries target-language hints from the catalog. They are
// advisory to the generator except for CommentStyle, which prefixes the
// generated header.
type CodeGenOptions struct {
	Language       string `json:"language,omitempty" toml:"language,omitempty" yaml:"language,omitempty"`
	Indentation    string `json:"indentation,omitempty" toml:"indentation,omitempty" yaml:"indentation,omitempty"`
	VariablePrefix string `json:"variablePrefix,omitempty" toml:"variablePrefix,omitempty" yaml:"variablePrefix,omitempty"`
	ResultPrefix   string `json:"resultPrefix,omitempty" toml:"resultPrefix,omitempty" yaml:"resultPrefix,omitempty"`
	CommentStyle   string `json:"commentStyle,omitempty" toml:"commentStyle,omitempty" yaml:"commentStyle,omitempty"`
}

// DataType holds display metadata for a registered port value type.
// Compatibility logic never consults this metadata; it exists for UIs and
// for the DOT exporter's edge coloring.
type DataType struct {
	Name  string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Color string `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
}

// Dynamic is a per-port UI hint for ports whose display name follows the
// connected producer. The compiler forwards it untouched.
type Dynamic struct {
	Naming    string `json:"naming,omitempty" toml:"naming,omitempty" yaml:"naming,omitempty"`
	Delimiter string `json:"delimiter,omitempty" toml:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// PortDef describes one port of a node type.
type PortDef struct {
	// Type is the port kind: KindExec, KindData, or a data type name.
	Type string `json:"type" toml:"type" yaml:"type"`

	// Name is the optional display name. Named ports become ${name}
	// placeholders in the node's code templates.
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// Implicit ports exist only in the definition: they carry templates but
	// are not instantiated on nodes and cannot be connected.
	Implicit bool `json:"implicit,omitempty" toml:"implicit,omitempty" yaml:"implicit,omitempty"`

	// Code is the template expanded when this port drives compilation.
	Code string `json:"code,omitempty" toml:"code,omitempty" yaml:"code,omitempty"`

	Dynamic *Dynamic `json:"dynamic,omitempty" toml:"dynamic,omitempty" yaml:"dynamic,omitempty"`
}

// ValueDef declares a node type's editable value slot.
type ValueDef struct {
	Type    ValueType `json:"type" toml:"type" yaml:"type"`
	Default any       `json:"default,omitempty" toml:"default,omitempty" yaml:"default,omitempty"`
}

// Style holds geometric hints for node construction.
type Style struct {
	MinWidth float64 `json:"minWidth,omitempty" toml:"minWidth,omitempty" yaml:"minWidth,omitempty"`
}

// NodeType is one entry of the catalog: the prototype a node instance is
// constructed from.
type NodeType struct {
	Title       string    `json:"title" toml:"title" yaml:"title"`
	Category    string    `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
	Color       string    `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Description string    `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Inputs      []PortDef `json:"inputs,omitempty" toml:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs     []PortDef `json:"outputs,omitempty" toml:"outputs,omitempty" yaml:"outputs,omitempty"`
	Value       *ValueDef `json:"value,omitempty" toml:"value,omitempty" yaml:"value,omitempty"`
	Style       Style     `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
}

// ExecInput returns the definition's exec-kind input port, if any.
// Implicit ports are included: an implicit exec input still carries the
// node's compile template.
func (n *NodeType) ExecInput() (PortDef, bool) {
	for _, p := range n.Inputs {
		if p.Type == KindExec {
			return p, true
		}
	}
	return PortDef{}, false
}

// Output finds the output definition matching the given name, falling back
// to the first definition with the given kind when no name matches.
func (n *NodeType) Output(name, kind string) (PortDef, bool) {
	if name != "" {
		for _, p := range n.Outputs {
			if p.Name == name {
				return p, true
			}
		}
	}
	for _, p := range n.Outputs {
		if p.Type == kind {
			return p, true
		}
	}
	return PortDef{}, false
}

// VisibleInputs returns the input definitions that are instantiated on
// nodes, preserving definition order.
func (n *NodeType) VisibleInputs() []PortDef {
	return visible(n.Inputs)
}

// VisibleOutputs returns the output definitions that are instantiated on
// nodes, preserving definition order.
func (n *NodeType) VisibleOutputs() []PortDef {
	return visible(n.Outputs)
}

func visible(defs []PortDef) []PortDef {
	out := make([]PortDef, 0, len(defs))
	for _, p := range defs {
		if !p.Implicit {
			out = append(out, p)
		}
	}
	return out
}

// Category groups node types under a shared display color.
type Category struct {
	Color string               `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Nodes map[string]*NodeType `json:"nodes,omitempty" toml:"nodes,omitempty" yaml:"nodes,omitempty"`
}
