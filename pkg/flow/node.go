package flow

import (
	"github.com/matzehuels/flowforge/pkg/catalog"
)

// Node geometry constants. Ports stack vertically at fixed spacing below the
// title band; inputs sit flush left, outputs flush right.
const (
	titleHeight     = 28.0
	portSpacing     = 22.0
	bottomPadding   = 8.0
	defaultMinWidth = 120.0
)

// Node is one instance of a catalog node type placed in a graph.
//
// The ID is assigned by the graph's monotonic counter and is never reused,
// even after deletion. Input and output port slices are fixed in count and
// order for the node's lifetime.
type Node struct {
	ID       int
	Category string
	Type     string
	Title    string

	X, Y          float64
	Width, Height float64

	Inputs  []*Port
	Outputs []*Port

	// ValueType is the declared value slot type, or "" when the node type
	// declares no value slot.
	ValueType catalog.ValueType

	// Value is the current slot value; nil means absent.
	Value any

	// Selected is UI-owned state and takes no part in graph invariants.
	Selected bool
}

// newNode instantiates a node from its catalog definition. Implicit port
// definitions are filtered out; the rest are copied into fresh per-instance
// Port records in definition order.
func newNode(id int, x, y float64, category, typ string, def *catalog.NodeType) *Node {
	n := &Node{
		ID:       id,
		Category: category,
		Type:     typ,
		Title:    def.Title,
		X:        x,
		Y:        y,
	}

	for _, pd := range def.VisibleInputs() {
		n.Inputs = append(n.Inputs, instancePort(pd))
	}
	for _, pd := range def.VisibleOutputs() {
		n.Outputs = append(n.Outputs, instancePort(pd))
	}

	if def.Value != nil {
		n.ValueType = def.Value.Type
		n.Value = def.Value.Default
	}

	n.Width = def.Style.MinWidth
	if n.Width < defaultMinWidth {
		n.Width = defaultMinWidth
	}
	n.Layout()

	return n
}

func instancePort(pd catalog.PortDef) *Port {
	return &Port{
		Kind:    pd.Type,
		Name:    pd.Name,
		Code:    pd.Code,
		Dynamic: pd.Dynamic,
	}
}

// Layout re-derives the node's height and all port positions from its
// current origin and size. It is idempotent and must be called whenever the
// node moves or resizes.
func (n *Node) Layout() {
	rows := len(n.Inputs)
	if len(n.Outputs) > rows {
		rows = len(n.Outputs)
	}
	n.Height = titleHeight + portSpacing*float64(rows) + bottomPadding

	for i, p := range n.Inputs {
		p.X = n.X
		p.Y = n.Y + titleHeight + portSpacing*float64(i) + portSpacing/2
	}
	for i, p := range n.Outputs {
		p.X = n.X + n.Width
		p.Y = n.Y + titleHeight + portSpacing*float64(i) + portSpacing/2
	}
}

// MoveTo repositions the node and re-derives its port positions.
func (n *Node) MoveTo(x, y float64) {
	n.X = x
	n.Y = y
	n.Layout()
}

// Contains reports whether the point lies inside the node's bounds.
func (n *Node) Contains(x, y float64) bool {
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// Port returns the port addressed by direction and index, or false when the
// index is out of range.
func (n *Node) Port(dir Direction, index int) (*Port, bool) {
	ports := n.Inputs
	if dir == Output {
		ports = n.Outputs
	}
	if index < 0 || index >= len(ports) {
		return nil, false
	}
	return ports[index], true
}

// HasValue reports whether the node declares a value slot and currently
// holds a value.
func (n *Node) HasValue() bool {
	return n.ValueType != "" && n.Value != nil
}
