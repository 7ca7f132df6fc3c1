package flow

import (
	"fmt"

	"github.com/matzehuels/flowforge/pkg/catalog"
)

// Direction distinguishes the two port sides of a node.
type Direction int

const (
	// Input ports sit on the left edge of a node and receive links.
	Input Direction = iota
	// Output ports sit on the right edge of a node and originate links.
	Output
)

// String returns the document serialization name of the direction.
func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Port is one connection point on a node instance. Ports are copied from the
// catalog definition at construction (implicit definitions excluded) and are
// fixed in count and order for the node's lifetime.
//
// X and Y are derived layout state recomputed by [Node.Layout]; they are
// never part of port identity.
type Port struct {
	// Kind is the port's type name: catalog.KindExec for control flow,
	// otherwise a data type name resolved against the registry.
	Kind string

	// Name is the optional display name; it doubles as the ${Name}
	// placeholder inside the owning node's templates.
	Name string

	// Code is the per-port template copied from the definition.
	Code string

	// Dynamic is a UI naming hint forwarded untouched from the definition.
	Dynamic *catalog.Dynamic

	// X, Y are the derived port coordinates.
	X, Y float64
}

// IsExec reports whether the port carries control flow.
func (p *Port) IsExec() bool { return p.Kind == catalog.KindExec }

// PortRef identifies a port by (node id, direction, index). Links reference
// their endpoints this way rather than aliasing port structs, so cascade
// deletion is a flat scan over the link store.
type PortRef struct {
	Node  int
	Dir   Direction
	Index int
}

// String formats the reference for log and error messages.
func (r PortRef) String() string {
	return fmt.Sprintf("%d/%s[%d]", r.Node, r.Dir, r.Index)
}
