package flow

import (
	"slices"

	"github.com/matzehuels/flowforge/pkg/catalog"
	"github.com/matzehuels/flowforge/pkg/errors"
)

// TypesCompatible decides whether a producer of fromKind may feed a consumer
// of toKind.
//
// The rules, in order: exec connects only to exec; equal kinds connect; a
// "data" input accepts any producer; a "data" output feeds only "data"
// inputs. The wildcard is one-directional — a generic producer cannot feed a
// specifically-typed consumer.
func TypesCompatible(fromKind, toKind string) bool {
	fromExec := fromKind == catalog.KindExec
	toExec := toKind == catalog.KindExec

	switch {
	case fromExec && toExec:
		return true
	case fromExec != toExec:
		return false
	case fromKind == toKind:
		return true
	case toKind == catalog.KindData:
		return true
	default:
		return false
	}
}

// CanConnect decides whether a link may be created between the two ports.
// Argument order does not matter; the pair is normalized so the
// output-direction endpoint feeds the input-direction endpoint.
//
// Rejections: unresolvable references, endpoints on the same node, endpoints
// with the same direction, incompatible kinds, an identical existing link,
// or a second link into an occupied non-exec input. Exec inputs accept
// unlimited incoming links.
func (g *Graph) CanConnect(a, b PortRef) bool {
	pa, ok := g.portAt(a)
	if !ok {
		return false
	}
	pb, ok := g.portAt(b)
	if !ok {
		return false
	}

	if a.Node == b.Node {
		return false
	}
	if a.Dir == b.Dir {
		return false
	}

	from, to := a, b
	fromPort, toPort := pa, pb
	if from.Dir == Input {
		from, to = to, from
		fromPort, toPort = toPort, fromPort
	}

	if !TypesCompatible(fromPort.Kind, toPort.Kind) {
		return false
	}

	for _, l := range g.links {
		if l.From == from && l.To == to {
			return false
		}
	}

	if !toPort.IsExec() {
		if _, occupied := g.LinkInto(to); occupied {
			return false
		}
	}

	return true
}

// Connect creates a link between the two ports, normalizing argument order.
// Returns an INVALID_CONNECTION error when [Graph.CanConnect] rejects the
// pair.
//
// Re-connecting an already-linked exec output replaces its previous link:
// an exec output has at most one outgoing link.
func (g *Graph) Connect(a, b PortRef) (*Link, error) {
	if !g.CanConnect(a, b) {
		return nil, errors.New(errors.ErrCodeInvalidConnection, "cannot connect %s to %s", a, b)
	}

	from, to := a, b
	if from.Dir == Input {
		from, to = to, from
	}

	if p, _ := g.portAt(from); p.IsExec() {
		g.links = slices.DeleteFunc(g.links, func(l *Link) bool { return l.From == from })
	}

	l := &Link{ID: g.nextLink, From: from, To: to}
	g.nextLink++
	g.links = append(g.links, l)
	return l, nil
}

// ValidateConnections is the graph-wide repair pass, run after structural
// mutation such as bulk deletion or a catalog reload. It removes every link
// that violates the graph invariants and returns the removed links for the
// caller to report.
//
// A link is invalid when either endpoint no longer resolves to a live port,
// or when its endpoint kinds are no longer compatible. Among the remaining
// valid links, at most one may leave any exec output and at most one may
// enter any non-exec input; within each conflicting group the first link in
// link order is kept.
//
// The pass is idempotent: a second consecutive call returns nothing.
func (g *Graph) ValidateConnections() []*Link {
	invalid := make(map[int]bool)

	for _, l := range g.links {
		from, okF := g.portAt(l.From)
		to, okT := g.portAt(l.To)
		if !okF || !okT {
			invalid[l.ID] = true
			continue
		}
		if !TypesCompatible(from.Kind, to.Kind) {
			invalid[l.ID] = true
		}
	}

	type slot struct{ node, index int }
	seenExecOut := make(map[slot]bool)
	seenDataIn := make(map[slot]bool)

	for _, l := range g.links {
		if invalid[l.ID] {
			continue
		}
		from, _ := g.portAt(l.From)
		to, _ := g.portAt(l.To)

		if from.IsExec() {
			s := slot{l.From.Node, l.From.Index}
			if seenExecOut[s] {
				invalid[l.ID] = true
				continue
			}
			seenExecOut[s] = true
		}
		if !to.IsExec() {
			s := slot{l.To.Node, l.To.Index}
			if seenDataIn[s] {
				invalid[l.ID] = true
				continue
			}
			seenDataIn[s] = true
		}
	}

	if len(invalid) == 0 {
		return nil
	}

	var removed []*Link
	kept := g.links[:0]
	for _, l := range g.links {
		if invalid[l.ID] {
			removed = append(removed, l)
		} else {
			kept = append(kept, l)
		}
	}
	g.links = kept
	return removed
}
