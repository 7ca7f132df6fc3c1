package flow

import (
	"errors"
	"slices"

	"github.com/matzehuels/flowforge/pkg/catalog"
)

var (
	// ErrDuplicateNodeID is returned by [Graph.InsertNode] when a node with
	// the same ID already exists. Node IDs are unique for the life of the
	// graph, even across deletions.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateLinkID is returned by [Graph.InsertLink] when a link with
	// the same ID already exists.
	ErrDuplicateLinkID = errors.New("duplicate link ID")

	// ErrUnknownPort is returned by [Graph.InsertLink] when an endpoint does
	// not resolve to an existing node and port index.
	ErrUnknownPort = errors.New("link endpoint does not resolve to a port")

	// ErrSameNode is returned by [Graph.InsertLink] when both endpoints sit
	// on the same node.
	ErrSameNode = errors.New("link endpoints on the same node")

	// ErrSameDirection is returned by [Graph.InsertLink] when both endpoints
	// have the same port direction.
	ErrSameDirection = errors.New("link endpoints have the same direction")
)

// Graph is the single shared document: node and link collections plus the
// catalog nodes are instantiated from.
//
// Node and link IDs come from separate monotonic counters owned by the
// graph; deserialization re-seeds the counters past the maximum restored ID.
// Graph is not safe for concurrent mutation; callers must serialize
// mutation against generation.
type Graph struct {
	cat *catalog.Catalog

	nodes map[int]*Node
	order []int // node creation order
	links []*Link

	nextNode int
	nextLink int
}

// New creates an empty graph over the given catalog.
func New(cat *catalog.Catalog) *Graph {
	return &Graph{
		cat:   cat,
		nodes: make(map[int]*Node),
	}
}

// Catalog returns the catalog the graph instantiates nodes from.
func (g *Graph) Catalog() *catalog.Catalog { return g.cat }

// AddNode instantiates a node of the given (category, type) at (x, y).
// Returns a DEFINITION_NOT_FOUND error when the catalog has no matching
// entry; no node is created in that case.
func (g *Graph) AddNode(x, y float64, category, typ string) (*Node, error) {
	def, err := g.cat.Lookup(category, typ)
	if err != nil {
		return nil, err
	}

	n := newNode(g.nextNode, x, y, category, typ, def)
	g.nextNode++
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return n, nil
}

// InsertNode restores a node with an explicit ID, used by document import.
// The node counter advances past the restored ID so later AddNode calls
// never collide. Returns ErrDuplicateNodeID if the ID is already in use.
func (g *Graph) InsertNode(id int, x, y float64, category, typ string) (*Node, error) {
	if _, exists := g.nodes[id]; exists {
		return nil, ErrDuplicateNodeID
	}
	def, err := g.cat.Lookup(category, typ)
	if err != nil {
		return nil, err
	}

	n := newNode(id, x, y, category, typ, def)
	g.nodes[id] = n
	g.order = append(g.order, id)
	if id >= g.nextNode {
		g.nextNode = id + 1
	}
	return n, nil
}

// Node returns the node with the given ID, or false if it does not exist.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		if n, ok := g.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// RemoveNode deletes a node and cascade-deletes every link touching any of
// its ports. Removing an unknown ID is a no-op.
func (g *Graph) RemoveNode(id int) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(oid int) bool { return oid == id })
	g.links = slices.DeleteFunc(g.links, func(l *Link) bool {
		return l.From.Node == id || l.To.Node == id
	})
}

// Links returns all links in creation order. The returned slice must not be
// modified.
func (g *Graph) Links() []*Link { return g.links }

// LinkCount returns the number of links in the graph.
func (g *Graph) LinkCount() int { return len(g.links) }

// RemoveLink deletes the link with the given ID. Unknown IDs are a no-op.
func (g *Graph) RemoveLink(id int) {
	g.links = slices.DeleteFunc(g.links, func(l *Link) bool { return l.ID == id })
}

// InsertLink restores a link with an explicit ID, used by document import.
// Endpoints are normalized so From is the output side. Only structural
// checks run here; type compatibility and fan-in limits are restored by
// [Graph.ValidateConnections] afterwards.
func (g *Graph) InsertLink(id int, a, b PortRef) (*Link, error) {
	for _, l := range g.links {
		if l.ID == id {
			return nil, ErrDuplicateLinkID
		}
	}
	if _, ok := g.portAt(a); !ok {
		return nil, ErrUnknownPort
	}
	if _, ok := g.portAt(b); !ok {
		return nil, ErrUnknownPort
	}
	if a.Node == b.Node {
		return nil, ErrSameNode
	}
	if a.Dir == b.Dir {
		return nil, ErrSameDirection
	}

	from, to := a, b
	if from.Dir == Input {
		from, to = to, from
	}

	l := &Link{ID: id, From: from, To: to}
	g.links = append(g.links, l)
	if id >= g.nextLink {
		g.nextLink = id + 1
	}
	return l, nil
}

// portAt resolves a reference to a live port.
func (g *Graph) portAt(ref PortRef) (*Port, bool) {
	n, ok := g.nodes[ref.Node]
	if !ok {
		return nil, false
	}
	return n.Port(ref.Dir, ref.Index)
}

// PortKind returns the kind of the referenced port, or false when the
// reference does not resolve.
func (g *Graph) PortKind(ref PortRef) (string, bool) {
	p, ok := g.portAt(ref)
	if !ok {
		return "", false
	}
	return p.Kind, true
}

// LinkInto returns the first link terminating at the given input reference.
func (g *Graph) LinkInto(ref PortRef) (*Link, bool) {
	for _, l := range g.links {
		if l.To == ref {
			return l, true
		}
	}
	return nil, false
}

// LinksInto returns every link terminating at the given input reference, in
// link order. Only exec inputs can legally have more than one.
func (g *Graph) LinksInto(ref PortRef) []*Link {
	var out []*Link
	for _, l := range g.links {
		if l.To == ref {
			out = append(out, l)
		}
	}
	return out
}

// LinkFrom returns the first link originating at the given output reference.
func (g *Graph) LinkFrom(ref PortRef) (*Link, bool) {
	for _, l := range g.links {
		if l.From == ref {
			return l, true
		}
	}
	return nil, false
}

// NodeAt returns the topmost node containing the point, or nil. Topmost
// means latest in creation order, matching draw order.
func (g *Graph) NodeAt(x, y float64) *Node {
	for i := len(g.order) - 1; i >= 0; i-- {
		if n, ok := g.nodes[g.order[i]]; ok && n.Contains(x, y) {
			return n
		}
	}
	return nil
}

// PortAt returns the reference of the port nearest to the point within
// maxDist, or false when no port is close enough.
func (g *Graph) PortAt(x, y, maxDist float64) (PortRef, bool) {
	best := maxDist * maxDist
	var bestRef PortRef
	found := false

	for _, id := range g.order {
		n := g.nodes[id]
		for _, side := range []struct {
			dir   Direction
			ports []*Port
		}{{Input, n.Inputs}, {Output, n.Outputs}} {
			for i, p := range side.ports {
				d := (p.X-x)*(p.X-x) + (p.Y-y)*(p.Y-y)
				if d <= best {
					best = d
					bestRef = PortRef{Node: id, Dir: side.dir, Index: i}
					found = true
				}
			}
		}
	}
	return bestRef, found
}

// Reload swaps the catalog and re-copies port records for every node whose
// definition still exists, picking up changed kinds and templates. Nodes
// whose definition disappeared keep their current ports. Callers must run
// [Graph.ValidateConnections] afterwards to drop links the new kinds no
// longer permit.
func (g *Graph) Reload(cat *catalog.Catalog) {
	g.cat = cat
	for _, n := range g.nodes {
		def, err := cat.Lookup(n.Category, n.Type)
		if err != nil {
			continue
		}
		n.Title = def.Title
		n.Inputs = n.Inputs[:0]
		n.Outputs = n.Outputs[:0]
		for _, pd := range def.VisibleInputs() {
			n.Inputs = append(n.Inputs, instancePort(pd))
		}
		for _, pd := range def.VisibleOutputs() {
			n.Outputs = append(n.Outputs, instancePort(pd))
		}
		n.Layout()
	}
}

// NextNodeID exposes the node counter for document round-trip tests.
func (g *Graph) NextNodeID() int { return g.nextNode }

// NextLinkID exposes the link counter for document round-trip tests.
func (g *Graph) NextLinkID() int { return g.nextLink }
