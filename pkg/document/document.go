// Package document serializes flow graphs to disk and restores them.
//
// A graph document records nodes and connections with their stable IDs so a
// round trip preserves identity. Import is forgiving: entities referencing
// unknown node types, missing nodes, or bad port indices are skipped and
// reported instead of aborting the whole load.
package document

import (
	"fmt"

	"github.com/matzehuels/flowforge/pkg/catalog"
	"github.com/matzehuels/flowforge/pkg/errors"
	"github.com/matzehuels/flowforge/pkg/flow"
)

// Version is the current graph document schema version.
const Version = 1

// Document is the on-disk form of a graph.
type Document struct {
	Version     int          `json:"version" yaml:"version"`
	Nodes       []NodeRecord `json:"nodes" yaml:"nodes"`
	Connections []LinkRecord `json:"connections" yaml:"connections"`
}

// NodeRecord is one serialized node.
type NodeRecord struct {
	ID       int     `json:"id" yaml:"id"`
	Category string  `json:"category" yaml:"category"`
	Type     string  `json:"type" yaml:"type"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Value    any     `json:"value,omitempty" yaml:"value,omitempty"`
}

// Endpoint addresses one side of a serialized connection.
type Endpoint struct {
	NodeID    int    `json:"nodeId" yaml:"nodeId"`
	PortIndex int    `json:"portIndex" yaml:"portIndex"`
	PortType  string `json:"portType" yaml:"portType"`
}

// LinkRecord is one serialized connection.
type LinkRecord struct {
	ID   int      `json:"id" yaml:"id"`
	From Endpoint `json:"from" yaml:"from"`
	To   Endpoint `json:"to" yaml:"to"`
}

// Warning reports one entity skipped or repaired during import.
type Warning struct {
	Entity string // "node" or "connection"
	ID     int
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %d: %v", w.Entity, w.ID, w.Err)
}

// Export captures the graph as a document, preserving node creation order
// and link order.
func Export(g *flow.Graph) *Document {
	doc := &Document{Version: Version}

	for _, n := range g.Nodes() {
		rec := NodeRecord{
			ID:       n.ID,
			Category: n.Category,
			Type:     n.Type,
			X:        n.X,
			Y:        n.Y,
		}
		if n.HasValue() {
			rec.Value = n.Value
		}
		doc.Nodes = append(doc.Nodes, rec)
	}

	for _, l := range g.Links() {
		doc.Connections = append(doc.Connections, LinkRecord{
			ID:   l.ID,
			From: endpoint(l.From),
			To:   endpoint(l.To),
		})
	}
	return doc
}

// Import restores a graph from a document against the given catalog.
//
// Nodes with unknown definitions and connections with unresolvable endpoints
// are skipped and reported as warnings. After the structural load the
// connection repair pass runs; links it removes (incompatible kinds,
// duplicate fan-in) are reported as warnings too. The graph's ID counters
// end up past the largest restored IDs.
func Import(cat *catalog.Catalog, doc *Document) (*flow.Graph, []Warning, error) {
	if doc.Version > Version {
		return nil, nil, errors.New(errors.ErrCodeInvalidDocument,
			"unsupported document version %d (newest supported: %d)", doc.Version, Version)
	}

	g := flow.New(cat)
	var warnings []Warning

	for _, rec := range doc.Nodes {
		n, err := g.InsertNode(rec.ID, rec.X, rec.Y, rec.Category, rec.Type)
		if err != nil {
			warnings = append(warnings, Warning{Entity: "node", ID: rec.ID, Err: err})
			continue
		}
		if rec.Value != nil && n.ValueType != "" {
			n.Value = rec.Value
		}
	}

	for _, rec := range doc.Connections {
		from, err := portRef(rec.From)
		if err == nil {
			var to flow.PortRef
			to, err = portRef(rec.To)
			if err == nil {
				_, err = g.InsertLink(rec.ID, from, to)
			}
		}
		if err != nil {
			warnings = append(warnings, Warning{
				Entity: "connection",
				ID:     rec.ID,
				Err:    errors.Wrap(errors.ErrCodeMalformedReference, err, "skipping connection"),
			})
		}
	}

	for _, l := range g.ValidateConnections() {
		warnings = append(warnings, Warning{
			Entity: "connection",
			ID:     l.ID,
			Err: errors.New(errors.ErrCodeInvalidConnection,
				"removed %s -> %s: incompatible or duplicate", l.From, l.To),
		})
	}

	return g, warnings, nil
}

func endpoint(ref flow.PortRef) Endpoint {
	return Endpoint{
		NodeID:    ref.Node,
		PortIndex: ref.Index,
		PortType:  ref.Dir.String(),
	}
}

func portRef(ep Endpoint) (flow.PortRef, error) {
	var dir flow.Direction
	switch ep.PortType {
	case "input":
		dir = flow.Input
	case "output":
		dir = flow.Output
	default:
		return flow.PortRef{}, errors.New(errors.ErrCodeMalformedReference,
			"unknown port type %q", ep.PortType)
	}
	return flow.PortRef{Node: ep.NodeID, Dir: dir, Index: ep.PortIndex}, nil
}
