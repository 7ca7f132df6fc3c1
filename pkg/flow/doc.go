// Package flow defines the graph intermediate representation for visual
// programs: typed nodes joined by links, with ports split into control-flow
// (exec) and data-flow sides.
//
// # Structure
//
// A [Graph] owns three things: node instances constructed from a
// [catalog.Catalog], links referencing ports by (node id, direction, index),
// and the monotonic ID counters for both. Nodes and links never alias each
// other; deleting a node is a flat scan that cascade-deletes its links.
//
// # Invariants
//
// After every mutation the graph satisfies:
//
//  1. No link connects two ports of the same node.
//  2. Every link joins an output port to an input port.
//  3. The endpoint kinds are compatible (see [TypesCompatible]).
//  4. A non-exec input has at most one incoming link.
//  5. An exec output has at most one outgoing link; exec inputs accept any
//     number of incoming links.
//  6. No two links join the same ordered port pair.
//
// [Graph.Connect] enforces the invariants at creation time;
// [Graph.ValidateConnections] restores them after bulk mutation and returns
// the links it had to remove.
//
// # Concurrency
//
// Graph is synchronous and unlocked. Concurrent reads are safe; callers
// must serialize mutation against reads.
package flow
