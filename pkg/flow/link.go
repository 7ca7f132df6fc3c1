package flow

// Link is a directed edge from an output port to an input port. Links are
// owned by the graph collection, not by either endpoint node; deleting a
// node removes every link touching it.
//
// From always references the output-direction endpoint and To the
// input-direction endpoint; [Graph.Connect] and [Graph.InsertLink] normalize
// argument order.
type Link struct {
	ID   int
	From PortRef
	To   PortRef

	// Selected is UI-owned state and takes no part in graph invariants.
	Selected bool
}
