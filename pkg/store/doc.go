// Package store provides the attributed graph that webgraph sessions edit.
//
// # Overview
//
// A [Graph] holds nodes and directed edges, each carrying an [Attributes] bag.
// The interaction layer treats the graph as an external collaborator and only
// relies on its contract: O(1) node and edge lookup, O(degree) neighbor
// iteration, attribute get/set, and merge semantics.
//
// # Merge semantics
//
// MergeNode and MergeEdge add missing elements and otherwise overwrite only the
// keys present in the given attributes. Merging the same attributes twice is
// idempotent. MergeEdge without a key targets the first edge between the
// ordered pair; MergeEdgeWithKey targets exactly one edge. Both create missing
// endpoint nodes with empty attributes.
//
// # Multi-edges
//
// Several edges may connect the same ordered pair. Keys are either explicit or
// derived from the endpoints plus a multiplicity suffix:
//
//	g := store.New()
//	_ = g.AddNode("a", nil)
//	_ = g.AddNode("b", nil)
//	k1, _ := g.AddEdge("a", "b", nil) // "a->b"
//	k2, _ := g.AddEdge("a", "b", nil) // "a->b#1"
//
// # Neighborhood
//
// Edges are directed but neighborhoods are not: [Graph.Neighbors] and
// [Graph.AreNeighbors] look in both directions, while [Graph.EdgesBetween]
// returns only source→target edges. Callers that need both directions query
// both orderings.
package store
