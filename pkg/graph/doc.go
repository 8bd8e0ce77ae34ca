// Package graph provides the serialized form of webgraph graphs.
//
// This package defines the wire format used for JSON files, API payloads,
// session export and the batch inputs of session mutations.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Node], [Edge]: serialization types (this package)
//   - pkg/store.Graph: live, mutable representation
//
// Use [FromStore]/[ToStore] to convert between them.
//
// # Format
//
//	{
//	  "nodes": [{"key": "a", "attributes": {"size": 10}}, {"key": "b"}],
//	  "edges": [{"key": "a->b", "source": "a", "target": "b"}]
//	}
//
// Edge keys are optional on input. Nodes and edges are emitted in store
// insertion order, which keeps multi-edge keys stable across round trips.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")   // File → store
//	graph.WriteGraphFile(g, "out.json")         // store → File
//	data, _ := graph.MarshalGraph(g)            // store → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
