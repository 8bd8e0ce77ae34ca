package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/webgraph/pkg/store"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a store graph to indented JSON bytes.
func MarshalGraph(g *store.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(FromStore(g, false), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// WriteGraphFile writes a store graph to a JSON file.
func WriteGraphFile(g *store.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(FromStore(g, false), f)
}

// WriteGraph writes a store graph as JSON to an io.Writer.
func WriteGraph(g *store.Graph, w io.Writer) error {
	return writeGraphTo(FromStore(g, false), w)
}

// Write writes an already serialized graph as JSON to an io.Writer.
func Write(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded store graph.
func ReadGraphFile(path string) (*store.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a store graph.
func ReadGraph(r io.Reader) (*store.Graph, error) {
	data, err := Read(r)
	if err != nil {
		return nil, err
	}
	return ToStore(data)
}

// Read decodes a JSON graph from an io.Reader without building a store.
func Read(r io.Reader) (Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return data, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Structure encodes g without node positions. Two graphs that differ only
// in x and y encode identically, which makes the result a stable layout
// cache input.
func Structure(g Graph) ([]byte, error) {
	out := Graph{Nodes: make([]Node, len(g.Nodes)), Edges: g.Edges}
	for i, n := range g.Nodes {
		attrs := n.Attributes.Clone()
		delete(attrs, store.AttrX)
		delete(attrs, store.AttrY)
		out.Nodes[i] = Node{Key: n.Key, Attributes: attrs}
	}
	return json.Marshal(out)
}
