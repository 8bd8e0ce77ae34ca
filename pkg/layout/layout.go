// Package layout assigns node positions and animates transitions between
// them.
//
// A layout is a [Func] that reads a graph and returns a [Mapping] from node
// key to position without touching the graph. Callers decide whether to
// [Apply] the mapping at once or to step an [Animation] towards it.
//
//	m := layout.Circular(g, layout.DefaultOptions())
//	layout.Apply(g, m)
//
// Three algorithms are built in: [Circular], [Random] and [Force]. [Cached]
// memoizes any of them through a [cache.Cache].
package layout

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/webgraph/pkg/store"
)

// Position is a point in graph space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mapping assigns a position to each node key.
type Mapping map[string]Position

// Keys returns the mapped node keys in sorted order.
func (m Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// MarshalMapping encodes a mapping as JSON.
func MarshalMapping(m Mapping) ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalMapping decodes a mapping produced by [MarshalMapping].
func UnmarshalMapping(data []byte) (Mapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode layout mapping: %w", err)
	}
	return m, nil
}

// Graph is the graph view layouts read and write. [*store.Graph] satisfies it.
type Graph interface {
	HasNode(key string) bool
	ForEachNode(fn func(key string, attrs store.Attributes))
	ForEachEdge(fn func(key, source, target string, attrs store.Attributes))
	NodeAttribute(key, name string) (any, bool)
	SetNodeAttribute(key, name string, value any) error
}

var _ Graph = (*store.Graph)(nil)

// Export reads the current position of every node. Missing coordinates read
// as zero.
func Export(g Graph) Mapping {
	m := make(Mapping)
	g.ForEachNode(func(key string, attrs store.Attributes) {
		x, _ := attrs.Float(store.AttrX)
		y, _ := attrs.Float(store.AttrY)
		m[key] = Position{X: x, Y: y}
	})
	return m
}

// Apply writes every position of m onto g. Keys that are no longer in g are
// skipped.
func Apply(g Graph, m Mapping) {
	for key, p := range m {
		setPosition(g, key, p)
	}
}

func setPosition(g Graph, key string, p Position) {
	if !g.HasNode(key) {
		return
	}
	_ = g.SetNodeAttribute(key, store.AttrX, p.X)
	_ = g.SetNodeAttribute(key, store.AttrY, p.Y)
}

// Options tunes the built-in layouts. Zero fields take the defaults of
// [DefaultOptions].
type Options struct {
	// Center is the coordinate of the layout's midpoint on both axes.
	Center float64 `json:"center"`
	// Scale is the radius of [Circular] and the side of [Random] and [Force].
	Scale float64 `json:"scale"`
	// Seed makes [Random] reproducible.
	Seed uint64 `json:"seed,omitempty"`
	// Iterations bounds the [Force] optimizer.
	Iterations int `json:"iterations,omitempty"`
}

// DefaultIterations is the [Force] update budget.
const DefaultIterations = 100

// DefaultOptions centers layouts on 0.5 with unit scale.
func DefaultOptions() Options {
	return Options{Center: 0.5, Scale: 1, Iterations: DefaultIterations}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Center == 0 {
		o.Center = d.Center
	}
	if o.Scale == 0 {
		o.Scale = d.Scale
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	return o
}

// Func computes positions for g.
type Func func(g Graph, opts Options) Mapping

// Algorithm names accepted by [ByName].
const (
	AlgorithmCircular = "circular"
	AlgorithmRandom   = "random"
	AlgorithmForce    = "force"
)

// Algorithms lists the built-in algorithm names.
var Algorithms = []string{AlgorithmCircular, AlgorithmRandom, AlgorithmForce}

// ByName returns the built-in layout called name.
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AlgorithmCircular:
		return Circular, nil
	case AlgorithmRandom:
		return Random, nil
	case AlgorithmForce, "forceatlas2":
		return Force, nil
	}
	return nil, fmt.Errorf("unknown layout %q (want one of %s)", name, strings.Join(Algorithms, ", "))
}

func nodeKeys(g Graph) []string {
	var keys []string
	g.ForEachNode(func(key string, _ store.Attributes) { keys = append(keys, key) })
	return keys
}
