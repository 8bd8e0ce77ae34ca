package layout

import (
	"math"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/webgraph/pkg/store"
)

// Force runs an Eades spring embedder over the undirected skeleton of g and
// fits the result into a square of side Scale centered on Center. Edge
// direction, multiplicity and self-loops are ignored. The optimizer starts
// from random positions, so repeated runs differ; see [Cached].
func Force(g Graph, opts Options) Mapping {
	opts = opts.withDefaults()
	keys := nodeKeys(g)
	switch len(keys) {
	case 0:
		return Mapping{}
	case 1:
		return Mapping{keys[0]: {X: opts.Center, Y: opts.Center}}
	}

	ug := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(keys))
	for _, key := range keys {
		n := ug.NewNode()
		ug.AddNode(n)
		ids[key] = n.ID()
	}
	g.ForEachEdge(func(_, source, target string, _ store.Attributes) {
		u, v := ids[source], ids[target]
		if u == v {
			return
		}
		ug.SetEdge(ug.NewEdge(ug.Node(u), ug.Node(v)))
	})

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   opts.Iterations,
		Theta:     0.2,
	}
	opt := layout.NewOptimizerR2(ug, eades.Update)
	for opt.Update() {
	}

	raw := make(Mapping, len(keys))
	for _, key := range keys {
		v := opt.Coord2(ids[key])
		raw[key] = Position{X: v.X, Y: v.Y}
	}
	return fit(raw, opts)
}

// fit rescales m uniformly so its bounding box spans Scale on its longer
// side, centered on Center. Non-finite coordinates collapse to Center.
func fit(m Mapping, opts Options) Mapping {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range m {
		if !finite(p) {
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	out := make(Mapping, len(m))
	for key, p := range m {
		if !finite(p) || span <= 0 || math.IsInf(span, 0) {
			out[key] = Position{X: opts.Center, Y: opts.Center}
			continue
		}
		out[key] = Position{
			X: opts.Center + ((p.X-minX)-(maxX-minX)/2)/span*opts.Scale,
			Y: opts.Center + ((p.Y-minY)-(maxY-minY)/2)/span*opts.Scale,
		}
	}
	return out
}

func finite(p Position) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
