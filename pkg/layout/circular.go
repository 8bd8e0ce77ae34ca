package layout

import "math"

// Circular places nodes evenly on a circle of radius Scale around Center,
// in graph iteration order.
func Circular(g Graph, opts Options) Mapping {
	opts = opts.withDefaults()
	keys := nodeKeys(g)
	m := make(Mapping, len(keys))
	n := float64(len(keys))
	for i, key := range keys {
		angle := 2 * math.Pi * float64(i) / n
		m[key] = Position{
			X: opts.Center + opts.Scale*math.Cos(angle),
			Y: opts.Center + opts.Scale*math.Sin(angle),
		}
	}
	return m
}
