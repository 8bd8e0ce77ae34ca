package layout

import "math/rand/v2"

// Random scatters nodes uniformly over a square of side Scale centered on
// Center. The same Seed yields the same mapping for the same node order.
func Random(g Graph, opts Options) Mapping {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	keys := nodeKeys(g)
	m := make(Mapping, len(keys))
	for _, key := range keys {
		m[key] = Position{
			X: opts.Center + (rng.Float64()-0.5)*opts.Scale,
			Y: opts.Center + (rng.Float64()-0.5)*opts.Scale,
		}
	}
	return m
}
