package labels

import (
	"math"
	"slices"

	"github.com/matzehuels/webgraph/pkg/camera"
)

// Ratio bounds of the level policy.
const (
	// HideAllRatio is the zoom ratio from which no label is drawn.
	HideAllRatio = 15.0

	// unzoomStep discretizes unzooming: the selection is only recomputed
	// when the ratio's hundredths are a multiple of it.
	unzoomStep = 5
)

// levelThresholds are the ratios below which quartile k is added.
var levelThresholds = [4]float64{1.0, 0.75, 0.5, 0.25}

// Levels selects labels by node size tier and zoom level, keeping the
// previous selection while the camera motion does not warrant a recompute.
//
// Camera motion is classified against the previous camera state and the
// first matching rule wins:
//
//  1. panning keeps the previous selection
//  2. unzooming keeps it unless the ratio's hundredths are a multiple of 5
//  3. a still camera, or any motion at ratio >= 1 that is neither zooming
//     nor unzooming, keeps a non-empty previous selection
//  4. zooming in while still at ratio >= 1 keeps it
//  5. ratio >= 15 selects nothing
//  6. otherwise the selection is recomputed from size tiers
//
// Recomputation groups visible, non-hidden nodes by size and orders the
// distinct sizes descending. At ratio >= 1 only the largest tier is chosen.
// Below 1 the distinct sizes are split into four quartiles of width n/4 and
// quartiles are added cumulatively as the ratio falls below 1, 0.75, 0.5 and
// 0.25. A running index carries across quartiles, so for counts not divisible
// by four the earlier quartiles take the rounded-up share.
//
// A nil camera counts as a still camera at [camera.DefaultState].
func Levels(p Params) []string {
	cur, prev := camera.DefaultState, camera.DefaultState
	if p.Camera != nil {
		cur, prev = p.Camera.State(), p.Camera.PreviousState()
	}

	var (
		still           = cur.X == prev.X && cur.Y == prev.Y && cur.Ratio == prev.Ratio
		zooming         = cur.Ratio < prev.Ratio
		unzooming       = cur.Ratio > prev.Ratio
		panning         = cur.X != prev.X || cur.Y != prev.Y
		unzoomedPanning = !zooming && !unzooming && cur.Ratio >= 1
		zoomedPanning   = panning && len(p.Displayed) > 0 && !zooming && !unzooming
	)

	switch {
	case panning || zoomedPanning:
		return keep(p.Displayed)
	case unzooming && int(math.Trunc(cur.Ratio*100))%unzoomStep != 0:
		return keep(p.Displayed)
	case (unzoomedPanning || still) && len(p.Displayed) > 0:
		return keep(p.Displayed)
	case zooming && cur.Ratio >= 1:
		return keep(p.Displayed)
	case cur.Ratio >= HideAllRatio:
		return []string{}
	}

	tiers, sizes := sizeTiers(p)
	if len(sizes) == 0 {
		return []string{}
	}

	if cur.Ratio >= levelThresholds[0] {
		return slices.Clone(tiers[sizes[0]])
	}

	var out []string
	interval := float64(len(sizes)) / 4
	i := 0
	for level, threshold := range levelThresholds {
		if cur.Ratio >= threshold {
			break
		}
		for float64(i) < interval*float64(level+1) {
			out = append(out, tiers[sizes[i]]...)
			i++
		}
	}
	return out
}

// sizeTiers groups visible, non-hidden nodes by size. Nodes keep their
// visible order within a tier; sizes are returned descending.
func sizeTiers(p Params) (map[float64][]string, []float64) {
	tiers := make(map[float64][]string)
	var sizes []float64
	for _, n := range p.Visible {
		d := p.Cache[n]
		if d.Hidden {
			continue
		}
		if _, ok := tiers[d.Size]; !ok {
			sizes = append(sizes, d.Size)
		}
		tiers[d.Size] = append(tiers[d.Size], n)
	}
	slices.SortFunc(sizes, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	return tiers, sizes
}
