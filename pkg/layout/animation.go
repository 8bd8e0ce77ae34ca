package layout

import (
	"time"

	"github.com/matzehuels/webgraph/pkg/store"
)

// DefaultDuration is the length of a layout transition.
const DefaultDuration = time.Second

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// CubicInOut accelerates during the first half and decelerates during the
// second.
func CubicInOut(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	}
	t -= 2
	return 0.5 * (t*t*t + 2)
}

// Animation moves nodes from their positions at creation time to a target
// mapping. It owns no goroutine: the caller advances it with [Animation.Step]
// once per frame. Nodes dropped from the graph mid-flight are skipped.
type Animation struct {
	from     Mapping
	to       Mapping
	start    time.Time
	duration time.Duration
	easing   Easing
	done     bool
}

// NewAnimation captures the current positions of the nodes in target.
// A nil easing means [CubicInOut].
func NewAnimation(g Graph, target Mapping, start time.Time, d time.Duration, easing Easing) *Animation {
	if easing == nil {
		easing = CubicInOut
	}
	from := make(Mapping, len(target))
	for key := range target {
		if !g.HasNode(key) {
			continue
		}
		from[key] = position(g, key)
	}
	return &Animation{
		from:     from,
		to:       target,
		start:    start,
		duration: d,
		easing:   easing,
	}
}

// Step writes the interpolated positions for time now onto g and reports
// whether the animation has reached its target. A stopped or finished
// animation does nothing and reports true.
func (a *Animation) Step(g Graph, now time.Time) bool {
	if a.done {
		return true
	}
	progress := 1.0
	if a.duration > 0 {
		progress = float64(now.Sub(a.start)) / float64(a.duration)
	}
	if progress >= 1 {
		Apply(g, a.to)
		a.done = true
		return true
	}
	if progress < 0 {
		progress = 0
	}

	k := a.easing(progress)
	for key, to := range a.to {
		from, ok := a.from[key]
		if !ok {
			continue
		}
		setPosition(g, key, Position{
			X: from.X + (to.X-from.X)*k,
			Y: from.Y + (to.Y-from.Y)*k,
		})
	}
	return false
}

// Stop freezes the animation where it is.
func (a *Animation) Stop() { a.done = true }

// Done reports whether the animation finished or was stopped.
func (a *Animation) Done() bool { return a.done }

// Target returns the mapping the animation moves towards.
func (a *Animation) Target() Mapping { return a.to }

func position(g Graph, key string) Position {
	var p Position
	if v, ok := g.NodeAttribute(key, store.AttrX); ok {
		p.X, _ = store.AsFloat(v)
	}
	if v, ok := g.NodeAttribute(key, store.AttrY); ok {
		p.Y, _ = store.AsFloat(v)
	}
	return p
}
