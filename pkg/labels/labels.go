// Package labels decides which node labels a renderer draws each frame.
//
// A [Selector] receives the renderer's per-node cache, the camera, the labels
// drawn on the previous frame and the nodes currently in the viewport, and
// returns the keys whose labels should be drawn.
//
// Three policies are provided: [All], [Important] and [Levels]. [For] maps a
// configured [Kind] to its selector; [Default] yields nil, leaving the choice
// to the renderer's own selector (see [Threshold]).
package labels

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/webgraph/pkg/camera"
)

// NodeData is the per-node state a selector may read.
type NodeData struct {
	Size      float64
	Hidden    bool
	Important bool
}

// Params are the inputs of a selection.
type Params struct {
	Cache     map[string]NodeData
	Camera    camera.View
	Displayed []string
	Visible   []string
}

// Selector picks the labels to draw.
type Selector func(Params) []string

// Kind names a selector policy.
type Kind string

// Selector kinds.
const (
	KindAll       Kind = "all"
	KindLevels    Kind = "levels"
	KindImportant Kind = "important"
	KindDefault   Kind = "default"
)

// ParseKind parses a selector kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAll, KindLevels, KindImportant, KindDefault:
		return k, nil
	}
	return "", fmt.Errorf("unknown label selector %q", s)
}

// For returns the selector of kind k, or nil for KindDefault and unknown kinds.
func For(k Kind) Selector {
	switch k {
	case KindAll:
		return All
	case KindLevels:
		return Levels
	case KindImportant:
		return Important
	}
	return nil
}

// All selects every visible, non-hidden node.
func All(p Params) []string {
	var out []string
	for _, n := range p.Visible {
		if !p.Cache[n].Hidden {
			out = append(out, n)
		}
	}
	return out
}

// Important selects every visible, non-hidden node marked important.
func Important(p Params) []string {
	var out []string
	for _, n := range p.Visible {
		if d := p.Cache[n]; d.Important && !d.Hidden {
			out = append(out, n)
		}
	}
	return out
}

// Threshold returns a selector that keeps visible, non-hidden nodes whose
// rendered size reaches min. Rendered size shrinks with the square root of
// the zoom ratio.
func Threshold(min float64) Selector {
	return func(p Params) []string {
		ratio := 1.0
		if p.Camera != nil {
			ratio = p.Camera.State().Ratio
		}
		if ratio <= 0 {
			ratio = 1
		}
		var out []string
		for _, n := range p.Visible {
			d := p.Cache[n]
			if !d.Hidden && d.Size/math.Sqrt(ratio) >= min {
				out = append(out, n)
			}
		}
		return out
	}
}

func keep(displayed []string) []string {
	return slices.Clone(displayed)
}
