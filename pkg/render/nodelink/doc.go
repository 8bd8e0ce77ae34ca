// Package nodelink renders session frames as static node-link SVG diagrams.
//
// A [render.Frame] already carries everything a screen would show: reduced
// colors, highlight state, selected labels and backdrops. This package turns
// it into Graphviz DOT with pinned positions and renders it in-process with
// [github.com/goccy/go-graphviz] using the neato engine:
//
//	dot := nodelink.ToDOT(frame, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG].
package nodelink
