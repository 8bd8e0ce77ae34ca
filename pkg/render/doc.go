// Package render defines the renderer contract of a graph session and a
// headless renderer implementing it.
//
// # Overview
//
// A session never draws. It injects behavior into a [Renderer] through the
// [Settings] bag (reducers, label selector, edge and backdrop toggles) and
// listens to the renderer's pointer events. Any renderer built by a
// [Factory] can host a session.
//
// # Headless Rendering
//
// [Headless] produces [Frame] values: the nodes, edges, labels and backdrops
// a screen renderer would paint after reducers ran. Frames feed the
// [nodelink] SVG output, the HTTP API and tests:
//
//	r := render.NewHeadless(g, render.DefaultSettings())
//	r.Refresh()
//	frame := r.Frame()
//
// Pointer input is simulated with Enter, Leave, Click, Down, Move and Up,
// which emit the same events a screen renderer would.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output with the external rsvg-convert tool.
//
// [nodelink]: github.com/matzehuels/webgraph/pkg/render/nodelink
package render
