// Package pkg provides the libraries behind webgraph, an interactive session
// over an attributed graph.
//
// # Overview
//
// A session wraps a graph, a renderer and an undo log. Every edit goes
// through the session, which records it as an action, redraws and lets the
// caller undo or redo it. Hovering a node highlights the sub-graph around it.
// The pkg directory is organized into four areas:
//
//  1. Model - the graph store and its serialized form
//  2. Interaction - sessions, history, highlighting and events
//  3. Drawing - renderers, cameras, labels, layouts and scales
//  4. Infrastructure - configuration, caching, errors, metrics and HTTP
//
// # Architecture
//
// The typical data flow through webgraph:
//
//	graph JSON
//	     ↓
//	[graph] package (decode into a [store] graph)
//	     ↓
//	[session] package (edits, undo/redo, hover highlight)
//	     ↓
//	[render] package (headless frame) → [render/nodelink] (DOT, SVG)
//
// # Quick Start
//
// Load a graph, drop a node, undo it and draw the result:
//
//	import (
//	    "github.com/matzehuels/webgraph/pkg/config"
//	    "github.com/matzehuels/webgraph/pkg/graph"
//	    "github.com/matzehuels/webgraph/pkg/render/nodelink"
//	    "github.com/matzehuels/webgraph/pkg/session"
//	)
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	cfg := config.Default()
//	cfg.EnableHistory = true
//
//	s, _ := session.New(g, cfg)
//	_ = s.Start(nil)
//	defer s.Stop()
//
//	s.DropNodes([]string{"lib"})
//	_, _ = s.Undo()
//
// # Main Packages
//
// ## Model
//
// [store] - Attributed directed multigraph with merge semantics.
//
// [graph] - The {nodes, edges} JSON form used for import, export and the
// HTTP API.
//
// ## Interaction
//
// [session] - The session: lifecycle, batch mutations, render toggles,
// layout transitions and undo/redo.
//
// [history] - Generic linear undo log with a movable boundary.
//
// [highlight] - Edge-driven neighborhood highlight of a hovered node.
//
// [events] - Event emitter with disposable subscriptions.
//
// ## Drawing
//
// [render] - Renderer contract and the headless renderer.
//
// [render/nodelink] - Frames as Graphviz DOT and SVG.
//
// [camera] - Viewport state. [labels] - Label selection strategies.
//
// [layout] - Circular, random and force layouts with animated transitions.
//
// [rank] - PageRank scoring that marks important nodes.
//
// [scale] - Value to node size and color scales.
//
// ## Infrastructure
//
// [config] - TOML and YAML session configuration.
//
// [cache] - Layout cache backends (file, redis, null).
//
// [errors] - Coded errors shared by sessions and the HTTP server.
//
// [observability] - Metric hooks with a Prometheus implementation.
//
// [server] - HTTP API hosting many sessions.
//
// [buildinfo] - Version stamp.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/session/...            # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [store]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/store
// [graph]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/graph
// [session]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/session
// [history]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/history
// [highlight]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/highlight
// [events]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/events
// [render]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/render/nodelink
// [camera]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/camera
// [labels]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/labels
// [layout]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/layout
// [rank]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/rank
// [scale]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/scale
// [config]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/server
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/webgraph/pkg/buildinfo
package pkg
