// Package server exposes graph sessions over HTTP.
//
// Each session is created from a serialized graph, rendered by a headless
// renderer and addressed by a UUID. Requests against one session are
// serialized by a per-session mutex held for the whole operation, so the
// single-caller contract of [session.Session] holds under concurrent HTTP
// clients. Different sessions proceed in parallel.
//
// # Routes
//
//	GET    /healthz
//	GET    /metrics
//	POST   /sessions                       create from {graph, config}
//	GET    /sessions                       list IDs
//	DELETE /sessions/{id}                  stop and forget
//	GET    /sessions/{id}/graph            export (?exclude_edges=true)
//	GET    /sessions/{id}/frame            last headless frame as JSON
//	GET    /sessions/{id}/frame.svg        last frame through graphviz
//	POST   /sessions/{id}/nodes            merge nodes
//	POST   /sessions/{id}/nodes/drop       drop nodes by key
//	POST   /sessions/{id}/edges            merge edges
//	PUT    /sessions/{id}/edges            replace all edges
//	POST   /sessions/{id}/toggles/{name}   edges | important-edges | backdrop
//	PUT    /sessions/{id}/node-type        {type}
//	PUT    /sessions/{id}/app-mode         {mode}
//	GET    /sessions/{id}/layout           current positions
//	POST   /sessions/{id}/layout           {algorithm, options}, cached
//	POST   /sessions/{id}/rank             mark the top-N PageRank nodes important
//	POST   /sessions/{id}/hover            {node}; empty node leaves
//	GET    /sessions/{id}/camera           camera state
//	PUT    /sessions/{id}/camera           set camera state
//	POST   /sessions/{id}/undo
//	POST   /sessions/{id}/redo
//	DELETE /sessions/{id}/history
//
// Errors are JSON objects {"code", "message"}; precondition failures map to
// 409, invalid input to 400 and unknown sessions to 404.
package server
