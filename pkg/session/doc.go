// Package session is the interaction layer between a mutable graph and a
// renderer.
//
// A [Session] owns three things on top of the graph it edits: a bounded undo
// log of [Action] values, the highlight state of the hovered node's
// neighborhood, and the label selector installed into the renderer.
//
// # Lifecycle
//
// A session starts INACTIVE. [Session.Start] builds a renderer through a
// [render.Factory], wires pointer events and enters ACTIVE; a second Start
// fails with ALREADY_ACTIVE. [Session.Stop] kills the renderer and clears
// listeners, highlight state, the hovered node and the history.
//
// # Mutations
//
// Every mutation follows the same pattern: snapshot what it will overwrite,
// apply, record one [Action], return a boolean. Recording happens only while
// the session is active with history enabled, and can be suppressed per call
// with [NoHistory]:
//
//	s.MergeNodes(nodes)              // recorded
//	s.MergeNodes(nodes, NoHistory()) // not recorded
//
// Each call that returns true records exactly one action, so N successful
// calls are reverted by N calls to [Session.Undo].
//
// # Errors
//
// Precondition violations (starting twice, undo while inactive or with
// history disabled) return a *errors.Error. Soft no-ops such as empty input
// or an exhausted log are reported as false, never as an error. Batches skip
// keys that do not exist.
//
// # Concurrency
//
// A Session is not safe for concurrent use. Layout transitions are not
// goroutines: the caller advances them with [Session.Tick].
package session
