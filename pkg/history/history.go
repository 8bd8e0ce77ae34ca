// Package history implements a bounded, linear undo/redo log.
//
// A [Manager] stores opaque actions in a single slice with a boundary index.
// Entries before the boundary are active (available for undo), entries at or
// after it are reverted (available for redo). Appending while reverted entries
// exist discards them, so the log never branches.
//
// The manager knows nothing about what an action means. Callers fetch the
// action to replay, apply its inverse themselves, and only then move the
// boundary:
//
//	a, ok := h.LatestActive()
//	if ok && replayInverse(a) {
//		h.MarkLatestActiveAsReverted()
//	}
//
// A Manager is not safe for concurrent use.
package history

// Option configures a Manager.
type Option func(*config)

type config struct {
	limit int
}

// WithLimit bounds the number of stored entries. When an append would exceed
// n, the oldest entry is evicted. n <= 0 means unbounded.
func WithLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

// Manager is a linear undo/redo log over actions of type A.
type Manager[A any] struct {
	entries  []A
	boundary int
	limit    int
}

// New creates an empty manager.
func New[A any](opts ...Option) *Manager[A] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &Manager[A]{limit: c.limit}
}

// Append pushes a new active action at the tail, discarding every reverted
// entry first. Never fails.
func (m *Manager[A]) Append(a A) {
	clear(m.entries[m.boundary:])
	m.entries = append(m.entries[:m.boundary], a)
	m.boundary++

	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		clear(m.entries[:drop])
		m.entries = m.entries[drop:]
		m.boundary -= drop
	}
}

// LatestActive returns the action an undo would revert.
func (m *Manager[A]) LatestActive() (A, bool) {
	if m.boundary == 0 {
		var zero A
		return zero, false
	}
	return m.entries[m.boundary-1], true
}

// LatestReverted returns the action a redo would re-apply.
func (m *Manager[A]) LatestReverted() (A, bool) {
	if m.boundary >= len(m.entries) {
		var zero A
		return zero, false
	}
	return m.entries[m.boundary], true
}

// MarkLatestActiveAsReverted moves the boundary one step back.
// Reports false when nothing is active.
func (m *Manager[A]) MarkLatestActiveAsReverted() bool {
	if m.boundary == 0 {
		return false
	}
	m.boundary--
	return true
}

// MarkLatestRevertedAsActive moves the boundary one step forward.
// Reports false when nothing is reverted.
func (m *Manager[A]) MarkLatestRevertedAsActive() bool {
	if m.boundary >= len(m.entries) {
		return false
	}
	m.boundary++
	return true
}

// Clear resets the log to empty.
func (m *Manager[A]) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
	m.boundary = 0
}

// Len returns the number of stored entries, active and reverted.
func (m *Manager[A]) Len() int { return len(m.entries) }

// Boundary returns the number of active entries.
func (m *Manager[A]) Boundary() int { return m.boundary }

// CanUndo reports whether an active entry exists.
func (m *Manager[A]) CanUndo() bool { return m.boundary > 0 }

// CanRedo reports whether a reverted entry exists.
func (m *Manager[A]) CanRedo() bool { return m.boundary < len(m.entries) }

// Limit returns the configured bound, or 0 if unbounded.
func (m *Manager[A]) Limit() int { return m.limit }

// Entries returns a copy of all entries, oldest first.
func (m *Manager[A]) Entries() []A {
	out := make([]A, len(m.entries))
	copy(out, m.entries)
	return out
}
