// Package events provides a small typed event emitter with disposable
// subscriptions.
//
// Every call to [Emitter.On] or [Emitter.Once] returns a [Subscription].
// Closing it removes exactly that registration, which lets callers bind
// short-lived listeners (a drag, a single pointer move) and guarantee they are
// released on their terminal event.
package events

import (
	"slices"
	"sync"
)

// Type names an event.
type Type string

// Session events, emitted to callers.
const (
	Rendered            Type = "rendered"
	SyncLayoutCompleted Type = "syncLayoutCompleted"
	Click               Type = "click"
	MouseDown           Type = "mousedown"
	MouseEnter          Type = "mouseenter"
	MouseLeave          Type = "mouseleave"
	MouseMove           Type = "mousemove"
)

// Renderer events, consumed by the session.
const (
	ClickNode      Type = "clickNode"
	RightClickNode Type = "rightClickNode"
	DownNode       Type = "downNode"
	EnterNode      Type = "enterNode"
	LeaveNode      Type = "leaveNode"
	MouseUp        Type = "mouseup"
)

// Pointer is the raw input that triggered an event, in viewport coordinates.
type Pointer struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
}

// Event is the payload delivered to handlers. Node is empty for events that
// do not concern a node.
type Event struct {
	Type    Type    `json:"type"`
	Node    string  `json:"node,omitempty"`
	Pointer Pointer `json:"pointer"`
}

// Handler receives events.
type Handler func(Event)

type listener struct {
	id   uint64
	fn   Handler
	once bool
}

// Emitter dispatches events to registered handlers in registration order.
// It is safe for concurrent use; handlers run on the emitting goroutine and
// may subscribe or unsubscribe while being called.
type Emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[Type][]listener
}

// NewEmitter creates an emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[Type][]listener)}
}

// On registers fn for every event of type t.
func (e *Emitter) On(t Type, fn Handler) *Subscription {
	return e.add(t, fn, false)
}

// Once registers fn for the next event of type t only.
func (e *Emitter) Once(t Type, fn Handler) *Subscription {
	return e.add(t, fn, true)
}

// Emit delivers ev to every handler registered for ev.Type.
func (e *Emitter) Emit(ev Event) {
	e.mu.Lock()
	ls := slices.Clone(e.listeners[ev.Type])
	for _, l := range ls {
		if l.once {
			e.remove(ev.Type, l.id)
		}
	}
	e.mu.Unlock()

	for _, l := range ls {
		l.fn(ev)
	}
}

// RemoveAll drops every listener.
func (e *Emitter) RemoveAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = make(map[Type][]listener)
}

// ListenerCount returns the number of listeners registered for t.
func (e *Emitter) ListenerCount(t Type) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[t])
}

func (e *Emitter) add(t Type, fn Handler, once bool) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	e.listeners[t] = append(e.listeners[t], listener{id: id, fn: fn, once: once})
	return &Subscription{emitter: e, typ: t, id: id}
}

// remove must be called with mu held.
func (e *Emitter) remove(t Type, id uint64) {
	ls := slices.DeleteFunc(e.listeners[t], func(l listener) bool { return l.id == id })
	if len(ls) == 0 {
		delete(e.listeners, t)
		return
	}
	e.listeners[t] = ls
}

// Subscription is the handle of a single registration.
type Subscription struct {
	emitter *Emitter
	typ     Type
	id      uint64
	once    sync.Once
}

// Close removes the registration. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.emitter.mu.Lock()
		defer s.emitter.mu.Unlock()
		s.emitter.remove(s.typ, s.id)
	})
}
