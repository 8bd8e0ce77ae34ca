// Package camera holds the viewport state shared by renderers and label
// selectors.
package camera

// State is a camera position. Ratio is the zoom ratio: values above 1 are
// zoomed out, values below 1 zoomed in.
type State struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Ratio float64 `json:"ratio"`
	Angle float64 `json:"angle"`
}

// DefaultState is the state of a freshly created camera.
var DefaultState = State{X: 0.5, Y: 0.5, Ratio: 1}

// View is the read-only side of a camera consumed by label selectors.
type View interface {
	State() State
	PreviousState() State
}

// Camera tracks the current state and the state before the last change.
// A disabled camera ignores state changes, which is how node dragging keeps
// the viewport still.
type Camera struct {
	state    State
	previous State
	disabled bool
}

var _ View = (*Camera)(nil)

// New creates a camera at DefaultState.
func New() *Camera {
	return &Camera{state: DefaultState, previous: DefaultState}
}

// State returns the current state.
func (c *Camera) State() State { return c.state }

// PreviousState returns the state before the last successful SetState.
func (c *Camera) PreviousState() State { return c.previous }

// SetState moves the camera. Reports false if the camera is disabled.
func (c *Camera) SetState(s State) bool {
	if c.disabled {
		return false
	}
	c.previous = c.state
	c.state = s
	return true
}

// Pan moves the camera by the given offset.
func (c *Camera) Pan(dx, dy float64) bool {
	s := c.state
	s.X += dx
	s.Y += dy
	return c.SetState(s)
}

// Zoom multiplies the ratio by factor. Factors below 1 zoom in.
func (c *Camera) Zoom(factor float64) bool {
	if factor <= 0 {
		return false
	}
	s := c.state
	s.Ratio *= factor
	return c.SetState(s)
}

// Settle marks the current state as seen, so the next frame observes a
// still camera.
func (c *Camera) Settle() { c.previous = c.state }

// Enable re-enables state changes.
func (c *Camera) Enable() { c.disabled = false }

// Disable freezes the camera.
func (c *Camera) Disable() { c.disabled = true }

// Enabled reports whether the camera accepts state changes.
func (c *Camera) Enabled() bool { return !c.disabled }
