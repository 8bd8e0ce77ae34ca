package camera

import "testing"

func TestSetStateTracksPrevious(t *testing.T) {
	c := New()
	next := State{X: 1, Y: 2, Ratio: 0.5}

	if !c.SetState(next) {
		t.Fatal("SetState() = false on enabled camera")
	}
	if c.State() != next {
		t.Errorf("State() = %+v, want %+v", c.State(), next)
	}
	if c.PreviousState() != DefaultState {
		t.Errorf("PreviousState() = %+v, want %+v", c.PreviousState(), DefaultState)
	}

	c.Settle()
	if c.PreviousState() != next {
		t.Errorf("after Settle PreviousState() = %+v", c.PreviousState())
	}
}

func TestDisabledCameraIgnoresChanges(t *testing.T) {
	c := New()
	c.Disable()

	if c.Pan(1, 1) || c.Zoom(2) {
		t.Error("disabled camera accepted a change")
	}
	if c.State() != DefaultState {
		t.Errorf("State() = %+v, want default", c.State())
	}

	c.Enable()
	if !c.Zoom(2) || c.State().Ratio != 2 {
		t.Errorf("Zoom after Enable: ratio = %v", c.State().Ratio)
	}
}

func TestZoomRejectsNonPositive(t *testing.T) {
	c := New()
	if c.Zoom(0) || c.Zoom(-1) {
		t.Error("Zoom accepted non-positive factor")
	}
}
