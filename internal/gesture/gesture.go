// Package gesture turns raw pointer-down/move/up signals into a
// drag-vs-click decision. Small pointer jitter during a click must never
// turn into an accidental node move, so a press only becomes a drag once
// the pointer travels past a distance threshold.
package gesture

import "math"

// DefaultThreshold is the Euclidean distance in cells/pixels a pressed
// pointer must travel before the press counts as a drag.
const DefaultThreshold = 15.0

// State is the recognizer's position in its three-state machine.
type State int

const (
	Idle State = iota
	Pressed
	Dragging
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Outcome is the classification returned on pointer-up.
type Outcome int

const (
	// None: pointer-up without a preceding press.
	None Outcome = iota
	// Clicked: the pointer never crossed the threshold, a plain selection.
	Clicked
	// Dropped: the press became a drag, the release is a drop.
	Dropped
)

// Recognizer classifies one pointer gesture at a time. It is not safe for
// concurrent use; all events arrive on the UI loop.
type Recognizer struct {
	state     State
	startX    float64
	startY    float64
	threshold float64
}

// New returns a recognizer with the given threshold. Zero or negative
// selects DefaultThreshold.
func New(threshold float64) *Recognizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Recognizer{threshold: threshold}
}

// State returns the current machine state.
func (r *Recognizer) State() State { return r.state }

// Down records the press origin and arms the recognizer.
func (r *Recognizer) Down(x, y float64) {
	r.state = Pressed
	r.startX, r.startY = x, y
}

// Move feeds a pointer position and returns the resulting state. While
// Pressed, movement below the threshold is suppressed as jitter; at or past
// the threshold the gesture commits to Dragging and stays there.
func (r *Recognizer) Move(x, y float64) State {
	if r.state == Pressed {
		if math.Hypot(x-r.startX, y-r.startY) >= r.threshold {
			r.state = Dragging
		}
	}
	return r.state
}

// Up finalizes the gesture and resets to Idle: a press that never crossed
// the threshold is a click, a drag becomes a drop.
func (r *Recognizer) Up() Outcome {
	state := r.state
	r.state = Idle
	switch state {
	case Pressed:
		return Clicked
	case Dragging:
		return Dropped
	default:
		return None
	}
}

// Reset abandons any in-progress gesture.
func (r *Recognizer) Reset() { r.state = Idle }
