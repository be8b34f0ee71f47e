// Package input folds keyboard and touch controls into a single per-frame
// state. Game logic only ever sees Action bits, never devices.
package input

// Action is a bit set of logical controls.
type Action uint16

const (
	Up Action = 1 << iota
	Down
	Left
	Right
	Fire    // shoot, lock, calibrate
	Confirm // continue, accept
	Back
	Option1
	Option2
	Option3
	Option4

	None Action = 0
)

// Options lists the choice actions in display order.
var Options = [4]Action{Option1, Option2, Option3, Option4}

// Has reports whether every bit of b is set in a.
func (a Action) Has(b Action) bool { return b != 0 && a&b == b }

// Any reports whether any bit of b is set in a.
func (a Action) Any(b Action) bool { return a&b != 0 }

// State is the unified control state for one frame.
// Held is level triggered, Pressed is edge triggered (down this frame only).
type State struct {
	Held    Action
	Pressed Action
}

// Holding reports whether a is held this frame.
func (s State) Holding(a Action) bool { return s.Held.Any(a) }

// JustPressed reports whether a went down this frame.
func (s State) JustPressed(a Action) bool { return s.Pressed.Any(a) }

// Axis returns the held direction as -1, 0 or 1 per axis.
// Opposing directions cancel out.
func (s State) Axis() (dx, dy int) {
	if s.Held.Any(Left) {
		dx--
	}
	if s.Held.Any(Right) {
		dx++
	}
	if s.Held.Any(Up) {
		dy--
	}
	if s.Held.Any(Down) {
		dy++
	}
	return dx, dy
}

// Option returns the index of the first choice pressed this frame, or -1.
func (s State) Option() int {
	for i, a := range Options {
		if s.Pressed.Any(a) {
			return i
		}
	}
	return -1
}

// Tracker turns raw held sets into edge-aware frame states.
type Tracker struct {
	Layout TouchLayout
	prev   Action
}

// Next combines the keyboard set with whatever the touches resolve to.
// Both sources count; a control is held if either device holds it.
func (t *Tracker) Next(keys Action, touches []Point) State {
	held := keys | t.Layout.Resolve(touches)
	st := State{Held: held, Pressed: held &^ t.prev}
	t.prev = held
	return st
}
