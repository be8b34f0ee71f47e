package input

// Point is a touch position in screen pixels.
type Point struct {
	X, Y float64
}

// Region is a rectangular on-screen control.
type Region struct {
	X, Y, W, H float64
	Action     Action
	Label      string
}

// Contains reports whether p falls inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// TouchLayout is the set of touch controls for the screen.
type TouchLayout []Region

// Resolve returns the union of actions under the given touches.
func (l TouchLayout) Resolve(touches []Point) Action {
	var a Action
	for _, p := range touches {
		for _, r := range l {
			if r.Contains(p) {
				a |= r.Action
			}
		}
	}
	return a
}

// DefaultLayout places a d-pad in the lower left, a fire button in the lower
// right, a back button in the top left corner, and four stacked choice rows
// across the middle of a w x h screen.
func DefaultLayout(w, h float64) TouchLayout {
	const pad = 64.0
	const margin = 24.0
	bx := margin
	by := h - margin - 3*pad
	l := TouchLayout{
		{X: bx + pad, Y: by, W: pad, H: pad, Action: Up, Label: "^"},
		{X: bx + pad, Y: by + 2*pad, W: pad, H: pad, Action: Down, Label: "v"},
		{X: bx, Y: by + pad, W: pad, H: pad, Action: Left, Label: "<"},
		{X: bx + 2*pad, Y: by + pad, W: pad, H: pad, Action: Right, Label: ">"},
		{X: w - margin - 2*pad, Y: h - margin - 2*pad, W: 2 * pad, H: 2 * pad, Action: Fire | Confirm, Label: "FIRE"},
		{X: 0, Y: 0, W: pad, H: pad, Action: Back, Label: "X"},
	}
	for i, a := range Options {
		l = append(l, ChoiceRegion(w, h, i, a))
	}
	return l
}

// ChoiceRegion is the touch area for the i-th choice row. Renderers use the
// same geometry to draw the choice cards.
func ChoiceRegion(w, h float64, i int, a Action) Region {
	const rowH = 48.0
	top := h/2 + 16
	x := w * 0.25
	return Region{X: x, Y: top + float64(i)*rowH, W: w * 0.5, H: rowH - 8, Action: a}
}
