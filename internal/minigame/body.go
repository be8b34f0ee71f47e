package minigame

import "math"

// Body is a circle with a per-frame velocity. Position is in arena units.
type Body struct {
	X, Y   float64
	VX, VY float64 // units per frame
	Radius float64
}

// Tick moves the body by one frame of velocity.
func (b *Body) Tick() {
	b.X += b.VX
	b.Y += b.VY
}

// Speed returns the current velocity magnitude.
func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Step moves the body by a fixed distance per axis, keeping it fully inside
// a w x h box.
func (b *Body) Step(dx, dy int, dist, w, h float64) {
	b.X = clampFloat(b.X+float64(dx)*dist, b.Radius, w-b.Radius)
	b.Y = clampFloat(b.Y+float64(dy)*dist, b.Radius, h-b.Radius)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Overlaps reports whether two circles intersect.
func (b *Body) Overlaps(o *Body) bool {
	return math.Hypot(b.X-o.X, b.Y-o.Y) < b.Radius+o.Radius
}

// Outside reports whether the centre is more than margin beyond a w x h box.
func (b *Body) Outside(w, h, margin float64) bool {
	return b.X < -margin || b.X > w+margin || b.Y < -margin || b.Y > h+margin
}

// AimAt sets the velocity to speed along the line towards (x, y).
func (b *Body) AimAt(x, y, speed float64) {
	angle := math.Atan2(y-b.Y, x-b.X)
	b.VX = math.Cos(angle) * speed
	b.VY = math.Sin(angle) * speed
}
