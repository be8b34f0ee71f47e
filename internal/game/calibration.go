package game

import "math/rand/v2"

// Calibration tuning. The bar runs over a 0..100 gauge.
const (
	calibrationSpeed      = 1.5
	calibrationStartZone  = 35.0
	calibrationStartWidth = 30.0
	calibrationMinWidth   = 10.0
	calibrationMaxMisses  = 3 // misses allowed before the next one gives up
	CalibrationBonus      = 5
)

// Calibration is the timing bar shown while the next event loads. Hitting
// the zone earns bonus energy; missing too often ends it with no bonus.
// It never blocks progress for long.
type Calibration struct {
	Bar        float64
	ZoneStart  float64
	ZoneWidth  float64
	Attempts   int
	Calibrated bool
	Bonus      int

	dir float64
	rng *rand.Rand
}

// NewCalibration creates a fresh bar.
func NewCalibration(rng *rand.Rand) *Calibration {
	return &Calibration{
		ZoneStart: calibrationStartZone,
		ZoneWidth: calibrationStartWidth,
		dir:       1,
		rng:       rng,
	}
}

// Tick moves the bar one frame. It stops once calibrated.
func (c *Calibration) Tick() {
	if c.Calibrated {
		return
	}
	next := c.Bar + calibrationSpeed*c.dir
	if next > 100 || next < 0 {
		c.dir = -c.dir
		next = clampFloat(next, 0, 100)
	}
	c.Bar = next
}

// InZone reports whether the bar is inside the target zone.
func (c *Calibration) InZone() bool {
	return c.Bar >= c.ZoneStart && c.Bar <= c.ZoneStart+c.ZoneWidth
}

// Press handles the action input. Once calibrated, a press with the event
// ready returns true to move on.
func (c *Calibration) Press(ready bool) bool {
	if c.Calibrated {
		return ready
	}
	if c.InZone() {
		c.Calibrated = true
		c.Bonus = CalibrationBonus
		return false
	}
	prev := c.Attempts
	c.Attempts++
	c.ZoneStart = c.rng.Float64() * 80
	c.ZoneWidth = max(calibrationMinWidth, calibrationStartWidth-float64(prev)*5)
	if prev >= calibrationMaxMisses {
		c.Calibrated = true
		c.Bonus = 0
	}
	return false
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
