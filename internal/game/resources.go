package game

// ResourceCap is the ceiling for hull and energy.
const ResourceCap = 150

// Resources tracks the four ship pools.
// Hull and Energy live in [0, ResourceCap]; Crew and Credits only floor at 0.
type Resources struct {
	Hull    int `json:"hull" yaml:"hull"`
	Energy  int `json:"energy" yaml:"energy"`
	Crew    int `json:"crew" yaml:"crew"`
	Credits int `json:"credits" yaml:"credits"`
}

// ResourceDelta is a partial change to Resources. Zero fields mean "no change".
type ResourceDelta struct {
	Hull    int
	Energy  int
	Crew    int
	Credits int
}

// IsZero reports whether the delta changes nothing.
func (d ResourceDelta) IsZero() bool { return d == ResourceDelta{} }

// Harmful reports whether the delta costs hull or crew.
func (d ResourceDelta) Harmful() bool { return d.Hull < 0 || d.Crew < 0 }

// Apply returns r with d added and every pool clamped into range.
func (r Resources) Apply(d ResourceDelta) Resources {
	return Resources{
		Hull:    clampInt(r.Hull+d.Hull, 0, ResourceCap),
		Energy:  clampInt(r.Energy+d.Energy, 0, ResourceCap),
		Crew:    max(0, r.Crew+d.Crew),
		Credits: max(0, r.Credits+d.Credits),
	}
}

// Depleted reports whether the ship can no longer fly: no hull, no power or
// no crew. Credits never end a run.
func (r Resources) Depleted() bool {
	return r.Hull <= 0 || r.Energy <= 0 || r.Crew <= 0
}

// StatusLevel returns a human-readable label for a pool on the 0..150 scale.
func StatusLevel(val int) string {
	switch {
	case val <= 15:
		return "CRITICAL"
	case val <= 40:
		return "Low"
	case val <= 100:
		return "Nominal"
	default:
		return "Reinforced"
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
