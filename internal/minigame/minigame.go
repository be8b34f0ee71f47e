// Package minigame runs the real-time skill challenges: a combat shooter, a
// debris dodge and a frequency-lock hack. A Session is ticked once per frame
// and reports its Result exactly once.
package minigame

import "time"

// Kind selects the challenge variant.
type Kind uint8

const (
	KindCombat Kind = iota
	KindDodge
	KindHacking
	KindCount // sentinel
)

var kindNames = [KindCount]string{"combat", "dodge", "hacking"}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Config parameterises one session. It is consumed once.
type Config struct {
	Kind       Kind
	Difficulty int
	// Briefing is the read-the-controls period before the clock starts.
	// Zero starts immediately.
	Briefing time.Duration
}

// Result is reported once per session.
type Result struct {
	Success         bool
	HullDamageTaken int
	Score           int
}

// Arena geometry and timing, in logical units and frames at 60 TPS.
const (
	ArenaWidth  = 600.0
	ArenaHeight = 400.0

	PlayerStartX = 300.0
	PlayerStartY = 200.0
	PlayerRadius = 15.0
	PlayerStep   = 5.0 // units per frame per held axis

	SpawnOffset   = 30.0 // hostiles appear this far outside an edge
	DiscardMargin = 50.0

	ProjectileRadius = 4.0
	ProjectileSpeed  = -8.0

	Duration = 15 // seconds on the countdown
)

// FrameTime is the simulated duration of one Tick.
const FrameTime = time.Second / 60

// DefaultBriefing is how long the controls overlay stays up.
const DefaultBriefing = 3500 * time.Millisecond

// FireCooldown is the minimum gap between two projectiles.
const FireCooldown = 250 * time.Millisecond

// variantStats holds the per-kind spatial tuning.
type variantStats struct {
	radius      float64
	baseSpeed   float64
	damage      int
	minInterval time.Duration
}

var stats = [KindCount]variantStats{
	KindCombat: {radius: 20, baseSpeed: 2, damage: 10, minInterval: 300 * time.Millisecond},
	KindDodge:  {radius: 30, baseSpeed: 1.5, damage: 5, minInterval: 600 * time.Millisecond},
}

// SpawnInterval returns the gap between hostile spawns at difficulty d.
func SpawnInterval(k Kind, d int) time.Duration {
	if k >= KindCount {
		return 0
	}
	iv := 1200*time.Millisecond - time.Duration(d)*100*time.Millisecond
	return max(stats[k].minInterval, iv)
}

// HostileSpeed returns the hostile speed in units per frame at difficulty d.
func HostileSpeed(k Kind, d int) float64 {
	if k >= KindCount {
		return 0
	}
	return stats[k].baseSpeed + float64(d)*0.3
}
