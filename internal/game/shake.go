package game

import (
	"time"

	"github.com/spacehole-rogue/nebula_nexus/internal/clock"
)

// ShakeDuration is how long one screen-shake pulse lasts.
const ShakeDuration = 500 * time.Millisecond

// Shake is the fire-and-forget screen-shake cue. A new pulse while one is
// running restarts the window.
type Shake struct {
	sched *clock.Scheduler
	timer *clock.Timer
	count int
}

// NewShake creates a cue driven by sched.
func NewShake(sched *clock.Scheduler) *Shake {
	return &Shake{sched: sched}
}

// Trigger starts a pulse.
func (s *Shake) Trigger() {
	s.count++
	s.sched.Cancel(s.timer)
	s.timer = s.sched.After(ShakeDuration, func() { s.timer = nil })
}

// Active reports whether a pulse is running.
func (s *Shake) Active() bool { return s.timer.Active() }

// Count returns how many pulses have been triggered.
func (s *Shake) Count() int { return s.count }
