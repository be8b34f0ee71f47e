package minigame

import (
	"math/rand/v2"
	"time"

	"github.com/spacehole-rogue/nebula_nexus/internal/input"
)

// Session drives one challenge from briefing to result.
type Session struct {
	cfg        Config
	arena      *Arena
	rules      rules
	onComplete func(Result)
	briefing   time.Duration
	started    bool
	done       bool
	aborted    bool
	result     Result
}

// NewSession builds a session. onComplete is called exactly once, from
// inside Tick, unless the session is aborted first.
func NewSession(cfg Config, rng *rand.Rand, onComplete func(Result)) *Session {
	if cfg.Difficulty < 1 {
		cfg.Difficulty = 1
	}
	if cfg.Kind >= KindCount {
		cfg.Kind = KindDodge
	}
	s := &Session{
		cfg:        cfg,
		arena:      NewArena(cfg.Kind, cfg.Difficulty, rng),
		rules:      rulesFor(cfg.Kind),
		onComplete: onComplete,
		briefing:   cfg.Briefing,
	}
	s.arena.finish = s.finish
	if s.briefing <= 0 {
		s.begin()
	}
	return s
}

func (s *Session) begin() {
	s.started = true
	s.briefing = 0
	a := s.arena
	a.Clock.Every(time.Second, func() {
		if a.Remaining <= 1 {
			a.Remaining = 0
			s.finish(s.rules.timeoutSuccess())
			return
		}
		a.Remaining--
	})
	s.rules.start(a)
}

// Tick advances one frame. During the briefing input is ignored and no
// clock runs.
func (s *Session) Tick(in input.State) {
	if s.done {
		return
	}
	if !s.started {
		s.briefing -= FrameTime
		if s.briefing <= 0 {
			s.begin()
		}
		return
	}
	s.arena.Ticks++
	s.rules.update(s.arena, in)
	if s.done {
		return
	}
	s.arena.Clock.Advance(FrameTime)
}

// finish ends the session once. Later calls, including a timer and a lock
// landing on the same frame, are ignored.
func (s *Session) finish(success bool) {
	if s.done {
		return
	}
	s.done = true
	s.arena.Clock.CancelAll()
	s.result = Result{
		Success:         success,
		HullDamageTaken: s.arena.Damage,
		Score:           s.score(),
	}
	if s.onComplete != nil {
		s.onComplete(s.result)
	}
}

func (s *Session) score() int {
	if s.cfg.Kind == KindHacking {
		return s.arena.Hack.Locks
	}
	return s.arena.Score
}

// Abort tears the session down without reporting a result.
func (s *Session) Abort() {
	if s.done {
		return
	}
	s.done = true
	s.aborted = true
	s.arena.Clock.CancelAll()
}

// Done reports whether the session has finished or been aborted.
func (s *Session) Done() bool { return s.done }

// Result returns the outcome once the session has completed normally.
func (s *Session) Result() (Result, bool) {
	return s.result, s.done && !s.aborted
}

// Config returns the configuration the session was built with.
func (s *Session) Config() Config { return s.cfg }

// Arena exposes the simulation context.
func (s *Session) Arena() *Arena { return s.arena }
