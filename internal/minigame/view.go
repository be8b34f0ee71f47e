package minigame

import "time"

// View is a read-only snapshot for drawing.
type View struct {
	Kind         Kind
	Difficulty   int
	Briefing     bool
	BriefingLeft time.Duration
	Remaining    int
	Damage       int
	Score        int
	Done         bool

	Player      Body
	Hostiles    []Body
	Projectiles []Body

	Hack HackState
}

// View snapshots the session.
func (s *Session) View() View {
	a := s.arena
	v := View{
		Kind:         s.cfg.Kind,
		Difficulty:   s.cfg.Difficulty,
		Briefing:     !s.started && !s.done,
		BriefingLeft: max(s.briefing, 0),
		Remaining:    a.Remaining,
		Damage:       a.Damage,
		Score:        s.score(),
		Done:         s.done,
		Player:       *a.PlayerBody(),
		Hack:         a.Hack,
	}
	if s.cfg.Kind != KindHacking {
		v.Hostiles = a.Hostiles()
		v.Projectiles = a.Projectiles()
	}
	return v
}
