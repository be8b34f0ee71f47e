package minigame

import "github.com/spacehole-rogue/nebula_nexus/internal/input"

// rules is one challenge variant. start schedules its timers, update runs
// once per frame, and timeoutSuccess is the outcome when the clock runs out.
type rules interface {
	start(a *Arena)
	update(a *Arena, in input.State)
	timeoutSuccess() bool
}

func rulesFor(k Kind) rules {
	switch k {
	case KindCombat:
		return combatRules{}
	case KindHacking:
		return hackingRules{}
	default:
		return dodgeRules{}
	}
}

func scheduleSpawns(a *Arena) {
	a.Clock.Every(SpawnInterval(a.Kind, a.Difficulty), a.SpawnHostile)
}

type combatRules struct{}

func (combatRules) start(a *Arena) { scheduleSpawns(a) }

func (combatRules) update(a *Arena, in input.State) {
	a.MovePlayer(in.Axis())
	if in.Holding(input.Fire) {
		a.Fire()
	}
	a.stepHostiles()
	a.stepShots()
	a.sweep()
}

func (combatRules) timeoutSuccess() bool { return true }

type dodgeRules struct{}

func (dodgeRules) start(a *Arena) { scheduleSpawns(a) }

func (dodgeRules) update(a *Arena, in input.State) {
	a.MovePlayer(in.Axis())
	a.stepHostiles()
	a.sweep()
}

func (dodgeRules) timeoutSuccess() bool { return true }

type hackingRules struct{}

func (hackingRules) start(*Arena) {}

func (hackingRules) update(a *Arena, in input.State) {
	if in.JustPressed(input.Fire) {
		a.Lock()
	}
	a.stepHack()
}

// Running out the clock on a lock means the firewall held.
func (hackingRules) timeoutSuccess() bool { return false }
