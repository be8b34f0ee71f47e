package game

import (
	"errors"
	"fmt"
)

// Phase is the turn loop's state.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseShipSelect
	PhaseLoadingEvent
	PhasePlayingEvent
	PhaseCinematic
	PhaseMinigame
	PhaseResolving
	PhaseGameOver
	PhaseVictory
	PhaseCount // sentinel
)

var phaseNames = [PhaseCount]string{
	"menu", "ship-select", "loading-event", "playing-event",
	"cinematic", "minigame", "resolving", "game-over", "victory",
}

func (p Phase) String() string {
	if p < PhaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// InRun reports whether a run is in progress.
func (p Phase) InRun() bool {
	return p >= PhaseLoadingEvent && p <= PhaseResolving
}

// Trigger is an input to the state machine.
type Trigger uint8

const (
	TriggerSelectMode Trigger = iota
	TriggerChooseShip
	TriggerBack
	TriggerCalibrated
	TriggerEngageCombat
	TriggerStartMinigame
	TriggerResolveDirect
	TriggerSequenceComplete
	TriggerResultReady
	TriggerNoMatchingChoice
	TriggerAdvance
	TriggerDepleted
	TriggerTriumph
	TriggerRestart
	TriggerRematch
	TriggerQuit
	TriggerCount // sentinel
)

var triggerNames = [TriggerCount]string{
	"select-mode", "choose-ship", "back", "calibrated", "engage-combat",
	"start-minigame", "resolve-direct", "sequence-complete", "result-ready",
	"no-matching-choice", "advance", "depleted", "triumph", "restart",
	"rematch", "quit",
}

func (t Trigger) String() string {
	if t < TriggerCount {
		return triggerNames[t]
	}
	return "unknown"
}

// ErrInvalidTransition is returned when a trigger has no edge from the
// current phase.
var ErrInvalidTransition = errors.New("invalid transition")

// transitions is the whole state machine. Renderers only ever look at the
// resulting phase.
var transitions = func() map[Phase]map[Trigger]Phase {
	t := map[Phase]map[Trigger]Phase{
		PhaseMenu: {
			TriggerSelectMode: PhaseShipSelect,
		},
		PhaseShipSelect: {
			TriggerChooseShip: PhaseLoadingEvent,
			TriggerBack:       PhaseMenu,
		},
		PhaseLoadingEvent: {
			TriggerCalibrated: PhasePlayingEvent,
		},
		PhasePlayingEvent: {
			TriggerEngageCombat:  PhaseCinematic,
			TriggerStartMinigame: PhaseMinigame,
			TriggerResolveDirect: PhaseResolving,
		},
		PhaseCinematic: {
			TriggerSequenceComplete: PhaseMinigame,
		},
		PhaseMinigame: {
			TriggerResultReady:      PhaseResolving,
			TriggerNoMatchingChoice: PhasePlayingEvent,
		},
		PhaseResolving: {
			TriggerAdvance: PhaseLoadingEvent,
		},
		PhaseGameOver: {
			TriggerRestart: PhaseMenu,
			TriggerRematch: PhaseShipSelect,
		},
		PhaseVictory: {
			TriggerRestart: PhaseMenu,
			TriggerRematch: PhaseShipSelect,
		},
	}
	for p := PhaseLoadingEvent; p <= PhaseResolving; p++ {
		t[p][TriggerDepleted] = PhaseGameOver
		t[p][TriggerTriumph] = PhaseVictory
		t[p][TriggerQuit] = PhaseMenu
	}
	return t
}()

// Next looks up the phase reached by firing trig in from.
func Next(from Phase, trig Trigger) (Phase, error) {
	if to, ok := transitions[from][trig]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%s on %s: %w", trig, from, ErrInvalidTransition)
}
