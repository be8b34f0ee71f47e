package game

import "github.com/spacehole-rogue/nebula_nexus/internal/world"

// Mode is solo command or local hot-seat co-op.
type Mode uint8

const (
	ModeSolo Mode = iota
	ModeCoop
)

func (m Mode) String() string {
	if m == ModeCoop {
		return "co-op"
	}
	return "solo"
}

// multiplierStep is added to DifficultyMultiplier on every commit.
const multiplierStep = 0.05

// PlayerState is everything that persists across the turns of one run.
type PlayerState struct {
	Resources     Resources
	Inventory     Inventory
	Turn          int
	Mode          Mode
	CurrentPlayer int
	Ship          *world.ShipClass
	// DifficultyMultiplier grows each turn. It is recorded only; the
	// difficulty scaler works from turn and risk.
	DifficultyMultiplier float64
}

// NewPlayerState starts a run aboard ship.
func NewPlayerState(mode Mode, ship *world.ShipClass) PlayerState {
	p := PlayerState{
		Inventory:            NewInventory(),
		Turn:                 1,
		Mode:                 mode,
		CurrentPlayer:        1,
		Ship:                 ship,
		DifficultyMultiplier: 1.0,
	}
	if ship != nil {
		p.Resources = ResourcesFrom(ship.InitialResources)
	}
	return p
}

// ResourcesFrom converts a catalog loadout into live pools.
func ResourcesFrom(l world.Loadout) Resources {
	return Resources{Hull: l.Hull, Energy: l.Energy, Crew: l.Crew, Credits: l.Credits}
}

// Snapshot returns a copy safe to hand to renderers or other goroutines.
func (p *PlayerState) Snapshot() PlayerState {
	c := *p
	c.Inventory = p.Inventory.Clone()
	return c
}

// nextPlayer returns whose turn follows the current one.
func (p *PlayerState) nextPlayer() int {
	if p.Mode != ModeCoop {
		return 1
	}
	if p.CurrentPlayer == 1 {
		return 2
	}
	return 1
}
