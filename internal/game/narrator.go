package game

import (
	"context"

	"github.com/spacehole-rogue/nebula_nexus/internal/world"
)

// EventRequest carries what the narrator may use to write a turn's event.
type EventRequest struct {
	Turn      int
	Resources Resources
	Ship      *world.ShipClass
	Inventory []Item
}

// ActionRequest asks for the outcome of a chosen option.
type ActionRequest struct {
	Event     GameEvent
	Choice    Choice
	Resources Resources
	Ship      *world.ShipClass
}

// Narrator is the content source. Implementations may block on the network;
// errors are replaced with fixed fallbacks by the caller.
type Narrator interface {
	GenerateEvent(ctx context.Context, req EventRequest) (GameEvent, error)
	GenerateCombatDetails(ctx context.Context, description string) (CombatDetails, error)
	ResolveAction(ctx context.Context, req ActionRequest) (Resolution, error)
}
