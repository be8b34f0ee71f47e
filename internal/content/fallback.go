package content

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/nebula_nexus/internal/game"
)

// fallback swaps every error for the fixed stand-in records.
type fallback struct {
	next game.Narrator
	log  logrus.FieldLogger
}

// WithFallback wraps n so that no call ever fails. Errors are logged at
// warn and replaced with the game's fallback content.
func WithFallback(n game.Narrator, log logrus.FieldLogger) game.Narrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &fallback{next: n, log: log}
}

func (f *fallback) GenerateEvent(ctx context.Context, req game.EventRequest) (game.GameEvent, error) {
	ev, err := f.next.GenerateEvent(ctx, req)
	if err != nil || len(ev.Choices) == 0 {
		f.log.WithFields(logrus.Fields{"turn": req.Turn, "kind": "event"}).WithError(err).Warn("narrator failed, using fallback")
		return game.FallbackEvent(), nil
	}
	return ev, nil
}

func (f *fallback) GenerateCombatDetails(ctx context.Context, description string) (game.CombatDetails, error) {
	d, err := f.next.GenerateCombatDetails(ctx, description)
	if err != nil {
		f.log.WithField("kind", "combat").WithError(err).Warn("narrator failed, using fallback")
		return game.FallbackCombatDetails(), nil
	}
	return d, nil
}

func (f *fallback) ResolveAction(ctx context.Context, req game.ActionRequest) (game.Resolution, error) {
	res, err := f.next.ResolveAction(ctx, req)
	if err != nil {
		f.log.WithFields(logrus.Fields{"event": req.Event.ID, "kind": "resolve"}).WithError(err).Warn("narrator failed, using fallback")
		return game.FallbackResolution(), nil
	}
	return res, nil
}
