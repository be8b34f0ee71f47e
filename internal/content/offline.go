package content

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/spacehole-rogue/nebula_nexus/assets"
	"github.com/spacehole-rogue/nebula_nexus/internal/game"
)

// LoadEvents parses a YAML pool of hand-written events.
func LoadEvents(data []byte) ([]game.GameEvent, error) {
	var doc struct {
		Events []game.GameEvent `yaml:"events"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	seen := make(map[string]bool, len(doc.Events))
	for i, ev := range doc.Events {
		if ev.ID == "" {
			return nil, fmt.Errorf("event %d: missing id", i)
		}
		if seen[ev.ID] {
			return nil, fmt.Errorf("event %q: duplicate id", ev.ID)
		}
		seen[ev.ID] = true
		if len(ev.Choices) == 0 {
			return nil, fmt.Errorf("event %q: no choices", ev.ID)
		}
		for _, c := range ev.Choices {
			if !c.Type.Valid() || !c.Risk.Valid() {
				return nil, fmt.Errorf("event %q choice %q: bad type or risk", ev.ID, c.ID)
			}
		}
	}
	return doc.Events, nil
}

// Offline is a procedural narrator. The same seed, turn and choice always
// roll the same content, so runs without a network are reproducible.
type Offline struct {
	seed uint64
	pool []game.GameEvent
}

// NewOffline builds an offline narrator over the embedded event pool.
func NewOffline(seed uint64) (*Offline, error) {
	pool, err := LoadEvents(assets.Events)
	if err != nil {
		return nil, err
	}
	return &Offline{seed: seed, pool: pool}, nil
}

// NewOfflineWithPool is NewOffline with a caller-supplied pool.
func NewOfflineWithPool(seed uint64, pool []game.GameEvent) *Offline {
	return &Offline{seed: seed, pool: pool}
}

var offlineSpace = uuid.MustParse("6f1c4b1e-3a63-4f0b-9d35-6e0c2b7a91d4")

func (o *Offline) rng(parts ...string) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	k := h.Sum64()
	return rand.New(rand.NewPCG(o.seed^k, k>>16|7))
}

func (o *Offline) id(prefix string, parts ...string) string {
	name := fmt.Sprintf("%d/%s", o.seed, strings.Join(parts, "/"))
	return prefix + uuid.NewSHA1(offlineSpace, []byte(name)).String()
}

// GenerateEvent rolls the event for a turn. Roughly one turn in three
// draws from the hand-written pool; the rest are assembled from tables.
func (o *Offline) GenerateEvent(ctx context.Context, req game.EventRequest) (game.GameEvent, error) {
	if err := ctx.Err(); err != nil {
		return game.GameEvent{}, err
	}
	turn := fmt.Sprint(req.Turn)
	rng := o.rng("event", turn)

	if len(o.pool) > 0 && rng.IntN(3) == 0 {
		ev := o.pool[rng.IntN(len(o.pool))]
		ev.Choices = append([]game.Choice(nil), ev.Choices...)
		ev.ID = o.id("evt-", "pool", turn, ev.ID)
		for i := range ev.Choices {
			ev.Choices[i].Risk = escalate(ev.Choices[i].Risk, req.Turn)
		}
		return ev, nil
	}
	return rollEpisode(rng, req, o.id("evt-", "roll", turn)), nil
}

// GenerateCombatDetails derives a scanner readout from the event text.
func (o *Offline) GenerateCombatDetails(ctx context.Context, description string) (game.CombatDetails, error) {
	if err := ctx.Err(); err != nil {
		return game.CombatDetails{}, err
	}
	rng := o.rng("combat", description)
	name := raiderNames[rng.IntN(len(raiderNames))]
	class := raiderClasses[rng.IntN(len(raiderClasses))]
	threat := threatLevels[rng.IntN(len(threatLevels))]
	return game.CombatDetails{
		EnemyName:   strings.ToUpper(name),
		EnemyClass:  class,
		Description: fmt.Sprintf("CONTACT CONFIRMED. %s. %s", strings.ToUpper(class), raiderHails[rng.IntN(len(raiderHails))]),
		Weakness:    weaknesses[rng.IntN(len(weaknesses))],
		ThreatLevel: threat,
	}, nil
}

// successOdds is the chance in 100 that a choice of each risk pays off.
var successOdds = map[game.Risk]int{
	game.RiskLow:     80,
	game.RiskMedium:  65,
	game.RiskHigh:    50,
	game.RiskExtreme: 35,
}

// stakes scales rewards and penalties by risk.
var stakes = map[game.Risk]int{
	game.RiskLow:     1,
	game.RiskMedium:  2,
	game.RiskHigh:    3,
	game.RiskExtreme: 4,
}

// ResolveAction rolls the outcome of a choice.
func (o *Offline) ResolveAction(ctx context.Context, req game.ActionRequest) (game.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return game.Resolution{}, err
	}
	rng := o.rng("resolve", req.Event.ID, req.Choice.ID)
	odds, ok := successOdds[req.Choice.Risk]
	if !ok {
		odds = successOdds[game.RiskLow]
	}
	mult := max(1, stakes[req.Choice.Risk])
	success := rng.IntN(100) < odds

	lines := outcomeLines[req.Choice.Type]
	if len(lines) == 0 {
		lines = outcomeLines[game.Diplomatic]
	}
	res := game.Resolution{Success: success}
	var d game.ResourceDelta
	if success {
		res.OutcomeText = lines[0][rng.IntN(len(lines[0]))]
		d.Credits = (10 + rng.IntN(20)) * mult
		switch req.Choice.Type {
		case game.Evasive:
			d.Energy = -5
		case game.Diplomatic:
			d.Crew = rng.IntN(2)
		case game.Scientific:
			d.Energy = 5
		}
		if rng.IntN(100) < 30 {
			a := artifacts[rng.IntN(len(artifacts))]
			res.ItemReward = &game.Item{
				ID:          o.id("item-", req.Event.ID, req.Choice.ID),
				Name:        a.name,
				Description: a.desc,
				Icon:        game.DefaultItemIcon,
			}
		}
	} else {
		twist := twistReveals[rng.IntN(len(twistReveals))]
		res.OutcomeText = lines[1][rng.IntN(len(lines[1]))] + " " + twist
		d.Hull = -(4 + rng.IntN(6)) * mult
		d.Energy = -(2 + rng.IntN(4)) * mult
		if req.Choice.Risk == game.RiskExtreme {
			d.Crew = -1
		}
	}
	res.ResourceChanges = d
	return res, nil
}

// escalate bumps risk one tier once the run is deep enough.
func escalate(r game.Risk, turn int) game.Risk {
	if turn < escalationTurn {
		return r
	}
	switch r {
	case game.RiskLow:
		return game.RiskMedium
	case game.RiskMedium:
		return game.RiskHigh
	case game.RiskHigh:
		return game.RiskExtreme
	}
	return r
}
