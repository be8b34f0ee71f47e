package minigame

import (
	"math/rand/v2"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/spacehole-rogue/nebula_nexus/internal/clock"
)

// Player tags the controlled ship.
type Player struct{}

// Hostile is an enemy fighter or a piece of debris.
type Hostile struct {
	Damage int // hull damage on contact
}

// Projectile tags a player shot.
type Projectile struct{}

// HackState is the frequency-lock track.
type HackState struct {
	Bar    float64 // indicator position on the track
	Dir    float64 // +1 or -1
	Speed  float64 // units per frame
	Target float64 // centre of the lock window
	Height float64 // lock window height
	Locks  int
}

// Hacking track tuning.
const (
	HackTrack       = 400.0
	HackBounceLow   = 10.0
	HackBounceHigh  = HackTrack - 10
	HackLocksToWin  = 3
	HackFailDamage  = 15
	hackStartBar    = 200.0
	hackStartSpeed  = 2.0
	hackMinSpeed    = 2.0
	hackStartTarget = 100.0
	hackStartHeight = 100.0
	hackMinHeight   = 30.0
)

// Arena is the simulation context of one session. Every per-frame rule
// reads and writes through it; nothing else holds minigame state.
type Arena struct {
	ECS        *ecs.World
	Clock      *clock.Scheduler
	Rng        *rand.Rand
	Kind       Kind
	Difficulty int
	Damage     int
	Score      int
	Remaining  int // seconds left on the countdown
	Hack       HackState
	Ticks      uint64

	player     ecs.Entity
	bodyMap    *ecs.Map[Body]
	hostileMap *ecs.Map2[Body, Hostile]
	shotMap    *ecs.Map2[Body, Projectile]
	hostiles   *ecs.Filter2[Body, Hostile]
	shots      *ecs.Filter2[Body, Projectile]
	lastShot   time.Duration
	finish     func(success bool)
}

// NewArena creates the world for one session.
func NewArena(kind Kind, difficulty int, rng *rand.Rand) *Arena {
	w := ecs.NewWorld(256)

	player := ecs.NewMap2[Body, Player](w).NewEntity(
		&Body{X: PlayerStartX, Y: PlayerStartY, Radius: PlayerRadius},
		&Player{},
	)

	return &Arena{
		ECS:        w,
		Clock:      clock.NewScheduler(),
		Rng:        rng,
		Kind:       kind,
		Difficulty: difficulty,
		Remaining:  Duration,
		Hack: HackState{
			Bar:    hackStartBar,
			Dir:    1,
			Speed:  hackStartSpeed,
			Target: hackStartTarget,
			Height: hackStartHeight,
		},
		player:     player,
		bodyMap:    ecs.NewMap[Body](w),
		hostileMap: ecs.NewMap2[Body, Hostile](w),
		shotMap:    ecs.NewMap2[Body, Projectile](w),
		hostiles:   ecs.NewFilter2[Body, Hostile](w),
		shots:      ecs.NewFilter2[Body, Projectile](w),
		lastShot:   -FireCooldown,
	}
}

// PlayerBody returns the player's body.
func (a *Arena) PlayerBody() *Body {
	return a.bodyMap.Get(a.player)
}

// MovePlayer steps the player along the held axes.
func (a *Arena) MovePlayer(dx, dy int) {
	a.PlayerBody().Step(dx, dy, PlayerStep, ArenaWidth, ArenaHeight)
}

// Fire launches a projectile from the player if the cooldown has elapsed.
func (a *Arena) Fire() bool {
	now := a.Clock.Now()
	if now-a.lastShot < FireCooldown {
		return false
	}
	a.lastShot = now
	p := a.PlayerBody()
	a.shotMap.NewEntity(
		&Body{X: p.X, Y: p.Y, VY: ProjectileSpeed, Radius: ProjectileRadius},
		&Projectile{},
	)
	return true
}

// SpawnHostile places a hostile just outside a random edge, aimed at where
// the player is right now. It keeps that heading for its whole life.
func (a *Arena) SpawnHostile() {
	st := stats[a.Kind]
	var x, y float64
	switch a.Rng.IntN(4) {
	case 0:
		x, y = a.Rng.Float64()*ArenaWidth, -SpawnOffset
	case 1:
		x, y = ArenaWidth+SpawnOffset, a.Rng.Float64()*ArenaHeight
	case 2:
		x, y = a.Rng.Float64()*ArenaWidth, ArenaHeight+SpawnOffset
	default:
		x, y = -SpawnOffset, a.Rng.Float64()*ArenaHeight
	}
	b := Body{X: x, Y: y, Radius: st.radius}
	p := a.PlayerBody()
	b.AimAt(p.X, p.Y, HostileSpeed(a.Kind, a.Difficulty))
	a.hostileMap.NewEntity(&b, &Hostile{Damage: st.damage})
}

// AddHostile inserts a hostile directly.
func (a *Arena) AddHostile(b Body, damage int) ecs.Entity {
	return a.hostileMap.NewEntity(&b, &Hostile{Damage: damage})
}

type tracked struct {
	entity ecs.Entity
	body   Body
}

// stepHostiles moves every hostile and applies contact damage. A hostile
// that touches the player is spent.
func (a *Arena) stepHostiles() {
	p := *a.PlayerBody()
	var spent []ecs.Entity
	q := a.hostiles.Query()
	for q.Next() {
		b, h := q.Get()
		b.Tick()
		if b.Overlaps(&p) {
			a.Damage += h.Damage
			spent = append(spent, q.Entity())
		}
	}
	a.remove(spent)
}

// stepShots moves projectiles and resolves hits. One projectile destroys at
// most one hostile.
func (a *Arena) stepShots() {
	var targets []tracked
	hq := a.hostiles.Query()
	for hq.Next() {
		b, _ := hq.Get()
		targets = append(targets, tracked{entity: hq.Entity(), body: *b})
	}

	hit := make(map[ecs.Entity]bool)
	var spent []ecs.Entity
	q := a.shots.Query()
	for q.Next() {
		b, _ := q.Get()
		b.Tick()
		if b.Y < 0 {
			spent = append(spent, q.Entity())
			continue
		}
		for _, t := range targets {
			if hit[t.entity] || !b.Overlaps(&t.body) {
				continue
			}
			hit[t.entity] = true
			a.Score++
			spent = append(spent, q.Entity(), t.entity)
			break
		}
	}
	a.remove(spent)
}

// sweep drops hostiles that have drifted past the discard margin.
func (a *Arena) sweep() {
	var gone []ecs.Entity
	q := a.hostiles.Query()
	for q.Next() {
		b, _ := q.Get()
		if b.Outside(ArenaWidth, ArenaHeight, DiscardMargin) {
			gone = append(gone, q.Entity())
		}
	}
	a.remove(gone)
}

func (a *Arena) remove(entities []ecs.Entity) {
	for _, e := range entities {
		if a.ECS.Alive(e) {
			a.ECS.RemoveEntity(e)
		}
	}
}

// Hostiles returns a copy of every live hostile body.
func (a *Arena) Hostiles() []Body {
	var out []Body
	q := a.hostiles.Query()
	for q.Next() {
		b, _ := q.Get()
		out = append(out, *b)
	}
	return out
}

// Projectiles returns a copy of every live projectile body.
func (a *Arena) Projectiles() []Body {
	var out []Body
	q := a.shots.Query()
	for q.Next() {
		b, _ := q.Get()
		out = append(out, *b)
	}
	return out
}

// stepHack moves the indicator one frame, bouncing at the track ends. The
// indicator never rests outside [HackBounceLow, HackBounceHigh].
func (a *Arena) stepHack() {
	h := &a.Hack
	h.Bar += h.Speed * h.Dir
	if h.Bar > HackBounceHigh || h.Bar < HackBounceLow {
		h.Dir = -h.Dir
		h.Bar = min(max(h.Bar, HackBounceLow), HackBounceHigh)
	}
}

// Lock tries to lock the indicator inside the target window. A hit narrows
// and moves the window and speeds the indicator up; a miss costs hull and
// slows it down. The third lock ends the session.
func (a *Arena) Lock() bool {
	h := &a.Hack
	if abs(h.Bar-h.Target) < h.Height/2 {
		h.Locks++
		h.Target = 60 + a.Rng.Float64()*(HackTrack-120)
		h.Height = max(hackMinHeight, h.Height-10)
		h.Speed++
		if h.Locks >= HackLocksToWin && a.finish != nil {
			a.finish(true)
		}
		return true
	}
	a.Damage += HackFailDamage
	h.Speed = max(hackMinSpeed, h.Speed-0.5)
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
