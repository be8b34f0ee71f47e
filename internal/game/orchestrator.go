package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/nebula_nexus/internal/clock"
	"github.com/spacehole-rogue/nebula_nexus/internal/input"
	"github.com/spacehole-rogue/nebula_nexus/internal/minigame"
	"github.com/spacehole-rogue/nebula_nexus/internal/world"
)

var (
	// ErrBusy is returned for a decision made while content is loading.
	ErrBusy = errors.New("content request in flight")
	// ErrUnknownChoice is returned for a choice id not in the current event.
	ErrUnknownChoice = errors.New("unknown choice")
	// ErrUnknownShip is returned for a ship id not in the catalog.
	ErrUnknownShip = errors.New("unknown ship")
)

// DefaultContentTimeout bounds a single narrator call.
const DefaultContentTimeout = 20 * time.Second

// Runner starts fn somewhere off the frame loop.
type Runner func(fn func())

// GoRunner runs fn on a new goroutine.
func GoRunner(fn func()) { go fn() }

// Options configures an Orchestrator. Zero values pick defaults.
type Options struct {
	Narrator Narrator
	Catalog  *world.Catalog
	Logger   logrus.FieldLogger
	Rng      *rand.Rand
	Runner   Runner
	Timeout  time.Duration
	Briefing time.Duration
}

// reply is a finished narrator call waiting to be applied on the loop.
type reply struct {
	gen   uint64
	apply func()
}

// Orchestrator is the turn loop. Every method must be called from the
// frame goroutine; narrator calls run elsewhere and report back through
// the results channel.
type Orchestrator struct {
	narrator Narrator
	catalog  *world.Catalog
	log      logrus.FieldLogger
	rng      *rand.Rand
	runner   Runner
	timeout  time.Duration
	briefing time.Duration

	phase    Phase
	mode     Mode
	player   PlayerState
	messages *MessageLog
	clock    *clock.Scheduler
	shake    *Shake

	event       *GameEvent
	calibration *Calibration
	details     *CombatDetails
	cinematic   *Cinematic
	challenge   *minigame.Config
	session     *minigame.Session
	resolution  *Resolution

	busy    bool
	gen     uint64
	cancel  context.CancelFunc
	results chan reply
}

// New builds an orchestrator sitting on the menu.
func New(opts Options) *Orchestrator {
	if opts.Narrator == nil {
		opts.Narrator = Disconnected{}
	}
	if opts.Catalog == nil {
		opts.Catalog = world.MustDefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Rng == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if opts.Runner == nil {
		opts.Runner = GoRunner
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultContentTimeout
	}
	sched := clock.NewScheduler()
	return &Orchestrator{
		narrator: opts.Narrator,
		catalog:  opts.Catalog,
		log:      opts.Logger,
		rng:      opts.Rng,
		runner:   opts.Runner,
		timeout:  opts.Timeout,
		briefing: opts.Briefing,
		phase:    PhaseMenu,
		messages: NewMessageLog(),
		clock:    sched,
		shake:    NewShake(sched),
		results:  make(chan reply, 4),
	}
}

func (o *Orchestrator) fields() logrus.Fields {
	return logrus.Fields{"turn": o.player.Turn, "phase": o.phase.String()}
}

func (o *Orchestrator) fire(t Trigger) error {
	to, err := Next(o.phase, t)
	if err != nil {
		return err
	}
	o.log.WithFields(o.fields()).WithField("to", to.String()).Debug("phase change")
	o.phase = to
	return nil
}

// request runs call off the loop. The closure it returns is applied by Pump
// unless the orchestrator has moved on in the meantime.
func (o *Orchestrator) request(call func(ctx context.Context) func()) {
	o.gen++
	gen := o.gen
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	o.busy = true
	o.cancel = cancel
	o.runner(func() {
		apply := call(ctx)
		cancel()
		o.results <- reply{gen: gen, apply: apply}
	})
}

// Pump applies finished narrator calls. Update calls it every frame.
func (o *Orchestrator) Pump() {
	for {
		select {
		case r := <-o.results:
			if r.gen != o.gen {
				continue
			}
			o.busy = false
			o.cancel = nil
			r.apply()
		default:
			return
		}
	}
}

func (o *Orchestrator) warn(kind string, err error) {
	o.log.WithFields(o.fields()).WithField("kind", kind).WithError(err).Warn("content unavailable, using fallback")
}

// teardown drops everything tied to the current turn.
func (o *Orchestrator) teardown() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.gen++
	o.busy = false
	if o.session != nil {
		o.session.Abort()
		o.session = nil
	}
	if o.cinematic != nil {
		o.cinematic.Cancel()
		o.cinematic = nil
	}
	o.event = nil
	o.calibration = nil
	o.details = nil
	o.challenge = nil
	o.resolution = nil
}

// SelectMode picks solo or co-op from the menu.
func (o *Orchestrator) SelectMode(m Mode) error {
	if err := o.fire(TriggerSelectMode); err != nil {
		return fmt.Errorf("select mode: %w", err)
	}
	o.mode = m
	return nil
}

// Back returns from ship selection to the menu.
func (o *Orchestrator) Back() error {
	if err := o.fire(TriggerBack); err != nil {
		return fmt.Errorf("back: %w", err)
	}
	return nil
}

// ChooseShip starts a run aboard the given ship.
func (o *Orchestrator) ChooseShip(id string) error {
	ship, ok := o.catalog.Get(id)
	if !ok {
		return fmt.Errorf("choose ship %q: %w", id, ErrUnknownShip)
	}
	if err := o.fire(TriggerChooseShip); err != nil {
		return fmt.Errorf("choose ship: %w", err)
	}
	o.player = NewPlayerState(o.mode, ship)
	o.messages = NewMessageLog()
	o.messages.Add(o.player.Turn, fmt.Sprintf("%s launched. %s", ship.Name, ship.Bonus), LogInfo)
	o.log.WithFields(o.fields()).WithField("ship", ship.ID).Info("run started")
	o.enterLoading()
	return nil
}

func (o *Orchestrator) enterLoading() {
	o.event = nil
	o.details = nil
	o.challenge = nil
	o.resolution = nil
	o.calibration = NewCalibration(o.rng)

	req := EventRequest{
		Turn:      o.player.Turn,
		Resources: o.player.Resources,
		Ship:      o.player.Ship,
		Inventory: o.player.Inventory.Clone().Items,
	}
	o.request(func(ctx context.Context) func() {
		ev, err := o.narrator.GenerateEvent(ctx, req)
		if err == nil && len(ev.Choices) == 0 {
			err = errors.New("event has no choices")
		}
		return func() {
			if err != nil {
				o.warn("event", err)
				ev = FallbackEvent()
			}
			o.event = &ev
		}
	})
}

// Calibrate is the action press while an event loads.
func (o *Orchestrator) Calibrate() error {
	if o.phase != PhaseLoadingEvent || o.calibration == nil {
		return fmt.Errorf("calibrate in %s: %w", o.phase, ErrInvalidTransition)
	}
	if !o.calibration.Press(o.event != nil) {
		return nil
	}
	if bonus := o.calibration.Bonus; bonus > 0 {
		o.player.Resources.Energy = min(ResourceCap, o.player.Resources.Energy+bonus)
		o.messages.Add(o.player.Turn, fmt.Sprintf("System Calibrated: +%d Energy", bonus), LogSuccess)
	}
	return o.fire(TriggerCalibrated)
}

// ChooseIndex picks the i-th choice of the current event.
func (o *Orchestrator) ChooseIndex(i int) error {
	if o.event == nil || i < 0 || i >= len(o.event.Choices) {
		return fmt.Errorf("choice %d: %w", i, ErrUnknownChoice)
	}
	return o.Choose(o.event.Choices[i].ID)
}

// Choose commits to a decision in the current event.
func (o *Orchestrator) Choose(id string) error {
	if o.busy {
		return fmt.Errorf("choose %q: %w", id, ErrBusy)
	}
	if o.phase != PhasePlayingEvent {
		return fmt.Errorf("choose in %s: %w", o.phase, ErrInvalidTransition)
	}
	choice, ok := o.event.Choice(id)
	if !ok {
		return fmt.Errorf("choose %q: %w", id, ErrUnknownChoice)
	}

	kind, escalates := MinigameFor(choice.Type)
	if !escalates {
		if err := o.fire(TriggerResolveDirect); err != nil {
			return err
		}
		o.resolve(choice, nil)
		return nil
	}

	o.challenge = &minigame.Config{
		Kind:       kind,
		Difficulty: ScaledDifficulty(o.player.Turn, choice.Risk),
		Briefing:   o.briefing,
	}
	o.log.WithFields(o.fields()).WithFields(logrus.Fields{
		"kind":       kind.String(),
		"difficulty": o.challenge.Difficulty,
	}).Info("challenge")

	if kind != minigame.KindCombat {
		if err := o.fire(TriggerStartMinigame); err != nil {
			return err
		}
		o.startSession()
		return nil
	}

	desc := o.event.Description
	o.request(func(ctx context.Context) func() {
		d, err := o.narrator.GenerateCombatDetails(ctx, desc)
		return func() {
			if err != nil {
				o.warn("combat", err)
				d = FallbackCombatDetails()
			}
			o.details = &d
			if err := o.fire(TriggerEngageCombat); err != nil {
				o.log.WithFields(o.fields()).WithError(err).Error("engage")
				return
			}
			o.cinematic = NewCinematic(o.clock, d, o.onCinematicDone)
		}
	})
	return nil
}

func (o *Orchestrator) onCinematicDone() {
	if err := o.fire(TriggerSequenceComplete); err != nil {
		return
	}
	o.startSession()
}

func (o *Orchestrator) startSession() {
	o.session = minigame.NewSession(*o.challenge, o.rng, o.onChallengeDone)
}

func (o *Orchestrator) onChallengeDone(r minigame.Result) {
	kind := o.challenge.Kind
	o.session = nil
	o.cinematic = nil

	choice, ok := o.event.FirstOfType(ChoiceTypeFor(kind))
	if !ok {
		o.log.WithFields(o.fields()).WithField("kind", kind.String()).Warn("no choice matches challenge")
		_ = o.fire(TriggerNoMatchingChoice)
		return
	}
	if err := o.fire(TriggerResultReady); err != nil {
		return
	}
	r = ApplyPyrrhicOverride(kind, r)
	o.log.WithFields(o.fields()).WithFields(logrus.Fields{
		"kind":    kind.String(),
		"success": r.Success,
		"damage":  r.HullDamageTaken,
		"score":   r.Score,
	}).Info("challenge complete")
	o.resolve(choice, &outcome{kind: kind, result: r})
}

type outcome struct {
	kind   minigame.Kind
	result minigame.Result
}

// resolve asks the narrator for the outcome and commits it.
func (o *Orchestrator) resolve(choice Choice, mg *outcome) {
	req := ActionRequest{
		Event:     *o.event,
		Choice:    choice,
		Resources: o.player.Resources,
		Ship:      o.player.Ship,
	}
	o.request(func(ctx context.Context) func() {
		res, err := o.narrator.ResolveAction(ctx, req)
		return func() {
			if err != nil {
				o.warn("resolve", err)
				res = FallbackResolution()
			}
			if mg != nil {
				res = MergeMinigame(mg.kind, mg.result, res)
				if HeavyHit(mg.result) {
					o.shake.Trigger()
				}
			}
			o.commit(res)
		}
	})
}

func (o *Orchestrator) commit(res Resolution) {
	if Commit(&o.player, o.messages, res) {
		o.shake.Trigger()
	}
	o.resolution = &res
	if o.player.Resources.Depleted() {
		o.messages.Add(o.player.Turn, "Critical systems failure. Contact lost.", LogDanger)
		o.log.WithFields(o.fields()).Info("ship lost")
		_ = o.fire(TriggerDepleted)
	}
}

// Continue moves from the outcome summary to the next turn.
func (o *Orchestrator) Continue() error {
	if o.busy {
		return fmt.Errorf("continue: %w", ErrBusy)
	}
	if err := o.fire(TriggerAdvance); err != nil {
		return fmt.Errorf("continue: %w", err)
	}
	o.enterLoading()
	return nil
}

// Quit abandons the run and goes back to the menu.
func (o *Orchestrator) Quit() error {
	if err := o.fire(TriggerQuit); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	o.teardown()
	o.player = PlayerState{}
	return nil
}

// Restart leaves a finished run for the menu.
func (o *Orchestrator) Restart() error {
	if err := o.fire(TriggerRestart); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	o.teardown()
	o.player = PlayerState{}
	return nil
}

// Rematch leaves a finished run for ship selection in the same mode.
func (o *Orchestrator) Rematch() error {
	if err := o.fire(TriggerRematch); err != nil {
		return fmt.Errorf("rematch: %w", err)
	}
	o.teardown()
	o.player = PlayerState{}
	return nil
}

// Triumph ends the run in victory. Nothing in the loop fires it.
func (o *Orchestrator) Triumph() error {
	if err := o.fire(TriggerTriumph); err != nil {
		return fmt.Errorf("triumph: %w", err)
	}
	o.teardown()
	return nil
}

// Update advances one frame.
func (o *Orchestrator) Update(in input.State) {
	o.Pump()
	o.clock.Advance(minigame.FrameTime)

	if in.JustPressed(input.Back) {
		switch {
		case o.phase == PhaseShipSelect:
			_ = o.Back()
			return
		case o.phase.InRun():
			_ = o.Quit()
			return
		}
	}

	var err error
	switch o.phase {
	case PhaseMenu:
		switch in.Option() {
		case 0:
			err = o.SelectMode(ModeSolo)
		case 1:
			err = o.SelectMode(ModeCoop)
		}
	case PhaseShipSelect:
		if i := in.Option(); i >= 0 {
			if ship := o.catalog.At(i); ship != nil {
				err = o.ChooseShip(ship.ID)
			}
		}
	case PhaseLoadingEvent:
		if o.calibration != nil {
			o.calibration.Tick()
		}
		if in.JustPressed(input.Fire | input.Confirm) {
			err = o.Calibrate()
		}
	case PhasePlayingEvent:
		if i := in.Option(); i >= 0 && o.event != nil && i < len(o.event.Choices) {
			err = o.ChooseIndex(i)
		}
	case PhaseMinigame:
		if s := o.session; s != nil {
			s.Tick(in)
		}
	case PhaseResolving:
		if !o.busy && in.JustPressed(input.Confirm|input.Fire) {
			err = o.Continue()
		}
	case PhaseGameOver, PhaseVictory:
		if in.JustPressed(input.Confirm) {
			err = o.Restart()
		} else if in.JustPressed(input.Option1) {
			err = o.Rematch()
		}
	}
	if err != nil && !errors.Is(err, ErrBusy) {
		o.log.WithFields(o.fields()).WithError(err).Debug("input ignored")
	}
}

// Phase returns the current state.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Mode returns the selected mode.
func (o *Orchestrator) Mode() Mode { return o.mode }

// State returns a copy of the run state.
func (o *Orchestrator) State() PlayerState { return o.player.Snapshot() }

// Log returns the run log.
func (o *Orchestrator) Log() *MessageLog { return o.messages }

// Catalog returns the ship catalog.
func (o *Orchestrator) Catalog() *world.Catalog { return o.catalog }

// Event returns the current event, nil while loading.
func (o *Orchestrator) Event() *GameEvent { return o.event }

// Resolution returns the last committed outcome while it is on screen.
func (o *Orchestrator) Resolution() *Resolution { return o.resolution }

// CombatDetails returns the scanner readout for the current fight.
func (o *Orchestrator) CombatDetails() *CombatDetails { return o.details }

// Cinematic returns the running acquisition sequence.
func (o *Orchestrator) Cinematic() *Cinematic { return o.cinematic }

// Calibration returns the loading-screen bar.
func (o *Orchestrator) Calibration() *Calibration { return o.calibration }

// Challenge returns the config of the current or last minigame.
func (o *Orchestrator) Challenge() *minigame.Config { return o.challenge }

// MinigameView returns the running session's snapshot.
func (o *Orchestrator) MinigameView() (minigame.View, bool) {
	if o.session == nil {
		return minigame.View{}, false
	}
	return o.session.View(), true
}

// Shake returns the screen-shake cue.
func (o *Orchestrator) Shake() *Shake { return o.shake }

// Busy reports whether a narrator call is in flight.
func (o *Orchestrator) Busy() bool { return o.busy }
