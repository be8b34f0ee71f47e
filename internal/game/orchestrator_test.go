package game

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spacehole-rogue/nebula_nexus/internal/input"
	"github.com/spacehole-rogue/nebula_nexus/internal/minigame"
	"github.com/spacehole-rogue/nebula_nexus/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOffline = errors.New("offline")

type fakeNarrator struct {
	event      GameEvent
	eventErr   error
	details    CombatDetails
	detailsErr error
	res        Resolution
	resErr     error

	events   []EventRequest
	resolved []ActionRequest
}

func (f *fakeNarrator) GenerateEvent(_ context.Context, req EventRequest) (GameEvent, error) {
	f.events = append(f.events, req)
	return f.event, f.eventErr
}

func (f *fakeNarrator) GenerateCombatDetails(context.Context, string) (CombatDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeNarrator) ResolveAction(_ context.Context, req ActionRequest) (Resolution, error) {
	f.resolved = append(f.resolved, req)
	return f.res, f.resErr
}

func testEvent() GameEvent {
	return GameEvent{
		ID:          "evt-1",
		Title:       "Derelict",
		Description: "A dead hauler drifts across your bow.",
		Choices: []Choice{
			{ID: "choice-0", Text: "Open fire", Type: Aggressive, Risk: RiskLow},
			{ID: "choice-1", Text: "Hail them", Type: Diplomatic, Risk: RiskMedium},
			{ID: "choice-2", Text: "Slice the computer", Type: Scientific, Risk: RiskHigh},
			{ID: "choice-3", Text: "Slip away", Type: Evasive, Risk: RiskLow},
		},
	}
}

const testShips = `
ships:
- id: skiff
  name: Skiff
  description: Barely holding together.
  bonus: "None"
  initial_resources: {hull: 10, energy: 50, crew: 5, credits: 0}
- id: tanker
  name: Tanker
  description: Big tanks.
  bonus: "+Energy"
  initial_resources: {hull: 100, energy: 148, crew: 20, credits: 500}
`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// syncRunner runs narrator calls inline; results still wait for Pump.
func syncRunner(fn func()) { fn() }

func newTestOrchestrator(t *testing.T, n Narrator) *Orchestrator {
	t.Helper()
	cat, err := world.LoadCatalog([]byte(testShips))
	require.NoError(t, err)
	return New(Options{
		Narrator: n,
		Catalog:  cat,
		Logger:   quietLogger(),
		Rng:      rand.New(rand.NewPCG(3, 4)),
		Runner:   syncRunner,
	})
}

// startRun drives the orchestrator from the menu to the first event.
func startRun(t *testing.T, o *Orchestrator, mode Mode, ship string) {
	t.Helper()
	require.NoError(t, o.SelectMode(mode))
	require.NoError(t, o.ChooseShip(ship))
	require.Equal(t, PhaseLoadingEvent, o.Phase())
	o.Pump()
	calibrate(t, o)
}

func calibrate(t *testing.T, o *Orchestrator) {
	t.Helper()
	c := o.Calibration()
	require.NotNil(t, c)
	for i := 0; i < 1000 && !c.InZone(); i++ {
		c.Tick()
	}
	require.NoError(t, o.Calibrate())
	require.NoError(t, o.Calibrate())
	require.Equal(t, PhasePlayingEvent, o.Phase())
}

func runUntil(o *Orchestrator, frames int, stop func() bool) {
	for i := 0; i < frames && !stop(); i++ {
		o.Update(input.State{})
	}
}

func TestDirectChoiceCommitsNarratorOutcome(t *testing.T) {
	n := &fakeNarrator{event: testEvent(), res: Resolution{
		Success:         true,
		OutcomeText:     "They send coordinates.",
		ResourceChanges: ResourceDelta{Credits: 200},
	}}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")
	require.Len(t, n.events, 1)
	assert.Equal(t, 1, n.events[0].Turn)

	require.NoError(t, o.Choose("choice-1"))
	assert.Equal(t, PhaseResolving, o.Phase())
	assert.True(t, o.Busy())
	assert.ErrorIs(t, o.Continue(), ErrBusy)

	o.Pump()
	assert.False(t, o.Busy())
	require.NotNil(t, o.Resolution())
	assert.Equal(t, n.res, *o.Resolution())
	require.Len(t, n.resolved, 1)
	assert.Equal(t, Diplomatic, n.resolved[0].Choice.Type)

	st := o.State()
	assert.Equal(t, 2, st.Turn)
	assert.Equal(t, 700, st.Resources.Credits)
	assert.Equal(t, ResourceCap, st.Resources.Energy, "calibration bonus is capped")
	assert.Zero(t, o.Shake().Count())

	require.NoError(t, o.Continue())
	assert.Equal(t, PhaseLoadingEvent, o.Phase())
	assert.Nil(t, o.Resolution())
	o.Pump()
	require.Len(t, n.events, 2)
	assert.Equal(t, 2, n.events[1].Turn)
}

func TestCalibrationBonusIsLogged(t *testing.T) {
	o := newTestOrchestrator(t, &fakeNarrator{event: testEvent()})
	startRun(t, o, ModeSolo, "tanker")

	var found bool
	for _, e := range o.Log().Entries {
		if e.Message == "System Calibrated: +5 Energy" {
			found = true
			assert.Equal(t, LogSuccess, e.Kind)
		}
	}
	assert.True(t, found)
}

func TestCalibrationWaitsForEvent(t *testing.T) {
	var pending []func()
	cat, err := world.LoadCatalog([]byte(testShips))
	require.NoError(t, err)
	o := New(Options{
		Narrator: &fakeNarrator{event: testEvent()},
		Catalog:  cat,
		Logger:   quietLogger(),
		Rng:      rand.New(rand.NewPCG(3, 4)),
		Runner:   func(fn func()) { pending = append(pending, fn) },
	})
	require.NoError(t, o.SelectMode(ModeSolo))
	require.NoError(t, o.ChooseShip("tanker"))

	c := o.Calibration()
	for !c.InZone() {
		c.Tick()
	}
	require.NoError(t, o.Calibrate())
	require.NoError(t, o.Calibrate())
	assert.Equal(t, PhaseLoadingEvent, o.Phase(), "no event yet")

	require.Len(t, pending, 1)
	pending[0]()
	o.Pump()
	require.NoError(t, o.Calibrate())
	assert.Equal(t, PhasePlayingEvent, o.Phase())
}

func TestDepletionEndsRun(t *testing.T) {
	n := &fakeNarrator{event: testEvent(), res: Resolution{
		OutcomeText:     "The hull splits.",
		ResourceChanges: ResourceDelta{Hull: -15},
	}}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "skiff")

	require.NoError(t, o.Choose("choice-1"))
	o.Pump()

	assert.Equal(t, PhaseGameOver, o.Phase())
	assert.Zero(t, o.State().Resources.Hull)
	assert.Equal(t, 1, o.Shake().Count())

	require.NoError(t, o.Rematch())
	assert.Equal(t, PhaseShipSelect, o.Phase())
	assert.Equal(t, ModeSolo, o.Mode())
}

func TestCoopHandsOverEachTurn(t *testing.T) {
	n := &fakeNarrator{event: testEvent(), res: Resolution{Success: true, OutcomeText: "Done."}}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeCoop, "tanker")
	assert.Equal(t, 1, o.State().CurrentPlayer)

	require.NoError(t, o.Choose("choice-1"))
	o.Pump()
	assert.Equal(t, 2, o.State().CurrentPlayer)

	require.NoError(t, o.Continue())
	o.Pump()
	calibrate(t, o)
	require.NoError(t, o.Choose("choice-1"))
	o.Pump()
	assert.Equal(t, 1, o.State().CurrentPlayer)
}

func TestNarratorFailuresFallBack(t *testing.T) {
	n := &fakeNarrator{eventErr: errOffline, resErr: errOffline}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")
	require.NotNil(t, o.Event())
	assert.Equal(t, "Asteroid Field", o.Event().Title)

	ev := FallbackEvent()
	require.NoError(t, o.Choose(ev.Choices[1].ID))
	require.Equal(t, PhaseMinigame, o.Phase())
	assert.Equal(t, minigame.KindHacking, o.Challenge().Kind)
	assert.Equal(t, ScaledDifficulty(1, RiskMedium), o.Challenge().Difficulty)
}

func TestEmptyEventFallsBack(t *testing.T) {
	o := newTestOrchestrator(t, &fakeNarrator{event: GameEvent{Title: "Nothing"}})
	startRun(t, o, ModeSolo, "tanker")
	assert.Equal(t, FallbackEvent(), *o.Event())
}

func TestChooseRejectsBadInput(t *testing.T) {
	o := newTestOrchestrator(t, &fakeNarrator{event: testEvent()})
	assert.ErrorIs(t, o.Choose("choice-0"), ErrInvalidTransition)
	assert.ErrorIs(t, o.ChooseShip("nope"), ErrUnknownShip)

	startRun(t, o, ModeSolo, "tanker")
	assert.ErrorIs(t, o.Choose("choice-9"), ErrUnknownChoice)
	assert.ErrorIs(t, o.ChooseIndex(7), ErrUnknownChoice)
	assert.Equal(t, PhasePlayingEvent, o.Phase())
}

func TestEvasiveChoiceRunsDodge(t *testing.T) {
	n := &fakeNarrator{event: testEvent(), res: Resolution{Success: true, OutcomeText: "Clear."}}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")

	require.NoError(t, o.ChooseIndex(3))
	require.Equal(t, PhaseMinigame, o.Phase())
	v, ok := o.MinigameView()
	require.True(t, ok)
	assert.Equal(t, minigame.KindDodge, v.Kind)

	runUntil(o, 1200, func() bool { return o.Phase() != PhaseMinigame })
	require.Equal(t, PhaseResolving, o.Phase())
	_, ok = o.MinigameView()
	assert.False(t, ok)

	o.Update(input.State{})
	res := o.Resolution()
	require.NotNil(t, res)
	assert.True(t, strings.HasPrefix(res.OutcomeText, TacticalPhrase) || strings.HasPrefix(res.OutcomeText, ResistancePhrase))
	require.Len(t, n.resolved, 1)
	assert.Equal(t, Evasive, n.resolved[0].Choice.Type)
	assert.Equal(t, 2, o.State().Turn)
}

func TestHackingTimeoutLocksOutItem(t *testing.T) {
	n := &fakeNarrator{event: testEvent(), res: Resolution{
		Success:     true,
		OutcomeText: "The archive opens.",
		ItemReward:  &Item{ID: "item-1", Name: "Star Chart"},
	}}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")

	require.NoError(t, o.Choose("choice-2"))
	assert.Equal(t, ScaledDifficulty(1, RiskHigh), o.Challenge().Difficulty)
	runUntil(o, 1200, func() bool { return o.Phase() != PhaseMinigame })
	o.Update(input.State{})

	res := o.Resolution()
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Nil(t, res.ItemReward)
	assert.Equal(t, LockoutPhrase+"The archive opens.", res.OutcomeText)
	assert.Zero(t, o.State().Inventory.Len())
}

func TestAggressiveChoicePlaysCinematicFirst(t *testing.T) {
	n := &fakeNarrator{
		event:   testEvent(),
		details: CombatDetails{EnemyName: "Raider", ThreatLevel: ThreatExtreme},
		res:     Resolution{Success: true, OutcomeText: "Scattered."},
	}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")

	require.NoError(t, o.Choose("choice-0"))
	assert.Equal(t, PhasePlayingEvent, o.Phase())
	assert.ErrorIs(t, o.Choose("choice-1"), ErrBusy)

	o.Pump()
	require.Equal(t, PhaseCinematic, o.Phase())
	require.NotNil(t, o.CombatDetails())
	assert.Equal(t, "Raider", o.CombatDetails().EnemyName)
	require.NotNil(t, o.Cinematic())

	runUntil(o, 500, func() bool { return o.Phase() != PhaseCinematic })
	require.Equal(t, PhaseMinigame, o.Phase())
	assert.True(t, o.Cinematic().Complete)
	v, ok := o.MinigameView()
	require.True(t, ok)
	assert.Equal(t, minigame.KindCombat, v.Kind)
	assert.Equal(t, 1, v.Difficulty)
}

func TestCombatDetailsFallback(t *testing.T) {
	o := newTestOrchestrator(t, &fakeNarrator{event: testEvent(), detailsErr: errOffline})
	startRun(t, o, ModeSolo, "tanker")

	require.NoError(t, o.Choose("choice-0"))
	o.Pump()
	require.NotNil(t, o.CombatDetails())
	assert.Equal(t, FallbackCombatDetails(), *o.CombatDetails())
}

func TestUnmatchedChallengeReturnsToEvent(t *testing.T) {
	n := &fakeNarrator{event: testEvent()}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")
	require.NoError(t, o.Choose("choice-3"))
	require.Equal(t, PhaseMinigame, o.Phase())

	o.event = &GameEvent{Choices: []Choice{{ID: "d", Type: Diplomatic}}}
	o.onChallengeDone(minigame.Result{Success: true})

	assert.Equal(t, PhasePlayingEvent, o.Phase())
	assert.Empty(t, n.resolved)
	assert.Equal(t, 1, o.State().Turn)
	assert.False(t, o.Busy())
}

func TestQuitDropsLateContent(t *testing.T) {
	var pending []func()
	o := New(Options{
		Narrator: &fakeNarrator{event: testEvent()},
		Logger:   quietLogger(),
		Rng:      rand.New(rand.NewPCG(3, 4)),
		Runner:   func(fn func()) { pending = append(pending, fn) },
	})
	require.NoError(t, o.SelectMode(ModeSolo))
	require.NoError(t, o.ChooseShip("vanguard"))
	require.True(t, o.Busy())

	require.NoError(t, o.Quit())
	assert.Equal(t, PhaseMenu, o.Phase())
	assert.False(t, o.Busy())

	pending[0]()
	o.Pump()
	assert.Nil(t, o.Event())
	assert.Nil(t, o.Calibration())
}

func TestQuitAbortsRunningChallenge(t *testing.T) {
	n := &fakeNarrator{event: testEvent()}
	o := newTestOrchestrator(t, n)
	startRun(t, o, ModeSolo, "tanker")
	require.NoError(t, o.Choose("choice-3"))

	o.Update(input.State{Held: input.Back, Pressed: input.Back})
	assert.Equal(t, PhaseMenu, o.Phase())
	_, ok := o.MinigameView()
	assert.False(t, ok)

	runUntil(o, 1200, func() bool { return false })
	assert.Empty(t, n.resolved)
}

func TestUpdateRoutesMenuInput(t *testing.T) {
	o := newTestOrchestrator(t, &fakeNarrator{event: testEvent()})
	press := func(a input.Action) { o.Update(input.State{Held: a, Pressed: a}) }

	press(input.Option2)
	require.Equal(t, PhaseShipSelect, o.Phase())
	assert.Equal(t, ModeCoop, o.Mode())

	press(input.Back)
	require.Equal(t, PhaseMenu, o.Phase())

	press(input.Option1)
	press(input.Option2)
	require.Equal(t, PhaseLoadingEvent, o.Phase())
	assert.Equal(t, ModeSolo, o.Mode())
	assert.Equal(t, "tanker", o.State().Ship.ID)
	assert.Nil(t, o.Event())

	o.Update(input.State{})
	assert.NotNil(t, o.Event())
}

func TestTriumphIsManualOnly(t *testing.T) {
	o := newTestOrchestrator(t, &fakeNarrator{event: testEvent()})
	assert.ErrorIs(t, o.Triumph(), ErrInvalidTransition)

	startRun(t, o, ModeSolo, "tanker")
	require.NoError(t, o.Triumph())
	assert.Equal(t, PhaseVictory, o.Phase())
	require.NoError(t, o.Restart())
	assert.Equal(t, PhaseMenu, o.Phase())
}
