package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/spacehole-rogue/nebula_nexus/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFollowsTable(t *testing.T) {
	cases := []struct {
		from Phase
		trig Trigger
		to   Phase
	}{
		{PhaseMenu, TriggerSelectMode, PhaseShipSelect},
		{PhaseShipSelect, TriggerChooseShip, PhaseLoadingEvent},
		{PhaseShipSelect, TriggerBack, PhaseMenu},
		{PhaseLoadingEvent, TriggerCalibrated, PhasePlayingEvent},
		{PhasePlayingEvent, TriggerEngageCombat, PhaseCinematic},
		{PhasePlayingEvent, TriggerStartMinigame, PhaseMinigame},
		{PhasePlayingEvent, TriggerResolveDirect, PhaseResolving},
		{PhaseCinematic, TriggerSequenceComplete, PhaseMinigame},
		{PhaseMinigame, TriggerResultReady, PhaseResolving},
		{PhaseMinigame, TriggerNoMatchingChoice, PhasePlayingEvent},
		{PhaseResolving, TriggerAdvance, PhaseLoadingEvent},
		{PhaseGameOver, TriggerRestart, PhaseMenu},
		{PhaseVictory, TriggerRematch, PhaseShipSelect},
	}
	for _, c := range cases {
		got, err := Next(c.from, c.trig)
		require.NoError(t, err, "%s on %s", c.trig, c.from)
		assert.Equal(t, c.to, got, "%s on %s", c.trig, c.from)
	}
}

func TestEveryInRunPhaseCanEndOrQuit(t *testing.T) {
	for p := PhaseLoadingEvent; p <= PhaseResolving; p++ {
		require.True(t, p.InRun())
		to, err := Next(p, TriggerDepleted)
		require.NoError(t, err)
		assert.Equal(t, PhaseGameOver, to)

		to, err = Next(p, TriggerQuit)
		require.NoError(t, err)
		assert.Equal(t, PhaseMenu, to)

		to, err = Next(p, TriggerTriumph)
		require.NoError(t, err)
		assert.Equal(t, PhaseVictory, to)
	}
	assert.False(t, PhaseMenu.InRun())
	assert.False(t, PhaseGameOver.InRun())
}

func TestNextRejectsMissingEdges(t *testing.T) {
	to, err := Next(PhaseMenu, TriggerAdvance)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseMenu, to)

	_, err = Next(PhaseGameOver, TriggerDepleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Next(PhaseResolving, TriggerResolveDirect)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func runToZone(c *Calibration) {
	for i := 0; i < 1000 && !c.InZone(); i++ {
		c.Tick()
	}
}

func TestCalibrationHitGivesBonus(t *testing.T) {
	c := NewCalibration(rand.New(rand.NewPCG(1, 1)))
	runToZone(c)

	assert.False(t, c.Press(true), "first hit only calibrates")
	assert.True(t, c.Calibrated)
	assert.Equal(t, CalibrationBonus, c.Bonus)
	assert.False(t, c.Press(false), "waits for the event")
	assert.True(t, c.Press(true))
}

func TestCalibrationGivesUpAfterFourMisses(t *testing.T) {
	c := NewCalibration(rand.New(rand.NewPCG(1, 1)))
	for i := 0; i < 4; i++ {
		c.Bar = 200 // never inside a zone
		require.False(t, c.Calibrated, "miss %d", i)
		c.Press(true)
		assert.LessOrEqual(t, c.ZoneStart, 80.0)
	}
	assert.True(t, c.Calibrated)
	assert.Zero(t, c.Bonus)
	assert.Equal(t, 4, c.Attempts)
	assert.Equal(t, 15.0, c.ZoneWidth)
}

func TestCalibrationBarBounces(t *testing.T) {
	c := NewCalibration(rand.New(rand.NewPCG(1, 1)))
	for i := 0; i < 300; i++ {
		c.Tick()
		require.True(t, c.Bar >= 0 && c.Bar <= 100)
	}
}

func TestCinematicRunsInOrder(t *testing.T) {
	s := clock.NewScheduler()
	done := 0
	c := NewCinematic(s, CombatDetails{ThreatLevel: ThreatCritical}, func() { done++ })

	s.Advance(600 * time.Millisecond)
	assert.Equal(t, StageScan, c.Stage)
	s.Advance(2500 * time.Millisecond)
	assert.Equal(t, StageAnalyze, c.Stage)
	assert.Equal(t, "> THREAT LEVEL: CRITICAL", c.Lines[0])
	assert.Zero(t, done)

	s.Advance(4 * time.Second)
	assert.Equal(t, StageLocked, c.Stage)
	assert.True(t, c.Complete)
	assert.Equal(t, 1, done)
	assert.Equal(t, []string{
		"> FIRING SOLUTION COMPUTED",
		"> THREAT LEVEL: CRITICAL",
		"> ACOUSTIC SIGNATURE DETECTED",
		"> LIDAR SYSTEM: INITIALIZED",
	}, c.Lines)
}

func TestCinematicCancelSkipsCompletion(t *testing.T) {
	s := clock.NewScheduler()
	done := 0
	c := NewCinematic(s, CombatDetails{}, func() { done++ })

	s.Advance(time.Second)
	c.Cancel()
	s.Advance(10 * time.Second)

	assert.Zero(t, done)
	assert.False(t, c.Complete)
	assert.Zero(t, s.Pending())
}

func TestShakeWindowRestarts(t *testing.T) {
	s := clock.NewScheduler()
	sh := NewShake(s)
	assert.False(t, sh.Active())

	sh.Trigger()
	s.Advance(400 * time.Millisecond)
	sh.Trigger()
	s.Advance(400 * time.Millisecond)
	assert.True(t, sh.Active())

	s.Advance(100 * time.Millisecond)
	assert.False(t, sh.Active())
	assert.Equal(t, 2, sh.Count())
}
