package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/spacehole-rogue/nebula_nexus/internal/minigame"
	"github.com/spacehole-rogue/nebula_nexus/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var risks = []Risk{RiskLow, RiskMedium, RiskHigh, RiskExtreme}

func TestScaledDifficultyNeverDropsWithTurn(t *testing.T) {
	for _, r := range risks {
		prev := ScaledDifficulty(0, r)
		for turn := 1; turn <= 60; turn++ {
			d := ScaledDifficulty(turn, r)
			assert.GreaterOrEqual(t, d, prev, "risk %s turn %d", r, turn)
			prev = d
		}
	}
}

func TestScaledDifficultyOrdersRisks(t *testing.T) {
	for turn := 0; turn <= 30; turn++ {
		for i := 1; i < len(risks); i++ {
			assert.Less(t, ScaledDifficulty(turn, risks[i-1]), ScaledDifficulty(turn, risks[i]))
		}
	}
}

func TestScaledDifficultyScenarios(t *testing.T) {
	d := ScaledDifficulty(1, RiskLow)
	assert.Equal(t, 1, d)
	assert.Equal(t, 1100*time.Millisecond, minigame.SpawnInterval(minigame.KindCombat, d))
	assert.InDelta(t, 2.3, minigame.HostileSpeed(minigame.KindCombat, d), 1e-9)

	assert.Equal(t, 7, ScaledDifficulty(12, RiskExtreme))
	assert.Equal(t, 1, ScaledDifficulty(3, Risk("unheard-of")))
}

func TestApplyClampsEveryPool(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 500; i++ {
		r := Resources{Hull: rng.IntN(151), Energy: rng.IntN(151), Crew: rng.IntN(60), Credits: rng.IntN(3000)}
		d := ResourceDelta{
			Hull:    rng.IntN(1001) - 500,
			Energy:  rng.IntN(1001) - 500,
			Crew:    rng.IntN(201) - 100,
			Credits: rng.IntN(10001) - 5000,
		}
		got := r.Apply(d)
		assert.True(t, got.Hull >= 0 && got.Hull <= ResourceCap)
		assert.True(t, got.Energy >= 0 && got.Energy <= ResourceCap)
		assert.GreaterOrEqual(t, got.Crew, 0)
		assert.GreaterOrEqual(t, got.Credits, 0)
	}
}

func TestDepleted(t *testing.T) {
	assert.False(t, Resources{Hull: 1, Energy: 1, Crew: 1}.Depleted())
	assert.True(t, Resources{Hull: 0, Energy: 50, Crew: 5}.Depleted())
	assert.True(t, Resources{Hull: 50, Energy: 0, Crew: 5}.Depleted())
	assert.True(t, Resources{Hull: 50, Energy: 50, Crew: 0}.Depleted())
}

func TestCommitHullScenario(t *testing.T) {
	p := PlayerState{Resources: Resources{Hull: 10, Energy: 50, Crew: 5}, Turn: 4, CurrentPlayer: 1, DifficultyMultiplier: 1}
	log := NewMessageLog()

	harmful := Commit(&p, log, Resolution{OutcomeText: "Hull breach.", ResourceChanges: ResourceDelta{Hull: -15}})

	assert.True(t, harmful)
	assert.Equal(t, 0, p.Resources.Hull)
	assert.True(t, p.Resources.Depleted())
	assert.Equal(t, 5, p.Turn)
	assert.InDelta(t, 1.05, p.DifficultyMultiplier, 1e-9)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, LogEntry{Turn: 4, Message: "Hull breach.", Kind: LogDanger}, log.Entries[0])
}

func TestCommitAlternatesCoopPlayers(t *testing.T) {
	coop := NewPlayerState(ModeCoop, &world.ShipClass{InitialResources: world.Loadout{Hull: 100, Energy: 100, Crew: 10}})
	solo := NewPlayerState(ModeSolo, &world.ShipClass{InitialResources: world.Loadout{Hull: 100, Energy: 100, Crew: 10}})
	log := NewMessageLog()

	Commit(&coop, log, Resolution{Success: true})
	Commit(&solo, log, Resolution{Success: true})
	assert.Equal(t, 2, coop.CurrentPlayer)
	assert.Equal(t, 1, solo.CurrentPlayer)

	Commit(&coop, log, Resolution{Success: true})
	assert.Equal(t, 1, coop.CurrentPlayer)
}

func TestCommitAddsItemAndLogsIt(t *testing.T) {
	p := NewPlayerState(ModeSolo, &world.ShipClass{InitialResources: world.Loadout{Hull: 100, Energy: 100, Crew: 10}})
	log := NewMessageLog()

	harmful := Commit(&p, log, Resolution{
		Success:         true,
		OutcomeText:     "You salvage the wreck.",
		ResourceChanges: ResourceDelta{Credits: 40},
		ItemReward:      &Item{ID: "item-1", Name: "Quantum Lens"},
	})

	assert.False(t, harmful)
	require.Equal(t, 1, p.Inventory.Len())
	assert.Equal(t, DefaultItemIcon, p.Inventory.Items[0].Icon)
	require.Equal(t, 2, log.Len())
	assert.Equal(t, LogSuccess, log.Entries[0].Kind)
	assert.Equal(t, LogEntry{Turn: 1, Message: "Acquired: Quantum Lens", Kind: LogItem}, log.Entries[1])
}

func TestSnapshotInventoryIsDetached(t *testing.T) {
	p := NewPlayerState(ModeSolo, nil)
	p.Inventory.Add(Item{Name: "Star Chart"})
	p.Inventory.Add(Item{Name: "Quantum Lens"})

	snap := p.Snapshot()
	p.Inventory.Add(Item{Name: "Void Shard"})

	assert.Equal(t, 3, p.Inventory.Len())
	assert.Equal(t, 2, snap.Inventory.Len())
	assert.Equal(t, []string{"Star Chart", "Quantum Lens"}, snap.Inventory.Names())
}

func TestStatusLevel(t *testing.T) {
	for val, want := range map[int]string{0: "CRITICAL", 15: "CRITICAL", 16: "Low", 40: "Low", 100: "Nominal", 101: "Reinforced", 150: "Reinforced"} {
		assert.Equal(t, want, StatusLevel(val), "value %d", val)
	}
}

func TestResourceDeltaIsZero(t *testing.T) {
	assert.True(t, ResourceDelta{}.IsZero())
	assert.False(t, ResourceDelta{Credits: 1}.IsZero())
	assert.False(t, SensorsOfflineResolution().ResourceChanges.IsZero())
}

func TestPyrrhicOverride(t *testing.T) {
	heavy := minigame.Result{Success: true, HullDamageTaken: 51}
	light := minigame.Result{Success: true, HullDamageTaken: 50}

	assert.False(t, ApplyPyrrhicOverride(minigame.KindCombat, heavy).Success)
	assert.False(t, ApplyPyrrhicOverride(minigame.KindDodge, heavy).Success)
	assert.True(t, ApplyPyrrhicOverride(minigame.KindCombat, light).Success)
	assert.True(t, ApplyPyrrhicOverride(minigame.KindHacking, heavy).Success)
}

func TestMergeCombatOverridesNarratorSuccess(t *testing.T) {
	r := ApplyPyrrhicOverride(minigame.KindCombat, minigame.Result{Success: true, HullDamageTaken: 60})
	res := MergeMinigame(minigame.KindCombat, r, Resolution{
		Success:         true,
		OutcomeText:     "The raiders scatter.",
		ResourceChanges: ResourceDelta{Hull: 5, Credits: 100},
	})

	assert.False(t, res.Success)
	assert.Equal(t, ResistancePhrase+"The raiders scatter.", res.OutcomeText)
	assert.Equal(t, -55, res.ResourceChanges.Hull)
	assert.Equal(t, 100, res.ResourceChanges.Credits)
	assert.True(t, HeavyHit(r))
}

func TestMergeDodgeSuccessKeepsNarratorOutcome(t *testing.T) {
	res := MergeMinigame(minigame.KindDodge, minigame.Result{Success: true, HullDamageTaken: 10}, Resolution{
		Success:     true,
		OutcomeText: "Clear of the debris.",
	})

	assert.True(t, res.Success)
	assert.Equal(t, TacticalPhrase+"Clear of the debris.", res.OutcomeText)
	assert.Equal(t, -10, res.ResourceChanges.Hull)
	assert.False(t, HeavyHit(minigame.Result{HullDamageTaken: 20}))
}

func TestMergeHackingFailureNullsItem(t *testing.T) {
	item := &Item{Name: "Data Core"}
	res := MergeMinigame(minigame.KindHacking, minigame.Result{Success: false, HullDamageTaken: 45}, Resolution{
		Success:     true,
		OutcomeText: "The vault opens.",
		ItemReward:  item,
	})

	assert.False(t, res.Success)
	assert.Nil(t, res.ItemReward)
	assert.Equal(t, LockoutPhrase+"The vault opens.", res.OutcomeText)
	assert.Zero(t, res.ResourceChanges.Hull)
}

func TestMergeHackingSuccessKeepsItem(t *testing.T) {
	item := &Item{Name: "Data Core"}
	res := MergeMinigame(minigame.KindHacking, minigame.Result{Success: true, HullDamageTaken: 30}, Resolution{
		Success:     true,
		OutcomeText: "The vault opens.",
		ItemReward:  item,
	})

	assert.True(t, res.Success)
	assert.Same(t, item, res.ItemReward)
	assert.Equal(t, AccessPhrase+"The vault opens.", res.OutcomeText)
}

func TestMinigameForMapsChoiceTypes(t *testing.T) {
	cases := map[ChoiceType]minigame.Kind{
		Aggressive: minigame.KindCombat,
		Evasive:    minigame.KindDodge,
		Scientific: minigame.KindHacking,
	}
	for ct, want := range cases {
		got, ok := MinigameFor(ct)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, ct, ChoiceTypeFor(got))
	}
	_, ok := MinigameFor(Diplomatic)
	assert.False(t, ok)
}
