package game

import (
	"fmt"

	"github.com/spacehole-rogue/nebula_nexus/internal/minigame"
)

// Phrases prefixed to the narrator's outcome after a minigame.
const (
	LockoutPhrase    = "Decryption failed. The system locked you out. "
	AccessPhrase     = "Access granted. System firewall breached. "
	TacticalPhrase   = "Tactical execution successful. "
	ResistancePhrase = "Heavy resistance encountered. "
)

const (
	// PyrrhicDamage is the hull damage beyond which a survived combat or
	// dodge still counts as a failure.
	PyrrhicDamage = 50
	// ShakeDamage is the minigame damage beyond which the screen shakes.
	ShakeDamage = 20
)

// MinigameFor maps an escalating choice type to its challenge.
func MinigameFor(t ChoiceType) (minigame.Kind, bool) {
	switch t {
	case Aggressive:
		return minigame.KindCombat, true
	case Evasive:
		return minigame.KindDodge, true
	case Scientific:
		return minigame.KindHacking, true
	}
	return 0, false
}

// ChoiceTypeFor is the inverse of MinigameFor.
func ChoiceTypeFor(k minigame.Kind) ChoiceType {
	switch k {
	case minigame.KindCombat:
		return Aggressive
	case minigame.KindDodge:
		return Evasive
	default:
		return Scientific
	}
}

// ApplyPyrrhicOverride marks a combat or dodge result as failed when the
// ship took too much damage surviving it. Hacking results are left alone.
func ApplyPyrrhicOverride(k minigame.Kind, r minigame.Result) minigame.Result {
	if k == minigame.KindHacking {
		return r
	}
	if r.HullDamageTaken > PyrrhicDamage {
		r.Success = false
	}
	return r
}

// MergeMinigame folds a (possibly overridden) minigame result into the
// narrator's resolution.
func MergeMinigame(k minigame.Kind, r minigame.Result, res Resolution) Resolution {
	if k == minigame.KindHacking {
		if !r.Success {
			res.Success = false
			res.OutcomeText = LockoutPhrase + res.OutcomeText
			res.ItemReward = nil
			return res
		}
		res.OutcomeText = AccessPhrase + res.OutcomeText
		return res
	}

	res.ResourceChanges.Hull -= r.HullDamageTaken
	if r.Success {
		res.OutcomeText = TacticalPhrase + res.OutcomeText
	} else {
		res.Success = false
		res.OutcomeText = ResistancePhrase + res.OutcomeText
	}
	return res
}

// HeavyHit reports whether the minigame damage warrants a screen shake.
func HeavyHit(r minigame.Result) bool {
	return r.HullDamageTaken > ShakeDamage
}

// Commit applies a resolution to the player state and writes the log. It
// returns true if the committed delta cost hull or crew.
func Commit(p *PlayerState, log *MessageLog, res Resolution) bool {
	turn := p.Turn
	p.Resources = p.Resources.Apply(res.ResourceChanges)

	kind := LogDanger
	if res.Success {
		kind = LogSuccess
	}
	log.Add(turn, res.OutcomeText, kind)

	if res.ItemReward != nil {
		p.Inventory.Add(*res.ItemReward)
		log.Add(turn, fmt.Sprintf("Acquired: %s", res.ItemReward.Name), LogItem)
	}

	p.Turn++
	p.CurrentPlayer = p.nextPlayer()
	p.DifficultyMultiplier += multiplierStep
	return res.ResourceChanges.Harmful()
}
