package game

import "context"

// Fixed stand-ins used whenever a content source fails. They never change so
// the turn loop always has something to move on.

// FallbackEvent returns the asteroid-field event.
func FallbackEvent() GameEvent {
	return GameEvent{
		ID:          "fallback-1",
		Title:       "Asteroid Field",
		Description: "Navigational sensors detect a dense asteroid field directly in your trajectory. The auto-pilot recommends a detour, but fuel is low.",
		Choices: []Choice{
			{ID: "c1", Text: "Blast through using shields", Type: Aggressive, Risk: RiskHigh},
			{ID: "c2", Text: "Calculate a precise path manually", Type: Scientific, Risk: RiskMedium},
			{ID: "c3", Text: "Go around (Costs Energy)", Type: Evasive, Risk: RiskLow},
		},
	}
}

// FallbackCombatDetails is shown when the scanner readout cannot be fetched.
func FallbackCombatDetails() CombatDetails {
	return CombatDetails{
		EnemyName:   "Hostile Entity",
		EnemyClass:  "Standard",
		Description: "Target locked.",
		Weakness:    "Shields",
		ThreatLevel: ThreatModerate,
	}
}

// UnknownCombatDetails is the readout when no scanner source is attached.
func UnknownCombatDetails() CombatDetails {
	return CombatDetails{
		EnemyName:   "Unknown Assailant",
		EnemyClass:  "Unknown",
		Description: "Sensors cannot identify the target. Visuals obscured.",
		Weakness:    "None detected",
		ThreatLevel: ThreatCritical,
	}
}

// FallbackResolution is the outcome when the narrator cannot be reached.
func FallbackResolution() Resolution {
	return Resolution{
		Success:         false,
		OutcomeText:     "Communication interference. Static fills the screen.",
		ResourceChanges: ResourceDelta{Energy: -5},
	}
}

// SensorsOfflineResolution is the outcome when no narrator is attached.
func SensorsOfflineResolution() Resolution {
	return Resolution{
		Success:         false,
		OutcomeText:     "Sensors offline. Outcome uncertain.",
		ResourceChanges: ResourceDelta{Credits: 10},
	}
}

// Disconnected is the narrator used when no content source is configured.
// Every call answers immediately with a fixed record.
type Disconnected struct{}

func (Disconnected) GenerateEvent(context.Context, EventRequest) (GameEvent, error) {
	return FallbackEvent(), nil
}

func (Disconnected) GenerateCombatDetails(context.Context, string) (CombatDetails, error) {
	return UnknownCombatDetails(), nil
}

func (Disconnected) ResolveAction(context.Context, ActionRequest) (Resolution, error) {
	return SensorsOfflineResolution(), nil
}
