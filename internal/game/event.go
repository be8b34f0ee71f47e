package game

// ChoiceType is the tactical category of a choice. It decides which
// resolution path a decision takes.
type ChoiceType string

const (
	Aggressive ChoiceType = "aggressive"
	Diplomatic ChoiceType = "diplomatic"
	Scientific ChoiceType = "scientific"
	Evasive    ChoiceType = "evasive"
)

// Valid reports whether t is one of the known categories.
func (t ChoiceType) Valid() bool {
	switch t {
	case Aggressive, Diplomatic, Scientific, Evasive:
		return true
	}
	return false
}

// Risk is a choice's declared danger tier.
type Risk string

const (
	RiskLow     Risk = "low"
	RiskMedium  Risk = "medium"
	RiskHigh    Risk = "high"
	RiskExtreme Risk = "extreme"
)

// Valid reports whether r is one of the known tiers.
func (r Risk) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskExtreme:
		return true
	}
	return false
}

// Choice is one option presented for a turn.
type Choice struct {
	ID   string     `json:"id" yaml:"id"`
	Text string     `json:"text" yaml:"text"`
	Type ChoiceType `json:"type" yaml:"type"`
	Risk Risk       `json:"risk" yaml:"risk"`
}

// GameEvent is the narrative decision point of a turn.
type GameEvent struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Choices     []Choice `json:"choices" yaml:"choices"`
}

// Choice looks up a choice by id.
func (e *GameEvent) Choice(id string) (Choice, bool) {
	for _, c := range e.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// FirstOfType returns the first choice of type t.
func (e *GameEvent) FirstOfType(t ChoiceType) (Choice, bool) {
	for _, c := range e.Choices {
		if c.Type == t {
			return c, true
		}
	}
	return Choice{}, false
}

// ThreatLevel grades a hostile in the combat briefing.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "LOW"
	ThreatModerate ThreatLevel = "MODERATE"
	ThreatCritical ThreatLevel = "CRITICAL"
	ThreatExtreme  ThreatLevel = "EXTREME"
)

// CombatDetails is the flavor shown before a combat minigame.
type CombatDetails struct {
	EnemyName   string      `json:"enemyName"`
	EnemyClass  string      `json:"enemyClass"`
	Description string      `json:"description"`
	Weakness    string      `json:"weakness"`
	ThreatLevel ThreatLevel `json:"threatLevel"`
}

// Resolution is the outcome of one decision, before it is committed.
type Resolution struct {
	OutcomeText     string
	ResourceChanges ResourceDelta
	ItemReward      *Item
	Success         bool
}
