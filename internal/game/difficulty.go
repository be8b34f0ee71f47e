package game

// turnsPerStep is how many turns it takes for difficulty to climb by one.
const turnsPerStep = 5

var baseDifficulty = map[Risk]int{
	RiskLow:     1,
	RiskMedium:  2,
	RiskHigh:    3,
	RiskExtreme: 5,
}

// BaseDifficulty returns the difficulty of a risk tier on turn 0.
// Unknown tiers count as low.
func BaseDifficulty(r Risk) int {
	if d, ok := baseDifficulty[r]; ok {
		return d
	}
	return 1
}

// ScaledDifficulty returns the minigame difficulty for a choice of risk r on
// the given turn.
func ScaledDifficulty(turn int, r Risk) int {
	if turn < 0 {
		turn = 0
	}
	return BaseDifficulty(r) + turn/turnsPerStep
}
