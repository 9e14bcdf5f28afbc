package rating

import "math"

// BaseGold returns the PvP base reward for an outcome.
func BaseGold(o Outcome) int {
	switch o {
	case Win:
		return WinGold
	case Draw:
		return DrawGold
	default:
		return LossGold
	}
}

// Reward returns floor(base × (1 + goldBonus/100) × multiplier).
// multiplier is 1 in PvP and the floor difficulty multiplier in the tower.
func Reward(base int, goldBonus, multiplier float64) int {
	if base <= 0 {
		return 0
	}
	return int(math.Floor(float64(base) * (100 + goldBonus) * multiplier / 100))
}
