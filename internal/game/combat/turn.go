package combat

import (
	"math"
	"time"
)

// BaseAttackInterval is the interval at 100 attack speed.
const BaseAttackInterval = 2 * time.Second

// AttackInterval converts attack speed (100 = baseline) into the delay
// between attacks. Zero, negative or vanishingly small speed never acts
// first: the interval saturates at the largest Duration.
func AttackInterval(speed float64) time.Duration {
	if speed <= 0 || math.IsNaN(speed) {
		return time.Duration(math.MaxInt64)
	}
	d := float64(BaseAttackInterval) * 100 / speed
	if d >= maxInt64Float {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// turnOrder returns the fighters in acting order. The shorter interval
// acts first; an exact tie goes to side A.
func turnOrder(a, b *fighter) [2]*fighter {
	if AttackInterval(b.speed) < AttackInterval(a.speed) {
		return [2]*fighter{b, a}
	}
	return [2]*fighter{a, b}
}

// TurnOrder reports which side acts first for the given snapshots,
// after speed-boost cards are applied.
func TurnOrder(a, b Combatant) (first, second Side) {
	order := turnOrder(newFighter(SideA, a), newFighter(SideB, b))
	return order[0].side, order[1].side
}
