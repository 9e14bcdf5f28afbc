package combat

import (
	"math"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/stats"
)

// status is the per-fighter turn state: Idle ⇄ Stunned.
type status int8

const (
	statusIdle status = iota
	statusStunned
)

// effectFlag is a bitset over once-per-battle effects.
type effectFlag uint8

const (
	flagGuaranteedCrit effectFlag = 1 << iota
	flagDoubleAttack
	flagStun
	flagImmunity
	flagFirstStrike
)

// fighter is the mutable per-battle state built from a Combatant.
// It lives only for one Resolve call.
type fighter struct {
	side Side
	name string

	hp    int64
	maxHP int64

	attack      float64
	defense     float64
	critRate    float64
	critDamage  float64
	penetration float64
	speed       float64
	evasion     float64

	reflect     float64
	lifesteal   float64
	recovery    float64
	firstStrike float64
	goldBonus   float64

	held     effectFlag
	consumed effectFlag
	status   status
}

// battleHP is the rounded battle HP pool before the int64 conversion.
func battleHP(p stats.Profile, t card.Totals) float64 {
	return math.Round(p.HP * (1 + t.Value(card.HPBoost)/100) * HPScale)
}

func maxHP(p stats.Profile, t card.Totals) int64 {
	return int64(battleHP(p, t))
}

// peakHit is the largest single hit the snapshot can deal: an unmitigated
// critical strike or the flat first strike, whichever is larger.
func peakHit(p stats.Profile, t card.Totals) float64 {
	attack := p.Attack * (1 + t.Value(card.AttackBoost)/100)
	crit := attack * CritMultiplier(p.CritDamage+t.Value(card.CritDamageBoost))
	return math.Max(math.Round(crit), math.Round(t.Value(card.FirstStrike)))
}

func newFighter(side Side, c Combatant) *fighter {
	t := c.Loadout.Totals()
	p := c.Stats

	f := &fighter{
		side:        side,
		name:        c.Name,
		maxHP:       maxHP(p, t),
		attack:      p.Attack * (1 + t.Value(card.AttackBoost)/100),
		defense:     p.Defense * (1 + t.Value(card.DefenseBoost)/100),
		critRate:    p.CritRate + t.Value(card.CritRateBoost),
		critDamage:  p.CritDamage + t.Value(card.CritDamageBoost),
		penetration: p.Penetration + t.Value(card.PenetrationBoost),
		speed:       p.AttackSpeed + t.Value(card.SpeedBoost),
		evasion:     p.EffectiveEvasion(),
		reflect:     t.Value(card.DamageReflect),
		lifesteal:   t.Value(card.Lifesteal),
		recovery:    t.Value(card.HPRecovery),
		firstStrike: t.Value(card.FirstStrike),
		goldBonus:   t.Value(card.GoldBonus),
	}
	f.hp = f.maxHP

	if t.Has(card.GuaranteedCrit) {
		f.held |= flagGuaranteedCrit
	}
	if t.Has(card.DoubleAttack) {
		f.held |= flagDoubleAttack
	}
	if t.Has(card.Stun) {
		f.held |= flagStun
	}
	if t.Has(card.Immunity) {
		f.held |= flagImmunity
	}
	if t.Has(card.FirstStrike) {
		f.held |= flagFirstStrike
	}
	return f
}

// ready reports whether a once-per-battle effect is held and unconsumed.
func (f *fighter) ready(flag effectFlag) bool {
	return f.held&flag != 0 && f.consumed&flag == 0
}

func (f *fighter) consume(flag effectFlag) { f.consumed |= flag }

func (f *fighter) alive() bool { return f.hp > 0 }

// damage removes amount HP, flooring at zero.
func (f *fighter) damage(amount int64) {
	f.hp -= amount
	if f.hp < 0 {
		f.hp = 0
	}
}

// heal restores up to amount HP, capped at maxHP, and returns what was applied.
func (f *fighter) heal(amount int64) int64 {
	if amount <= 0 || f.hp >= f.maxHP {
		return 0
	}
	if amount > f.maxHP-f.hp {
		amount = f.maxHP - f.hp
	}
	f.hp += amount
	return amount
}

// stun moves an idle fighter into the Stunned state.
func (f *fighter) stun() { f.status = statusStunned }

// honorStun clears a pending stun. Reports whether the turn must be skipped.
func (f *fighter) honorStun() bool {
	if f.status != statusStunned {
		return false
	}
	f.status = statusIdle
	return true
}

func (f *fighter) standing() Standing {
	return Standing{Side: f.side, Name: f.name, HP: f.hp, MaxHP: f.maxHP, GoldBonus: f.goldBonus}
}
