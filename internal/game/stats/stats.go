// Package stats defines the eight-stat combat profile shared by players
// and tower enemies.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// MaxEvasion caps evasion (percent) at resolution time.
const MaxEvasion = 40

// ErrNegativeStat is returned when a profile field is negative or NaN.
var ErrNegativeStat = errors.New("negative stat")

// Combat power weights. Display and matchmaking only.
const (
	weightAttack      = 1.0
	weightDefense     = 0.6
	weightHP          = 0.15
	weightCritRate    = 2.0
	weightCritDamage  = 0.3
	weightPenetration = 2.0
	weightAttackSpeed = 1.0
	weightEvasion     = 1.5
)

// Profile is a read-only snapshot of a combatant's stats.
// Percent fields are expressed in points: CritRate 25 means 25%.
type Profile struct {
	Attack      float64 `json:"attack" yaml:"attack"`
	Defense     float64 `json:"defense" yaml:"defense"`
	HP          float64 `json:"hp" yaml:"hp"`
	CritRate    float64 `json:"crit_rate" yaml:"crit_rate"`
	CritDamage  float64 `json:"crit_damage" yaml:"crit_damage"`
	Penetration float64 `json:"penetration" yaml:"penetration"`
	AttackSpeed float64 `json:"attack_speed" yaml:"attack_speed"`
	Evasion     float64 `json:"evasion" yaml:"evasion"`
}

// Field is a named accessor over one stat, used by validation and scaling
// code that needs to walk every field.
type Field struct {
	Name  string
	Value float64
}

// Fields returns all eight stats in declaration order.
func (p Profile) Fields() []Field {
	return []Field{
		{"attack", p.Attack},
		{"defense", p.Defense},
		{"hp", p.HP},
		{"crit_rate", p.CritRate},
		{"crit_damage", p.CritDamage},
		{"penetration", p.Penetration},
		{"attack_speed", p.AttackSpeed},
		{"evasion", p.Evasion},
	}
}

// Validate rejects negative (or NaN) fields. Out-of-convention values
// such as evasion above MaxEvasion are accepted; see EffectiveEvasion.
func (p Profile) Validate() error {
	for _, f := range p.Fields() {
		if f.Value < 0 || math.IsNaN(f.Value) {
			return fmt.Errorf("%s = %v: %w", f.Name, f.Value, ErrNegativeStat)
		}
	}
	return nil
}

// EffectiveEvasion returns evasion clamped to MaxEvasion.
func (p Profile) EffectiveEvasion() float64 {
	return math.Min(p.Evasion, MaxEvasion)
}

// CombatPower returns the weighted stat sum shown in the UI and used for
// matchmaking brackets. Never used by damage resolution.
func (p Profile) CombatPower() float64 {
	return p.Attack*weightAttack +
		p.Defense*weightDefense +
		p.HP*weightHP +
		p.CritRate*weightCritRate +
		p.CritDamage*weightCritDamage +
		p.Penetration*weightPenetration +
		p.AttackSpeed*weightAttackSpeed +
		p.Evasion*weightEvasion
}

// Less reports whether every field of p is strictly below the same field of o.
func (p Profile) Less(o Profile) bool {
	pf, of := p.Fields(), o.Fields()
	for i := range pf {
		if pf[i].Value >= of[i].Value {
			return false
		}
	}
	return true
}
