package card

import (
	"fmt"

	"github.com/udisondev/cardarena/internal/rng"
)

// Tier is a card's rarity. It gates reachable effects and magnitudes.
type Tier int8

const (
	Common Tier = iota
	Rare
	Epic
	Legendary

	tierCount
)

// TierCount is the number of card tiers.
const TierCount = int(tierCount)

var tierNames = [tierCount]string{
	Common:    "common",
	Rare:      "rare",
	Epic:      "epic",
	Legendary: "legendary",
}

// Valid reports whether t is a defined tier.
func (t Tier) Valid() bool { return t >= 0 && t < tierCount }

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int8(t))
	}
	return tierNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tier %d: %w", int8(t), ErrInvalidTier)
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTier resolves a tier name.
func ParseTier(name string) (Tier, error) {
	for i := range tierCount {
		if tierNames[i] == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("tier %q: %w", name, ErrInvalidTier)
}

// TierRates holds per-tier roll probabilities, compared cumulatively in
// tier order.
type TierRates [tierCount]float64

// DefaultTierRates is the standard drop table.
var DefaultTierRates = TierRates{
	Common:    0.60,
	Rare:      0.25,
	Epic:      0.12,
	Legendary: 0.03,
}

// Roll draws one value and walks the cumulative table. A draw beyond the
// table's total (rates summing below 1) falls back to Common.
func (r TierRates) Roll(src rng.Source) Tier {
	u := src.Float64()
	cum := 0.0
	for t := range tierCount {
		cum += r[t]
		if u < cum {
			return t
		}
	}
	return Common
}

// MagnitudeTable maps (tier, effect type) to a magnitude. Zero marks a
// combination that is illegal at that tier.
type MagnitudeTable [tierCount][effectTypeCount]float64

// Lookup returns the magnitude, or 0 for invalid indices.
func (m *MagnitudeTable) Lookup(t Tier, e EffectType) float64 {
	if !t.Valid() || !e.Valid() {
		return 0
	}
	return m[t][e]
}

// DefaultMagnitudes is the production magnitude table.
var DefaultMagnitudes = MagnitudeTable{
	Common: {
		AttackBoost:      5,
		DefenseBoost:     5,
		CritRateBoost:    3,
		CritDamageBoost:  10,
		PenetrationBoost: 3,
		HPBoost:          5,
		GoldBonus:        5,
	},
	Rare: {
		AttackBoost:      10,
		DefenseBoost:     10,
		CritRateBoost:    5,
		CritDamageBoost:  20,
		PenetrationBoost: 5,
		DamageReflect:    5,
		HPBoost:          10,
		FirstStrike:      50,
		GoldBonus:        10,
		HPRecovery:       3,
		SpeedBoost:       5,
		Lifesteal:        5,
	},
	Epic: {
		AttackBoost:      15,
		DefenseBoost:     15,
		CritRateBoost:    8,
		CritDamageBoost:  30,
		PenetrationBoost: 8,
		GuaranteedCrit:   1,
		DamageReflect:    10,
		HPBoost:          15,
		FirstStrike:      100,
		GoldBonus:        15,
		HPRecovery:       5,
		SpeedBoost:       10,
		Immunity:         1,
		Lifesteal:        10,
		DoubleAttack:     1,
	},
	Legendary: {
		AttackBoost:      25,
		DefenseBoost:     25,
		CritRateBoost:    12,
		CritDamageBoost:  50,
		PenetrationBoost: 12,
		GuaranteedCrit:   1,
		DamageReflect:    15,
		HPBoost:          20,
		FirstStrike:      200,
		GoldBonus:        25,
		HPRecovery:       8,
		SpeedBoost:       20,
		Immunity:         1,
		Lifesteal:        15,
		DoubleAttack:     1,
		Stun:             1,
	},
}
