package card

import "fmt"

// EffectType enumerates every card effect. New values must be appended
// before effectTypeCount and get a row in effectSpecs and DefaultMagnitudes.
type EffectType int8

const (
	AttackBoost EffectType = iota
	DefenseBoost
	CritRateBoost
	CritDamageBoost
	PenetrationBoost
	GuaranteedCrit
	DamageReflect
	HPBoost
	FirstStrike
	GoldBonus
	HPRecovery
	SpeedBoost
	Immunity
	Lifesteal
	DoubleAttack
	Stun

	effectTypeCount
)

// EffectTypeCount is the number of defined effect types.
const EffectTypeCount = int(effectTypeCount)

// Availability groups effect types by who may roll them.
type Availability int8

const (
	// AvailCore types are rolled by everyone, AI opponents included.
	AvailCore Availability = iota + 1
	// AvailPlayer types are rolled by players only.
	AvailPlayer
	// AvailPvP types are PvP-exclusive player effects.
	AvailPvP
)

// Scale tells how an effect magnitude is applied.
type Scale int8

const (
	// ScalePercent magnitudes are percentage points.
	ScalePercent Scale = iota + 1
	// ScaleFlat magnitudes are activation flags (1) or flat amounts.
	ScaleFlat
)

type effectSpec struct {
	name  string
	scale Scale
	avail Availability
}

// effectSpecs is keyed by EffectType. A missing row leaves a zero spec,
// which Valid rejects and the package tests catch.
var effectSpecs = [effectTypeCount]effectSpec{
	AttackBoost:      {"attack_boost", ScalePercent, AvailCore},
	DefenseBoost:     {"defense_boost", ScalePercent, AvailCore},
	CritRateBoost:    {"crit_rate_boost", ScalePercent, AvailCore},
	CritDamageBoost:  {"crit_damage_boost", ScalePercent, AvailCore},
	PenetrationBoost: {"penetration_boost", ScalePercent, AvailCore},
	GuaranteedCrit:   {"guaranteed_crit", ScaleFlat, AvailCore},
	DamageReflect:    {"damage_reflect", ScalePercent, AvailCore},
	HPBoost:          {"hp_boost", ScalePercent, AvailPlayer},
	FirstStrike:      {"first_strike", ScaleFlat, AvailPlayer},
	GoldBonus:        {"gold_bonus", ScalePercent, AvailPlayer},
	HPRecovery:       {"hp_recovery", ScalePercent, AvailPvP},
	SpeedBoost:       {"speed_boost", ScalePercent, AvailPvP},
	Immunity:         {"immunity", ScaleFlat, AvailPvP},
	Lifesteal:        {"lifesteal", ScalePercent, AvailPvP},
	DoubleAttack:     {"double_attack", ScaleFlat, AvailPvP},
	Stun:             {"stun", ScaleFlat, AvailPvP},
}

// Valid reports whether t is a defined effect type with a catalogue row.
func (t EffectType) Valid() bool {
	return t >= 0 && t < effectTypeCount && effectSpecs[t].scale != 0
}

// String returns the wire name of the effect type.
func (t EffectType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("EffectType(%d)", int8(t))
	}
	return effectSpecs[t].name
}

// IsPercentage reports whether magnitudes of t are percentage modifiers.
func (t EffectType) IsPercentage() bool {
	return t.Valid() && effectSpecs[t].scale == ScalePercent
}

// Availability returns who may roll t.
func (t EffectType) Availability() Availability {
	if !t.Valid() {
		return 0
	}
	return effectSpecs[t].avail
}

// MarshalText implements encoding.TextMarshaler.
func (t EffectType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("effect type %d: %w", int8(t), ErrInvalidEffect)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EffectType) UnmarshalText(b []byte) error {
	v, err := ParseEffectType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseEffectType resolves a wire name.
func ParseEffectType(name string) (EffectType, error) {
	for i := range effectTypeCount {
		if effectSpecs[i].name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("effect %q: %w", name, ErrInvalidEffect)
}

// EffectTypes returns all defined effect types in order.
func EffectTypes() []EffectType {
	out := make([]EffectType, 0, effectTypeCount)
	for i := range effectTypeCount {
		out = append(out, i)
	}
	return out
}

// Effect is an immutable (type, magnitude) pair.
type Effect struct {
	Type      EffectType `json:"type"`
	Magnitude float64    `json:"magnitude"`
}

// IsPercentage reports whether the magnitude is a percentage modifier.
func (e Effect) IsPercentage() bool { return e.Type.IsPercentage() }
