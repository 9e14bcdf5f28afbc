package combat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventKind classifies an entry of the battle log.
type EventKind int8

const (
	// EventStrike is a normal attack (one per hit).
	EventStrike EventKind = iota + 1
	// EventFirstStrike is the pre-battle flat hit.
	EventFirstStrike
	// EventStunSkip marks a turn lost to stun.
	EventStunSkip
)

var eventKindNames = map[EventKind]string{
	EventStrike:      "strike",
	EventFirstStrike: "first_strike",
	EventStunSkip:    "stun_skip",
}

func (k EventKind) String() string {
	if n, ok := eventKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("EventKind(%d)", int8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(b []byte) error {
	for kind, name := range eventKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Trigger is a bitset tagging special effects that fired on an event.
type Trigger uint8

const (
	TriggerGuaranteedCrit Trigger = 1 << iota
	TriggerDoubleAttack
	TriggerStun
	TriggerImmunity
	TriggerFirstStrike
	TriggerReflect
	TriggerLifesteal
	TriggerRecovery
)

var triggerNames = []struct {
	bit  Trigger
	name string
}{
	{TriggerGuaranteedCrit, "guaranteed_crit"},
	{TriggerDoubleAttack, "double_attack"},
	{TriggerStun, "stun"},
	{TriggerImmunity, "immunity"},
	{TriggerFirstStrike, "first_strike"},
	{TriggerReflect, "reflect"},
	{TriggerLifesteal, "lifesteal"},
	{TriggerRecovery, "recovery"},
}

// Has reports whether bit is set.
func (t Trigger) Has(bit Trigger) bool { return t&bit != 0 }

// Names lists set bits in a fixed order.
func (t Trigger) Names() []string {
	out := make([]string, 0, 2)
	for _, tn := range triggerNames {
		if t.Has(tn.bit) {
			out = append(out, tn.name)
		}
	}
	return out
}

func (t Trigger) String() string { return strings.Join(t.Names(), "|") }

// MarshalJSON encodes the set as a list of names.
func (t Trigger) MarshalJSON() ([]byte, error) { return json.Marshal(t.Names()) }

// UnmarshalJSON decodes a list of names.
func (t *Trigger) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	var out Trigger
next:
	for _, n := range names {
		for _, tn := range triggerNames {
			if tn.name == n {
				out |= tn.bit
				continue next
			}
		}
		return fmt.Errorf("unknown trigger %q", n)
	}
	*t = out
	return nil
}

// Event is one entry of the battle log. Every strike, evaded or not,
// produces exactly one Event; a double attack produces two (Hit 1 and 2).
// Reflect, lifesteal and recovery caused by a strike are reported as fields
// of that strike's Event, not as separate entries.
type Event struct {
	Round    int       `json:"round"`
	Kind     EventKind `json:"kind"`
	Attacker Side      `json:"attacker"`
	Defender Side      `json:"defender"`
	Hit      int       `json:"hit,omitempty"`

	Damage     int64 `json:"damage"`
	Evaded     bool  `json:"evaded,omitempty"`
	Crit       bool  `json:"crit,omitempty"`
	Immune     bool  `json:"immune,omitempty"`
	Reflected  int64 `json:"reflected,omitempty"`
	Lifestolen int64 `json:"lifestolen,omitempty"`
	Recovered  int64 `json:"recovered,omitempty"`

	Triggers Trigger `json:"triggers"`

	AttackerHP int64 `json:"attacker_hp"`
	DefenderHP int64 `json:"defender_hp"`
}

// Reason tells how a battle ended.
type Reason int8

const (
	ReasonKnockout Reason = iota + 1
	ReasonRoundCap
)

func (r Reason) String() string {
	switch r {
	case ReasonKnockout:
		return "knockout"
	case ReasonRoundCap:
		return "round_cap"
	default:
		return fmt.Sprintf("Reason(%d)", int8(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reason) UnmarshalText(b []byte) error {
	switch string(b) {
	case "knockout":
		*r = ReasonKnockout
	case "round_cap":
		*r = ReasonRoundCap
	default:
		return fmt.Errorf("unknown reason %q", b)
	}
	return nil
}

// Standing is a combatant's state when the battle ended.
type Standing struct {
	Side      Side    `json:"side"`
	Name      string  `json:"name"`
	HP        int64   `json:"hp"`
	MaxHP     int64   `json:"max_hp"`
	GoldBonus float64 `json:"gold_bonus"`
}

// Result is the pure output of Resolve.
type Result struct {
	Winner Side        `json:"winner"`
	Reason Reason      `json:"reason"`
	Rounds int         `json:"rounds"`
	Events []Event     `json:"events"`
	Final  [2]Standing `json:"final"`
}

// IsDraw reports whether nobody won.
func (r Result) IsDraw() bool { return r.Winner == SideNone }

// Standing returns the final state of side s.
func (r Result) Standing(s Side) Standing {
	if s != SideA && s != SideB {
		return Standing{}
	}
	return r.Final[s.index()]
}
