// Package combat resolves a PvP battle between two combatant snapshots.
//
// Resolve is pure: it reads two immutable snapshots and an injected random
// source, and returns a Result. Identical inputs and an identical source
// sequence produce an identical Result.
package combat

import (
	"fmt"
	"math/bits"

	"github.com/udisondev/cardarena/internal/rng"
)

const (
	// RoundCap bounds every battle. Reaching it is a normal ending.
	RoundCap = 30

	// HPScale multiplies the HP stat into the battle HP pool, so that
	// evenly matched profiles can last until RoundCap.
	HPScale = 10

	// MaxEvents bounds the log: two turns per round, plus at most one
	// first strike and one extra double-attack hit per side.
	MaxEvents = 2*RoundCap + 4
)

type battle struct {
	src      rng.Source
	round    int
	events   []Event
	fighters [2]*fighter
	winner   Side
}

// Resolve simulates a full battle between a (challenger) and b.
// Invalid snapshots fail before any draw is taken from src.
func Resolve(a, b Combatant, src rng.Source) (Result, error) {
	if src == nil {
		return Result{}, ErrNilSource
	}
	if err := a.Validate(); err != nil {
		return Result{}, fmt.Errorf("combatant a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Result{}, fmt.Errorf("combatant b: %w", err)
	}

	bt := &battle{
		src:      src,
		events:   make([]Event, 0, 2*RoundCap),
		fighters: [2]*fighter{newFighter(SideA, a), newFighter(SideB, b)},
	}
	return bt.run(), nil
}

func (b *battle) opponent(f *fighter) *fighter {
	return b.fighters[f.side.Opponent().index()]
}

func (b *battle) run() Result {
	order := turnOrder(b.fighters[0], b.fighters[1])

	for _, f := range order {
		if !f.ready(flagFirstStrike) {
			continue
		}
		if b.record(b.firstStrikeHit(f, b.opponent(f))) {
			return b.finish(ReasonKnockout)
		}
	}

	for b.round = 1; b.round <= RoundCap; b.round++ {
		for _, f := range order {
			if b.takeTurn(f, b.opponent(f)) {
				return b.finish(ReasonKnockout)
			}
		}
	}
	b.round = RoundCap
	return b.finish(ReasonRoundCap)
}

// takeTurn plays one fighter's turn. Reports whether the battle is over.
func (b *battle) takeTurn(att, def *fighter) bool {
	if att.honorStun() {
		b.record(b.snapshot(Event{
			Round:    b.round,
			Kind:     EventStunSkip,
			Attacker: att.side,
			Defender: def.side,
			Triggers: TriggerStun,
		}, att, def))
		return false
	}

	var recovered int64
	if att.recovery > 0 {
		recovered = att.heal(percentOf(att.maxHP, att.recovery))
	}

	hits := 1
	if att.ready(flagDoubleAttack) {
		att.consume(flagDoubleAttack)
		hits = 2
	}

	for hit := 1; hit <= hits; hit++ {
		ev := b.strike(att, def, hit)
		if hit == 1 && recovered > 0 {
			ev.Recovered = recovered
			ev.Triggers |= TriggerRecovery
		}
		if hits == 2 {
			ev.Triggers |= TriggerDoubleAttack
		}
		if b.record(ev) {
			return true
		}
	}
	return false
}

// record appends ev and checks termination after the strike.
// A defender knocked out takes precedence over an attacker killed by reflect.
func (b *battle) record(ev Event) bool {
	b.events = append(b.events, ev)

	att := b.fighters[ev.Attacker.index()]
	def := b.fighters[ev.Defender.index()]
	switch {
	case !def.alive():
		b.winner = att.side
		return true
	case !att.alive():
		b.winner = def.side
		return true
	}
	return false
}

func (b *battle) finish(reason Reason) Result {
	a, bb := b.fighters[0], b.fighters[1]

	if reason == ReasonRoundCap {
		switch compareFractions(a.hp, a.maxHP, bb.hp, bb.maxHP) {
		case 1:
			b.winner = SideA
		case -1:
			b.winner = SideB
		default:
			b.winner = SideNone
		}
	}

	return Result{
		Winner: b.winner,
		Reason: reason,
		Rounds: b.round,
		Events: b.events,
		Final:  [2]Standing{a.standing(), bb.standing()},
	}
}

// compareFractions compares n1/d1 with n2/d2 for non-negative values
// without rounding, using 128-bit cross products.
func compareFractions(n1, d1, n2, d2 int64) int {
	lhsHi, lhsLo := bits.Mul64(uint64(n1), uint64(d2))
	rhsHi, rhsLo := bits.Mul64(uint64(n2), uint64(d1))
	switch {
	case lhsHi > rhsHi, lhsHi == rhsHi && lhsLo > rhsLo:
		return 1
	case lhsHi < rhsHi, lhsHi == rhsHi && lhsLo < rhsLo:
		return -1
	default:
		return 0
	}
}
