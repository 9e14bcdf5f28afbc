package card

import (
	"fmt"

	"github.com/udisondev/cardarena/internal/rng"
)

// LoadoutSize is the number of cards a combatant brings to battle.
const LoadoutSize = 3

// Loadout is a combatant's card selection. Order carries no meaning.
type Loadout []Card

// Validate checks the size and every card.
func (l Loadout) Validate() error {
	if len(l) != LoadoutSize {
		return fmt.Errorf("got %d cards: %w", len(l), ErrLoadoutSize)
	}
	for i, c := range l {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}
	return nil
}

// Totals aggregates loadout effects by type.
type Totals struct {
	sum [effectTypeCount]float64
}

// Totals sums magnitudes per effect type. Duplicate percentage cards stack;
// a flat activation effect is simply held.
func (l Loadout) Totals() Totals {
	var t Totals
	for _, c := range l {
		if c.Effect.Type.Valid() {
			t.sum[c.Effect.Type] += c.Effect.Magnitude
		}
	}
	return t
}

// Value returns the summed magnitude for typ.
func (t Totals) Value(typ EffectType) float64 {
	if !typ.Valid() {
		return 0
	}
	return t.sum[typ]
}

// Has reports whether any card of typ is held.
func (t Totals) Has(typ EffectType) bool {
	return t.Value(typ) > 0
}

// RerollSession enforces one reroll per slot during a selection session.
type RerollSession struct {
	gen      *Generator
	pool     Pool
	loadout  Loadout
	rerolled [LoadoutSize]bool
}

// NewRerollSession starts a session over a copy of l.
func NewRerollSession(gen *Generator, pool Pool, l Loadout) (*RerollSession, error) {
	if len(l) != LoadoutSize {
		return nil, fmt.Errorf("reroll session: got %d cards: %w", len(l), ErrLoadoutSize)
	}
	cp := make(Loadout, LoadoutSize)
	copy(cp, l)
	return &RerollSession{gen: gen, pool: pool, loadout: cp}, nil
}

// Reroll replaces slot with a fresh draw and returns the updated loadout.
func (s *RerollSession) Reroll(slot int, src rng.Source) (Loadout, error) {
	if slot < 0 || slot >= LoadoutSize {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrSlotOutOfRange)
	}
	if s.rerolled[slot] {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrSlotRerolled)
	}
	s.loadout[slot] = s.gen.Generate(s.pool, src)
	s.rerolled[slot] = true
	return s.Loadout(), nil
}

// Rerolled reports whether slot has been used this session.
func (s *RerollSession) Rerolled(slot int) bool {
	return slot >= 0 && slot < LoadoutSize && s.rerolled[slot]
}

// Loadout returns a copy of the current loadout.
func (s *RerollSession) Loadout() Loadout {
	cp := make(Loadout, LoadoutSize)
	copy(cp, s.loadout)
	return cp
}
