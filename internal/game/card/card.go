// Package card holds the battle card catalogue: effect types, tier tables,
// card generation, 3-card loadouts and the per-session reroll rule.
package card

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTier      = errors.New("invalid card tier")
	ErrInvalidEffect    = errors.New("invalid effect type")
	ErrIllegalMagnitude = errors.New("magnitude not legal for tier")
	ErrLoadoutSize      = errors.New("loadout must hold exactly 3 cards")
	ErrSlotOutOfRange   = errors.New("loadout slot out of range")
	ErrSlotRerolled     = errors.New("loadout slot already rerolled")
)

// Card is one battle card.
type Card struct {
	ID     string `json:"id"`
	Tier   Tier   `json:"tier"`
	Effect Effect `json:"effect"`
}

// Validate checks the card against DefaultMagnitudes.
func (c Card) Validate() error {
	return c.ValidateWith(&DefaultMagnitudes)
}

// ValidateWith checks tier, type and that the magnitude is the legal,
// non-zero value for that (tier, type) pair.
func (c Card) ValidateWith(table *MagnitudeTable) error {
	if !c.Tier.Valid() {
		return fmt.Errorf("card %s: tier %d: %w", c.ID, int8(c.Tier), ErrInvalidTier)
	}
	if !c.Effect.Type.Valid() {
		return fmt.Errorf("card %s: effect %d: %w", c.ID, int8(c.Effect.Type), ErrInvalidEffect)
	}
	want := table.Lookup(c.Tier, c.Effect.Type)
	if want <= 0 || c.Effect.Magnitude != want {
		return fmt.Errorf("card %s: %s %s = %v: %w",
			c.ID, c.Tier, c.Effect.Type, c.Effect.Magnitude, ErrIllegalMagnitude)
	}
	return nil
}
