package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/stats"
)

var (
	// ErrNoHP is returned when a combatant would enter battle with an empty HP pool.
	ErrNoHP = errors.New("hp must be positive")
	// ErrNilSource is returned when Resolve is called without a random source.
	ErrNilSource = errors.New("nil random source")
	// ErrStatOutOfRange is returned when battle HP or a single hit would not fit in int64.
	ErrStatOutOfRange = errors.New("stat out of range")
)

// maxInt64Float is 2^63, the smallest float64 above the int64 range.
const maxInt64Float = float64(math.MaxInt64)

// Combatant is the read-only snapshot a caller assembles from stored
// stats, equipment and the selected loadout.
type Combatant struct {
	Name    string        `json:"name"`
	Stats   stats.Profile `json:"stats"`
	Loadout card.Loadout  `json:"loadout"`
}

// Validate checks the snapshot before any simulation starts.
//
// Checks:
//   - every stat is non-negative
//   - the battle HP pool is at least 1
//   - battle HP and the largest possible hit fit in int64
//   - the loadout holds exactly 3 legal cards
func (c Combatant) Validate() error {
	if err := c.Stats.Validate(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	t := c.Loadout.Totals()
	hp := battleHP(c.Stats, t)
	if hp >= maxInt64Float {
		return fmt.Errorf("hp %v: %w", c.Stats.HP, ErrStatOutOfRange)
	}
	if hp < 1 {
		return fmt.Errorf("hp %v: %w", c.Stats.HP, ErrNoHP)
	}
	if hit := peakHit(c.Stats, t); hit >= maxInt64Float {
		return fmt.Errorf("attack %v, peak hit %v: %w", c.Stats.Attack, hit, ErrStatOutOfRange)
	}
	if err := c.Loadout.Validate(); err != nil {
		return fmt.Errorf("loadout: %w", err)
	}
	return nil
}
