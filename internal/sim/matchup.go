// Package sim runs seeded battle batches for balance work.
package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/game/tower"
	"github.com/udisondev/cardarena/internal/rng"
)

// ErrNoOpponent is returned when a matchup names neither side B nor a floor.
var ErrNoOpponent = errors.New("matchup has no opponent")

// Entrant describes one side. An empty loadout is rolled from the player
// pool using RollSeed.
type Entrant struct {
	Name     string        `yaml:"name"`
	Stats    stats.Profile `yaml:"stats"`
	Loadout  card.Loadout  `yaml:"loadout"`
	RollSeed uint64        `yaml:"roll_seed"`
}

// Combatant builds the battle snapshot.
func (e Entrant) Combatant() combat.Combatant {
	loadout := e.Loadout
	if len(loadout) == 0 {
		gen := card.NewGenerator()
		n := 0
		gen.NewID = func() string {
			n++
			return fmt.Sprintf("%s-%d", e.Name, n)
		}
		loadout = gen.RollLoadout(card.PoolPlayer, rng.New(e.RollSeed))
	}
	return combat.Combatant{Name: e.Name, Stats: e.Stats, Loadout: loadout}
}

// Matchup is side A against either side B or a tower floor.
type Matchup struct {
	A     Entrant  `yaml:"a"`
	B     *Entrant `yaml:"b"`
	Floor int      `yaml:"floor"`
}

// Sides resolves and validates both combatants.
func (m Matchup) Sides() (a, b combat.Combatant, err error) {
	a = m.A.Combatant()
	switch {
	case m.Floor != 0:
		if b, err = tower.Enemy(m.Floor); err != nil {
			return a, b, err
		}
	case m.B != nil:
		b = m.B.Combatant()
	default:
		return a, b, ErrNoOpponent
	}
	if err := a.Validate(); err != nil {
		return a, b, fmt.Errorf("side a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return a, b, fmt.Errorf("side b: %w", err)
	}
	return a, b, nil
}

// LoadMatchup reads a matchup from a YAML file.
func LoadMatchup(path string) (Matchup, error) {
	var m Matchup
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading matchup %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing matchup %s: %w", path, err)
	}
	return m, nil
}
