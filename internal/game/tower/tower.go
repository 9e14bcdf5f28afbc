// Package tower adapts the PvP resolver to tower mode: enemies and
// rewards are derived from the floor index alone.
package tower

import (
	"errors"
	"fmt"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/rng"
)

// MaxFloor is the top of the tower.
const MaxFloor = 100

// ErrInvalidFloor is returned for floors outside 1..MaxFloor.
var ErrInvalidFloor = errors.New("invalid tower floor")

// Difficulty is a named group of consecutive floors.
type Difficulty struct {
	Name       string         `json:"name"`
	FirstFloor int            `json:"first_floor"`
	LastFloor  int            `json:"last_floor"`
	Multiplier float64        `json:"multiplier"`
	TierRates  card.TierRates `json:"-"`
}

// Difficulties covers floors 1..MaxFloor without gaps.
var Difficulties = []Difficulty{
	{Name: "Novice", FirstFloor: 1, LastFloor: 10, Multiplier: 1.0, TierRates: card.DefaultTierRates},
	{Name: "Adept", FirstFloor: 11, LastFloor: 25, Multiplier: 1.25, TierRates: card.TierRates{0.45, 0.35, 0.16, 0.04}},
	{Name: "Veteran", FirstFloor: 26, LastFloor: 50, Multiplier: 1.5, TierRates: card.TierRates{0.30, 0.40, 0.24, 0.06}},
	{Name: "Elite", FirstFloor: 51, LastFloor: 75, Multiplier: 2.0, TierRates: card.TierRates{0.15, 0.40, 0.35, 0.10}},
	{Name: "Legend", FirstFloor: 76, LastFloor: 100, Multiplier: 3.0, TierRates: card.TierRates{0.05, 0.30, 0.45, 0.20}},
}

// ValidateFloor checks the floor index.
func ValidateFloor(floor int) error {
	if floor < 1 || floor > MaxFloor {
		return fmt.Errorf("floor %d: %w", floor, ErrInvalidFloor)
	}
	return nil
}

// DifficultyOf returns the difficulty group containing floor.
func DifficultyOf(floor int) (Difficulty, error) {
	if err := ValidateFloor(floor); err != nil {
		return Difficulty{}, err
	}
	for _, d := range Difficulties {
		if floor >= d.FirstFloor && floor <= d.LastFloor {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("floor %d has no difficulty: %w", floor, ErrInvalidFloor)
}

// growth is base + perFloor × floor for one stat.
type growth struct {
	base     float64
	perFloor float64
}

func (g growth) at(floor int) float64 { return g.base + g.perFloor*float64(floor) }

// Every perFloor is positive, so each stat strictly increases with the floor.
var (
	attackGrowth      = growth{40, 6}
	defenseGrowth     = growth{8, 2.5}
	hpGrowth          = growth{250, 45}
	critRateGrowth    = growth{3, 0.25}
	critDamageGrowth  = growth{120, 1.5}
	penetrationGrowth = growth{1, 0.2}
	attackSpeedGrowth = growth{90, 0.5}
	evasionGrowth     = growth{1, 0.3}
)

// ScaleFloorEnemy returns the enemy stat profile for floor.
func ScaleFloorEnemy(floor int) (stats.Profile, error) {
	if err := ValidateFloor(floor); err != nil {
		return stats.Profile{}, err
	}
	return stats.Profile{
		Attack:      attackGrowth.at(floor),
		Defense:     defenseGrowth.at(floor),
		HP:          hpGrowth.at(floor),
		CritRate:    critRateGrowth.at(floor),
		CritDamage:  critDamageGrowth.at(floor),
		Penetration: penetrationGrowth.at(floor),
		AttackSpeed: attackSpeedGrowth.at(floor),
		Evasion:     evasionGrowth.at(floor),
	}, nil
}

// EnemyLoadout rolls the floor guardian's cards from the AI pool. The
// source is seeded by the floor, so a floor always fields the same cards.
func EnemyLoadout(floor int) (card.Loadout, error) {
	diff, err := DifficultyOf(floor)
	if err != nil {
		return nil, err
	}
	n := 0
	gen := &card.Generator{
		Rates:      diff.TierRates,
		Magnitudes: &card.DefaultMagnitudes,
		NewID: func() string {
			n++
			return fmt.Sprintf("floor-%d-%d", floor, n)
		},
	}
	return gen.RollLoadout(card.PoolAI, rng.New(uint64(floor))), nil
}

// Enemy assembles the full combatant snapshot for floor.
func Enemy(floor int) (combat.Combatant, error) {
	profile, err := ScaleFloorEnemy(floor)
	if err != nil {
		return combat.Combatant{}, err
	}
	loadout, err := EnemyLoadout(floor)
	if err != nil {
		return combat.Combatant{}, err
	}
	return combat.Combatant{
		Name:    fmt.Sprintf("Floor %d Guardian", floor),
		Stats:   profile,
		Loadout: loadout,
	}, nil
}

// Challenge runs player (side A) against the floor guardian (side B).
func Challenge(player combat.Combatant, floor int, src rng.Source) (combat.Result, error) {
	enemy, err := Enemy(floor)
	if err != nil {
		return combat.Result{}, err
	}
	res, err := combat.Resolve(player, enemy, src)
	if err != nil {
		return combat.Result{}, fmt.Errorf("floor %d: %w", floor, err)
	}
	return res, nil
}
