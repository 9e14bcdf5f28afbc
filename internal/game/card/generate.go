package card

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/rng"
)

// Pool selects the eligible effect set for a roll.
type Pool int8

const (
	// PoolAI is the narrow core set used by AI and tower opponents.
	PoolAI Pool = iota + 1
	// PoolPlayer is the full set, PvP-exclusive effects included.
	PoolPlayer
)

func (p Pool) includes(t EffectType) bool {
	switch p {
	case PoolAI:
		return t.Availability() == AvailCore
	case PoolPlayer:
		return t.Valid()
	default:
		return false
	}
}

// Generator draws cards from a tier table and a magnitude table.
type Generator struct {
	Rates      TierRates
	Magnitudes *MagnitudeTable
	// NewID produces card IDs. Defaults to random UUIDs.
	NewID func() string
}

// NewGenerator returns a generator over the default tables.
func NewGenerator() *Generator {
	return &Generator{
		Rates:      DefaultTierRates,
		Magnitudes: &DefaultMagnitudes,
		NewID:      uuid.NewString,
	}
}

// GenerateCard rolls one card. allowPvP selects PoolPlayer, otherwise PoolAI.
func GenerateCard(rates TierRates, magnitudes *MagnitudeTable, allowPvP bool, src rng.Source) Card {
	g := &Generator{Rates: rates, Magnitudes: magnitudes, NewID: uuid.NewString}
	pool := PoolAI
	if allowPvP {
		pool = PoolPlayer
	}
	return g.Generate(pool, src)
}

// Generate rolls a tier, picks an eligible effect uniformly and looks up
// its magnitude. Consumes exactly two draws from src.
func (g *Generator) Generate(pool Pool, src rng.Source) Card {
	tier := g.Rates.Roll(src)
	return g.generateAt(pool, tier, src)
}

// GenerateAt rolls an effect for a fixed tier. Consumes one draw.
func (g *Generator) GenerateAt(pool Pool, tier Tier, src rng.Source) (Card, error) {
	if !tier.Valid() {
		return Card{}, fmt.Errorf("generate at tier %d: %w", int8(tier), ErrInvalidTier)
	}
	return g.generateAt(pool, tier, src), nil
}

func (g *Generator) generateAt(pool Pool, tier Tier, src rng.Source) Card {
	eligible := g.Eligible(pool, tier)
	if len(eligible) == 0 {
		panic(fmt.Sprintf("card: no eligible effects for pool %d at tier %s", pool, tier))
	}

	idx := int(src.Float64() * float64(len(eligible)))
	if idx >= len(eligible) {
		idx = len(eligible) - 1
	}
	typ := eligible[idx]

	mag := g.Magnitudes.Lookup(tier, typ)
	if mag <= 0 {
		panic(fmt.Sprintf("card: zero magnitude selected for %s %s", tier, typ))
	}

	return Card{
		ID:     g.newID(),
		Tier:   tier,
		Effect: Effect{Type: typ, Magnitude: mag},
	}
}

// Eligible lists the pool's effect types with a non-zero magnitude at tier.
func (g *Generator) Eligible(pool Pool, tier Tier) []EffectType {
	out := make([]EffectType, 0, effectTypeCount)
	for t := range effectTypeCount {
		if pool.includes(t) && g.Magnitudes.Lookup(tier, t) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// RollLoadout draws a full loadout.
func (g *Generator) RollLoadout(pool Pool, src rng.Source) Loadout {
	l := make(Loadout, LoadoutSize)
	for i := range l {
		l[i] = g.Generate(pool, src)
	}
	return l
}

func (g *Generator) newID() string {
	if g.NewID == nil {
		return uuid.NewString()
	}
	return g.NewID()
}
