package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/stats"
)

// miss forces every evasion and crit roll to fail for non-capped stats.
const miss = 0.999

func baseProfile() stats.Profile {
	return stats.Profile{
		Attack:      100,
		Defense:     10,
		HP:          300,
		CritRate:    0,
		CritDamage:  150,
		Penetration: 0,
		AttackSpeed: 100,
		Evasion:     0,
	}
}

func testCard(t testing.TB, tier card.Tier, typ card.EffectType) card.Card {
	t.Helper()
	c := card.Card{
		ID:     tier.String() + "-" + typ.String(),
		Tier:   tier,
		Effect: card.Effect{Type: typ, Magnitude: card.DefaultMagnitudes.Lookup(tier, typ)},
	}
	require.NoError(t, c.Validate())
	return c
}

// inertLoadout holds only gold-bonus cards, which never touch resolution.
func inertLoadout(t testing.TB) card.Loadout {
	t.Helper()
	g := testCard(t, card.Common, card.GoldBonus)
	return card.Loadout{g, g, g}
}

func loadoutWith(t testing.TB, cards ...card.Card) card.Loadout {
	t.Helper()
	l := inertLoadout(t)
	copy(l, cards)
	return l
}

func fighterSnapshot(t testing.TB, name string, cards ...card.Card) Combatant {
	t.Helper()
	return Combatant{Name: name, Stats: baseProfile(), Loadout: loadoutWith(t, cards...)}
}

func countEvents(events []Event, match func(Event) bool) int {
	n := 0
	for _, ev := range events {
		if match(ev) {
			n++
		}
	}
	return n
}
