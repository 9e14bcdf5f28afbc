package testutil

import (
	"fmt"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/rng"
)

// Fixtures содержит предварительно подготовленные профили бойцов
// для избежания дублирования в тестах.
var Fixtures = struct {
	// Сбалансированный профиль
	Balanced stats.Profile
	// Много HP и защиты, мало урона
	Tank stats.Profile
	// Быстрый и хрупкий
	Glass stats.Profile
}{
	Balanced: stats.Profile{
		Attack: 120, Defense: 25, HP: 450, CritRate: 15, CritDamage: 160,
		Penetration: 5, AttackSpeed: 110, Evasion: 8,
	},
	Tank: stats.Profile{
		Attack: 70, Defense: 80, HP: 900, CritRate: 5, CritDamage: 130,
		Penetration: 2, AttackSpeed: 85, Evasion: 3,
	},
	Glass: stats.Profile{
		Attack: 190, Defense: 8, HP: 260, CritRate: 30, CritDamage: 200,
		Penetration: 15, AttackSpeed: 150, Evasion: 20,
	},
}

// Generator returns a default card generator with predictable IDs.
func Generator(prefix string) *card.Generator {
	g := card.NewGenerator()
	n := 0
	g.NewID = func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	return g
}

// Combatant builds a snapshot with a player-pool loadout rolled from seed.
func Combatant(name string, p stats.Profile, seed uint64) combat.Combatant {
	return combat.Combatant{
		Name:    name,
		Stats:   p,
		Loadout: Generator(name).RollLoadout(card.PoolPlayer, rng.New(seed)),
	}
}
