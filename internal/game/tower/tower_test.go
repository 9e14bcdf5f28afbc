package tower

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/rng"
)

func TestDifficulties_CoverEveryFloor(t *testing.T) {
	next := 1
	for _, d := range Difficulties {
		assert.Equal(t, next, d.FirstFloor, "%s starts after a gap", d.Name)
		assert.GreaterOrEqual(t, d.LastFloor, d.FirstFloor)

		sum := 0.0
		for _, r := range d.TierRates {
			sum += r
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "%s tier rates", d.Name)
		next = d.LastFloor + 1
	}
	assert.Equal(t, MaxFloor+1, next)
}

func TestDifficultyOf(t *testing.T) {
	tests := []struct {
		floor int
		name  string
		mult  float64
	}{
		{1, "Novice", 1.0},
		{10, "Novice", 1.0},
		{11, "Adept", 1.25},
		{25, "Adept", 1.25},
		{26, "Veteran", 1.5},
		{51, "Elite", 2.0},
		{75, "Elite", 2.0},
		{76, "Legend", 3.0},
		{100, "Legend", 3.0},
	}
	for _, tt := range tests {
		d, err := DifficultyOf(tt.floor)
		require.NoError(t, err)
		if d.Name != tt.name || d.Multiplier != tt.mult {
			t.Errorf("DifficultyOf(%d) = %s x%v; want %s x%v", tt.floor, d.Name, d.Multiplier, tt.name, tt.mult)
		}
	}
}

func TestInvalidFloor(t *testing.T) {
	for _, floor := range []int{-1, 0, MaxFloor + 1} {
		_, err := ScaleFloorEnemy(floor)
		assert.ErrorIs(t, err, ErrInvalidFloor, "ScaleFloorEnemy(%d)", floor)

		_, err = ScaleFloorReward(floor, true)
		assert.ErrorIs(t, err, ErrInvalidFloor, "ScaleFloorReward(%d)", floor)

		_, err = EnemyLoadout(floor)
		assert.ErrorIs(t, err, ErrInvalidFloor, "EnemyLoadout(%d)", floor)
	}
}

func TestScaleFloorEnemy_StrictlyIncreasing(t *testing.T) {
	prev, err := ScaleFloorEnemy(1)
	require.NoError(t, err)
	require.NoError(t, prev.Validate())

	for floor := 2; floor <= MaxFloor; floor++ {
		cur, err := ScaleFloorEnemy(floor)
		require.NoError(t, err)
		if !prev.Less(cur) {
			t.Fatalf("floor %d profile %+v is not strictly above floor %d %+v", floor, cur, floor-1, prev)
		}
		prev = cur
	}
	assert.Less(t, prev.Evasion, float64(stats.MaxEvasion), "top floor evasion stays under the cap")
}

func TestScaleFloorEnemy_FirstFloor(t *testing.T) {
	p, err := ScaleFloorEnemy(1)
	require.NoError(t, err)
	assert.Equal(t, stats.Profile{
		Attack:      46,
		Defense:     10.5,
		HP:          295,
		CritRate:    3.25,
		CritDamage:  121.5,
		Penetration: 1.2,
		AttackSpeed: 90.5,
		Evasion:     1.3,
	}, p)
}

func TestEnemyLoadout_Deterministic(t *testing.T) {
	for _, floor := range []int{1, 37, MaxFloor} {
		a, err := EnemyLoadout(floor)
		require.NoError(t, err)
		b, err := EnemyLoadout(floor)
		require.NoError(t, err)

		assert.Equal(t, a, b, "floor %d", floor)
		require.NoError(t, a.Validate())
		for _, c := range a {
			assert.Equal(t, card.AvailCore, c.Effect.Type.Availability(), "floor %d rolled %s", floor, c.Effect.Type)
		}
	}

	l, err := EnemyLoadout(7)
	require.NoError(t, err)
	assert.Equal(t, "floor-7-1", l[0].ID)
	assert.Equal(t, "floor-7-3", l[2].ID)
}

func TestScaleFloorReward(t *testing.T) {
	tests := []struct {
		name  string
		floor int
		first bool
		want  []RewardItem
	}{
		{"first floor", 1, true, []RewardItem{Gold{40}}},
		{"ticket floor", 10, true, []RewardItem{Gold{130}, Ticket{1}}},
		{"repeat ticket floor", 10, false, []RewardItem{Gold{26}}},
		{"adept repeat", 11, false, []RewardItem{Gold{35}}},
		{"rare pack", 25, true, []RewardItem{Gold{350}, CardPack{card.Rare}}},
		{"epic pack and ticket", 50, true, []RewardItem{Gold{795}, Ticket{5}, CardPack{card.Epic}}},
		{"epic pack", 75, true, []RewardItem{Gold{1560}, CardPack{card.Epic}}},
		{"summit", 100, true, []RewardItem{Gold{3090}, Ticket{10}, CardPack{card.Legendary}}},
		{"summit repeat", 100, false, []RewardItem{Gold{618}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleFloorReward(tt.floor, tt.first)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewards_RepeatNeverBeatsFirstClear(t *testing.T) {
	for floor := 1; floor <= MaxFloor; floor++ {
		first, err := ScaleFloorReward(floor, true)
		require.NoError(t, err)
		repeat, err := ScaleFloorReward(floor, false)
		require.NoError(t, err)

		require.Len(t, repeat, 1, "floor %d repeat grants only gold", floor)
		assert.GreaterOrEqual(t, GoldOf(repeat), 1)
		assert.Less(t, GoldOf(repeat), GoldOf(first), "floor %d", floor)
	}
}

func TestRewards_GoldBonus(t *testing.T) {
	items, err := Rewards(1, true, 20)
	require.NoError(t, err)
	assert.Equal(t, 48, GoldOf(items))
}

func TestRewardItem_JSON(t *testing.T) {
	items, err := ScaleFloorReward(50, true)
	require.NoError(t, err)

	b, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"kind":"gold","amount":795},
		{"kind":"ticket","level":5},
		{"kind":"card_pack","tier":"epic"}
	]`, string(b))
}

func TestChallenge(t *testing.T) {
	hero := combat.Combatant{
		Name: "hero",
		Stats: stats.Profile{
			Attack:      1000,
			Defense:     500,
			HP:          5000,
			CritDamage:  150,
			AttackSpeed: 150,
		},
		Loadout: card.Loadout{
			{ID: "g1", Tier: card.Common, Effect: card.Effect{Type: card.GoldBonus, Magnitude: card.DefaultMagnitudes.Lookup(card.Common, card.GoldBonus)}},
			{ID: "g2", Tier: card.Common, Effect: card.Effect{Type: card.GoldBonus, Magnitude: card.DefaultMagnitudes.Lookup(card.Common, card.GoldBonus)}},
			{ID: "g3", Tier: card.Common, Effect: card.Effect{Type: card.GoldBonus, Magnitude: card.DefaultMagnitudes.Lookup(card.Common, card.GoldBonus)}},
		},
	}

	res, err := Challenge(hero, 1, rng.New(42))
	require.NoError(t, err)
	assert.Equal(t, combat.SideA, res.Winner)
	assert.Equal(t, combat.ReasonKnockout, res.Reason)
	assert.Equal(t, "Floor 1 Guardian", res.Final[1].Name)

	again, err := Challenge(hero, 1, rng.New(42))
	require.NoError(t, err)
	assert.Equal(t, res, again)

	_, err = Challenge(hero, 0, rng.New(42))
	assert.True(t, errors.Is(err, ErrInvalidFloor))

	hero.Stats.HP = 0
	_, err = Challenge(hero, 1, rng.New(42))
	assert.ErrorIs(t, err, combat.ErrNoHP)
}
