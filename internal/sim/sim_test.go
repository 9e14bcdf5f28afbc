package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/testutil"
)

const matchupYAML = `
a:
  name: alice
  stats:
    attack: 120
    defense: 25
    hp: 450
    crit_rate: 15
    crit_damage: 160
    penetration: 5
    attack_speed: 110
    evasion: 8
  loadout:
    - id: a1
      tier: rare
      effect: {type: attack_boost, magnitude: 10}
    - id: a2
      tier: epic
      effect: {type: guaranteed_crit, magnitude: 1}
    - id: a3
      tier: common
      effect: {type: gold_bonus, magnitude: 5}
b:
  name: bob
  roll_seed: 7
  stats:
    attack: 110
    defense: 30
    hp: 500
    crit_damage: 150
    attack_speed: 100
`

func writeMatchup(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matchup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMatchup(t *testing.T) {
	m, err := LoadMatchup(writeMatchup(t, matchupYAML))
	require.NoError(t, err)

	a, b, err := m.Sides()
	require.NoError(t, err)

	assert.Equal(t, "alice", a.Name)
	assert.Equal(t, 160.0, a.Stats.CritDamage)
	require.Len(t, a.Loadout, 3)
	assert.Equal(t, card.Epic, a.Loadout[1].Tier)
	assert.Equal(t, card.GuaranteedCrit, a.Loadout[1].Effect.Type)

	assert.Equal(t, "bob", b.Name)
	require.Len(t, b.Loadout, card.LoadoutSize, "empty loadout is rolled")
	assert.Equal(t, "bob-1", b.Loadout[0].ID)
}

func TestLoadMatchup_Errors(t *testing.T) {
	_, err := LoadMatchup(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading matchup")

	_, err = LoadMatchup(writeMatchup(t, "a:\n  loadout:\n    - tier: mythic\n"))
	assert.ErrorContains(t, err, "parsing matchup")
}

func TestMatchup_Sides(t *testing.T) {
	a := Entrant{Name: "alice", Stats: testutil.Fixtures.Balanced, RollSeed: 1}

	_, _, err := Matchup{A: a}.Sides()
	assert.ErrorIs(t, err, ErrNoOpponent)

	_, b, err := Matchup{A: a, Floor: 12}.Sides()
	require.NoError(t, err)
	assert.Equal(t, "Floor 12 Guardian", b.Name)

	bad := a
	bad.Stats = stats.Profile{Attack: -1, HP: 10}
	_, _, err = Matchup{A: bad, B: &a}.Sides()
	assert.ErrorIs(t, err, stats.ErrNegativeStat)
}

func TestRun_ReproducibleAcrossWorkers(t *testing.T) {
	a := testutil.Combatant("alice", testutil.Fixtures.Balanced, 1)
	b := testutil.Combatant("bob", testutil.Fixtures.Glass, 2)

	serial, err := Run(context.Background(), a, b, Options{Battles: 200, Workers: 1, Seed: 10})
	require.NoError(t, err)
	parallel, err := Run(context.Background(), a, b, Options{Battles: 200, Workers: 8, Seed: 10})
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, 200, serial.WinsA+serial.WinsB+serial.Draws)
	assert.InDelta(t, float64(serial.WinsA)/200, serial.WinRateA, 1e-12)
	assert.Greater(t, serial.AvgEvents, 0.0)
	assert.LessOrEqual(t, serial.AvgRounds, 30.0)
}

func TestRun_Errors(t *testing.T) {
	a := testutil.Combatant("alice", testutil.Fixtures.Balanced, 1)

	_, err := Run(context.Background(), a, a, Options{Battles: 0})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, a, a, Options{Battles: 10, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)

	broken := a
	broken.Loadout = nil
	_, err = Run(context.Background(), a, broken, Options{Battles: 3})
	assert.ErrorIs(t, err, card.ErrLoadoutSize)
}
