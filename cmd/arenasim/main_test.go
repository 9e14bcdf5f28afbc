package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardarena/internal/sim"
)

func TestRun_WritesSummary(t *testing.T) {
	dir := t.TempDir()
	matchup := filepath.Join(dir, "matchup.yaml")
	out := filepath.Join(dir, "summary.json")
	require.NoError(t, os.WriteFile(matchup, []byte(`
a:
  name: hero
  roll_seed: 3
  stats: {attack: 400, defense: 60, hp: 900, crit_damage: 150, attack_speed: 120}
floor: 2
`), 0o600))

	err := run(context.Background(), []string{
		"-config", filepath.Join(dir, "absent.yaml"),
		"-matchup", matchup,
		"-out", out,
		"-n", "50",
		"-workers", "4",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var s sim.Summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 50, s.Battles)
	assert.Equal(t, 50, s.WinsA+s.WinsB+s.Draws)
}

func TestRun_BadFlags(t *testing.T) {
	err := run(context.Background(), []string{"-n", "many"})
	assert.Error(t, err)

	err = run(context.Background(), []string{"-matchup", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "reading matchup")
}
