package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/rating"
	"github.com/udisondev/cardarena/internal/game/replay"
)

// BattleMode tells duel and tower battles apart.
type BattleMode string

const (
	ModeDuel  BattleMode = "duel"
	ModeTower BattleMode = "tower"
)

// Battle is a finished, persisted battle. The snapshots and seed are kept so
// the battle can be replayed and checked against Digest.
type Battle struct {
	ID      uuid.UUID        `json:"id"`
	Mode    BattleMode       `json:"mode"`
	Seed    uint64           `json:"seed"`
	PlayerA string           `json:"player_a"`
	PlayerB string           `json:"player_b,omitempty"`
	A       combat.Combatant `json:"a"`
	B       combat.Combatant `json:"b"`
	// Floor is set for tower battles only.
	Floor     int           `json:"floor,omitempty"`
	Winner    combat.Side   `json:"winner"`
	Reason    combat.Reason `json:"reason"`
	Rounds    int           `json:"rounds"`
	Digest    replay.Digest `json:"digest"`
	Delta     rating.Delta  `json:"delta"`
	GoldA     int           `json:"gold_a"`
	GoldB     int           `json:"gold_b"`
	CreatedAt time.Time     `json:"created_at"`
}
