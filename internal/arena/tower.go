package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/replay"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/game/tower"
	"github.com/udisondev/cardarena/internal/model"
)

// TowerRequest is a player's attempt at one floor.
type TowerRequest struct {
	PlayerID string           `json:"player_id"`
	Floor    int              `json:"floor"`
	Player   combat.Combatant `json:"player"`
	Seed     *uint64          `json:"seed,omitempty"`
}

// TowerReport is the outcome of a tower attempt. Rewards are empty on a loss.
type TowerReport struct {
	BattleID   uuid.UUID          `json:"battle_id"`
	Seed       uint64             `json:"seed"`
	Floor      int                `json:"floor"`
	Digest     replay.Digest      `json:"digest"`
	Result     combat.Result      `json:"result"`
	Cleared    bool               `json:"cleared"`
	FirstClear bool               `json:"first_clear"`
	Rewards    []tower.RewardItem `json:"rewards"`
}

// FloorInfo describes a floor without fighting it.
type FloorInfo struct {
	Floor      int                `json:"floor"`
	Difficulty tower.Difficulty   `json:"difficulty"`
	Enemy      stats.Profile      `json:"enemy"`
	Loadout    card.Loadout       `json:"loadout"`
	Rewards    []tower.RewardItem `json:"rewards"`
}

// Floor returns the enemy and the clear rewards of floor.
func (s *Service) Floor(floor int, firstClear bool) (FloorInfo, error) {
	diff, err := tower.DifficultyOf(floor)
	if err != nil {
		return FloorInfo{}, invalid(err)
	}
	enemy, err := tower.Enemy(floor)
	if err != nil {
		return FloorInfo{}, invalid(err)
	}
	rewards, err := tower.ScaleFloorReward(floor, firstClear)
	if err != nil {
		return FloorInfo{}, invalid(err)
	}
	return FloorInfo{
		Floor:      floor,
		Difficulty: diff,
		Enemy:      enemy.Stats,
		Loadout:    enemy.Loadout,
		Rewards:    rewards,
	}, nil
}

// ClimbTower fights one floor. Floors unlock in order; a win records the
// clear and pays first-clear or repeat rewards into the player's gold.
// The battle, the clear and the gold are settled together.
func (s *Service) ClimbTower(ctx context.Context, req TowerRequest) (TowerReport, error) {
	if req.PlayerID == "" {
		return TowerReport{}, invalid(fmt.Errorf("player id is empty"))
	}
	if err := tower.ValidateFloor(req.Floor); err != nil {
		return TowerReport{}, invalid(err)
	}
	if err := req.Player.Validate(); err != nil {
		return TowerReport{}, invalid(fmt.Errorf("player: %w", err))
	}

	highest, err := s.tower.HighestFloor(ctx, req.PlayerID)
	if err != nil {
		return TowerReport{}, fmt.Errorf("loading tower progress: %w", err)
	}
	if req.Floor > highest+1 {
		return TowerReport{}, invalid(fmt.Errorf("floor %d, highest cleared %d: %w", req.Floor, highest, ErrFloorLocked))
	}

	enemy, err := tower.Enemy(req.Floor)
	if err != nil {
		return TowerReport{}, invalid(err)
	}
	seed := s.seed(req.Seed)
	res, digest, err := replay.Run(req.Player, enemy, seed)
	if err != nil {
		return TowerReport{}, fmt.Errorf("resolving floor %d: %w", req.Floor, err)
	}

	report := TowerReport{
		BattleID: s.newID(),
		Seed:     seed,
		Floor:    req.Floor,
		Digest:   digest,
		Result:   res,
		Cleared:  res.Winner == combat.SideA,
		Rewards:  []tower.RewardItem{},
	}

	battle := &model.Battle{
		ID:      report.BattleID,
		Mode:    model.ModeTower,
		Seed:    seed,
		PlayerA: req.PlayerID,
		A:       req.Player,
		B:       enemy,
		Floor:   req.Floor,
		Winner:  res.Winner,
		Reason:  res.Reason,
		Rounds:  res.Rounds,
		Digest:  digest,
	}
	progress, err := s.settle.SettleTower(ctx, battle, report.Cleared, func(p model.TowerProgress) (int, error) {
		items, err := tower.Rewards(req.Floor, p.FirstClear(), res.Final[0].GoldBonus)
		if err != nil {
			return 0, err
		}
		report.Rewards = items
		return tower.GoldOf(items), nil
	})
	if err != nil {
		return TowerReport{}, fmt.Errorf("settling tower battle: %w", err)
	}
	report.FirstClear = report.Cleared && progress.FirstClear()

	slog.Info("tower floor fought",
		"battle", report.BattleID,
		"player", req.PlayerID,
		"floor", req.Floor,
		"cleared", report.Cleared,
		"first_clear", report.FirstClear,
		"gold", battle.GoldA)

	return report, nil
}
