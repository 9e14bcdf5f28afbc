package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/rating"
	"github.com/udisondev/cardarena/internal/game/replay"
	"github.com/udisondev/cardarena/internal/model"
)

// DuelRequest is a ranked battle between two players' snapshots.
type DuelRequest struct {
	PlayerA string           `json:"player_a"`
	PlayerB string           `json:"player_b"`
	A       combat.Combatant `json:"a"`
	B       combat.Combatant `json:"b"`
	// Seed is generated when absent.
	Seed *uint64 `json:"seed,omitempty"`
}

// Validate checks the request before any battle runs.
func (r DuelRequest) Validate() error {
	switch {
	case r.PlayerA == "" || r.PlayerB == "":
		return invalid(errors.New("both player ids are required"))
	case r.PlayerA == r.PlayerB:
		return invalid(fmt.Errorf("player %q cannot duel itself", r.PlayerA))
	}
	if err := r.A.Validate(); err != nil {
		return invalid(fmt.Errorf("combatant a: %w", err))
	}
	if err := r.B.Validate(); err != nil {
		return invalid(fmt.Errorf("combatant b: %w", err))
	}
	return nil
}

// DuelReport is the outcome of a persisted duel.
type DuelReport struct {
	BattleID uuid.UUID          `json:"battle_id"`
	Seed     uint64             `json:"seed"`
	Digest   replay.Digest      `json:"digest"`
	Result   combat.Result      `json:"result"`
	Outcome  rating.Outcome     `json:"outcome"` // from player A's perspective
	Delta    rating.Delta       `json:"delta"`
	GoldA    int                `json:"gold_a"`
	GoldB    int                `json:"gold_b"`
	RatingA  model.PlayerRating `json:"rating_a"`
	RatingB  model.PlayerRating `json:"rating_b"`
}

// OutcomeOf maps a result to side A's outcome.
func OutcomeOf(res combat.Result) rating.Outcome {
	switch res.Winner {
	case combat.SideA:
		return rating.Win
	case combat.SideB:
		return rating.Loss
	default:
		return rating.Draw
	}
}

// SimulateRequest is an unranked battle that is never persisted.
type SimulateRequest struct {
	A    combat.Combatant `json:"a"`
	B    combat.Combatant `json:"b"`
	Seed *uint64          `json:"seed,omitempty"`
}

// Simulation is the outcome of Simulate.
type Simulation struct {
	Seed   uint64        `json:"seed"`
	Digest replay.Digest `json:"digest"`
	Result combat.Result `json:"result"`
}

// Simulate resolves a battle without touching any store.
func (s *Service) Simulate(req SimulateRequest) (Simulation, error) {
	if err := req.A.Validate(); err != nil {
		return Simulation{}, invalid(fmt.Errorf("combatant a: %w", err))
	}
	if err := req.B.Validate(); err != nil {
		return Simulation{}, invalid(fmt.Errorf("combatant b: %w", err))
	}
	seed := s.seed(req.Seed)
	res, digest, err := replay.Run(req.A, req.B, seed)
	if err != nil {
		return Simulation{}, fmt.Errorf("resolving battle: %w", err)
	}
	return Simulation{Seed: seed, Digest: digest, Result: res}, nil
}

// Duel resolves a ranked battle, then settles the battle and both ratings
// in one step. The rating change uses the ratings current at settlement.
func (s *Service) Duel(ctx context.Context, req DuelRequest) (DuelReport, error) {
	if err := req.Validate(); err != nil {
		return DuelReport{}, err
	}

	seed := s.seed(req.Seed)
	res, digest, err := replay.Run(req.A, req.B, seed)
	if err != nil {
		return DuelReport{}, fmt.Errorf("resolving duel: %w", err)
	}

	outcome := OutcomeOf(res)
	battle := &model.Battle{
		ID:      s.newID(),
		Mode:    model.ModeDuel,
		Seed:    seed,
		PlayerA: req.PlayerA,
		PlayerB: req.PlayerB,
		A:       req.A,
		B:       req.B,
		Winner:  res.Winner,
		Reason:  res.Reason,
		Rounds:  res.Rounds,
		Digest:  digest,
		GoldA:   rating.Reward(rating.BaseGold(outcome), res.Final[0].GoldBonus, 1),
		GoldB:   rating.Reward(rating.BaseGold(outcome.Invert()), res.Final[1].GoldBonus, 1),
	}

	ra, rb, err := s.settle.SettleDuel(ctx, battle, func(a, b *model.PlayerRating) {
		battle.Delta = rating.Change(a.Rating, b.Rating, outcome)
		a.Record(outcome, battle.Delta.A, battle.GoldA)
		b.Record(outcome.Invert(), battle.Delta.B, battle.GoldB)
	})
	if err != nil {
		return DuelReport{}, fmt.Errorf("settling duel: %w", err)
	}

	slog.Info("duel resolved",
		"battle", battle.ID,
		"player_a", req.PlayerA,
		"player_b", req.PlayerB,
		"outcome", outcome,
		"reason", res.Reason,
		"rounds", res.Rounds,
		"delta_a", battle.Delta.A)

	return DuelReport{
		BattleID: battle.ID,
		Seed:     seed,
		Digest:   digest,
		Result:   res,
		Outcome:  outcome,
		Delta:    battle.Delta,
		GoldA:    battle.GoldA,
		GoldB:    battle.GoldB,
		RatingA:  ra,
		RatingB:  rb,
	}, nil
}
