// Package arena is the caller side of the combat engine: it assembles
// battles, runs them, and persists results once a battle has finished.
package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/db"
	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/model"
	"github.com/udisondev/cardarena/internal/rng"
)

var (
	// ErrInvalidRequest wraps every input validation failure.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrFloorLocked is returned when the previous floor is not cleared yet.
	ErrFloorLocked = errors.New("tower floor locked")
)

// RatingStore reads ladder entries.
type RatingStore interface {
	Get(ctx context.Context, playerID string) (model.PlayerRating, error)
	Top(ctx context.Context, limit int) ([]model.PlayerRating, error)
}

// BattleStore reads finished battles.
type BattleStore interface {
	Get(ctx context.Context, id uuid.UUID) (model.Battle, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]model.Battle, error)
}

// TowerStore reads tower progress.
type TowerStore interface {
	HighestFloor(ctx context.Context, playerID string) (int, error)
}

// Settler stores a finished battle together with its ladder and tower
// effects, all or nothing. The callbacks run while the affected entries
// are locked, so they see the current values.
type Settler interface {
	SettleDuel(ctx context.Context, b *model.Battle, apply func(a, b *model.PlayerRating)) (model.PlayerRating, model.PlayerRating, error)
	SettleTower(ctx context.Context, b *model.Battle, cleared bool, reward func(model.TowerProgress) (int, error)) (model.TowerProgress, error)
}

// Option configures a Service.
type Option func(*Service)

// WithSeeds replaces the battle seed source.
func WithSeeds(next func() uint64) Option {
	return func(s *Service) { s.newSeed = next }
}

// WithBattleIDs replaces the battle ID source.
func WithBattleIDs(next func() uuid.UUID) Option {
	return func(s *Service) { s.newID = next }
}

// WithGenerator replaces the card generator used by RollCards.
func WithGenerator(g *card.Generator) Option {
	return func(s *Service) { s.gen = g }
}

// Service runs duels and tower climbs against its stores.
type Service struct {
	ratings RatingStore
	battles BattleStore
	tower   TowerStore
	settle  Settler

	gen     *card.Generator
	newSeed func() uint64
	newID   func() uuid.UUID
}

// NewService creates a Service.
func NewService(ratings RatingStore, battles BattleStore, tower TowerStore, settle Settler, opts ...Option) *Service {
	s := &Service{
		ratings: ratings,
		battles: battles,
		tower:   tower,
		settle:  settle,
		gen:     card.NewGenerator(),
		newSeed: rand.Uint64,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// invalid marks err as a validation failure while keeping its own chain.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

func (s *Service) seed(requested *uint64) uint64 {
	if requested != nil {
		return *requested
	}
	return s.newSeed()
}

// RollCards rolls a fresh three-card loadout.
func (s *Service) RollCards(pool card.Pool, seed *uint64) (card.Loadout, uint64, error) {
	if pool != card.PoolAI && pool != card.PoolPlayer {
		return nil, 0, invalid(fmt.Errorf("unknown card pool %d", pool))
	}
	used := s.seed(seed)
	return s.gen.RollLoadout(pool, rng.New(used)), used, nil
}

// Rating returns the player's ladder entry, a fresh one if none is stored.
func (s *Service) Rating(ctx context.Context, playerID string) (model.PlayerRating, error) {
	if playerID == "" {
		return model.PlayerRating{}, invalid(errors.New("player id is empty"))
	}
	p, err := s.ratings.Get(ctx, playerID)
	if errors.Is(err, db.ErrNotFound) {
		return model.NewPlayerRating(playerID), nil
	}
	if err != nil {
		return model.PlayerRating{}, fmt.Errorf("loading rating: %w", err)
	}
	return p, nil
}

// Leaderboard returns the top rated players.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]model.PlayerRating, error) {
	if limit <= 0 || limit > 100 {
		return nil, invalid(fmt.Errorf("limit %d out of range 1..100", limit))
	}
	top, err := s.ratings.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading leaderboard: %w", err)
	}
	return top, nil
}

// History returns the player's latest battles.
func (s *Service) History(ctx context.Context, playerID string, limit int) ([]model.Battle, error) {
	if playerID == "" {
		return nil, invalid(errors.New("player id is empty"))
	}
	if limit <= 0 || limit > 100 {
		return nil, invalid(fmt.Errorf("limit %d out of range 1..100", limit))
	}
	list, err := s.battles.ListByPlayer(ctx, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	slog.Debug("history loaded", "player", playerID, "battles", len(list))
	return list, nil
}
