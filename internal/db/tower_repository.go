package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cardarena/internal/model"
)

// TowerRepository tracks per-floor tower clears.
type TowerRepository struct {
	db *pgxpool.Pool
}

// NewTowerRepository creates a new TowerRepository.
func NewTowerRepository(db *pgxpool.Pool) *TowerRepository {
	return &TowerRepository{db: db}
}

// Get returns progress on one floor or ErrNotFound if it was never cleared.
func (r *TowerRepository) Get(ctx context.Context, playerID string, floor int) (model.TowerProgress, error) {
	p := model.TowerProgress{PlayerID: playerID, Floor: floor}
	err := r.db.QueryRow(ctx,
		`SELECT clears, first_cleared_at FROM tower_progress WHERE player_id = $1 AND floor = $2`,
		playerID, floor,
	).Scan(&p.Clears, &p.FirstClearedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TowerProgress{}, fmt.Errorf("tower progress of %q floor %d: %w", playerID, floor, ErrNotFound)
	}
	if err != nil {
		return model.TowerProgress{}, fmt.Errorf("querying tower progress of %q floor %d: %w", playerID, floor, err)
	}
	return p, nil
}

// RecordClear атомарно увеличивает счётчик прохождений этажа.
// Возвращённый Clears == 1 означает первое прохождение.
func (r *TowerRepository) RecordClear(ctx context.Context, playerID string, floor int) (model.TowerProgress, error) {
	return r.recordClearTx(ctx, r.db, playerID, floor)
}

func (r *TowerRepository) recordClearTx(ctx context.Context, q querier, playerID string, floor int) (model.TowerProgress, error) {
	p := model.TowerProgress{PlayerID: playerID, Floor: floor}
	err := q.QueryRow(ctx, `
		INSERT INTO tower_progress (player_id, floor, clears)
		VALUES ($1, $2, 1)
		ON CONFLICT (player_id, floor) DO UPDATE SET clears = tower_progress.clears + 1
		RETURNING clears, first_cleared_at`,
		playerID, floor,
	).Scan(&p.Clears, &p.FirstClearedAt)
	if err != nil {
		return model.TowerProgress{}, fmt.Errorf("recording clear of %q floor %d: %w", playerID, floor, err)
	}
	return p, nil
}

// HighestFloor returns the highest cleared floor, 0 if none.
func (r *TowerRepository) HighestFloor(ctx context.Context, playerID string) (int, error) {
	var floor int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(floor), 0) FROM tower_progress WHERE player_id = $1`, playerID,
	).Scan(&floor)
	if err != nil {
		return 0, fmt.Errorf("querying highest floor of %q: %w", playerID, err)
	}
	return floor, nil
}
