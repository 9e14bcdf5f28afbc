package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cardarena/internal/model"
)

// BattleRepository stores finished battles for history and re-validation.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

const battleColumns = `id, mode, seed, player_a, player_b, side_a, side_b, floor,
	winner, reason, rounds, digest, delta_a, delta_b, gold_a, gold_b, created_at`

// Save inserts a finished battle. CreatedAt is filled from the database.
func (r *BattleRepository) Save(ctx context.Context, b *model.Battle) error {
	return r.insertTx(ctx, r.db, b)
}

func (r *BattleRepository) insertTx(ctx context.Context, q querier, b *model.Battle) error {
	err := q.QueryRow(ctx, `
		INSERT INTO battles (id, mode, seed, player_a, player_b, side_a, side_b, floor,
			winner, reason, rounds, digest, delta_a, delta_b, gold_a, gold_b)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at`,
		b.ID, string(b.Mode), int64(b.Seed), b.PlayerA, b.PlayerB, b.A, b.B, b.Floor,
		b.Winner.String(), b.Reason.String(), b.Rounds, b.Digest[:],
		b.Delta.A, b.Delta.B, b.GoldA, b.GoldB,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving battle %s: %w", b.ID, err)
	}
	return nil
}

// Get loads a battle by ID or returns ErrNotFound.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (model.Battle, error) {
	b, err := scanBattle(r.db.QueryRow(ctx,
		`SELECT `+battleColumns+` FROM battles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Battle{}, fmt.Errorf("battle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Battle{}, fmt.Errorf("querying battle %s: %w", id, err)
	}
	return b, nil
}

// ListByPlayer returns the player's latest battles on either side, newest first.
func (r *BattleRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]model.Battle, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+battleColumns+` FROM battles
		WHERE player_a = $1 OR player_b = $1
		ORDER BY created_at DESC
		LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying battles of %q: %w", playerID, err)
	}
	defer rows.Close()

	out := make([]model.Battle, 0, limit)
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle rows: %w", err)
	}
	return out, nil
}

func scanBattle(row pgx.Row) (model.Battle, error) {
	var (
		b              model.Battle
		mode           string
		seed           int64
		winner, reason string
		digest         []byte
	)
	err := row.Scan(
		&b.ID, &mode, &seed, &b.PlayerA, &b.PlayerB, &b.A, &b.B, &b.Floor,
		&winner, &reason, &b.Rounds, &digest,
		&b.Delta.A, &b.Delta.B, &b.GoldA, &b.GoldB, &b.CreatedAt,
	)
	if err != nil {
		return model.Battle{}, err
	}

	b.Mode = model.BattleMode(mode)
	// seed хранится как BIGINT, приведение обратимо побитово
	b.Seed = uint64(seed)
	if err := b.Winner.UnmarshalText([]byte(winner)); err != nil {
		return model.Battle{}, fmt.Errorf("battle %s winner: %w", b.ID, err)
	}
	if err := b.Reason.UnmarshalText([]byte(reason)); err != nil {
		return model.Battle{}, fmt.Errorf("battle %s reason: %w", b.ID, err)
	}
	if len(digest) != len(b.Digest) {
		return model.Battle{}, fmt.Errorf("battle %s digest has %d bytes", b.ID, len(digest))
	}
	copy(b.Digest[:], digest)
	return b, nil
}
