package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cardarena/internal/model"
)

// RatingRepository stores ladder ratings.
type RatingRepository struct {
	db *pgxpool.Pool
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{db: db}
}

const ratingColumns = `player_id, rating, gold, wins, losses, draws, updated_at`

func scanRating(row pgx.Row) (model.PlayerRating, error) {
	var p model.PlayerRating
	err := row.Scan(&p.PlayerID, &p.Rating, &p.Gold, &p.Wins, &p.Losses, &p.Draws, &p.UpdatedAt)
	return p, err
}

// Get возвращает рейтинг игрока или ErrNotFound.
func (r *RatingRepository) Get(ctx context.Context, playerID string) (model.PlayerRating, error) {
	p, err := scanRating(r.db.QueryRow(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE player_id = $1`, playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PlayerRating{}, fmt.Errorf("rating of %q: %w", playerID, ErrNotFound)
	}
	if err != nil {
		return model.PlayerRating{}, fmt.Errorf("querying rating of %q: %w", playerID, err)
	}
	return p, nil
}

// Top returns the highest rated players, best first.
func (r *RatingRepository) Top(ctx context.Context, limit int) ([]model.PlayerRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ratingColumns+` FROM ratings ORDER BY rating DESC, player_id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top ratings: %w", err)
	}
	defer rows.Close()

	out := make([]model.PlayerRating, 0, limit)
	for rows.Next() {
		p, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rating row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rating rows: %w", err)
	}
	return out, nil
}

// Save upserts a single rating entry.
func (r *RatingRepository) Save(ctx context.Context, p model.PlayerRating) error {
	return r.saveTx(ctx, r.db, &p)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *RatingRepository) saveTx(ctx context.Context, q querier, p *model.PlayerRating) error {
	err := q.QueryRow(ctx, `
		INSERT INTO ratings (player_id, rating, gold, wins, losses, draws, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (player_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			gold = EXCLUDED.gold,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			draws = EXCLUDED.draws,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`,
		p.PlayerID, p.Rating, p.Gold, p.Wins, p.Losses, p.Draws,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving rating of %q: %w", p.PlayerID, err)
	}
	return nil
}

// lockTx создаёт недостающие записи и блокирует их FOR UPDATE до конца транзакции.
// Вставка и блокировка идут в порядке player_id, поэтому встречные дуэли не дают deadlock.
func (r *RatingRepository) lockTx(ctx context.Context, q querier, playerIDs ...string) (map[string]model.PlayerRating, error) {
	ids := slices.Clone(playerIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	for _, id := range ids {
		fresh := model.NewPlayerRating(id)
		if _, err := q.Exec(ctx,
			`INSERT INTO ratings (player_id, rating) VALUES ($1, $2) ON CONFLICT (player_id) DO NOTHING`,
			fresh.PlayerID, fresh.Rating,
		); err != nil {
			return nil, fmt.Errorf("creating rating of %q: %w", id, err)
		}
	}

	rows, err := q.Query(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE player_id = ANY($1) ORDER BY player_id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("locking ratings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.PlayerRating, len(ids))
	for rows.Next() {
		p, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rating row: %w", err)
		}
		out[p.PlayerID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rating rows: %w", err)
	}
	return out, nil
}

// addGoldTx начисляет золото приращением в SQL, не перезаписывая остальные поля.
func (r *RatingRepository) addGoldTx(ctx context.Context, q querier, playerID string, gold int64) (model.PlayerRating, error) {
	fresh := model.NewPlayerRating(playerID)
	p, err := scanRating(q.QueryRow(ctx, `
		INSERT INTO ratings (player_id, rating, gold) VALUES ($1, $2, $3)
		ON CONFLICT (player_id) DO UPDATE SET
			gold = ratings.gold + EXCLUDED.gold,
			updated_at = now()
		RETURNING `+ratingColumns,
		fresh.PlayerID, fresh.Rating, gold,
	))
	if err != nil {
		return model.PlayerRating{}, fmt.Errorf("crediting gold to %q: %w", playerID, err)
	}
	return p, nil
}
