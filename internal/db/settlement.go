package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cardarena/internal/model"
)

// Settlement записывает завершённый бой вместе с его последствиями
// (рейтинг, золото, прохождение этажа) в одной транзакции: либо всё, либо ничего.
type Settlement struct {
	pool    *pgxpool.Pool
	ratings *RatingRepository
	battles *BattleRepository
	tower   *TowerRepository
}

// NewSettlement создаёт Settlement поверх репозиториев одного пула.
func NewSettlement(
	pool *pgxpool.Pool,
	ratings *RatingRepository,
	battles *BattleRepository,
	tower *TowerRepository,
) *Settlement {
	return &Settlement{
		pool:    pool,
		ratings: ratings,
		battles: battles,
		tower:   tower,
	}
}

// SettleDuel locks both ladder entries, lets apply update them from their
// current values and fill the battle's delta and gold, then stores the
// battle and both entries. Missing entries start at the starting rating.
func (s *Settlement) SettleDuel(
	ctx context.Context,
	b *model.Battle,
	apply func(a, b *model.PlayerRating),
) (model.PlayerRating, model.PlayerRating, error) {
	var ra, rb model.PlayerRating
	err := s.inTx(ctx, b, func(tx pgx.Tx) error {
		locked, err := s.ratings.lockTx(ctx, tx, b.PlayerA, b.PlayerB)
		if err != nil {
			return err
		}
		ra, rb = locked[b.PlayerA], locked[b.PlayerB]
		apply(&ra, &rb)

		if err := s.battles.insertTx(ctx, tx, b); err != nil {
			return err
		}
		if err := s.ratings.saveTx(ctx, tx, &ra); err != nil {
			return err
		}
		return s.ratings.saveTx(ctx, tx, &rb)
	})
	if err != nil {
		return model.PlayerRating{}, model.PlayerRating{}, err
	}
	return ra, rb, nil
}

// SettleTower stores a tower attempt. On a clear it counts the clear,
// asks reward for the gold that clear pays, stores it as the battle's
// GoldA and credits it to the player.
func (s *Settlement) SettleTower(
	ctx context.Context,
	b *model.Battle,
	cleared bool,
	reward func(model.TowerProgress) (int, error),
) (model.TowerProgress, error) {
	var progress model.TowerProgress
	err := s.inTx(ctx, b, func(tx pgx.Tx) error {
		if cleared {
			var err error
			progress, err = s.tower.recordClearTx(ctx, tx, b.PlayerA, b.Floor)
			if err != nil {
				return err
			}
			if b.GoldA, err = reward(progress); err != nil {
				return fmt.Errorf("computing floor %d reward: %w", b.Floor, err)
			}
		}

		if err := s.battles.insertTx(ctx, tx, b); err != nil {
			return err
		}
		if b.GoldA > 0 {
			if _, err := s.ratings.addGoldTx(ctx, tx, b.PlayerA, int64(b.GoldA)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.TowerProgress{}, err
	}
	return progress, nil
}

func (s *Settlement) inTx(ctx context.Context, b *model.Battle, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for battle %s: %w", b.ID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "battle", b.ID, "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for battle %s: %w", b.ID, err)
	}
	return nil
}
