package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/game/replay"
)

// Verification is the re-validation verdict for a stored battle.
type Verification struct {
	BattleID   uuid.UUID     `json:"battle_id"`
	Valid      bool          `json:"valid"`
	Stored     replay.Digest `json:"stored"`
	Recomputed replay.Digest `json:"recomputed"`
}

// VerifyBattle replays a stored battle from its seed and snapshots and
// compares the digest. A mismatch is a verdict, not an error.
func (s *Service) VerifyBattle(ctx context.Context, id uuid.UUID) (Verification, error) {
	b, err := s.battles.Get(ctx, id)
	if err != nil {
		return Verification{}, fmt.Errorf("loading battle: %w", err)
	}

	v := Verification{BattleID: id, Stored: b.Digest}
	res, err := replay.Verify(b.A, b.B, b.Seed, b.Digest)
	switch {
	case err == nil:
		v.Valid = true
		v.Recomputed = b.Digest
	case errors.Is(err, replay.ErrDigestMismatch):
		if v.Recomputed, err = replay.Sum(res); err != nil {
			return Verification{}, err
		}
		slog.Warn("battle digest mismatch", "battle", id, "stored", b.Digest, "recomputed", v.Recomputed)
	default:
		return Verification{}, fmt.Errorf("replaying battle %s: %w", id, err)
	}
	return v, nil
}
