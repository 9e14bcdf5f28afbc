// Package rating implements the Elo-style PvP rating update and the
// post-battle gold reward formula.
package rating

import (
	"fmt"
	"math"
)

// Outcome is the result from player A's point of view.
type Outcome int32

const (
	Loss Outcome = iota
	Draw
	Win
)

// Score returns the Elo actual score: 1, 0.5 or 0.
func (o Outcome) Score() float64 {
	switch o {
	case Win:
		return 1
	case Draw:
		return 0.5
	default:
		return 0
	}
}

// Invert returns the same outcome from the opponent's point of view.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return Draw
	}
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("Outcome(%d)", int32(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "win":
		*o = Win
	case "draw":
		*o = Draw
	case "loss":
		*o = Loss
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// Delta is the rating change for both players. DeltaB == -DeltaA.
type Delta struct {
	A int `json:"delta_a"`
	B int `json:"delta_b"`
}

// Expected returns player A's expected score against B.
func Expected(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/EloScale))
}

// BandFor returns the band covering rating.
func BandFor(rating int) Band {
	for _, b := range Bands {
		if b.Below == 0 || rating < b.Below {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// KFactor returns the K factor for rating.
func KFactor(rating int) float64 { return BandFor(rating).K }

// TierOf returns the display tier for rating.
func TierOf(rating int) Tier { return BandFor(rating).Tier }

// Change computes the rating update for a finished battle.
// One K factor, taken from the players' mean rating, applies to both
// sides, so the update is zero-sum.
func Change(ratingA, ratingB int, outcome Outcome) Delta {
	k := KFactor((ratingA + ratingB) / 2)
	d := int(math.Round(k * (outcome.Score() - Expected(ratingA, ratingB))))
	return Delta{A: d, B: -d}
}

// Apply adds delta to rating, never going below MinRating.
func Apply(rating, delta int) int {
	return max(MinRating, rating+delta)
}
