package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpected(t *testing.T) {
	assert.InDelta(t, 0.5, Expected(1000, 1000), 1e-12)
	assert.InDelta(t, 1/(1+0.1), Expected(1400, 1000), 1e-12)
	assert.InDelta(t, 1.0, Expected(1400, 1000)+Expected(1000, 1400), 1e-12)
}

func TestKFactorBands(t *testing.T) {
	tests := []struct {
		rating int
		k      float64
		tier   Tier
	}{
		{0, 40, TierBronze},
		{1199, 40, TierBronze},
		{1200, 32, TierSilver},
		{1599, 32, TierSilver},
		{1600, 24, TierGold},
		{2000, 16, TierPlatinum},
		{2400, 12, TierDiamond},
		{3500, 12, TierDiamond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.k, KFactor(tt.rating), "rating %d", tt.rating)
		assert.Equal(t, tt.tier, TierOf(tt.rating), "rating %d", tt.rating)
	}
}

func TestKFactor_NonIncreasing(t *testing.T) {
	prev := KFactor(0)
	for r := 0; r <= 3000; r += 50 {
		k := KFactor(r)
		assert.LessOrEqual(t, k, prev, "rating %d", r)
		prev = k
	}
}

func TestChange_Signs(t *testing.T) {
	for _, ra := range []int{0, 800, 1000, 1500, 2100, 2800} {
		for _, rb := range []int{0, 800, 1000, 1500, 2100, 2800} {
			win := Change(ra, rb, Win)
			assert.GreaterOrEqual(t, win.A, 0, "%d vs %d", ra, rb)
			assert.LessOrEqual(t, win.B, 0, "%d vs %d", ra, rb)

			loss := Change(ra, rb, Loss)
			assert.LessOrEqual(t, loss.A, 0, "%d vs %d", ra, rb)
			assert.GreaterOrEqual(t, loss.B, 0, "%d vs %d", ra, rb)

			draw := Change(ra, rb, Draw)
			assert.Zero(t, draw.A+draw.B, "%d vs %d", ra, rb)
		}
	}
}

func TestChange_EqualRatingsDraw(t *testing.T) {
	assert.Equal(t, Delta{A: 0, B: 0}, Change(1000, 1000, Draw))
}

func TestChange_EqualRatingsWin(t *testing.T) {
	// K=40 at 1000, expected 0.5.
	assert.Equal(t, Delta{A: 20, B: -20}, Change(1000, 1000, Win))
}

func TestChange_UpsetPaysMore(t *testing.T) {
	favourite := Change(1500, 1200, Win)
	upset := Change(1200, 1500, Win)

	assert.Less(t, favourite.A, upset.A)
	assert.Equal(t, 5, favourite.A)
	assert.Equal(t, 27, upset.A)
}

func TestChange_SymmetricPerspective(t *testing.T) {
	d1 := Change(1300, 1700, Win)
	d2 := Change(1700, 1300, Loss)
	assert.Equal(t, d1.A, d2.B)
	assert.Equal(t, d1.B, d2.A)
}

func TestApply_Floor(t *testing.T) {
	assert.Equal(t, 1020, Apply(1000, 20))
	assert.Equal(t, MinRating, Apply(10, -40))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, 1.0, Win.Score())
	assert.Equal(t, 0.5, Draw.Score())
	assert.Equal(t, 0.0, Loss.Score())
	assert.Equal(t, Loss, Win.Invert())
	assert.Equal(t, Draw, Draw.Invert())

	var o Outcome
	assert.NoError(t, o.UnmarshalText([]byte("draw")))
	assert.Equal(t, Draw, o)
	assert.Error(t, o.UnmarshalText([]byte("forfeit")))
}

func TestReward(t *testing.T) {
	tests := []struct {
		name       string
		base       int
		bonus      float64
		multiplier float64
		want       int
	}{
		{"plain win", WinGold, 0, 1, 100},
		{"gold bonus 15", WinGold, 15, 1, 115},
		{"bonus and tower tier", 50, 25, 1.5, 93},
		{"floored", 33, 10, 1, 36},
		{"no base", 0, 50, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reward(tt.base, tt.bonus, tt.multiplier))
		})
	}
}

func TestBaseGold(t *testing.T) {
	assert.Equal(t, WinGold, BaseGold(Win))
	assert.Equal(t, DrawGold, BaseGold(Draw))
	assert.Equal(t, LossGold, BaseGold(Loss))
}
