package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"zero profile", Profile{}, false},
		{"typical", Profile{Attack: 100, Defense: 10, HP: 300, CritDamage: 150, AttackSpeed: 100}, false},
		{"evasion above cap is accepted", Profile{Evasion: 75}, false},
		{"negative attack", Profile{Attack: -1}, true},
		{"negative evasion", Profile{Evasion: -0.5}, true},
		{"NaN hp", Profile{HP: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNegativeStat)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProfile_EffectiveEvasion(t *testing.T) {
	assert.Equal(t, 0.0, Profile{}.EffectiveEvasion())
	assert.Equal(t, 25.0, Profile{Evasion: 25}.EffectiveEvasion())
	assert.Equal(t, float64(MaxEvasion), Profile{Evasion: 90}.EffectiveEvasion())
}

func TestProfile_CombatPower(t *testing.T) {
	p := Profile{
		Attack:      100,
		Defense:     50,
		HP:          1000,
		CritRate:    10,
		CritDamage:  150,
		Penetration: 5,
		AttackSpeed: 100,
		Evasion:     10,
	}
	// 100 + 30 + 150 + 20 + 45 + 10 + 100 + 15
	assert.InDelta(t, 470.0, p.CombatPower(), 1e-9)
	assert.Equal(t, 0.0, Profile{}.CombatPower())
}

func TestProfile_Less(t *testing.T) {
	low := Profile{1, 1, 1, 1, 1, 1, 1, 1}
	high := Profile{2, 2, 2, 2, 2, 2, 2, 2}

	assert.True(t, low.Less(high))
	assert.False(t, high.Less(low))

	mixed := high
	mixed.Evasion = 1
	assert.False(t, low.Less(mixed), "equal field must not count as strictly less")
}
