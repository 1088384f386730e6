package xsampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain", "0.5", 0.5},
		{"one", "1", 1},
		{"zero", "0.0", 0},
		{"whitespace", "  0.25\n", 0.25},
		{"exponent", "1e-3", 0.001},
		{"double_suffix", "0.5d", 0.5},
		{"float_suffix", "0.5F", 0.5},
		{"dot_suffix", "1.f", 1},
		{"leading_dot", ".1", 0.1},
		{"above_one_allowed", "1.5", 1.5},
		{"negative_allowed", "-0.1", -0.1},
		{"infinity", "Infinity", math.Inf(1)},
		{"positive_infinity", "+Infinity", math.Inf(1)},
		{"negative_infinity", "-Infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRate_Malformed(t *testing.T) {
	tests := []string{"", "   ", "abc", "0.5x", "1,5", "NaN", "nan", "d", "0.5dd", "50%",
		"1_0", "0_5", "0.1_2", "inf", "Inf", "+inf", "-INF", "infinity", "INFINITY", "+infinity"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRate(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRate)
		})
	}
}

func TestNewConfig_DefaultSalt(t *testing.T) {
	cfg, err := NewConfig("0.1")
	require.NoError(t, err)

	assert.Equal(t, DefaultSalt, cfg.Salt())
	assert.Equal(t, 0.1, cfg.Rate())
	assert.Equal(t, defaultSeed, cfg.Seed())
	assert.True(t, cfg.InRange())
}

func TestNewConfigWithSalt(t *testing.T) {
	t.Run("custom_salt", func(t *testing.T) {
		cfg, err := NewConfigWithSalt("salt1.5", "0.5")
		require.NoError(t, err)
		assert.Equal(t, "salt1.5", cfg.Salt())
		assert.Equal(t, int32(1863980450), cfg.Seed())
	})

	t.Run("empty_salt_is_not_default", func(t *testing.T) {
		cfg, err := NewConfigWithSalt("", "0.5")
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Salt())
		assert.Equal(t, int32(0), cfg.Seed())
	})

	t.Run("malformed_rate", func(t *testing.T) {
		_, err := NewConfigWithSalt("s", "half")
		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("out_of_range_is_accepted", func(t *testing.T) {
		cfg, err := NewConfigWithSalt("s", "2")
		require.NoError(t, err)
		assert.False(t, cfg.InRange())
	})
}

func TestConfigFromRate(t *testing.T) {
	cfg, err := ConfigFromRate(DefaultSalt, 0.25)
	require.NoError(t, err)
	assert.Equal(t, defaultSeed, cfg.Seed())

	_, err = ConfigFromRate(DefaultSalt, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestConfig_String(t *testing.T) {
	cfg, err := NewConfig("0.1")
	require.NoError(t, err)
	assert.Equal(t, `salt="323148" rate=0.1 seed=1507830849`, cfg.String())
}
