package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hadydotai/raydium-curve/curve"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		decimals uint
		want     uint64
	}{
		{"whole", "10", 0, 10},
		{"fraction", "1.5", 6, 1_500_000},
		{"full precision", "0.000001", 6, 1},
		{"trailing zeros", "2.50000000", 6, 2_500_000},
		{"zero", "0", 9, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.in, tc.decimals)
			require.NoError(t, err)
			assert.Equal(t, curve.NewAmount(tc.want), got)
		})
	}
}

func TestParseAmountErrors(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		decimals uint
	}{
		{"not a number", "abc", 6},
		{"negative", "-1", 6},
		{"too precise", "1.0000001", 6},
		{"fraction of indivisible token", "0.5", 0},
		{"wider than 128 bits", "340282366920938463463374607431768211456", 0},
		{"huge exponent", "1e300000000", 6},
		{"exponent pushes past 128 bits", "1e33", 6},
		{"tiny exponent", "1e-300000000", 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAmount(tc.in, tc.decimals)
			require.Error(t, err)
		})
	}
}

func TestParseAmountExponents(t *testing.T) {
	got, err := ParseAmount("15e-1", 6)
	require.NoError(t, err)
	assert.Equal(t, curve.NewAmount(1_500_000), got)

	got, err = ParseAmount("0e300000000", 6)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestParseAmountMax(t *testing.T) {
	got, err := ParseAmount("340282366920938463463374607431768211455", 0)
	require.NoError(t, err)
	assert.Equal(t, curve.MaxAmount, got)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.500000", FormatAmount(curve.NewAmount(1_500_000), 6))
	assert.Equal(t, "0.000001", FormatAmount(curve.NewAmount(1), 6))
	assert.Equal(t, "180", FormatAmount(curve.NewAmount(180), 0))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0.25%", FormatRate(2500))
	assert.Equal(t, "12%", FormatRate(120_000))
	assert.Equal(t, "0.0001%", FormatRate(1))
}
