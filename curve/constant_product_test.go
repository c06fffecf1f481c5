package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapOutputWithoutFeesRounding(t *testing.T) {
	cases := []struct {
		sourceIn, swapSource, swapDestination, want uint64
	}{
		{10, 4_000_000, 70_000_000_000, 174_999},
		{20, 30_000 - 20, 10_000, 6},
		{19, 30_000 - 20, 10_000, 6},
		{18, 30_000 - 20, 10_000, 6},
		{10, 20_000, 30_000, 14},
		{10, 20_000 - 9, 30_000, 14},
		{10, 20_000 - 10, 30_000, 15},
		{100, 60_000, 30_000, 49},
		{99, 60_000, 30_000, 49},
		{98, 60_000, 30_000, 48},
	}
	for _, tc := range cases {
		sourceIn, swapSource, swapDestination := NewAmount(tc.sourceIn), NewAmount(tc.swapSource), NewAmount(tc.swapDestination)
		got, err := SwapOutputWithoutFees(sourceIn, swapSource, swapDestination)
		require.NoError(t, err)
		require.Equal(t, NewAmount(tc.want), got, "%+v", tc)

		// (X + dX) * (Y - dY) >= X * Y
		var before, after, newSource, newDestination Amount
		before.Mul(&swapSource, &swapDestination)
		newSource.Add(&swapSource, &sourceIn)
		newDestination.Sub(&swapDestination, &got)
		after.Mul(&newSource, &newDestination)
		require.False(t, after.Lt(&before), "%+v", tc)
	}
}

func TestSwapOutputWithoutFeesErrors(t *testing.T) {
	cases := []struct {
		name                                  string
		sourceIn, swapSource, swapDestination Amount
	}{
		{"empty pool", NewAmount(0), NewAmount(0), NewAmount(100)},
		{"numerator overflow", MaxAmount, NewAmount(1), NewAmount(2)},
		{"denominator overflow", NewAmount(1), MaxAmount, NewAmount(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SwapOutputWithoutFees(tc.sourceIn, tc.swapSource, tc.swapDestination)
			require.ErrorIs(t, err, ErrArithmetic)
		})
	}
}

func TestSwapInputWithoutFees(t *testing.T) {
	cases := []struct {
		name                                        string
		destinationOut, swapSource, swapDestination uint64
		want                                        uint64
	}{
		{"rounds up", 200, 1000, 2000, 112},
		{"dust still costs", 1, 1000, 2000, 1},
		{"nothing asked", 0, 1000, 2000, 0},
		{"exact", 1000, 1000, 2000, 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SwapInputWithoutFees(NewAmount(tc.destinationOut), NewAmount(tc.swapSource), NewAmount(tc.swapDestination))
			require.NoError(t, err)
			require.Equal(t, NewAmount(tc.want), got)
		})
	}
}

func TestSwapInputWithoutFeesDrain(t *testing.T) {
	_, err := SwapInputWithoutFees(NewAmount(2000), NewAmount(1000), NewAmount(2000))
	require.ErrorIs(t, err, ErrArithmetic)

	_, err = SwapInputWithoutFees(NewAmount(2001), NewAmount(1000), NewAmount(2000))
	require.ErrorIs(t, err, ErrArithmetic)
}

func TestLpTokensToTradingTokens(t *testing.T) {
	cases := []struct {
		reserve0, reserve1, shares, supply uint64
		want0, want1                       uint64
	}{
		{2, 49, 5, 10, 1, 25},
		{100, 202, 5, 101, 5, 10},
		{5, 501, 2, 10, 1, 101},
	}
	for _, tc := range cases {
		got, err := LpTokensToTradingTokens(NewAmount(tc.shares), NewAmount(tc.supply), NewAmount(tc.reserve0), NewAmount(tc.reserve1), Ceiling)
		require.NoError(t, err)
		require.Equal(t, NewAmount(tc.want0), got.Token0Amount, "%+v", tc)
		require.Equal(t, NewAmount(tc.want1), got.Token1Amount, "%+v", tc)
	}
}

func TestLpTokensToTradingTokensFloor(t *testing.T) {
	got, err := LpTokensToTradingTokens(NewAmount(5), NewAmount(10), NewAmount(2), NewAmount(49), Floor)
	require.NoError(t, err)
	require.Equal(t, NewAmount(1), got.Token0Amount)
	require.Equal(t, NewAmount(24), got.Token1Amount)
}

func TestLpTokensToTradingTokensDustCeiling(t *testing.T) {
	// 1 * 3 / 10 floors to zero, ceiling must not mint a whole token out of it
	got, err := LpTokensToTradingTokens(NewAmount(1), NewAmount(10), NewAmount(3), NewAmount(30), Ceiling)
	require.NoError(t, err)
	require.True(t, got.Token0Amount.IsZero())
	require.Equal(t, NewAmount(3), got.Token1Amount)
}

func TestLpTokensToTradingTokensErrors(t *testing.T) {
	_, err := LpTokensToTradingTokens(NewAmount(5), NewAmount(10), MaxAmount, NewAmount(0), Floor)
	require.ErrorIs(t, err, ErrArithmetic)

	_, err = LpTokensToTradingTokens(NewAmount(5), NewAmount(10), NewAmount(0), MaxAmount, Floor)
	require.ErrorIs(t, err, ErrArithmetic)

	_, err = LpTokensToTradingTokens(NewAmount(5), NewAmount(0), NewAmount(1), NewAmount(1), Ceiling)
	require.ErrorIs(t, err, ErrArithmetic)

	_, err = LpTokensToTradingTokens(NewAmount(5), NewAmount(10), NewAmount(1), NewAmount(1), RoundDirection(7))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrArithmetic)
}
