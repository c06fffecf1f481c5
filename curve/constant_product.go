package curve

import "github.com/pkg/errors"

// SwapOutputWithoutFees is how much of the destination token leaves the pool when
// sourceIn enters it, fees not considered.
//
//	X, Y initial reserves
//	pre-swap:   K = X * Y
//	post-swap:  K = (X + dX) * (Y - dY)
//	         => dY = Y - (X * Y) / (X + dX) = (dX * Y) / (X + dX)
//
// The quotient is truncated, the trader never receives more than the exact value.
func SwapOutputWithoutFees(sourceIn, reserveSource, reserveDestination Amount) (Amount, error) {
	const op = "swap output without fees"
	numerator, err := checkedMul(op, sourceIn, reserveDestination)
	if err != nil {
		return Amount{}, err
	}
	denominator, err := checkedAdd(op, reserveSource, sourceIn)
	if err != nil {
		return Amount{}, err
	}
	return checkedDiv(op, numerator, denominator)
}

// SwapInputWithoutFees solves the same invariant for the input side: how much of
// the source token must enter for destinationOut to leave.
//
//	(X * Y) / (Y - dY) = X + dX
//	                => dX = (X * dY) / (Y - dY)
//
// The quotient is rounded up, the trader is never charged less than required.
// Asking for the whole destination reserve or more fails.
func SwapInputWithoutFees(destinationOut, reserveSource, reserveDestination Amount) (Amount, error) {
	const op = "swap input without fees"
	numerator, err := checkedMul(op, reserveSource, destinationOut)
	if err != nil {
		return Amount{}, err
	}
	denominator, err := checkedSub(op, reserveDestination, destinationOut)
	if err != nil {
		return Amount{}, err
	}
	return checkedCeilDiv(op, numerator, denominator)
}

// LpTokensToTradingTokens converts shareAmount of a shareSupply pool into the two
// reserve amounts it represents. Each side rounds on its own.
//
// With Ceiling a side only rounds up when its floored amount is already non-zero, a
// dust share must not be turned into a whole token. Callers reject zero amounts.
func LpTokensToTradingTokens(
	shareAmount, shareSupply, reserve0, reserve1 Amount,
	roundDirection RoundDirection,
) (TradingTokenResult, error) {
	if roundDirection != Floor && roundDirection != Ceiling {
		return TradingTokenResult{}, errors.Errorf("unknown round direction %s", roundDirection)
	}
	token0, err := shareOf("lp tokens to trading tokens: token0", shareAmount, shareSupply, reserve0, roundDirection)
	if err != nil {
		return TradingTokenResult{}, err
	}
	token1, err := shareOf("lp tokens to trading tokens: token1", shareAmount, shareSupply, reserve1, roundDirection)
	if err != nil {
		return TradingTokenResult{}, err
	}
	return TradingTokenResult{Token0Amount: token0, Token1Amount: token1}, nil
}

func shareOf(op string, shareAmount, shareSupply, reserve Amount, roundDirection RoundDirection) (Amount, error) {
	product, err := checkedMul(op, shareAmount, reserve)
	if err != nil {
		return Amount{}, err
	}
	amount, remainder, err := checkedDivMod(op, product, shareSupply)
	if err != nil {
		return Amount{}, err
	}
	if roundDirection == Ceiling && !remainder.IsZero() && !amount.IsZero() {
		return checkedAdd(op, amount, one)
	}
	return amount, nil
}
