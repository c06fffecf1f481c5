package quote

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"hadydotai/raydium-curve/curve"
)

// maxAmountDigits is the decimal length of 2^128 - 1.
const maxAmountDigits = 39

// ParseAmount converts a human decimal amount into base units of a token with the
// given decimals. Precision beyond the token's decimals is an error, not rounded.
func ParseAmount(amountStr string, decimals uint) (curve.Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return curve.Amount{}, errors.Errorf("the amount provided is an invalid decimal number: %q", amountStr)
	}
	if d.IsNegative() {
		return curve.Amount{}, errors.Errorf("amount must not be negative: %q", amountStr)
	}
	if d.IsZero() {
		return curve.Amount{}, nil
	}
	// Bound the scaled exponent before anything materializes 10^exponent.
	digits := int64(d.NumDigits())
	exponent := int64(d.Exponent()) + int64(decimals)
	if digits+exponent > maxAmountDigits {
		return curve.Amount{}, errors.Errorf("amount %s does not fit 128 bits", amountStr)
	}
	if exponent < 0 && -exponent > digits {
		return curve.Amount{}, errors.Errorf("amount %s exceeds decimal precision of %d", amountStr, decimals)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return curve.Amount{}, errors.Errorf("amount %s exceeds decimal precision of %d", amountStr, decimals)
	}
	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow || !curve.InRange(*v) {
		return curve.Amount{}, errors.Errorf("amount %s does not fit 128 bits", amountStr)
	}
	return *v, nil
}

// FormatAmount renders base units with the token's full decimal precision.
func FormatAmount(raw curve.Amount, decimals uint) string {
	d := decimal.NewFromBigInt(raw.ToBig(), -int32(decimals))
	return d.StringFixed(int32(decimals))
}

// FormatRate renders a parts-per-million rate as a percentage, 2500 is "0.25%".
func FormatRate(ppm uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(ppm), -4).String() + "%"
}
