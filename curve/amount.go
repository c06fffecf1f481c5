// Package curve is the integer math behind a constant product pool: fees, the
// x*y=k swap curve and share conversions. Every function is pure and deterministic.
package curve

import (
	"math"

	"github.com/holiman/uint256"
)

// Amount is a token quantity. Values crossing the package boundary are limited to
// 128 bits, the 256-bit word leaves room to form a full product of two amounts
// before it is range checked.
type Amount = uint256.Int

// MaxAmount is 2^128 - 1.
var MaxAmount = Amount{math.MaxUint64, math.MaxUint64, 0, 0}

var one = Amount{1, 0, 0, 0}

// NewAmount returns v as an Amount.
func NewAmount(v uint64) Amount {
	return Amount{v, 0, 0, 0}
}

// InRange reports whether v fits the 128-bit working width.
func InRange(v Amount) bool {
	return v[2] == 0 && v[3] == 0
}

func checkedMul(op string, x, y Amount) (Amount, error) {
	if !InRange(x) || !InRange(y) {
		return Amount{}, overflow(op)
	}
	var z Amount
	// two 128-bit factors never wrap the 256-bit word
	z.Mul(&x, &y)
	if !InRange(z) {
		return Amount{}, overflow(op)
	}
	return z, nil
}

func checkedAdd(op string, x, y Amount) (Amount, error) {
	if !InRange(x) || !InRange(y) {
		return Amount{}, overflow(op)
	}
	var z Amount
	z.Add(&x, &y)
	if !InRange(z) {
		return Amount{}, overflow(op)
	}
	return z, nil
}

func checkedSub(op string, x, y Amount) (Amount, error) {
	if !InRange(x) || !InRange(y) {
		return Amount{}, overflow(op)
	}
	if x.Lt(&y) {
		return Amount{}, underflow(op)
	}
	var z Amount
	z.Sub(&x, &y)
	return z, nil
}

// checkedDivMod returns the truncated quotient and the remainder of x / y.
func checkedDivMod(op string, x, y Amount) (Amount, Amount, error) {
	if !InRange(x) || !InRange(y) {
		return Amount{}, Amount{}, overflow(op)
	}
	if y.IsZero() {
		return Amount{}, Amount{}, divideByZero(op)
	}
	var q, r Amount
	q.DivMod(&x, &y, &r)
	return q, r, nil
}

func checkedDiv(op string, x, y Amount) (Amount, error) {
	q, _, err := checkedDivMod(op, x, y)
	return q, err
}

// checkedCeilDiv rounds x / y up on any remainder.
func checkedCeilDiv(op string, x, y Amount) (Amount, error) {
	q, r, err := checkedDivMod(op, x, y)
	if err != nil {
		return Amount{}, err
	}
	if r.IsZero() {
		return q, nil
	}
	return checkedAdd(op, q, one)
}
