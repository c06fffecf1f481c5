// Package curvetest holds pool value checks for tests of code built on curve.
package curvetest

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"hadydotai/raydium-curve/curve"
)

// ErrValueDecreased is returned when an operation leaves the pool worth less.
var ErrValueDecreased = errors.New("pool value decreased")

func product(x, y curve.Amount) (uint256.Int, error) {
	var z uint256.Int
	if _, overflow := z.MulOverflow(&x, &y); overflow {
		return uint256.Int{}, errors.Errorf("product %s * %s overflows 256 bits", x.Dec(), y.Dec())
	}
	return z, nil
}

// CheckCurveValueFromSwap runs the fee-free curve and checks the reserve product,
// taken in token0/token1 order, did not shrink.
func CheckCurveValueFromSwap(sourceIn, swapSource, swapDestination curve.Amount, direction curve.TradeDirection) error {
	destinationOut, err := curve.SwapOutputWithoutFees(sourceIn, swapSource, swapDestination)
	if err != nil {
		return errors.Wrap(err, "curve swap")
	}
	token0, token1 := direction.Sides(swapSource, swapDestination)
	previous, err := product(token0, token1)
	if err != nil {
		return err
	}

	var newSource, newDestination uint256.Int
	newSource.Add(&swapSource, &sourceIn)
	if swapDestination.Lt(&destinationOut) {
		return errors.Errorf("destination %s exceeds reserve %s", destinationOut.Dec(), swapDestination.Dec())
	}
	newDestination.Sub(&swapDestination, &destinationOut)
	token0, token1 = direction.Sides(newSource, newDestination)
	next, err := product(token0, token1)
	if err != nil {
		return err
	}
	if next.Lt(&previous) {
		return errors.Wrapf(ErrValueDecreased, "swap %s: %s < %s", direction, next.Dec(), previous.Dec())
	}
	return nil
}

// CheckSwapValue checks that a fee-applied swap result did not shrink the reserve product.
func CheckSwapValue(swapSource, swapDestination curve.Amount, result curve.SwapResult) error {
	previous, err := product(swapSource, swapDestination)
	if err != nil {
		return err
	}
	next, err := product(result.NewSwapSourceAmount, result.NewSwapDestinationAmount)
	if err != nil {
		return err
	}
	if next.Lt(&previous) {
		return errors.Wrapf(ErrValueDecreased, "swap: %s < %s", next.Dec(), previous.Dec())
	}
	return nil
}

// CheckPoolValueFromDeposit mints shareAmount shares against Ceiling-rounded
// reserves and checks each reserve per share did not drop:
// new_reserve * old_supply >= old_reserve * new_supply.
func CheckPoolValueFromDeposit(shareAmount, shareSupply, reserve0, reserve1 curve.Amount) error {
	deposit, err := curve.LpTokensToTradingTokens(shareAmount, shareSupply, reserve0, reserve1, curve.Ceiling)
	if err != nil {
		return errors.Wrap(err, "deposit conversion")
	}
	var newSupply uint256.Int
	newSupply.Add(&shareSupply, &shareAmount)

	sides := []struct {
		name            string
		reserve, amount curve.Amount
	}{
		{"token0", reserve0, deposit.Token0Amount},
		{"token1", reserve1, deposit.Token1Amount},
	}
	for _, side := range sides {
		var newReserve uint256.Int
		newReserve.Add(&side.reserve, &side.amount)
		lhs, err := product(newReserve, shareSupply)
		if err != nil {
			return err
		}
		rhs, err := product(side.reserve, newSupply)
		if err != nil {
			return err
		}
		if lhs.Lt(&rhs) {
			return errors.Wrapf(ErrValueDecreased, "deposit %s: %s < %s", side.name, lhs.Dec(), rhs.Dec())
		}
	}
	return nil
}

// CheckPoolValueFromWithdraw burns shareAmount shares against Floor-rounded
// reserves and checks the pool's normalized value, sqrt(token0*token1), per share
// did not drop. Both sides are squared so no root is truncated:
// new0*new1*old_supply^2 >= old0*old1*new_supply^2.
func CheckPoolValueFromWithdraw(shareAmount, shareSupply, reserve0, reserve1 curve.Amount) error {
	withdraw, err := curve.LpTokensToTradingTokens(shareAmount, shareSupply, reserve0, reserve1, curve.Floor)
	if err != nil {
		return errors.Wrap(err, "withdraw conversion")
	}
	if shareSupply.Lt(&shareAmount) {
		return errors.Errorf("burning %s of %s shares", shareAmount.Dec(), shareSupply.Dec())
	}
	var newReserve0, newReserve1, newSupply uint256.Int
	newReserve0.Sub(&reserve0, &withdraw.Token0Amount)
	newReserve1.Sub(&reserve1, &withdraw.Token1Amount)
	newSupply.Sub(&shareSupply, &shareAmount)

	lhs := squaredValue(newReserve0, newReserve1, shareSupply)
	rhs := squaredValue(reserve0, reserve1, newSupply)
	if lhs.Cmp(rhs) < 0 {
		return errors.Wrapf(ErrValueDecreased, "withdraw: %s < %s", lhs, rhs)
	}
	return nil
}

// squaredValue is x*y*supply^2, up to 512 bits wide.
func squaredValue(x, y, supply curve.Amount) *big.Int {
	s := supply.ToBig()
	v := new(big.Int).Mul(x.ToBig(), y.ToBig())
	v.Mul(v, s)
	return v.Mul(v, s)
}
