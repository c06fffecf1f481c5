package curve

// FeeRateDenominator is the fixed denominator every rate is expressed over,
// rate 10_000 is 1%.
const FeeRateDenominator uint64 = 1_000_000

var feeRateDenominator = NewAmount(FeeRateDenominator)

// ceilDiv computes ceil(amount * numerator / denominator) as
// (amount*numerator + denominator - 1) / denominator, every step checked.
func ceilDiv(op string, amount, numerator, denominator Amount) (Amount, error) {
	product, err := checkedMul(op, amount, numerator)
	if err != nil {
		return Amount{}, err
	}
	product, err = checkedAdd(op, product, denominator)
	if err != nil {
		return Amount{}, err
	}
	product, err = checkedSub(op, product, one)
	if err != nil {
		return Amount{}, err
	}
	return checkedDiv(op, product, denominator)
}

func floorDiv(op string, amount, numerator, denominator Amount) (Amount, error) {
	product, err := checkedMul(op, amount, numerator)
	if err != nil {
		return Amount{}, err
	}
	return checkedDiv(op, product, denominator)
}

// TradingFee is the fee withheld from amount at tradeFeeRate. It rounds up so the
// pool is never under-compensated.
func TradingFee(amount Amount, tradeFeeRate uint64) (Amount, error) {
	return ceilDiv("trading fee", amount, NewAmount(tradeFeeRate), feeRateDenominator)
}

// ProtocolFee is the treasury's cut of an already collected trading fee. It rounds
// down, any remainder stays with liquidity providers.
func ProtocolFee(tradeFee Amount, protocolFeeRate uint64) (Amount, error) {
	return floorDiv("protocol fee", tradeFee, NewAmount(protocolFeeRate), feeRateDenominator)
}

// PreFeeAmount is the inverse of TradingFee: the gross amount that leaves
// postFeeAmount once the trading fee is taken.
func PreFeeAmount(postFeeAmount Amount, tradeFeeRate uint64) (Amount, error) {
	const op = "pre fee amount"
	if tradeFeeRate == 0 {
		if !InRange(postFeeAmount) {
			return Amount{}, overflow(op)
		}
		return postFeeAmount, nil
	}
	numerator, err := checkedMul(op, postFeeAmount, feeRateDenominator)
	if err != nil {
		return Amount{}, err
	}
	denominator, err := checkedSub(op, feeRateDenominator, NewAmount(tradeFeeRate))
	if err != nil {
		return Amount{}, err
	}
	// rate == denominator leaves nothing to divide by
	if denominator.IsZero() {
		return Amount{}, underflow(op)
	}
	return ceilDiv(op, numerator, one, denominator)
}
