package curve

import "github.com/pkg/errors"

// SwapGivenInput quotes a swap where the trader supplies exactly sourceAmount.
//
// The trading fee is taken off the input before it reaches the curve, but the whole
// sourceAmount, fee included, lands in the source reserve. That is what makes
// the reserve product grow rather than merely hold.
func SwapGivenInput(
	sourceAmount, swapSourceAmount, swapDestinationAmount Amount,
	tradeFeeRate, protocolFeeRate uint64,
) (SwapResult, error) {
	tradeFee, err := TradingFee(sourceAmount, tradeFeeRate)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given input")
	}
	protocolFee, err := ProtocolFee(tradeFee, protocolFeeRate)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given input")
	}
	sourceAmountLessFees, err := checkedSub("source amount less fees", sourceAmount, tradeFee)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given input")
	}
	destinationAmountSwapped, err := SwapOutputWithoutFees(sourceAmountLessFees, swapSourceAmount, swapDestinationAmount)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given input")
	}
	return settle(sourceAmount, destinationAmountSwapped, swapSourceAmount, swapDestinationAmount, tradeFee, protocolFee, "swap given input")
}

// SwapGivenOutput quotes a swap where the trader asks for exactly destinationAmount.
//
// The net input comes off the curve rounded up, then PreFeeAmount rounds up again to
// the gross input. The two roundings compound and can leave the re-applied fee one
// unit away from the curve's figure; the gap is not reconciled.
func SwapGivenOutput(
	destinationAmount, swapSourceAmount, swapDestinationAmount Amount,
	tradeFeeRate, protocolFeeRate uint64,
) (SwapResult, error) {
	sourceAmountSwapped, err := SwapInputWithoutFees(destinationAmount, swapSourceAmount, swapDestinationAmount)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given output")
	}
	sourceAmount, err := PreFeeAmount(sourceAmountSwapped, tradeFeeRate)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given output")
	}
	tradeFee, err := TradingFee(sourceAmount, tradeFeeRate)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given output")
	}
	protocolFee, err := ProtocolFee(tradeFee, protocolFeeRate)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, "swap given output")
	}
	return settle(sourceAmount, destinationAmount, swapSourceAmount, swapDestinationAmount, tradeFee, protocolFee, "swap given output")
}

func settle(
	sourceAmount, destinationAmount, swapSourceAmount, swapDestinationAmount, tradeFee, protocolFee Amount,
	op string,
) (SwapResult, error) {
	newSource, err := checkedAdd("new swap source amount", swapSourceAmount, sourceAmount)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, op)
	}
	newDestination, err := checkedSub("new swap destination amount", swapDestinationAmount, destinationAmount)
	if err != nil {
		return SwapResult{}, errors.Wrap(err, op)
	}
	return SwapResult{
		NewSwapSourceAmount:      newSource,
		NewSwapDestinationAmount: newDestination,
		SourceAmountSwapped:      sourceAmount,
		DestinationAmountSwapped: destinationAmount,
		TradeFee:                 tradeFee,
		ProtocolFee:              protocolFee,
	}, nil
}

// Calculator runs the swap and conversion math and reports each finished call to an
// optional Tracer. The math itself is the package level functions, Calculator only
// adds the reporting boundary. It holds no state between calls and is safe for
// concurrent use as long as its Tracer is.
type Calculator struct {
	tracer Tracer
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithTracer installs t as the Calculator's tracer. A nil t disables tracing.
func WithTracer(t Tracer) Option {
	return func(c *Calculator) {
		c.tracer = t
	}
}

// NewCalculator returns a Calculator configured by opts.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SwapGivenInput is the traced form of the package function of the same name.
func (c *Calculator) SwapGivenInput(
	sourceAmount, swapSourceAmount, swapDestinationAmount Amount,
	tradeFeeRate, protocolFeeRate uint64,
) (SwapResult, error) {
	result, err := SwapGivenInput(sourceAmount, swapSourceAmount, swapDestinationAmount, tradeFeeRate, protocolFeeRate)
	if c.tracer != nil {
		c.tracer.TraceSwap(SwapTrace{
			Kind:                  SwapKindBaseInput,
			Amount:                sourceAmount,
			SwapSourceAmount:      swapSourceAmount,
			SwapDestinationAmount: swapDestinationAmount,
			TradeFeeRate:          tradeFeeRate,
			ProtocolFeeRate:       protocolFeeRate,
			Result:                result,
			Err:                   err,
		})
	}
	return result, err
}

// SwapGivenOutput is the traced form of the package function of the same name.
func (c *Calculator) SwapGivenOutput(
	destinationAmount, swapSourceAmount, swapDestinationAmount Amount,
	tradeFeeRate, protocolFeeRate uint64,
) (SwapResult, error) {
	result, err := SwapGivenOutput(destinationAmount, swapSourceAmount, swapDestinationAmount, tradeFeeRate, protocolFeeRate)
	if c.tracer != nil {
		c.tracer.TraceSwap(SwapTrace{
			Kind:                  SwapKindBaseOutput,
			Amount:                destinationAmount,
			SwapSourceAmount:      swapSourceAmount,
			SwapDestinationAmount: swapDestinationAmount,
			TradeFeeRate:          tradeFeeRate,
			ProtocolFeeRate:       protocolFeeRate,
			Result:                result,
			Err:                   err,
		})
	}
	return result, err
}

// LpTokensToTradingTokens is the traced form of the package function of the same name.
func (c *Calculator) LpTokensToTradingTokens(
	shareAmount, shareSupply, reserve0, reserve1 Amount,
	roundDirection RoundDirection,
) (TradingTokenResult, error) {
	result, err := LpTokensToTradingTokens(shareAmount, shareSupply, reserve0, reserve1, roundDirection)
	if c.tracer != nil {
		c.tracer.TraceConversion(ConversionTrace{
			ShareAmount:    shareAmount,
			ShareSupply:    shareSupply,
			Reserve0:       reserve0,
			Reserve1:       reserve1,
			RoundDirection: roundDirection,
			Result:         result,
			Err:            err,
		})
	}
	return result, err
}
