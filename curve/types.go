package curve

import "fmt"

// TradeDirection names which pool side is the swap's source.
type TradeDirection uint8

const (
	// ZeroForOne swaps token0 in for token1 out.
	ZeroForOne TradeDirection = iota
	// OneForZero swaps token1 in for token0 out.
	OneForZero
)

func (d TradeDirection) String() string {
	switch d {
	case ZeroForOne:
		return "zero_for_one"
	case OneForZero:
		return "one_for_zero"
	default:
		return fmt.Sprintf("trade_direction(%d)", uint8(d))
	}
}

// Opposite returns the reverse direction.
func (d TradeDirection) Opposite() TradeDirection {
	if d == ZeroForOne {
		return OneForZero
	}
	return ZeroForOne
}

// Sides maps a source/destination pair back onto the pool's token0/token1 order.
func (d TradeDirection) Sides(source, destination Amount) (token0, token1 Amount) {
	if d == OneForZero {
		return destination, source
	}
	return source, destination
}

// RoundDirection decides how share conversions resolve remainders. Ceiling is used
// when the counterparty pays (deposit), Floor when the pool pays (withdraw).
type RoundDirection uint8

const (
	Floor RoundDirection = iota
	Ceiling
)

func (r RoundDirection) String() string {
	switch r {
	case Floor:
		return "floor"
	case Ceiling:
		return "ceiling"
	default:
		return fmt.Sprintf("round_direction(%d)", uint8(r))
	}
}

// SwapKind identifies the call shape that produced a SwapResult.
type SwapKind uint8

const (
	SwapKindUnknown SwapKind = iota
	SwapKindBaseInput
	SwapKindBaseOutput
)

func (k SwapKind) String() string {
	switch k {
	case SwapKindBaseInput:
		return "base_input"
	case SwapKindBaseOutput:
		return "base_output"
	default:
		return "unknown"
	}
}

// SwapResult is everything a caller needs to apply one swap to its own state.
type SwapResult struct {
	// NewSwapSourceAmount is the source reserve after the swap, fees included.
	NewSwapSourceAmount Amount
	// NewSwapDestinationAmount is the destination reserve after the swap.
	NewSwapDestinationAmount Amount
	// SourceAmountSwapped is what the trader pays, fees included.
	SourceAmountSwapped Amount
	// DestinationAmountSwapped is what the trader receives.
	DestinationAmountSwapped Amount
	TradeFee                 Amount
	// ProtocolFee is carved out of TradeFee, it is not charged on top.
	ProtocolFee Amount
}

// TradingTokenResult holds the reserve amounts backing a quantity of pool shares.
type TradingTokenResult struct {
	Token0Amount Amount
	Token1Amount Amount
}
