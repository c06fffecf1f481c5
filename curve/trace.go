package curve

// SwapTrace describes one finished swap call. Result is the zero value when Err is set.
type SwapTrace struct {
	Kind SwapKind
	// Amount is the source amount for SwapKindBaseInput and the destination amount
	// for SwapKindBaseOutput.
	Amount                Amount
	SwapSourceAmount      Amount
	SwapDestinationAmount Amount
	TradeFeeRate          uint64
	ProtocolFeeRate       uint64
	Result                SwapResult
	Err                   error
}

// ConversionTrace describes one finished share conversion call.
type ConversionTrace struct {
	ShareAmount    Amount
	ShareSupply    Amount
	Reserve0       Amount
	Reserve1       Amount
	RoundDirection RoundDirection
	Result         TradingTokenResult
	Err            error
}

// Tracer receives calls after they complete. Implementations must not block for long,
// they run on the caller's goroutine.
type Tracer interface {
	TraceSwap(SwapTrace)
	TraceConversion(ConversionTrace)
}

// TracerFuncs adapts plain functions to a Tracer, nil fields are skipped.
type TracerFuncs struct {
	Swap       func(SwapTrace)
	Conversion func(ConversionTrace)
}

func (f TracerFuncs) TraceSwap(t SwapTrace) {
	if f.Swap != nil {
		f.Swap(t)
	}
}

func (f TracerFuncs) TraceConversion(t ConversionTrace) {
	if f.Conversion != nil {
		f.Conversion(t)
	}
}
