// Package quote turns user intents and share requests into curve calls and renders
// the results. It is the caller side of the curve package: it picks which reserve
// is the source, rejects zero-amount operations and applies slippage bounds.
package quote

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"hadydotai/raydium-curve/curve"
)

// SwapDir is the trader's side of an intent: buying or selling the named token.
type SwapDir uint8

const (
	SwapDirUnknown SwapDir = iota
	SwapDirBuy
	SwapDirSell
)

// Pool is a resolved view of the pool the intent runs against.
type Pool struct {
	Reserves        [2]curve.Amount
	Decimals        [2]uint
	Symbols         SymbolMapping
	TradeFeeRate    uint64
	ProtocolFeeRate uint64
}

// Leg is one side of a swap as the trader sees it.
type Leg struct {
	Side     int
	Symbol   string
	Decimals uint
}

// IntentInstruction is a parsed "<verb> <amount> <symbol>" line.
type IntentInstruction struct {
	Verb         string
	AmountStr    string
	Dir          SwapDir
	TargetSymbol string
}

func (ii *IntentInstruction) String() string {
	if ii.TargetSymbol == "" {
		return fmt.Sprintf("%s %s", ii.Verb, ii.AmountStr)
	}
	return fmt.Sprintf("%s %s %s", ii.Verb, ii.AmountStr, ii.TargetSymbol)
}

// Intent captures the resolved swap derived from the pool and the user instruction.
type Intent struct {
	Instruction *IntentInstruction
	Kind        curve.SwapKind
	Direction   curve.TradeDirection
	TokenIn     Leg
	TokenOut    Leg

	// KnownAmount is the amount the user typed, in base units of the target token.
	KnownAmount curve.Amount
	Result      curve.SwapResult

	SlippageRate uint64
	MinAmountOut curve.Amount
	MaxAmountIn  curve.Amount
}

// String renders the original intent instruction for UI purposes.
func (ci *Intent) String() string {
	if ci == nil || ci.Instruction == nil {
		return ""
	}
	return ci.Instruction.String()
}

// QuoteAmount is the counter amount computed by the curve, before slippage.
func (ci *Intent) QuoteAmount() curve.Amount {
	if ci.Kind == curve.SwapKindBaseOutput {
		return ci.Result.SourceAmountSwapped
	}
	return ci.Result.DestinationAmountSwapped
}

// CounterLeg is the side the user did not name.
func (ci *Intent) CounterLeg() Leg {
	if ci.Kind == curve.SwapKindBaseOutput {
		return ci.TokenIn
	}
	return ci.TokenOut
}

// RequiredInputAmount returns the most the payer can be charged for this intent.
func (ci *Intent) RequiredInputAmount() curve.Amount {
	if ci.Kind == curve.SwapKindBaseOutput {
		return ci.MaxAmountIn
	}
	return ci.KnownAmount
}

// ParseIntent reads "<verb> <amount> <token-symbol>".
func ParseIntent(intentLine string) (*IntentInstruction, error) {
	intentParts := strings.Fields(intentLine)
	if len(intentParts) != 3 {
		return nil, errors.New("intent instructions must be <verb> <amount> <token-symbol>")
	}
	verb := strings.ToLower(intentParts[0])
	dir, err := verbToSwapDir(verb)
	if err != nil {
		return nil, err
	}
	return &IntentInstruction{
		Verb:         verb,
		AmountStr:    intentParts[1],
		Dir:          dir,
		TargetSymbol: normalizeSymbol(intentParts[2]),
	}, nil
}

func verbToSwapDir(verb string) (SwapDir, error) {
	switch verb {
	case "pay", "sell", "swap":
		return SwapDirSell, nil
	case "buy", "get":
		return SwapDirBuy, nil
	default:
		return SwapDirUnknown, errors.Errorf("verb(%s) has no clear swap direction", verb)
	}
}

// NewIntent resolves instruction against pool and quotes it with calc.
//
// Selling names the input token, so it becomes an exact-input swap bounded by a
// minimum output. Buying names the output token, an exact-output swap bounded by a
// maximum input.
func NewIntent(calc *curve.Calculator, pool Pool, instruction *IntentInstruction, slippageRate uint64) (*Intent, error) {
	if instruction == nil {
		return nil, errors.New("intent instruction missing")
	}
	targetSide, err := pool.Symbols.SideFromSym(instruction.TargetSymbol)
	if err != nil {
		return nil, err
	}
	knownAmount, err := ParseAmount(instruction.AmountStr, pool.Decimals[targetSide])
	if err != nil {
		return nil, err
	}
	if knownAmount.IsZero() {
		return nil, errors.New("amount must be greater than zero")
	}

	intent := &Intent{
		Instruction:  instruction,
		KnownAmount:  knownAmount,
		SlippageRate: slippageRate,
	}
	var inSide int
	switch instruction.Dir {
	case SwapDirSell:
		intent.Kind = curve.SwapKindBaseInput
		inSide = targetSide
	case SwapDirBuy:
		intent.Kind = curve.SwapKindBaseOutput
		inSide = 1 - targetSide
	default:
		return nil, errors.Errorf("swap direction unknown for verb %s", instruction.Verb)
	}
	outSide := 1 - inSide
	intent.Direction = curve.ZeroForOne
	if inSide == 1 {
		intent.Direction = curve.OneForZero
	}
	intent.TokenIn = pool.leg(inSide)
	intent.TokenOut = pool.leg(outSide)

	reserveIn, reserveOut := pool.Reserves[inSide], pool.Reserves[outSide]
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, errors.New("pool reserves must be greater than zero")
	}

	switch intent.Kind {
	case curve.SwapKindBaseInput:
		intent.Result, err = calc.SwapGivenInput(knownAmount, reserveIn, reserveOut, pool.TradeFeeRate, pool.ProtocolFeeRate)
		if err != nil {
			return nil, errors.Wrapf(err, "quoting %s", instruction)
		}
		if intent.Result.DestinationAmountSwapped.IsZero() {
			return nil, errors.New("trade would not yield a positive output amount")
		}
		intent.MinAmountOut, err = applySlippageFloor(intent.Result.DestinationAmountSwapped, slippageRate)
		if err != nil {
			return nil, err
		}
	case curve.SwapKindBaseOutput:
		if !knownAmount.Lt(&reserveOut) {
			available := FormatAmount(reserveOut, intent.TokenOut.Decimals)
			return nil, errors.Errorf("requested %s exceeds available %s liquidity", instruction.AmountStr, available)
		}
		intent.Result, err = calc.SwapGivenOutput(knownAmount, reserveIn, reserveOut, pool.TradeFeeRate, pool.ProtocolFeeRate)
		if err != nil {
			return nil, errors.Wrapf(err, "quoting %s", instruction)
		}
		intent.MaxAmountIn, err = applySlippageCeil(intent.Result.SourceAmountSwapped, slippageRate)
		if err != nil {
			return nil, err
		}
	}
	return intent, nil
}

func (p Pool) leg(side int) Leg {
	return Leg{Side: side, Symbol: p.Symbols.SymFrom(side), Decimals: p.Decimals[side]}
}

var rateDenominator = uint256.NewInt(curve.FeeRateDenominator)

// applySlippageFloor is floor(amount * (D - rate) / D).
func applySlippageFloor(amount curve.Amount, rate uint64) (curve.Amount, error) {
	if rate >= curve.FeeRateDenominator {
		return curve.Amount{}, errors.Errorf("slippage rate %d must be below %d", rate, curve.FeeRateDenominator)
	}
	factor := uint256.NewInt(curve.FeeRateDenominator - rate)
	var z curve.Amount
	if _, overflow := z.MulDivOverflow(&amount, factor, rateDenominator); overflow {
		return curve.Amount{}, errors.New("slippage bound overflows")
	}
	return z, nil
}

// applySlippageCeil is ceil(amount * (D + rate) / D).
func applySlippageCeil(amount curve.Amount, rate uint64) (curve.Amount, error) {
	if rate >= curve.FeeRateDenominator {
		return curve.Amount{}, errors.Errorf("slippage rate %d must be below %d", rate, curve.FeeRateDenominator)
	}
	factor := uint256.NewInt(curve.FeeRateDenominator + rate)
	var numerator, z, rem curve.Amount
	if _, overflow := numerator.MulOverflow(&amount, factor); overflow {
		return curve.Amount{}, errors.New("slippage bound overflows")
	}
	z.DivMod(&numerator, rateDenominator, &rem)
	if !rem.IsZero() {
		z.AddUint64(&z, 1)
	}
	if !curve.InRange(z) {
		return curve.Amount{}, errors.New("slippage bound overflows")
	}
	return z, nil
}
