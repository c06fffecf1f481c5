package quote

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hadydotai/raydium-curve/curve"
)

// TableBuilder renders quotes against one pool as go-pretty tables.
type TableBuilder struct {
	calc         *curve.Calculator
	pool         Pool
	title        string
	slippageRate uint64
}

// NewTableBuilder returns a TableBuilder titled title, quoting with calc.
func NewTableBuilder(calc *curve.Calculator, pool Pool, title string, slippageRate uint64) *TableBuilder {
	return &TableBuilder{calc: calc, pool: pool, title: title, slippageRate: slippageRate}
}

func (tb *TableBuilder) newWriter(builder *strings.Builder) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(builder)
	t.SetTitle(tb.title)
	t.SetCaption("Constant product pool")
	t.Style().Size.WidthMax = 120
	t.AppendHeader(table.Row{"", "Token 0", "Token 1"})
	t.AppendRow(table.Row{"Symbol", tb.pool.Symbols.SymFrom(0), tb.pool.Symbols.SymFrom(1)})
	t.AppendRow(table.Row{
		"Reserves",
		FormatAmount(tb.pool.Reserves[0], tb.pool.Decimals[0]),
		FormatAmount(tb.pool.Reserves[1], tb.pool.Decimals[1]),
	})
	t.AppendRow(table.Row{"Decimals", tb.pool.Decimals[0], tb.pool.Decimals[1]})
	t.AppendSeparator()
	mergeLeft := table.RowConfig{AutoMerge: true, AutoMergeAlign: text.AlignLeft}
	tradeFee := FormatRate(tb.pool.TradeFeeRate)
	t.AppendRow(table.Row{"Trade fee", tradeFee, tradeFee}, mergeLeft)
	protocolFee := FormatRate(tb.pool.ProtocolFeeRate) + " of trade fee"
	t.AppendRow(table.Row{"Protocol fee", protocolFee, protocolFee}, mergeLeft)
	slippage := FormatRate(tb.slippageRate)
	t.AppendRow(table.Row{"Slippage", slippage, slippage}, mergeLeft)
	t.AppendSeparator()
	return t
}

// Build quotes intentLine and renders it below the pool summary. A failed quote is
// rendered in the table rather than returned, parse failures are returned.
func (tb *TableBuilder) Build(intentLine string) (string, *Intent, error) {
	instruction, err := ParseIntent(intentLine)
	if err != nil {
		return "", nil, err
	}
	targetSide, err := tb.pool.Symbols.SideFromSym(instruction.TargetSymbol)
	if err != nil {
		return "", nil, err
	}

	builder := &strings.Builder{}
	t := tb.newWriter(builder)
	intentMeta, intentErr := NewIntent(tb.calc, tb.pool, instruction, tb.slippageRate)
	intentRow := table.Row{"Intent", "", ""}
	targetTokenCell := targetSide
	counterTokenCell := 1 - targetTokenCell
	if intentErr != nil {
		errMsg := fmt.Sprintf("%s failed: %s", instruction, intentErr)
		intentRow[targetTokenCell+1] = errMsg
		intentRow[counterTokenCell+1] = errMsg
		t.AppendRow(intentRow, table.RowConfig{AutoMerge: true})
		t.Render()
		return builder.String(), nil, nil
	}

	counter := intentMeta.CounterLeg()
	counterTokenAmount := FormatAmount(intentMeta.QuoteAmount(), counter.Decimals)
	boundRow := table.Row{"", "", ""}
	intentRow[targetTokenCell+1] = intentMeta.String()
	switch intentMeta.Kind {
	case curve.SwapKindBaseInput:
		intentRow[counterTokenCell+1] = fmt.Sprintf("receiving %s %s", counterTokenAmount, counter.Symbol)
		boundRow[0] = "Min received"
		boundRow[counterTokenCell+1] = FormatAmount(intentMeta.MinAmountOut, counter.Decimals)
	case curve.SwapKindBaseOutput:
		intentRow[counterTokenCell+1] = fmt.Sprintf("paying %s %s", counterTokenAmount, counter.Symbol)
		boundRow[0] = "Max paid"
		boundRow[counterTokenCell+1] = FormatAmount(intentMeta.MaxAmountIn, counter.Decimals)
	default:
		panic("shouldn't be here, NewIntent only produces base input or base output intents")
	}
	t.AppendRow(intentRow)
	t.AppendRow(boundRow)

	in := intentMeta.TokenIn
	feeRow := table.Row{"Fees charged", "", ""}
	feeRow[in.Side+1] = fmt.Sprintf("%s %s (protocol %s)",
		FormatAmount(intentMeta.Result.TradeFee, in.Decimals), in.Symbol,
		FormatAmount(intentMeta.Result.ProtocolFee, in.Decimals))
	t.AppendRow(feeRow)

	newReserves := table.Row{"New reserves", "", ""}
	newSource, newDestination := intentMeta.Result.NewSwapSourceAmount, intentMeta.Result.NewSwapDestinationAmount
	token0, token1 := intentMeta.Direction.Sides(newSource, newDestination)
	newReserves[1] = FormatAmount(token0, tb.pool.Decimals[0])
	newReserves[2] = FormatAmount(token1, tb.pool.Decimals[1])
	t.AppendRow(newReserves)
	t.Render()
	return builder.String(), intentMeta, nil
}

// BuildShares renders a deposit or withdrawal of pool shares.
func (tb *TableBuilder) BuildShares(action ShareAction, shareAmount, shareSupply curve.Amount) (string, *ShareQuote, error) {
	sq, err := NewShareQuote(tb.calc, tb.pool, action, shareAmount, shareSupply)
	if err != nil {
		return "", nil, err
	}
	builder := &strings.Builder{}
	t := tb.newWriter(builder)
	shares := fmt.Sprintf("%s %s of %s", action, sq.ShareAmount.Dec(), sq.ShareSupply.Dec())
	t.AppendRow(table.Row{"Shares", shares, ""})
	label := "Depositing"
	if action == ShareWithdraw {
		label = "Receiving"
	}
	t.AppendRow(table.Row{
		label,
		FormatAmount(sq.Tokens.Token0Amount, tb.pool.Decimals[0]),
		FormatAmount(sq.Tokens.Token1Amount, tb.pool.Decimals[1]),
	})
	t.AppendRow(table.Row{
		"New reserves",
		FormatAmount(sq.NewReserves[0], tb.pool.Decimals[0]),
		FormatAmount(sq.NewReserves[1], tb.pool.Decimals[1]),
	})
	t.AppendRow(table.Row{"New supply", sq.NewSupply.Dec(), ""})
	t.Render()
	return builder.String(), sq, nil
}
