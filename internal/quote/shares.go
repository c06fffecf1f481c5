package quote

import (
	"github.com/pkg/errors"

	"hadydotai/raydium-curve/curve"
)

type ShareAction uint8

const (
	ShareDeposit ShareAction = iota
	ShareWithdraw
)

func (a ShareAction) String() string {
	if a == ShareWithdraw {
		return "withdraw"
	}
	return "deposit"
}

// ShareQuote is the outcome of minting or burning pool shares at the current reserves.
type ShareQuote struct {
	Action      ShareAction
	ShareAmount curve.Amount
	ShareSupply curve.Amount
	Tokens      curve.TradingTokenResult

	NewReserves [2]curve.Amount
	NewSupply   curve.Amount
}

// NewShareQuote prices shareAmount against pool. Deposits round the owed tokens up
// and withdrawals round the paid tokens down, so the pool never loses value.
func NewShareQuote(calc *curve.Calculator, pool Pool, action ShareAction, shareAmount, shareSupply curve.Amount) (*ShareQuote, error) {
	if shareAmount.IsZero() {
		return nil, errors.New("share amount must be greater than zero")
	}
	if shareSupply.IsZero() {
		return nil, errors.New("pool has no outstanding shares")
	}
	round := curve.Ceiling
	if action == ShareWithdraw {
		round = curve.Floor
		if shareAmount.Gt(&shareSupply) {
			return nil, errors.Errorf("cannot burn %s shares out of %s", shareAmount.Dec(), shareSupply.Dec())
		}
	}

	tokens, err := calc.LpTokensToTradingTokens(shareAmount, shareSupply, pool.Reserves[0], pool.Reserves[1], round)
	if err != nil {
		return nil, errors.Wrapf(err, "%s of %s shares", action, shareAmount.Dec())
	}
	if tokens.Token0Amount.IsZero() || tokens.Token1Amount.IsZero() {
		return nil, errors.Errorf("%s of %s shares converts to zero trading tokens", action, shareAmount.Dec())
	}

	sq := &ShareQuote{
		Action:      action,
		ShareAmount: shareAmount,
		ShareSupply: shareSupply,
		Tokens:      tokens,
	}
	amounts := [2]curve.Amount{tokens.Token0Amount, tokens.Token1Amount}
	for side := range amounts {
		reserve := pool.Reserves[side]
		if action == ShareDeposit {
			sq.NewReserves[side].Add(&reserve, &amounts[side])
		} else {
			sq.NewReserves[side].Sub(&reserve, &amounts[side])
		}
	}
	if action == ShareDeposit {
		sq.NewSupply.Add(&shareSupply, &shareAmount)
	} else {
		sq.NewSupply.Sub(&shareSupply, &shareAmount)
	}
	for _, v := range append(sq.NewReserves[:], sq.NewSupply) {
		if !curve.InRange(v) {
			return nil, errors.Errorf("%s of %s shares overflows the pool", action, shareAmount.Dec())
		}
	}
	return sq, nil
}
