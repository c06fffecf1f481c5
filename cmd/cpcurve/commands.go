package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hadydotai/raydium-curve/internal/config"
	"hadydotai/raydium-curve/internal/quote"
)

func newQuoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <verb> <amount> <symbol>",
		Short: "Quote a swap, e.g. quote sell 1.5 SOL or quote buy 100 USDC",
		Long: `Quote a swap against the configured pool.

Selling (sell, pay, swap) fixes the input amount and reports the output with a
minimum received after slippage. Buying (buy, get) fixes the output amount and
reports the input with a maximum paid after slippage.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intentLine := strings.Join(args, " ")
			out, intent, err := a.tableBuilder().Build(intentLine)
			if err != nil {
				return err
			}
			if intent == nil {
				a.logger.Info("intent could not be quoted", zap.String("intent", intentLine))
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newSharesCmd(a *app, action quote.ShareAction) *cobra.Command {
	short := "Quote the tokens owed for minting pool shares"
	if action == quote.ShareWithdraw {
		short = "Quote the tokens paid out for burning pool shares"
	}
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <shares>", action),
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateShares(); err != nil {
				return err
			}
			supply, err := quote.ParseAmount(a.cfg.LPSupply, 0)
			if err != nil {
				return errors.Wrapf(err, "--%s", config.KeyLPSupply)
			}
			shares, err := quote.ParseAmount(args[0], 0)
			if err != nil {
				return err
			}
			out, _, err := a.tableBuilder().BuildShares(action, shares, supply)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
