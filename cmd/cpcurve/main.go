// Command cpcurve quotes swaps, deposits and withdrawals against a constant product
// pool described by flags, environment or a config file.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"hadydotai/raydium-curve/curve"
	"hadydotai/raydium-curve/internal/config"
	"hadydotai/raydium-curve/internal/logging"
	"hadydotai/raydium-curve/internal/quote"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
	calc   *curve.Calculator
	pool   quote.Pool
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}
	root := &cobra.Command{
		Use:           "cpcurve",
		Short:         "Quote constant product pool swaps and share conversions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	if err := config.RegisterFlags(root.PersistentFlags(), a.v); err != nil {
		// flag names are constants, a bind failure is a programming error
		panic(err)
	}
	root.AddCommand(
		newQuoteCmd(a),
		newExploreCmd(a),
		newSharesCmd(a, quote.ShareDeposit),
		newSharesCmd(a, quote.ShareWithdraw),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	pool, err := poolFromConfig(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.pool = pool
	a.calc = curve.NewCalculator(curve.WithTracer(logging.CurveTracer(logger)))
	logger.Debug("pool resolved",
		zap.String("symbol0", pool.Symbols.SymFrom(0)),
		zap.String("symbol1", pool.Symbols.SymFrom(1)),
		zap.String("reserve0", pool.Reserves[0].Dec()),
		zap.String("reserve1", pool.Reserves[1].Dec()),
		zap.Uint64("trade_fee_rate", pool.TradeFeeRate),
		zap.Uint64("protocol_fee_rate", pool.ProtocolFeeRate),
	)
	return nil
}

func poolFromConfig(cfg *config.Config) (quote.Pool, error) {
	reserve0, err := quote.ParseAmount(cfg.Reserve0, cfg.Decimals0)
	if err != nil {
		return quote.Pool{}, errors.Wrapf(err, "--%s", config.KeyReserve0)
	}
	reserve1, err := quote.ParseAmount(cfg.Reserve1, cfg.Decimals1)
	if err != nil {
		return quote.Pool{}, errors.Wrapf(err, "--%s", config.KeyReserve1)
	}
	return quote.Pool{
		Reserves:        [2]curve.Amount{reserve0, reserve1},
		Decimals:        [2]uint{cfg.Decimals0, cfg.Decimals1},
		Symbols:         quote.NewSymbolMapping(cfg.Symbol0, cfg.Symbol1),
		TradeFeeRate:    cfg.TradeFeeRate,
		ProtocolFeeRate: cfg.ProtocolFeeRate,
	}, nil
}

func (a *app) tableBuilder() *quote.TableBuilder {
	title := fmt.Sprintf("%s/%s", a.pool.Symbols.SymFrom(0), a.pool.Symbols.SymFrom(1))
	return quote.NewTableBuilder(a.calc, a.pool, title, a.cfg.SlippageRate)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cpcurve: %s\n", err)
		os.Exit(1)
	}
}
