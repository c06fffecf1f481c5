// Package logging builds the CLI's zap logger and the tracer that reports curve
// calls through it.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hadydotai/raydium-curve/curve"
)

// New returns a console logger writing to stderr at the provided level.
// Supported levels: debug, info, warn, error.
func New(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}

func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Errorf("unknown log level %q", level)
	}
}

// CurveTracer logs finished curve calls. Successful calls go out at debug, failures
// at warn since the caller is about to reject the operation.
func CurveTracer(logger *zap.Logger) curve.Tracer {
	return curve.TracerFuncs{
		Swap: func(t curve.SwapTrace) {
			fields := []zap.Field{
				zap.Stringer("kind", t.Kind),
				amountField("amount", t.Amount),
				amountField("swap_source_amount", t.SwapSourceAmount),
				amountField("swap_destination_amount", t.SwapDestinationAmount),
				zap.Uint64("trade_fee_rate", t.TradeFeeRate),
				zap.Uint64("protocol_fee_rate", t.ProtocolFeeRate),
			}
			if t.Err != nil {
				logger.Warn("swap rejected", append(fields, zap.Error(t.Err))...)
				return
			}
			logger.Debug("swap computed", append(fields,
				amountField("new_swap_source_amount", t.Result.NewSwapSourceAmount),
				amountField("new_swap_destination_amount", t.Result.NewSwapDestinationAmount),
				amountField("source_amount_swapped", t.Result.SourceAmountSwapped),
				amountField("destination_amount_swapped", t.Result.DestinationAmountSwapped),
				amountField("trade_fee", t.Result.TradeFee),
				amountField("protocol_fee", t.Result.ProtocolFee),
			)...)
		},
		Conversion: func(t curve.ConversionTrace) {
			fields := []zap.Field{
				amountField("share_amount", t.ShareAmount),
				amountField("share_supply", t.ShareSupply),
				amountField("reserve0", t.Reserve0),
				amountField("reserve1", t.Reserve1),
				zap.Stringer("round_direction", t.RoundDirection),
			}
			if t.Err != nil {
				logger.Warn("conversion rejected", append(fields, zap.Error(t.Err))...)
				return
			}
			logger.Debug("conversion computed", append(fields,
				amountField("token0_amount", t.Result.Token0Amount),
				amountField("token1_amount", t.Result.Token1Amount),
			)...)
		},
	}
}

func amountField(key string, v curve.Amount) zap.Field {
	return zap.String(key, v.Dec())
}
