// Package config resolves the CLI settings from flags, CPCURVE_* environment
// variables and an optional config file, then validates them.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hadydotai/raydium-curve/curve"
)

const (
	KeyConfig          = "config"
	KeyReserve0        = "reserve0"
	KeyReserve1        = "reserve1"
	KeyDecimals0       = "decimals0"
	KeyDecimals1       = "decimals1"
	KeySymbol0         = "symbol0"
	KeySymbol1         = "symbol1"
	KeyTradeFeeRate    = "trade-fee-rate"
	KeyProtocolFeeRate = "protocol-fee-rate"
	KeySlippageRate    = "slippage-rate"
	KeyLPSupply        = "lp-supply"
	KeyLogLevel        = "log-level"
)

// Raydium CP-swap's most common AMM config: 0.25% trade fee, 12% of it to the protocol.
const (
	DefaultTradeFeeRate    uint64 = 2500
	DefaultProtocolFeeRate uint64 = 120_000
	DefaultSlippageRate    uint64 = 5000
)

// maxDecimals keeps 10^decimals well inside the 128-bit amount width.
const maxDecimals = 30

// Config is the resolved CLI configuration. Amounts stay as decimal strings here,
// they are scaled by the matching decimals when a command needs them.
type Config struct {
	Reserve0        string
	Reserve1        string
	Decimals0       uint
	Decimals1       uint
	Symbol0         string
	Symbol1         string
	TradeFeeRate    uint64
	ProtocolFeeRate uint64
	SlippageRate    uint64
	LPSupply        string
	LogLevel        string
}

// RegisterFlags defines every configuration flag on fs and binds them into v.
func RegisterFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyConfig, "", "optional config file (yaml, json or toml)")
	fs.String(KeyReserve0, "", "pool reserve of token0, in token0 units")
	fs.String(KeyReserve1, "", "pool reserve of token1, in token1 units")
	fs.Uint(KeyDecimals0, 0, "decimals of token0")
	fs.Uint(KeyDecimals1, 0, "decimals of token1")
	fs.String(KeySymbol0, "TOKEN0", "ticker symbol of token0")
	fs.String(KeySymbol1, "TOKEN1", "ticker symbol of token1")
	fs.Uint64(KeyTradeFeeRate, DefaultTradeFeeRate, "trade fee rate in parts per million")
	fs.Uint64(KeyProtocolFeeRate, DefaultProtocolFeeRate, "protocol share of the trade fee in parts per million")
	fs.Uint64(KeySlippageRate, DefaultSlippageRate, "slippage tolerance in parts per million")
	fs.String(KeyLPSupply, "", "outstanding liquidity share supply, in share units")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	return v.BindPFlags(fs)
}

// NewViper returns a viper instance reading CPCURVE_* environment variables, e.g.
// CPCURVE_TRADE_FEE_RATE.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CPCURVE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeySymbol0, "TOKEN0")
	v.SetDefault(KeySymbol1, "TOKEN1")
	v.SetDefault(KeyTradeFeeRate, DefaultTradeFeeRate)
	v.SetDefault(KeyProtocolFeeRate, DefaultProtocolFeeRate)
	v.SetDefault(KeySlippageRate, DefaultSlippageRate)
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// Load reads the config file named by the config key, if any, and resolves the
// final settings. It does not validate them.
func Load(v *viper.Viper) (*Config, error) {
	if path := strings.TrimSpace(v.GetString(KeyConfig)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}
	return &Config{
		Reserve0:        v.GetString(KeyReserve0),
		Reserve1:        v.GetString(KeyReserve1),
		Decimals0:       v.GetUint(KeyDecimals0),
		Decimals1:       v.GetUint(KeyDecimals1),
		Symbol0:         v.GetString(KeySymbol0),
		Symbol1:         v.GetString(KeySymbol1),
		TradeFeeRate:    v.GetUint64(KeyTradeFeeRate),
		ProtocolFeeRate: v.GetUint64(KeyProtocolFeeRate),
		SlippageRate:    v.GetUint64(KeySlippageRate),
		LPSupply:        v.GetString(KeyLPSupply),
		LogLevel:        v.GetString(KeyLogLevel),
	}, nil
}

func (c *Config) specs() []FlagSpec {
	return []FlagSpec{
		{Name: KeyReserve0, Value: &c.Reserve0, Rules: []FlagRule{NotEmpty(), DecimalAmount()}},
		{Name: KeyReserve1, Value: &c.Reserve1, Rules: []FlagRule{NotEmpty(), DecimalAmount()}},
		{Name: KeyDecimals0, Value: &c.Decimals0, Rules: []FlagRule{AtMost(maxDecimals)}},
		{Name: KeyDecimals1, Value: &c.Decimals1, Rules: []FlagRule{AtMost(maxDecimals)}},
		{Name: KeySymbol0, Value: &c.Symbol0, Rules: []FlagRule{NotEmpty()}},
		{Name: KeySymbol1, Value: &c.Symbol1, Rules: []FlagRule{NotEmpty()}},
		// exact-output quotes divide by denominator - rate, the full rate leaves nothing
		{Name: KeyTradeFeeRate, Value: &c.TradeFeeRate, Rules: []FlagRule{AtMost(curve.FeeRateDenominator - 1)}},
		{Name: KeyProtocolFeeRate, Value: &c.ProtocolFeeRate, Rules: []FlagRule{AtMost(curve.FeeRateDenominator)}},
		{Name: KeySlippageRate, Value: &c.SlippageRate, Rules: []FlagRule{AtMost(curve.FeeRateDenominator - 1)}},
		{Name: KeyLPSupply, Value: &c.LPSupply, Rules: []FlagRule{DecimalAmount(), Requires(KeyReserve0), Requires(KeyReserve1)}},
		{Name: KeyLogLevel, Value: &c.LogLevel, Rules: []FlagRule{OneOf("debug", "info", "warn", "warning", "error")}},
	}
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if err := runFlagValidations(c.specs()); err != nil {
		return err
	}
	// intents name a side by symbol, two equal symbols leave that ambiguous
	if strings.EqualFold(strings.TrimSpace(c.Symbol0), strings.TrimSpace(c.Symbol1)) {
		return errors.Errorf("flags --%s and --%s must differ, both are %q", KeySymbol0, KeySymbol1, c.Symbol0)
	}
	return nil
}

// ValidateShares additionally requires the share supply used by deposit and withdraw.
func (c *Config) ValidateShares() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return runFlagValidations([]FlagSpec{
		{Name: KeyLPSupply, Value: &c.LPSupply, Rules: []FlagRule{NotEmpty()}},
	})
}
