package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Reserve0:        "1000",
		Reserve1:        "2000",
		Symbol0:         "SOL",
		Symbol1:         "USDC",
		TradeFeeRate:    DefaultTradeFeeRate,
		ProtocolFeeRate: DefaultProtocolFeeRate,
		SlippageRate:    DefaultSlippageRate,
		LogLevel:        "info",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing reserve", func(c *Config) { c.Reserve1 = "" }, "--reserve1 must not be empty"},
		{"trade fee at denominator", func(c *Config) { c.TradeFeeRate = 1_000_000 }, "--trade-fee-rate must be at most 999999"},
		{"protocol fee above denominator", func(c *Config) { c.ProtocolFeeRate = 1_000_001 }, "--protocol-fee-rate"},
		{"too many decimals", func(c *Config) { c.Decimals0 = 31 }, "--decimals0"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "--log-level"},
		{"same symbols", func(c *Config) { c.Symbol1 = "sol" }, "must differ"},
		{"bad supply", func(c *Config) { c.LPSupply = "lots" }, "--lp-supply"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateShares(t *testing.T) {
	cfg := validConfig()
	err := cfg.ValidateShares()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--lp-supply must not be empty")

	cfg.LPSupply = "10"
	require.NoError(t, cfg.ValidateShares())
}

func TestLoadFromFlagsAndEnv(t *testing.T) {
	t.Setenv("CPCURVE_TRADE_FEE_RATE", "3000")
	t.Setenv("CPCURVE_SYMBOL1", "USDC")

	v := NewViper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, RegisterFlags(fs, v))
	require.NoError(t, fs.Parse([]string{"--reserve0", "1.5", "--reserve1=2000", "--decimals0", "9", "--symbol0", "SOL"}))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "1.5", cfg.Reserve0)
	require.Equal(t, "2000", cfg.Reserve1)
	require.Equal(t, uint(9), cfg.Decimals0)
	require.Equal(t, "SOL", cfg.Symbol0)
	require.Equal(t, "USDC", cfg.Symbol1)
	require.Equal(t, uint64(3000), cfg.TradeFeeRate)
	require.Equal(t, DefaultProtocolFeeRate, cfg.ProtocolFeeRate)
	require.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	body := "reserve0: \"50000000\"\nreserve1: \"100000000\"\nsymbol0: RAY\nsymbol1: USDC\nlp-supply: \"70000000\"\nprotocol-fee-rate: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	v := NewViper()
	v.Set(KeyConfig, path)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "50000000", cfg.Reserve0)
	require.Equal(t, "RAY", cfg.Symbol0)
	require.Equal(t, "70000000", cfg.LPSupply)
	require.Equal(t, uint64(0), cfg.ProtocolFeeRate)
	require.Equal(t, DefaultTradeFeeRate, cfg.TradeFeeRate)
	require.NoError(t, cfg.ValidateShares())
}

func TestLoadMissingFile(t *testing.T) {
	v := NewViper()
	v.Set(KeyConfig, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v)
	require.Error(t, err)
}
