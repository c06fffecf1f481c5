package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFlagValidations(t *testing.T) {
	empty := ""
	blank := "   "
	name := "SOL"
	level := "LOUD"
	rate := uint64(1_000_001)
	amount := "-3"
	notNumber := "1.2.3"

	cases := []struct {
		name    string
		specs   []FlagSpec
		wantErr string
	}{
		{"empty string", []FlagSpec{{Name: "symbol0", Value: &empty, Rules: []FlagRule{NotEmpty()}}}, "must not be empty"},
		{"blank string", []FlagSpec{{Name: "symbol0", Value: &blank, Rules: []FlagRule{NotEmpty()}}}, "must not be empty"},
		{"not a string", []FlagSpec{{Name: "rate", Value: &rate, Rules: []FlagRule{NotEmpty()}}}, "must be a string"},
		{"one of", []FlagSpec{{Name: "log-level", Value: &level, Rules: []FlagRule{OneOf("debug", "info")}}}, "must be one of [debug, info]"},
		{"at most", []FlagSpec{{Name: "rate", Value: &rate, Rules: []FlagRule{AtMost(1_000_000)}}}, "must be at most 1000000"},
		{"at most on string", []FlagSpec{{Name: "symbol0", Value: &name, Rules: []FlagRule{AtMost(1)}}}, "must be an unsigned integer"},
		{"negative amount", []FlagSpec{{Name: "reserve0", Value: &amount, Rules: []FlagRule{DecimalAmount()}}}, "must not be negative"},
		{"bad amount", []FlagSpec{{Name: "reserve0", Value: &notNumber, Rules: []FlagRule{DecimalAmount()}}}, "not a decimal number"},
		{"missing pointer", []FlagSpec{{Name: "reserve0"}}, "missing its backing pointer"},
		{"missing name", []FlagSpec{{Value: &name}}, "missing name"},
		{"duplicate", []FlagSpec{{Name: "a", Value: &name}, {Name: "a", Value: &name}}, "defined more than once"},
		{"unregistered dependency", []FlagSpec{{Name: "lp-supply", Value: &name, Rules: []FlagRule{Requires("reserve0")}}}, "dependency is not registered"},
		{"failing dependency", []FlagSpec{
			{Name: "lp-supply", Value: &name, Rules: []FlagRule{Requires("reserve0")}},
			{Name: "reserve0", Value: &empty, Rules: []FlagRule{NotEmpty()}},
		}, "must not be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runFlagValidations(tc.specs)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRunFlagValidationsPasses(t *testing.T) {
	supply := "100.5"
	reserve := "42"
	rate := uint64(2500)
	unset := ""
	specs := []FlagSpec{
		{Name: "lp-supply", Value: &supply, Rules: []FlagRule{DecimalAmount(), Requires("reserve0")}},
		{Name: "reserve0", Value: &reserve, Rules: []FlagRule{NotEmpty(), DecimalAmount()}},
		{Name: "rate", Value: &rate, Rules: []FlagRule{AtMost(1_000_000), nil}},
		// Requires is skipped for unset flags
		{Name: "unset", Value: &unset, Rules: []FlagRule{DecimalAmount(), Requires("missing")}},
	}
	require.NoError(t, runFlagValidations(specs))
	require.NoError(t, runFlagValidations(nil))
}
