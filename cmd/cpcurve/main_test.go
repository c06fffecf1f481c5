package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var poolFlags = []string{
	"--reserve0", "1000", "--reserve1", "2000",
	"--symbol0", "AAA", "--symbol1", "BBB",
	"--trade-fee-rate", "3000", "--log-level", "error",
}

func TestQuoteCommand(t *testing.T) {
	out, err := execute(t, append([]string{"quote", "sell", "100", "aaa"}, poolFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "receiving 180 BBB")
	assert.Contains(t, out, "AAA/BBB")
}

func TestQuoteCommandSingleArgument(t *testing.T) {
	out, err := execute(t, append([]string{"quote", "buy 200 BBB"}, poolFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "paying 113 AAA")
}

func TestQuoteCommandRejectsBadVerb(t *testing.T) {
	_, err := execute(t, append([]string{"quote", "hold", "1", "AAA"}, poolFlags...)...)
	require.Error(t, err)
}

func TestQuoteCommandRequiresReserves(t *testing.T) {
	_, err := execute(t, "quote", "sell", "1", "TOKEN0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--reserve0")
}

func TestShareCommands(t *testing.T) {
	flags := []string{"--reserve0", "100", "--reserve1", "202", "--lp-supply", "101", "--log-level", "error"}

	out, err := execute(t, append([]string{"deposit", "5"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Depositing")
	assert.Contains(t, out, "212")

	out, err = execute(t, append([]string{"withdraw", "5"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Receiving")
	assert.Contains(t, out, "192")
}

func TestShareCommandsRequireSupply(t *testing.T) {
	_, err := execute(t, "withdraw", "5", "--reserve0", "100", "--reserve1", "202", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lp-supply")
}
