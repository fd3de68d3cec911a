package svmreg

import (
	"math/big"
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/registry"
	"github.com/ModChain/visualsign/svm"
)

func bigFromUint64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func formatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// mintInfo resolves a mint's symbol and decimals from the embedded contract
// registry's Solana namespace. ok is false for an unregistered mint, in
// which case amounts degrade to raw base units.
func mintInfo(ctx *chain.Context, mint svm.Key) (symbol string, decimals int, ok bool) {
	if ctx.Contracts == nil {
		return "", 0, false
	}
	info, found := ctx.Contracts.Lookup(registry.SolanaMainnet, mint.String())
	if !found || info.Symbol == "" {
		return "", 0, false
	}
	return info.Symbol, info.Decimals, true
}

// mintAmountText renders "1.500000000 wSOL" for a registered mint, or
// "1500000000 raw units" otherwise.
func mintAmountText(ctx *chain.Context, mint svm.Key, amount uint64) string {
	symbol, decimals, ok := mintInfo(ctx, mint)
	if !ok {
		return formatUint64(amount) + " raw units"
	}
	return evm.FormatUnitsFixed(bigFromUint64(amount), decimals) + " " + symbol
}

// mintAmountField builds an amount_v2 field for a token amount, degrading
// to raw base units with the Abbreviation omitted when the mint's decimals
// are unknown.
func mintAmountField(ctx *chain.Context, label string, mint svm.Key, amount uint64) *fields.Field {
	symbol, decimals, ok := mintInfo(ctx, mint)
	if !ok {
		raw := formatUint64(amount)
		return fields.Amount(label, raw, "", raw+" raw units")
	}
	v := evm.FormatUnitsFixed(bigFromUint64(amount), decimals)
	return fields.Amount(label, v, symbol, v+" "+symbol)
}

// mintSymbol returns the registered symbol of a mint, or a shortened
// base58 key when unknown.
func mintSymbol(ctx *chain.Context, mint svm.Key) string {
	if symbol, _, ok := mintInfo(ctx, mint); ok {
		return symbol
	}
	return shortKey(mint)
}

// shortKey renders the first and last four base58 characters of a key for
// condensed one-liners.
func shortKey(k svm.Key) string {
	s := k.String()
	if len(s) <= 11 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// solAmount renders lamports as a trimmed SOL decimal string.
func solAmount(lamports uint64) string {
	return evm.FormatUnits(bigFromUint64(lamports), 9)
}

// summaryField is the single flat field every condensed tier carries.
func summaryField(text string) []*fields.AnnotatedField {
	return []*fields.AnnotatedField{fields.Annotate(fields.Text("Summary", text))}
}
