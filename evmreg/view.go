package evmreg

import (
	"math/big"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
)

// CallView is a visualizer's rendering of one call: a human title, an
// optional subtitle (typically the counterparty), a flat one-line Condensed
// summary, and the full Expanded field list. Recognized distinguishes a
// semantic preset (or dynamic-ABI) match from the raw-bytes fallback, so
// the dispatcher knows whether the view's Title may replace the payload's
// chain-generic one.
type CallView struct {
	Title      string
	Subtitle   string
	Condensed  []*fields.AnnotatedField
	Expanded   []*fields.AnnotatedField
	Recognized bool
}

// condensedFields returns the Condensed tier, defaulting to a one-line
// title when the visualizer supplied none. The condensed tier is always
// flat (never a nested preview_layout); fields.Validate enforces that.
func (v *CallView) condensedFields() []*fields.AnnotatedField {
	if len(v.Condensed) > 0 {
		return v.Condensed
	}
	return []*fields.AnnotatedField{fields.Annotate(fields.Text("Action", v.Title))}
}

// PreviewField folds the view into one preview_layout field, the shape
// every level of the recursive walk (top-level action, router command,
// bundler call) hands back to its parent.
func (v *CallView) PreviewField(label string) *fields.Field {
	return fields.Preview(label, v.Title, v.Subtitle, v.condensedFields(), v.Expanded)
}

// unknownView wraps raw call bytes in the unknown-call fallback view.
func unknownView(title, dataHex, explanation string) *CallView {
	return &CallView{
		Title: title,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Unknown("Call data", dataHex, explanation)),
		},
	}
}

// tokenInfo resolves a token contract's symbol and decimals from the
// embedded contract registry. ok is false for an address with no metadata
// registered, in which case amounts degrade to raw base units.
func tokenInfo(ctx *chain.Context, token [20]byte) (symbol string, decimals int, ok bool) {
	if ctx.Contracts == nil {
		return "", 0, false
	}
	info, found := ctx.Contracts.Lookup(ctx.ChainID, evm.Checksum(token[:]))
	if !found || info.Symbol == "" {
		return "", 0, false
	}
	return info.Symbol, info.Decimals, true
}

// tokenAmountText renders "1.000000 USDT" for a known token, or
// "1000000 raw units" when no decimals are registered for the address.
func tokenAmountText(ctx *chain.Context, token [20]byte, amount *big.Int) string {
	symbol, decimals, ok := tokenInfo(ctx, token)
	if !ok {
		return bigString(amount) + " raw units"
	}
	return evm.FormatUnitsFixed(amount, decimals) + " " + symbol
}

// tokenAmountField builds an amount_v2 field for a token amount. When the
// token's decimals are unknown the raw integer is shown, the Abbreviation
// is omitted, and FallbackText notes the raw-unit display.
func tokenAmountField(ctx *chain.Context, label string, token [20]byte, amount *big.Int) *fields.Field {
	symbol, decimals, ok := tokenInfo(ctx, token)
	if !ok {
		raw := bigString(amount)
		return fields.Amount(label, raw, "", raw+" raw units")
	}
	v := evm.FormatUnitsFixed(amount, decimals)
	return fields.Amount(label, v, symbol, v+" "+symbol)
}

// tokenAddressField builds an address_v2 field for a token contract,
// labeled with its registered symbol and display name where known.
func tokenAddressField(ctx *chain.Context, label string, token [20]byte) *fields.Field {
	name := ""
	symbol := ""
	if ctx.Contracts != nil {
		if info, ok := ctx.Contracts.Lookup(ctx.ChainID, evm.Checksum(token[:])); ok {
			name = info.DisplayName
			symbol = info.Symbol
		}
	}
	return fields.Address(label, evm.Checksum(token[:]), name, symbol)
}

// contractName returns the registered display name of a contract, or "".
func contractName(ctx *chain.Context, addr [20]byte) string {
	if ctx.Contracts == nil {
		return ""
	}
	if info, ok := ctx.Contracts.Lookup(ctx.ChainID, evm.Checksum(addr[:])); ok {
		return info.DisplayName
	}
	return ""
}

// tokenSymbol returns the registered symbol of a token, or a shortened
// address when unknown, for use inside condensed one-liners.
func tokenSymbol(ctx *chain.Context, token [20]byte) string {
	if symbol, _, ok := tokenInfo(ctx, token); ok {
		return symbol
	}
	return shortAddr(token)
}

// shortAddr renders "0x1234...7890": enough of each end to be spot-checked
// against a full address, short enough for a condensed one-liner.
func shortAddr(a [20]byte) string {
	full := evm.Checksum(a[:])
	return full[:6] + "..." + full[len(full)-4:]
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// summaryField is the single flat field every condensed tier carries.
func summaryField(text string) []*fields.AnnotatedField {
	return []*fields.AnnotatedField{fields.Annotate(fields.Text("Summary", text))}
}
