package evm

import (
	"math/big"
	"strings"
)

// weiPerEther is 10^18.
var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// FormatEther renders a wei amount as a decimal ether string with all
// trailing fractional zeros trimmed, e.g. 1500000000000000000 -> "1.5" and
// 2000000000000000000 -> "2".
// This is the canonical "signed proper number" grammar fields.Validate
// requires of amount_v2.Amount.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, 18)
}

// FormatUnitsFixed renders an integer token amount keeping exactly the
// token's full decimal precision, e.g. 1_000_000 with 6 decimals ->
// "1.000000". Token amounts are displayed at full precision so a signer
// sees the exact base-unit value; ether amounts use FormatEther's trimmed
// form instead.
func FormatUnitsFixed(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}
	neg := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(abs, scale, frac)

	fracStr := frac.String()
	if pad := decimals - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}

	out := whole.String() + "." + fracStr
	if neg && abs.Sign() != 0 {
		out = "-" + out
	}
	return out
}

// FormatUnits renders an integer token amount with the given number of
// decimal places as a proper decimal string.
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	neg := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(abs, scale, frac)

	fracStr := frac.String()
	if pad := decimals - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")

	out := whole.String()
	if fracStr != "" {
		out += "." + fracStr
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}
