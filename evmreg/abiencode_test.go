package evmreg_test

import (
	"context"
	"encoding/hex"
	"math/big"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/registry"
)

// Minimal ABI encoding helpers so fixtures are assembled readably instead
// of as opaque hex blobs. Encoding is the mirror of the decoder under test,
// written independently here from the ABI v2 layout rules.

func w(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func wi(v int64) []byte {
	return w(big.NewInt(v).Bytes())
}

func wbig(v *big.Int) []byte {
	return w(v.Bytes())
}

func addrBytes(hexAddr string) []byte {
	b, err := hex.DecodeString(hexAddr)
	if err != nil {
		panic(err)
	}
	return b
}

func waddr(hexAddr string) []byte {
	return w(addrBytes(hexAddr))
}

func addr20(hexAddr string) [20]byte {
	var out [20]byte
	copy(out[:], addrBytes(hexAddr))
	return out
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func padRight(b []byte) []byte {
	out := append([]byte(nil), b...)
	for len(out)%32 != 0 {
		out = append(out, 0)
	}
	return out
}

// encBytesVal encodes a dynamic `bytes` value: length word + padded data.
func encBytesVal(b []byte) []byte {
	return cat(wi(int64(len(b))), padRight(b))
}

// encBytesArray encodes a bytes[]: length word, per-element offsets
// relative to the start of the element-offset region, then each element.
func encBytesArray(items [][]byte) []byte {
	out := wi(int64(len(items)))
	off := 32 * len(items)
	var tails []byte
	for _, it := range items {
		enc := encBytesVal(it)
		out = append(out, wi(int64(off))...)
		off += len(enc)
		tails = append(tails, enc...)
	}
	return append(out, tails...)
}

func sel(signature string) []byte {
	s := evm.Selector(signature)
	return s[:]
}

func testCtx() *chain.Context {
	ctx := chain.NewContext(context.Background(), chain.EVM, 1, chain.DefaultLimits())
	ctx.Contracts = registry.Embedded()
	return ctx
}

func condensedText(f *fields.Field) string {
	if f.PreviewLayout == nil || len(f.PreviewLayout.Condensed.Fields) == 0 {
		return ""
	}
	af := f.PreviewLayout.Condensed.Fields[0]
	if af.Field.TextV2 == nil {
		return af.Field.FallbackText
	}
	return af.Field.TextV2.Text
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Well-known mainnet addresses used across the fixtures.
const (
	usdtAddr      = "dac17f958d2ee523a2206206994597c13d831ec7"
	usdcAddr      = "a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	wethAddr      = "c02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	routerAddr    = "3fc91a3afd70395cd496c647d5a6cc9d4b2b7fad"
	bundlerAddr   = "4095f064b8d3c3548a3bebfd0bbfd04750e30077"
	recipientAddr = "1234567890123456789012345678901234567890"
)
