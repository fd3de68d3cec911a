package evm_test

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ModChain/visualsign/evm"
)

// Fixture is block 12345678's last transaction, a pre-London legacy
// transfer (same fixture outscript's evmtx_test.go uses for the same
// reason: it's real mainnet RLP, not hand-assembled bytes).
const legacyTxHex = "f86b1e8507ea8ed4008252089443badf0e63ac147ace611dc1113afe0ea3f8691787d529ae9e8600008026a0cacce90eb140f837a139e5d8acbe73527663aea163d4e4c6e8218681d1d37b0fa07fdb860517234804b71bbc518ecb4dc4bb96c1944ab28d502fc429baac939b3c"

func TestParseLegacyTransaction(t *testing.T) {
	tx := must(evm.Parse(must(hex.DecodeString(legacyTxHex))))

	if tx.Type != evm.TxLegacy {
		t.Fatalf("Type = %v, want TxLegacy", tx.Type)
	}
	if tx.Nonce != 30 {
		t.Fatalf("Nonce = %d, want 30", tx.Nonce)
	}
	if tx.Gas != 21000 {
		t.Fatalf("Gas = %d, want 21000", tx.Gas)
	}
	if !strings.EqualFold(tx.ToAddress(), "0x43badf0e63ac147ace611dc1113afe0ea3f86917") {
		t.Fatalf("ToAddress() = %s", tx.ToAddress())
	}
	if tx.EffectiveChainID() != 1 {
		t.Fatalf("EffectiveChainID() = %d, want 1 (EIP-155 mainnet)", tx.EffectiveChainID())
	}
	if len(tx.Data) != 0 {
		t.Fatalf("expected empty Data for a plain transfer, got %d bytes", len(tx.Data))
	}
}

func TestParseRejectsTrailingBytes(t *testing.T) {
	raw := must(hex.DecodeString(legacyTxHex))
	raw = append(raw, 0x00)
	if _, err := evm.Parse(raw); err == nil {
		t.Fatal("expected an error for trailing bytes after the RLP envelope")
	}
}

func TestParseRejectsUnknownEnvelopeByte(t *testing.T) {
	// 0x7f is an undefined typed-envelope tag; 0x80-0xbf are RLP string
	// prefixes, which are not a legacy transaction list either.
	for _, b := range []byte{0x7f, 0x80, 0xbf} {
		if _, err := evm.Parse([]byte{b, 0x01}); err == nil {
			t.Errorf("expected UnsupportedTxType for envelope byte %#02x", b)
		}
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, err := evm.Parse(nil); err == nil {
		t.Fatal("expected an error for empty input")
	}
}

func TestChecksumIsStableAndMixedCase(t *testing.T) {
	addr := must(hex.DecodeString("43badf0e63ac147ace611dc1113afe0ea3f86917"))
	got := evm.Checksum(addr)
	if !strings.HasPrefix(got, "0x") {
		t.Fatalf("Checksum() = %s, want 0x prefix", got)
	}
	if strings.ToLower(got) != "0x43badf0e63ac147ace611dc1113afe0ea3f86917" {
		t.Fatalf("Checksum() lowercase mismatch: %s", got)
	}
	if got == strings.ToLower(got) || got == strings.ToUpper(got) {
		t.Fatalf("Checksum() = %s, expected a mix of upper/lower case hex digits", got)
	}
	if evm.Checksum(addr) != got {
		t.Fatal("Checksum must be deterministic across calls")
	}
}

func TestFormatUnitsTrimsTrailingZeros(t *testing.T) {
	cases := []struct {
		wei  *big.Int
		want string
	}{
		{big.NewInt(0), "0"},
		{big.NewInt(1_500_000_000_000_000_000), "1.5"},
		{new(big.Int).Mul(big.NewInt(2), big.NewInt(1_000_000_000_000_000_000)), "2"},
		{big.NewInt(-1_500_000_000_000_000_000), "-1.5"},
	}
	for _, c := range cases {
		got := evm.FormatEther(c.wei)
		if got != c.want {
			t.Errorf("FormatEther(%s) = %q, want %q", c.wei, got, c.want)
		}
	}
}

func TestFormatUnitsNilIsZero(t *testing.T) {
	if got := evm.FormatUnits(nil, 18); got != "0" {
		t.Fatalf("FormatUnits(nil, 18) = %q, want %q", got, "0")
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
