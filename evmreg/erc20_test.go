package evmreg_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ModChain/visualsign/evmreg"
)

func TestERC20TransferCondensedAndExpanded(t *testing.T) {
	calldata := cat(
		sel("transfer(address,uint256)"),
		waddr(recipientAddr),
		wi(1_000_000),
	)

	view := must(evmreg.DecodeCall(testCtx(), addr20(usdtAddr), calldata))

	if view.Title != "Transfer" {
		t.Fatalf("Title = %q, want Transfer", view.Title)
	}
	if !view.Recognized {
		t.Fatal("expected the ERC-20 preset to mark the call recognized")
	}

	f := view.PreviewField("Action")
	if got := condensedText(f); got != "1.000000 USDT → 0x1234...7890" {
		t.Fatalf("condensed = %q", got)
	}

	expanded := f.PreviewLayout.Expanded.Fields
	if len(expanded) != 3 {
		t.Fatalf("expected 3 expanded fields, got %d", len(expanded))
	}
	token := expanded[0].Field
	if token.AddressV2 == nil || token.AddressV2.AssetLabel != "USDT" {
		t.Fatalf("token field should carry the USDT asset label, got %+v", token.AddressV2)
	}
	amount := expanded[1].Field
	if amount.AmountV2 == nil || amount.AmountV2.Amount != "1.000000" || amount.AmountV2.Abbreviation != "USDT" {
		t.Fatalf("amount field = %+v", amount.AmountV2)
	}
}

func TestERC20TransferUnknownTokenFallsBackToRawUnits(t *testing.T) {
	unknownToken := addr20("00112233445566778899aabbccddeeff00112233")
	calldata := cat(
		sel("transfer(address,uint256)"),
		waddr(recipientAddr),
		wi(42),
	)

	view := must(evmreg.DecodeCall(testCtx(), unknownToken, calldata))

	f := view.PreviewField("Action")
	amount := f.PreviewLayout.Expanded.Fields[1].Field
	if amount.AmountV2 == nil || amount.AmountV2.Amount != "42" {
		t.Fatalf("amount = %+v, want raw 42", amount.AmountV2)
	}
	if amount.AmountV2.Abbreviation != "" {
		t.Fatalf("unknown-decimals amount must omit Abbreviation, got %q", amount.AmountV2.Abbreviation)
	}
	if !strings.Contains(amount.FallbackText, "raw units") {
		t.Fatalf("FallbackText should note raw units, got %q", amount.FallbackText)
	}
}

func TestERC20ApproveUnlimited(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	calldata := cat(
		sel("approve(address,uint256)"),
		waddr(recipientAddr),
		wbig(max),
	)

	view := must(evmreg.DecodeCall(testCtx(), addr20(usdcAddr), calldata))

	if view.Title != "Approve" {
		t.Fatalf("Title = %q", view.Title)
	}
	f := view.PreviewField("Action")
	if got := condensedText(f); !strings.Contains(got, "unlimited USDC") {
		t.Fatalf("condensed = %q, want unlimited USDC allowance summary", got)
	}
}

func TestUnrecognizedSelectorDegradesToUnknown(t *testing.T) {
	calldata := cat([]byte{0xde, 0xad, 0xbe, 0xef}, wi(1))

	view := must(evmreg.DecodeCall(testCtx(), addr20(usdcAddr), calldata))

	if view.Recognized {
		t.Fatal("an unregistered selector must not be marked recognized")
	}
	if len(view.Expanded) != 1 || view.Expanded[0].Field.Unknown == nil {
		t.Fatalf("expected a single unknown field, got %+v", view.Expanded)
	}
}

func TestTruncatedCalldataDegradesToUnknown(t *testing.T) {
	view := must(evmreg.DecodeCall(testCtx(), addr20(usdcAddr), []byte{0xa9}))

	if len(view.Expanded) != 1 || view.Expanded[0].Field.Unknown == nil {
		t.Fatalf("expected a single unknown field for truncated calldata, got %+v", view.Expanded)
	}
}
