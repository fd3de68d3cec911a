package evmreg_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ModChain/visualsign/evmreg"
)

// buildExecuteCalldata assembles execute(bytes commands, bytes[] inputs,
// uint256 deadline) calldata from its parts.
func buildExecuteCalldata(commands []byte, inputs [][]byte, deadline int64) []byte {
	commandsEnc := encBytesVal(commands)
	inputsEnc := encBytesArray(inputs)
	head := cat(
		wi(0x60), // commands offset: 3 head words
		wi(int64(0x60+len(commandsEnc))),
		wi(deadline),
	)
	return cat(sel("execute(bytes,bytes[],uint256)"), head, commandsEnc, inputsEnc)
}

func TestUniversalRouterWrapThenV3Swap(t *testing.T) {
	amountIn := new(big.Int).SetUint64(1_500_000_000_000_000_000) // 1.5 WETH
	minOut := big.NewInt(2_500_000_000)                           // 2500 USDC

	wrapInput := cat(waddr(recipientAddr), wbig(amountIn))

	path := cat(addrBytes(wethAddr), []byte{0x00, 0x0b, 0xb8}, addrBytes(usdcAddr))
	v3Input := cat(
		waddr(recipientAddr),
		wbig(amountIn),
		wbig(minOut),
		wi(0xa0), // path offset: 5 head words
		wi(1),    // payerIsUser
		encBytesVal(path),
	)

	calldata := buildExecuteCalldata([]byte{0x0b, 0x00}, [][]byte{wrapInput, v3Input}, 1_700_000_000)
	view := must(evmreg.DecodeCall(testCtx(), addr20(routerAddr), calldata))

	if view.Title != "Uniswap Swap" {
		t.Fatalf("Title = %q", view.Title)
	}

	// Expanded: router, deadline, then one preview per command.
	if len(view.Expanded) != 4 {
		t.Fatalf("expected 4 expanded fields, got %d", len(view.Expanded))
	}

	wrap := view.Expanded[2].Field
	if wrap.PreviewLayout == nil || wrap.PreviewLayout.Title != "WRAP_ETH" {
		t.Fatalf("command 0 = %+v, want WRAP_ETH preview", wrap)
	}
	wrapAmount := wrap.PreviewLayout.Expanded.Fields[1].Field
	if wrapAmount.AmountV2 == nil || wrapAmount.AmountV2.Amount != "1.5" || wrapAmount.AmountV2.Abbreviation != "ETH" {
		t.Fatalf("wrap amount = %+v", wrapAmount.AmountV2)
	}

	swap := view.Expanded[3].Field
	if swap.PreviewLayout == nil || swap.PreviewLayout.Title != "V3_SWAP_EXACT_IN" {
		t.Fatalf("command 1 = %+v, want V3_SWAP_EXACT_IN preview", swap)
	}
	swapSummary := condensedText(swap)
	if swapSummary != "Swap 1.500000000000000000 WETH → min 2500.000000 USDC" {
		t.Fatalf("swap condensed = %q", swapSummary)
	}

	var pathText, payerText string
	for _, af := range swap.PreviewLayout.Expanded.Fields {
		switch af.Field.Label {
		case "Path":
			pathText = af.Field.TextV2.Text
		case "Payer":
			payerText = af.Field.TextV2.Text
		}
	}
	if pathText != "WETH -(3000)→ USDC" {
		t.Fatalf("path = %q", pathText)
	}
	if payerText != "user" {
		t.Fatalf("payer = %q", payerText)
	}

	// The outer condensed line surfaces the first swap command's summary.
	if got := condensedText(view.PreviewField("Action")); got != swapSummary {
		t.Fatalf("outer condensed = %q, want the swap summary", got)
	}
}

func TestUniversalRouterUnknownCommandByte(t *testing.T) {
	input := cat(waddr(recipientAddr), wi(1))
	calldata := buildExecuteCalldata([]byte{0x21}, [][]byte{input}, 0)

	view := must(evmreg.DecodeCall(testCtx(), addr20(routerAddr), calldata))

	cmd := view.Expanded[2].Field
	if cmd.PreviewLayout == nil {
		t.Fatalf("expected a preview for the unknown command, got %+v", cmd)
	}
	unknown := cmd.PreviewLayout.Expanded.Fields[0].Field
	if unknown.Unknown == nil {
		t.Fatalf("unknown command must carry an unknown field, got %+v", unknown)
	}
	if !strings.Contains(unknown.Unknown.Explanation, "0x21") {
		t.Fatalf("explanation should name the command byte, got %q", unknown.Unknown.Explanation)
	}
}

func TestUniversalRouterAllowRevertFlagIsMasked(t *testing.T) {
	wrapInput := cat(waddr(recipientAddr), wi(1_000_000_000))
	calldata := buildExecuteCalldata([]byte{0x8b}, [][]byte{wrapInput}, 0) // 0x0b | 0x80

	view := must(evmreg.DecodeCall(testCtx(), addr20(routerAddr), calldata))

	cmd := view.Expanded[2].Field
	if cmd.PreviewLayout == nil || cmd.PreviewLayout.Title != "WRAP_ETH" {
		t.Fatalf("masked command = %+v, want WRAP_ETH", cmd)
	}
}

func TestUniversalRouterEmptyCommands(t *testing.T) {
	calldata := buildExecuteCalldata(nil, nil, 0)

	view := must(evmreg.DecodeCall(testCtx(), addr20(routerAddr), calldata))

	// Router and deadline only: no command previews, and not an error.
	if len(view.Expanded) != 2 {
		t.Fatalf("expected 2 expanded fields for an empty command list, got %d", len(view.Expanded))
	}
}

func TestUniversalRouterMalformedCommandInputDegrades(t *testing.T) {
	// WRAP_ETH expects two words; give it one byte.
	calldata := buildExecuteCalldata([]byte{0x0b}, [][]byte{{0x01}}, 0)

	view := must(evmreg.DecodeCall(testCtx(), addr20(routerAddr), calldata))

	cmd := view.Expanded[2].Field
	unknown := cmd.PreviewLayout.Expanded.Fields[0].Field
	if unknown.Unknown == nil {
		t.Fatalf("malformed command input must degrade to unknown, got %+v", unknown)
	}
}
