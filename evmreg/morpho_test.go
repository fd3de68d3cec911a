package evmreg_test

import (
	"strings"
	"testing"

	"github.com/ModChain/visualsign/evmreg"
	"github.com/ModChain/visualsign/fields"
)

const vaultAddr = "aabbccddeeff00112233445566778899aabbccdd"

func buildLegacyMulticall(calls [][]byte) []byte {
	return cat(sel("multicall(bytes[])"), wi(0x20), encBytesArray(calls))
}

func TestMorphoBundlerTransferFromThenDeposit(t *testing.T) {
	transferFrom := cat(
		sel("erc20TransferFrom(address,address,uint256)"),
		waddr(usdcAddr),
		waddr(recipientAddr),
		wi(100_000_000),
	)
	deposit := cat(
		sel("erc4626Deposit(address,uint256,uint256,address)"),
		waddr(vaultAddr),
		wi(100_000_000),
		wi(99_000_000),
		waddr(recipientAddr),
	)

	calldata := buildLegacyMulticall([][]byte{transferFrom, deposit})
	view := must(evmreg.DecodeCall(testCtx(), addr20(bundlerAddr), calldata))

	if view.Title != "Morpho Bundler (2 actions)" {
		t.Fatalf("Title = %q", view.Title)
	}

	// Expanded: bundler address, then one preview per action.
	if len(view.Expanded) != 3 {
		t.Fatalf("expected 3 expanded fields, got %d", len(view.Expanded))
	}

	pull := view.Expanded[1].Field
	if pull.PreviewLayout == nil || pull.PreviewLayout.Title != "Token Transfer From" {
		t.Fatalf("action 0 = %+v", pull)
	}
	if got := condensedText(pull); got != "Pull 100.000000 USDC from 0x1234...7890" {
		t.Fatalf("action 0 condensed = %q", got)
	}

	dep := view.Expanded[2].Field
	if dep.PreviewLayout == nil || dep.PreviewLayout.Title != "Vault Deposit" {
		t.Fatalf("action 1 = %+v", dep)
	}
	depFields := dep.PreviewLayout.Expanded.Fields
	if depFields[1].Field.Number == nil || depFields[1].Field.Number.Number != "100000000" {
		t.Fatalf("deposit assets = %+v", depFields[1].Field)
	}
}

func TestMorphoBundlerUnrecognizedAction(t *testing.T) {
	bogus := cat([]byte{0xde, 0xad, 0xbe, 0xef}, wi(7))
	calldata := buildLegacyMulticall([][]byte{bogus})

	view := must(evmreg.DecodeCall(testCtx(), addr20(bundlerAddr), calldata))

	if view.Title != "Morpho Bundler (1 action)" {
		t.Fatalf("Title = %q", view.Title)
	}
	action := view.Expanded[1].Field
	unknown := action.PreviewLayout.Expanded.Fields[0].Field
	if unknown.Unknown == nil {
		t.Fatalf("expected an unknown field, got %+v", unknown)
	}
	if !strings.Contains(unknown.Unknown.Explanation, "Unrecognized bundler action 0xdeadbeef") {
		t.Fatalf("explanation = %q", unknown.Unknown.Explanation)
	}
}

func TestMorphoBundlerCallTupleShape(t *testing.T) {
	// multicall(Call[]) with one erc20Transfer forwarding 1 USDC plus an
	// attached ETH value and skipRevert set.
	inner := cat(
		sel("erc20Transfer(address,address,uint256)"),
		waddr(usdcAddr),
		waddr(recipientAddr),
		wi(1_000_000),
	)

	// One Call tuple: (address target, bytes data, uint256 value, bool
	// skipRevert, bytes32 callbackHash). The tuple is dynamic (contains
	// bytes), so the array region holds one offset then the tuple body.
	tupleBody := cat(
		waddr(vaultAddr), // target
		wi(0xa0),         // data offset: 5 head words
		wi(1),            // value: 1 wei
		wi(1),            // skipRevert: true
		w(nil),           // callbackHash: zero
		encBytesVal(inner),
	)
	arrayEnc := cat(wi(1), wi(0x20), tupleBody)
	calldata := cat(sel("multicall((address,bytes,uint256,bool,bytes32)[])"), wi(0x20), arrayEnc)

	view := must(evmreg.DecodeCall(testCtx(), addr20(bundlerAddr), calldata))

	if view.Title != "Morpho Bundler (1 action)" {
		t.Fatalf("Title = %q", view.Title)
	}
	action := view.Expanded[1].Field
	if action.PreviewLayout == nil || action.PreviewLayout.Title != "Token Transfer" {
		t.Fatalf("action = %+v", action)
	}

	var sawSkipRevert bool
	for _, af := range action.PreviewLayout.Expanded.Fields {
		if af.Field.Label == "On revert" {
			sawSkipRevert = true
		}
	}
	if !sawSkipRevert {
		t.Fatal("skipRevert flag was not surfaced")
	}
}

// TestNestedMulticallDepthIsBounded builds 64 nested multicalls and checks
// the walk stops with a DepthExceeded unknown field instead of recursing
// without bound, while the outer payload still validates.
func TestNestedMulticallDepthIsBounded(t *testing.T) {
	calldata := cat(
		sel("transfer(address,uint256)"),
		waddr(recipientAddr),
		wi(1),
	)
	for i := 0; i < 64; i++ {
		calldata = buildLegacyMulticall([][]byte{calldata})
	}

	view := must(evmreg.DecodeCall(testCtx(), addr20(bundlerAddr), calldata))

	p := fields.New(fields.PayloadEthereum, "t")
	p.Add(view.PreviewField("Action"))
	if err := p.Validate(); err != nil {
		t.Fatalf("payload with depth-bounded tree failed validation: %s", err)
	}

	if !treeContainsExplanation(view.Expanded, "DepthExceeded") {
		t.Fatal("expected a DepthExceeded unknown field somewhere in the rendered tree")
	}
}

func treeContainsExplanation(fs []*fields.AnnotatedField, needle string) bool {
	for _, af := range fs {
		f := af.Field
		if f.Unknown != nil && strings.Contains(f.Unknown.Explanation, needle) {
			return true
		}
		if f.PreviewLayout != nil {
			if treeContainsExplanation(f.PreviewLayout.Expanded.Fields, needle) {
				return true
			}
		}
		if f.ListLayout != nil {
			if treeContainsExplanation(f.ListLayout.Fields, needle) {
				return true
			}
		}
	}
	return false
}
