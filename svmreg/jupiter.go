package svmreg

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/visignerr"
)

var jupiterAggregatorV6 = mustKey("JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4")

// anchorDiscriminator derives the 8-byte Anchor instruction sighash the way
// every Anchor-generated program (Jupiter included) computes it:
// sha256("global:<instruction_name>")[:8].
func anchorDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}

// jupiterRouteShape describes how one route-family instruction lays out its
// arguments and which account-meta indices carry the mints. A mint index
// of -1 means that variant does not carry the mint
// (the legacy route instructions know only the destination mint; the
// source is implied by the user's source token account).
type jupiterRouteShape struct {
	name string
	// sharedID is true for the shared_accounts_* variants, whose argument
	// list starts with an extra id:u8 before the route plan.
	sharedID bool
	// exactOut flips the roles of the two u64 amounts: (out_amount,
	// quoted_in_amount) instead of (in_amount, quoted_out_amount).
	exactOut bool
	// tokenLedger variants omit the input amount entirely: it is read at
	// execution time from a previously-populated token ledger account.
	tokenLedger   bool
	srcMintIndex  int
	destMintIndex int
}

var jupiterRouteShapes = []jupiterRouteShape{
	{name: "route", srcMintIndex: -1, destMintIndex: 5},
	{name: "route_with_token_ledger", tokenLedger: true, srcMintIndex: -1, destMintIndex: 5},
	{name: "exact_out_route", exactOut: true, srcMintIndex: 5, destMintIndex: 6},
	{name: "shared_accounts_route", sharedID: true, srcMintIndex: 7, destMintIndex: 8},
	{name: "shared_accounts_route_with_token_ledger", sharedID: true, tokenLedger: true, srcMintIndex: 7, destMintIndex: 8},
	{name: "shared_accounts_exact_out_route", sharedID: true, exactOut: true, srcMintIndex: 7, destMintIndex: 8},
}

func registerJupiter(r *Registry) {
	for _, shape := range jupiterRouteShapes {
		s := shape
		r.Register(jupiterAggregatorV6, anchorDiscriminator(s.name),
			func(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
				return visualizeJupiterRoute(ctx, s, accounts, data)
			})
	}
}

// visualizeJupiterRoute decodes one route-family instruction. The route
// plan itself is a borsh Vec of variable-width RoutePlanStep values (each
// carries a large Swap enum); it is surfaced as raw bytes with its declared
// step count rather than walked, and the fixed-width amount/slippage tail
// is located from the end of the instruction.
func visualizeJupiterRoute(ctx *chain.Context, shape jupiterRouteShape, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(data) < 8 {
		return nil, visignerr.Calldata("BadJupiterRouteInstruction", -1, nil)
	}
	body := data[8:]
	if shape.sharedID {
		if len(body) < 1 {
			return nil, visignerr.Calldata("BadJupiterRouteInstruction", -1, nil)
		}
		body = body[1:] // id: u8
	}
	if len(body) < 4 {
		return nil, visignerr.Calldata("BadJupiterRouteInstruction", -1, nil)
	}
	planSteps := binary.LittleEndian.Uint32(body[:4])

	// Tail layout: [amount u64] [quoted u64] slippage_bps u16, platform_fee_bps u8.
	// Token-ledger variants omit the first amount.
	tailLen := 8 + 8 + 2 + 1
	if shape.tokenLedger {
		tailLen = 8 + 2 + 1
	}
	if len(body) < 4+tailLen {
		return nil, visignerr.Calldata("BadJupiterRouteInstruction", -1, nil)
	}
	tail := body[len(body)-tailLen:]
	routePlan := body[4 : len(body)-tailLen]

	var inAmount, outAmount uint64
	var haveIn bool
	pos := 0
	if !shape.tokenLedger {
		first := binary.LittleEndian.Uint64(tail[0:8])
		second := binary.LittleEndian.Uint64(tail[8:16])
		if shape.exactOut {
			outAmount, inAmount = first, second
		} else {
			inAmount, outAmount = first, second
		}
		haveIn = true
		pos = 16
	} else {
		outAmount = binary.LittleEndian.Uint64(tail[0:8])
		pos = 8
	}
	slippageBps := binary.LittleEndian.Uint16(tail[pos : pos+2])
	platformFeeBps := tail[pos+2]

	srcMint, haveSrc := mintAt(accounts, shape.srcMintIndex)
	destMint, haveDest := mintAt(accounts, shape.destMintIndex)

	inText := "token-ledger amount"
	if haveIn {
		if haveSrc {
			inText = mintAmountText(ctx, srcMint, inAmount)
		} else {
			inText = formatUint64(inAmount) + " base units"
		}
	}
	outText := formatUint64(outAmount) + " base units"
	if haveDest {
		outText = mintAmountText(ctx, destMint, outAmount)
	}

	summary := "Swap " + inText + " → min " + outText
	if shape.exactOut {
		summary = "Swap max " + inText + " → " + outText
	}

	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Text("Route", shape.name)),
	}
	if haveSrc {
		expanded = append(expanded, fields.Annotate(fields.Address("Input mint", srcMint.String(), "", mintSymbol(ctx, srcMint))))
	}
	if haveDest {
		expanded = append(expanded, fields.Annotate(fields.Address("Output mint", destMint.String(), "", mintSymbol(ctx, destMint))))
	}
	if haveIn {
		label := "Input amount"
		if shape.exactOut {
			label = "Maximum input amount"
		}
		if haveSrc {
			expanded = append(expanded, fields.Annotate(mintAmountField(ctx, label, srcMint, inAmount)))
		} else {
			raw := formatUint64(inAmount)
			expanded = append(expanded, fields.Annotate(fields.Amount(label, raw, "", raw+" raw units")))
		}
	} else {
		expanded = append(expanded, fields.Annotate(fields.Text("Input amount", "read from token ledger at execution")))
	}
	outLabel := "Minimum output amount"
	if shape.exactOut {
		outLabel = "Output amount"
	}
	if haveDest {
		expanded = append(expanded, fields.Annotate(mintAmountField(ctx, outLabel, destMint, outAmount)))
	} else {
		raw := formatUint64(outAmount)
		expanded = append(expanded, fields.Annotate(fields.Amount(outLabel, raw, "", raw+" raw units")))
	}
	slip := formatUint64(uint64(slippageBps))
	expanded = append(expanded, fields.Annotate(fields.Number("Slippage (bps)", slip, slip)))
	if platformFeeBps != 0 {
		fee := strconv.Itoa(int(platformFeeBps))
		expanded = append(expanded, fields.Annotate(fields.Number("Platform fee (bps)", fee, fee)))
	}
	steps := formatUint64(uint64(planSteps))
	expanded = append(expanded, fields.Annotate(fields.Number("Route steps", steps, steps)))
	if len(routePlan) > 0 {
		expanded = append(expanded, fields.Annotate(fields.Unknown("Route plan", "0x"+hex.EncodeToString(routePlan),
			"borsh-encoded route plan ("+steps+" steps); per-step venues are executed on-chain exactly as encoded here")))
	}
	if len(accounts) > 0 {
		expanded = append(expanded, fields.Annotate(fields.Address("User", userAuthority(shape, accounts).String(), "", "")))
	}

	return &InstructionView{
		Title:     "Jupiter Swap",
		Subtitle:  shape.name,
		Condensed: summaryField(summary),
		Expanded:  expanded,
	}, nil
}

func mintAt(accounts []svm.Key, idx int) (svm.Key, bool) {
	if idx < 0 || idx >= len(accounts) {
		return svm.Key{}, false
	}
	return accounts[idx], true
}

// userAuthority returns the user's transfer-authority account: index 1 for
// the legacy route layouts, index 2 for the shared-accounts layouts (which
// insert the program authority at index 1).
func userAuthority(shape jupiterRouteShape, accounts []svm.Key) svm.Key {
	idx := 1
	if shape.sharedID {
		idx = 2
	}
	if idx >= len(accounts) {
		return accounts[0]
	}
	return accounts[idx]
}
