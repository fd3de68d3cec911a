package svmreg

import (
	"encoding/binary"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/visignerr"
)

var splTokenProgram = mustKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

// SPL Token instruction tags (single byte, legacy SPL convention).
const (
	splTokenTransfer        = 3
	splTokenApprove         = 4
	splTokenTransferChecked = 12
)

func registerSPLToken(r *Registry) {
	r.Register(splTokenProgram, []byte{splTokenTransfer}, visualizeSPLTransfer)
	r.Register(splTokenProgram, []byte{splTokenApprove}, visualizeSPLApprove)
	r.Register(splTokenProgram, []byte{splTokenTransferChecked}, visualizeSPLTransferChecked)
}

// visualizeSPLTransfer handles the legacy Transfer: amount only, no mint in
// the account list, so the amount stays in raw base units.
func visualizeSPLTransfer(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 3 || len(data) < 9 {
		return nil, visignerr.Calldata("BadTokenTransferInstruction", -1, nil)
	}
	amount := formatUint64(binary.LittleEndian.Uint64(data[1:9]))

	return &InstructionView{
		Title:     "Token Transfer",
		Condensed: summaryField(amount + " base units → " + shortKey(accounts[1])),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Source token account", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("Destination token account", accounts[1].String(), "", "")),
			fields.Annotate(fields.Address("Authority", accounts[2].String(), "", "")),
			fields.Annotate(fields.Amount("Amount", amount, "", amount+" raw units")),
		},
	}, nil
}

func visualizeSPLApprove(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 3 || len(data) < 9 {
		return nil, visignerr.Calldata("BadTokenApproveInstruction", -1, nil)
	}
	amount := formatUint64(binary.LittleEndian.Uint64(data[1:9]))

	return &InstructionView{
		Title:     "Token Approve",
		Condensed: summaryField("Delegate " + amount + " base units to " + shortKey(accounts[1])),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Token account", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("Delegate", accounts[1].String(), "", "")),
			fields.Annotate(fields.Address("Owner", accounts[2].String(), "", "")),
			fields.Annotate(fields.Amount("Amount", amount, "", amount+" raw units")),
		},
	}, nil
}

// visualizeSPLTransferChecked handles TransferChecked, which carries the
// mint at account index 1 and the expected decimals in the instruction
// itself, so the amount renders at its true precision even for mints the
// embedded registry does not know.
func visualizeSPLTransferChecked(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 4 || len(data) < 10 {
		return nil, visignerr.Calldata("BadTokenTransferCheckedInstruction", -1, nil)
	}
	rawAmount := binary.LittleEndian.Uint64(data[1:9])
	decimals := int(data[9])
	mint := accounts[1]

	symbol, _, known := mintInfo(ctx, mint)
	amount := evm.FormatUnitsFixed(bigFromUint64(rawAmount), decimals)
	display := amount
	if known {
		display += " " + symbol
	}

	return &InstructionView{
		Title:     "Token Transfer",
		Subtitle:  mintSymbol(ctx, mint),
		Condensed: summaryField(display + " → " + shortKey(accounts[2])),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Source token account", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("Mint", mint.String(), "", mintSymbol(ctx, mint))),
			fields.Annotate(fields.Address("Destination token account", accounts[2].String(), "", "")),
			fields.Annotate(fields.Address("Authority", accounts[3].String(), "", "")),
			fields.Annotate(fields.Amount("Amount", amount, symbol, display)),
		},
	}, nil
}
