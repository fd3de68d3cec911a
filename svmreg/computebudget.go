package svmreg

import (
	"encoding/binary"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/visignerr"
)

var computeBudgetProgram = mustKey("ComputeBudget111111111111111111111111111111")

func registerComputeBudget(r *Registry) {
	r.Register(computeBudgetProgram, []byte{2}, visualizeSetComputeUnitLimit)
	r.Register(computeBudgetProgram, []byte{3}, visualizeSetComputeUnitPrice)
}

func visualizeSetComputeUnitLimit(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(data) < 5 {
		return nil, visignerr.Calldata("BadComputeUnitLimitInstruction", -1, nil)
	}
	units := formatUint64(uint64(binary.LittleEndian.Uint32(data[1:5])))
	return &InstructionView{
		Title:     "Set Compute Unit Limit",
		Condensed: summaryField(units + " compute units"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Number("Compute unit limit", units, units)),
		},
	}, nil
}

func visualizeSetComputeUnitPrice(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(data) < 9 {
		return nil, visignerr.Calldata("BadComputeUnitPriceInstruction", -1, nil)
	}
	price := formatUint64(binary.LittleEndian.Uint64(data[1:9]))
	return &InstructionView{
		Title:     "Set Compute Unit Price",
		Condensed: summaryField(price + " micro-lamports per unit"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Number("Compute unit price (micro-lamports)", price, price)),
		},
	}, nil
}
