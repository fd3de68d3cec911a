package svmreg

import (
	"encoding/binary"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/visignerr"
)

var systemProgram = mustKey("11111111111111111111111111111111")

func mustKey(s string) svm.Key {
	k, err := svm.ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func registerSystemProgram(r *Registry) {
	// The system program's discriminator is a little-endian u32 instruction
	// index: 0 = CreateAccount, 2 = Transfer.
	r.Register(systemProgram, []byte{0, 0, 0, 0}, visualizeSystemCreateAccount)
	r.Register(systemProgram, []byte{2, 0, 0, 0}, visualizeSystemTransfer)
}

func visualizeSystemTransfer(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) != 2 || len(data) < 12 {
		return nil, visignerr.Calldata("BadSystemTransferInstruction", -1, nil)
	}
	lamports := binary.LittleEndian.Uint64(data[4:12])
	amount := solAmount(lamports)

	return &InstructionView{
		Title:     "SOL Transfer",
		Condensed: summaryField(amount + " SOL → " + shortKey(accounts[1])),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("From", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("To", accounts[1].String(), "", "")),
			fields.Annotate(fields.Amount("Amount", amount, "SOL", amount+" SOL")),
		},
	}, nil
}

func visualizeSystemCreateAccount(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) != 2 || len(data) < 4+8+8+32 {
		return nil, visignerr.Calldata("BadSystemCreateAccountInstruction", -1, nil)
	}
	lamports := binary.LittleEndian.Uint64(data[4:12])
	space := binary.LittleEndian.Uint64(data[12:20])
	var owner svm.Key
	copy(owner[:], data[20:52])
	amount := solAmount(lamports)

	return &InstructionView{
		Title:     "Create Account",
		Condensed: summaryField("Create " + shortKey(accounts[1]) + " funded with " + amount + " SOL"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Funder", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("New account", accounts[1].String(), "", "")),
			fields.Annotate(fields.Amount("Funding", amount, "SOL", amount+" SOL")),
			fields.Annotate(fields.Number("Space", formatUint64(space), formatUint64(space))),
			fields.Annotate(fields.Address("Owner program", owner.String(), "", "")),
		},
	}, nil
}
