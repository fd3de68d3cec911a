package svmreg

import (
	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
)

var associatedTokenAccountProgram = mustKey("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

func registerAssociatedTokenAccount(r *Registry) {
	// Both Create and CreateIdempotent take no borsh-encoded arguments: the
	// single instruction-data byte (0 or 1) is the whole payload, and every
	// account is passed positionally.
	r.Register(associatedTokenAccountProgram, []byte{0}, visualizeATACreate)
	r.Register(associatedTokenAccountProgram, []byte{1}, visualizeATACreateIdempotent)
}

func visualizeATA(ctx *chain.Context, accounts []svm.Key, idempotent bool) *InstructionView {
	title := "Create Token Account"
	if idempotent {
		title = "Create Token Account (idempotent)"
	}
	view := &InstructionView{Title: title}
	if len(accounts) >= 6 {
		view.Condensed = summaryField("Token account for " + mintSymbol(ctx, accounts[3]) + " owned by " + shortKey(accounts[2]))
		view.Expanded = []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Funding account", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("Associated token account", accounts[1].String(), "", "")),
			fields.Annotate(fields.Address("Wallet", accounts[2].String(), "", "")),
			fields.Annotate(fields.Address("Mint", accounts[3].String(), "", mintSymbol(ctx, accounts[3]))),
		}
	} else {
		view.Expanded = []*fields.AnnotatedField{
			fields.Annotate(fields.Text("Action", title)),
		}
	}
	return view
}

func visualizeATACreate(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	return visualizeATA(ctx, accounts, false), nil
}

func visualizeATACreateIdempotent(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	return visualizeATA(ctx, accounts, true), nil
}
