// Package svmreg is the SVM visualizer registry, keyed by program ID and an
// instruction discriminator (the first data byte for native programs, or
// the first 8 bytes for Anchor-style programs such as Jupiter), mirroring
// evmreg's address+selector dispatch for the Solana account model.
package svmreg

import (
	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
)

// InstructionView is a visualizer's rendering of one instruction: a human
// title, an optional subtitle, a flat one-line Condensed summary, and the
// full Expanded field list.
type InstructionView struct {
	Title     string
	Subtitle  string
	Condensed []*fields.AnnotatedField
	Expanded  []*fields.AnnotatedField
}

// condensedFields returns the Condensed tier, defaulting to a one-line
// title when the visualizer supplied none.
func (v *InstructionView) condensedFields() []*fields.AnnotatedField {
	if len(v.Condensed) > 0 {
		return v.Condensed
	}
	return []*fields.AnnotatedField{fields.Annotate(fields.Text("Instruction", v.Title))}
}

// PreviewField folds the view into one preview_layout field.
func (v *InstructionView) PreviewField(label string) *fields.Field {
	return fields.Preview(label, v.Title, v.Subtitle, v.condensedFields(), v.Expanded)
}

// Visualizer renders one compiled instruction. accounts are the
// instruction's resolved account keys, in instruction order (already
// indexed out of the message's account list by the caller).
type Visualizer func(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error)

type regKey struct {
	program svm.Key
	disc    string
}

// Registry dispatches on (program ID, discriminator).
type Registry struct {
	entries map[regKey]Visualizer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[regKey]Visualizer)}
}

// Register adds a visualizer for a program+discriminator pair.
func (r *Registry) Register(program svm.Key, discriminator []byte, v Visualizer) {
	r.entries[regKey{program, string(discriminator)}] = v
}

// Lookup resolves the visualizer for an instruction. Different program
// families use different discriminator widths: Anchor programs (Jupiter)
// use an 8-byte sighash, the System program uses a 4-byte little-endian
// instruction index, and the SPL convention (also used by Compute Budget)
// is a single tag byte. All three widths are tried, widest first, since a
// narrower prefix of a wider discriminator could otherwise collide.
func (r *Registry) Lookup(program svm.Key, data []byte) (Visualizer, bool) {
	for _, width := range []int{8, 4, 1} {
		if len(data) >= width {
			if v, ok := r.entries[regKey{program, string(data[:width])}]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// NewDefaultRegistry returns the registry pre-populated with every preset
// this module ships.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerSystemProgram(r)
	registerComputeBudget(r)
	registerAssociatedTokenAccount(r)
	registerSPLToken(r)
	registerStakePool(r)
	registerJupiter(r)
	return r
}
