package dispatch

import (
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/svmreg"
	"github.com/ModChain/visualsign/visignerr"
)

var (
	svmDefaultRegistryOnce sync.Once
	svmDefaultRegistry     *svmreg.Registry
)

func svmSharedRegistry() *svmreg.Registry {
	svmDefaultRegistryOnce.Do(func() { svmDefaultRegistry = svmreg.NewDefaultRegistry() })
	return svmDefaultRegistry
}

// resolveAccounts returns the full resolved account key list in the
// canonical static-writable/static-readonly/ALT-writable/ALT-readonly
// ordering, degrading to zero-valued placeholder keys for
// every ALT-sourced slot when the caller supplied no resolver or
// resolution fails, rather than aborting the parse: visualizers must
// tolerate unresolved account keys, not fail on them.
func resolveAccounts(msg *svm.Message, resolver svm.ALTResolver) ([]svm.Key, []string) {
	if !msg.IsVersion0 || len(msg.AddressTableLookups) == 0 {
		return msg.AccountKeys, nil
	}
	keys, err := msg.ResolvedAccounts(resolver)
	if err == nil {
		return keys, nil
	}
	out := append([]svm.Key(nil), msg.AccountKeys...)
	var placeholders []string
	for _, lookup := range msg.AddressTableLookups {
		for _, idx := range lookup.WritableIndices {
			out = append(out, svm.Key{})
			placeholders = append(placeholders, altPlaceholder(lookup.TableAddress, idx))
		}
	}
	for _, lookup := range msg.AddressTableLookups {
		for _, idx := range lookup.ReadonlyIndices {
			out = append(out, svm.Key{})
			placeholders = append(placeholders, altPlaceholder(lookup.TableAddress, idx))
		}
	}
	return out, placeholders
}

// altPlaceholder is the display form of an unresolved loaded key.
func altPlaceholder(table svm.Key, idx uint8) string {
	return "ALT(" + table.String() + ")[" + strconv.Itoa(int(idx)) + "]"
}

func parseSVM(ctx *chain.Context, data []byte, resolver svm.ALTResolver) (*fields.SignablePayload, error) {
	tx, err := svm.Parse(data)
	if err != nil {
		return nil, err
	}
	msg := tx.Message

	accounts, placeholders := resolveAccounts(msg, resolver)

	p := fields.New(fields.PayloadSolana, "Solana Transaction")
	p.Add(fields.Text("Network", "Solana"))
	if len(accounts) > 0 {
		p.Add(fields.Address("Fee Payer", accounts[0].String(), "", ""))
	}
	p.Add(fields.Text("Recent Blockhash", msg.RecentBlockhash.String()))
	if len(placeholders) > 0 {
		p.Add(fields.Unknown("Address Lookup Tables", "0x",
			"address lookup tables referenced by this message could not be resolved; loaded keys degrade to raw placeholder display"))
		staticCount := len(msg.AccountKeys)
		for i, ph := range placeholders {
			label := "Loaded account " + strconv.Itoa(staticCount+i)
			p.Add(fields.Text(label, ph))
		}
	}

	p.Add(fields.Divider(""))

	for i, instr := range msg.Instructions {
		view, err := describeInstruction(ctx, accounts, instr)
		if err != nil {
			p.Add(fields.Unknown("Instruction "+strconv.Itoa(i), "0x"+hex.EncodeToString(instr.Data), err.Error()))
			continue
		}
		p.Add(view.PreviewField("Instruction " + strconv.Itoa(i)))
	}

	return p, nil
}

func describeInstruction(ctx *chain.Context, accounts []svm.Key, instr svm.CompiledInstruction) (*svmreg.InstructionView, error) {
	if int(instr.ProgramIDIndex) >= len(accounts) {
		return nil, visignerr.Resolution("AccountIndexOutOfRange", nil)
	}
	programID := accounts[instr.ProgramIDIndex]

	ixAccounts := make([]svm.Key, len(instr.AccountIndices))
	for i, idx := range instr.AccountIndices {
		if int(idx) >= len(accounts) {
			return nil, visignerr.Resolution("AccountIndexOutOfRange", nil)
		}
		ixAccounts[i] = accounts[idx]
	}

	v, ok := svmSharedRegistry().Lookup(programID, instr.Data)
	if !ok {
		return unknownProgramView(programID, ixAccounts, instr.Data), nil
	}

	view, err := v(ctx, programID, ixAccounts, instr.Data)
	if err != nil {
		// A preset that matched but cannot decode its arguments degrades to
		// the unknown-program rendering for this one instruction; the rest
		// of the message still renders.
		return unknownProgramView(programID, ixAccounts, instr.Data), nil
	}
	return view, nil
}

func unknownProgramView(programID svm.Key, accounts []svm.Key, data []byte) *svmreg.InstructionView {
	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Program", programID.String(), "", "")),
		fields.Annotate(fields.Unknown("Instruction data", "0x"+hex.EncodeToString(data),
			"no visualizer could decode this program instruction; raw data shown")),
	}
	for i, a := range accounts {
		expanded = append(expanded, fields.Annotate(fields.Address("Account "+strconv.Itoa(i), a.String(), "", "")))
	}
	return &svmreg.InstructionView{
		Title:    "Unknown Program",
		Subtitle: programID.String(),
		Expanded: expanded,
	}
}
