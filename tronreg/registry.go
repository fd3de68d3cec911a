// Package tronreg renders Tron Contract entries (TransferContract,
// TriggerSmartContract) into annotated fields, generalizing evmreg's
// address+selector dispatch to Tron's ContractType enum plus, for
// TriggerSmartContract, the inner EVM-compatible call data.
package tronreg

import (
	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evmreg"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/tron"
)

const (
	ContractTypeTransfer             = 1
	ContractTypeTriggerSmartContract = 31
)

// Visualize renders one Tron Contract entry.
func Visualize(ctx *chain.Context, c *tron.Contract) ([]*fields.AnnotatedField, error) {
	switch c.Type {
	case ContractTypeTransfer:
		return visualizeTransfer(c)
	case ContractTypeTriggerSmartContract:
		return visualizeTriggerSmartContract(ctx, c)
	default:
		return nil, nil
	}
}

func visualizeTransfer(c *tron.Contract) ([]*fields.AnnotatedField, error) {
	tc, err := tron.ParseTransferContract(c.Parameter)
	if err != nil {
		return nil, err
	}
	amount := formatSun(tc.Amount)
	return []*fields.AnnotatedField{
		fields.Annotate(fields.Address("From", tron.FormatAddress(tc.OwnerAddress), "", "")),
		fields.Annotate(fields.Address("To", tron.FormatAddress(tc.ToAddress), "", "")),
		fields.Annotate(fields.Amount("Amount", amount, "TRX", amount)),
	}, nil
}

// visualizeTriggerSmartContract decodes the inner call data through the
// same EVM ABI-aware registry used for Ethereum, since TVM contracts share
// the EVM ABI encoding convention.
func visualizeTriggerSmartContract(ctx *chain.Context, c *tron.Contract) ([]*fields.AnnotatedField, error) {
	tsc, err := tron.ParseTriggerSmartContract(c.Parameter)
	if err != nil {
		return nil, err
	}

	out := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Caller", tron.FormatAddress(tsc.OwnerAddress), "", "")),
		fields.Annotate(fields.Address("Contract", tron.FormatAddress(tsc.ContractAddress), "", "")),
	}
	if tsc.CallValue != 0 {
		amount := formatSun(tsc.CallValue)
		out = append(out, fields.Annotate(fields.Amount("Call value", amount, "TRX", amount)))
	}

	var to [20]byte
	if len(tsc.ContractAddress) == 21 {
		copy(to[:], tsc.ContractAddress[1:]) // strip the 0x41 Tron address prefix
	}
	view, err := evmreg.DecodeTronStyleCall(ctx, to, tsc.Data)
	if err != nil {
		return nil, err
	}
	return append(out, fields.Annotate(view.PreviewField("Call"))), nil
}

func formatSun(amount int64) string {
	neg := amount < 0
	abs := amount
	if neg {
		abs = -abs
	}
	whole := abs / 1_000_000
	frac := abs % 1_000_000
	s := itoa(whole)
	if frac != 0 {
		fs := itoa(frac)
		for len(fs) < 6 {
			fs = "0" + fs
		}
		for len(fs) > 0 && fs[len(fs)-1] == '0' {
			fs = fs[:len(fs)-1]
		}
		if fs != "" {
			s += "." + fs
		}
	}
	if neg {
		s = "-" + s
	}
	return s
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	n := v
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
