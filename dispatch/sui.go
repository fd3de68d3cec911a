package dispatch

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/sui"
	"github.com/ModChain/visualsign/suireg"
)

var suiDefaultRegistry = suireg.NewDefaultRegistry()

func parseSui(ctx *chain.Context, data []byte) (*fields.SignablePayload, error) {
	td, err := sui.ParseTransactionData(data)
	if err != nil {
		return nil, err
	}
	ptb := td.Tx

	p := fields.New(fields.PayloadSui, "Sui Transaction")
	p.Add(fields.Text("Network", "Sui"))
	p.Add(fields.Address("Sender", td.Sender.String(), "", ""))

	// Gas is money the signer authorizes: budget in SUI (9 decimals from
	// MIST), price in MIST per unit, plus the coin objects it draws from.
	budget := evm.FormatUnits(new(big.Int).SetUint64(td.GasData.Budget), 9)
	p.Add(fields.Amount("Gas Budget", budget, "SUI", budget+" SUI"))
	price := strconv.FormatUint(td.GasData.Price, 10)
	p.Add(fields.Number("Gas Price (MIST)", price, price))
	if td.GasData.Owner != td.Sender {
		p.Add(fields.Address("Gas Owner", td.GasData.Owner.String(), "", "sponsored gas"))
	}
	for i, ref := range td.GasData.Payment {
		p.Add(fields.Address("Gas Payment "+strconv.Itoa(i), ref.ObjectID.String(), "", ""))
	}
	if td.Expiration.HasEpoch {
		epoch := strconv.FormatUint(td.Expiration.Epoch, 10)
		p.Add(fields.Number("Expires After Epoch", epoch, epoch))
	} else {
		p.Add(fields.Text("Expiration", "None"))
	}

	p.Add(fields.Number("Inputs", strconv.Itoa(len(ptb.Inputs)), strconv.Itoa(len(ptb.Inputs))))
	p.Add(fields.Divider(""))

	for i, cmd := range ptb.Commands {
		title, subFields, err := describeSuiCommand(ctx, cmd)
		if err != nil {
			p.Add(fields.Unknown("Command "+strconv.Itoa(i), "0x", err.Error()))
			continue
		}
		p.Add(fields.Preview("Command", title, "",
			[]*fields.AnnotatedField{fields.Annotate(fields.Text("Command", title))},
			subFields))
	}

	return p, nil
}

func describeSuiCommand(ctx *chain.Context, cmd sui.Command) (string, []*fields.AnnotatedField, error) {
	switch cmd.Kind {
	case sui.CommandMoveCall:
		call := cmd.MoveCall
		if v, title, ok := suiDefaultRegistry.Lookup(call.Package.String(), call.Module, call.Function); ok {
			if _, err := ctx.WithDepth(); err != nil {
				return "", nil, err
			}
			fs, err := v(ctx, call)
			if err != nil {
				return "", nil, err
			}
			return title, fs, nil
		}
		return "Move Call", suireg.RenderGenericMoveCall(call), nil

	case sui.CommandTransferObjects:
		t := cmd.TransferObjects
		out := []*fields.AnnotatedField{}
		for i, obj := range t.Objects {
			out = append(out, fields.Annotate(fields.Text("Object "+strconv.Itoa(i), suireg.DescribeArgument(obj))))
		}
		out = append(out, fields.Annotate(fields.Text("Recipient", suireg.DescribeArgument(t.Recipient))))
		return "Transfer Objects", out, nil

	case sui.CommandSplitCoins:
		s := cmd.SplitCoins
		out := []*fields.AnnotatedField{
			fields.Annotate(fields.Text("Coin", suireg.DescribeArgument(s.Coin))),
		}
		for i, amt := range s.Amounts {
			out = append(out, fields.Annotate(fields.Text("Amount "+strconv.Itoa(i), suireg.DescribeArgument(amt))))
		}
		return "Split Coins", out, nil

	case sui.CommandMergeCoins:
		m := cmd.MergeCoins
		out := []*fields.AnnotatedField{
			fields.Annotate(fields.Text("Destination", suireg.DescribeArgument(m.Destination))),
		}
		for i, src := range m.Sources {
			out = append(out, fields.Annotate(fields.Text("Source "+strconv.Itoa(i), suireg.DescribeArgument(src))))
		}
		return "Merge Coins", out, nil

	case sui.CommandMakeMoveVec:
		mv := cmd.MakeMoveVec
		out := []*fields.AnnotatedField{}
		if mv.ElemType != "" {
			out = append(out, fields.Annotate(fields.Text("Element type", mv.ElemType)))
		}
		for i, el := range mv.Elements {
			out = append(out, fields.Annotate(fields.Text("Element "+strconv.Itoa(i), suireg.DescribeArgument(el))))
		}
		return "Make Move Vector", out, nil

	case sui.CommandPublish:
		pub := cmd.Publish
		n := strconv.Itoa(len(pub.Modules))
		return "Publish Package", []*fields.AnnotatedField{
			fields.Annotate(fields.Number("Modules", n, n)),
			fields.Annotate(fields.Unknown("Bytecode", "0x"+hex.EncodeToString(flattenModules(pub.Modules)),
				"Move bytecode is not decoded by this module")),
		}, nil

	case sui.CommandUpgrade:
		up := cmd.Upgrade
		return "Upgrade Package", []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Package", up.Package.String(), "", "")),
			fields.Annotate(fields.Unknown("Bytecode", "0x"+hex.EncodeToString(flattenModules(up.Modules)),
				"Move bytecode is not decoded by this module")),
		}, nil

	default:
		return "Unknown Command", nil, nil
	}
}

func flattenModules(modules [][]byte) []byte {
	var out []byte
	for _, m := range modules {
		out = append(out, m...)
	}
	return out
}
