package dispatch

import (
	"encoding/hex"
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/registry"
	"github.com/ModChain/visualsign/tron"
	"github.com/ModChain/visualsign/tronreg"
)

// contractTypeNames covers the two contract types this module renders a
// preset for; anything else falls back to its numeric ContractType.
var contractTypeNames = map[int32]string{
	tronreg.ContractTypeTransfer:             "TRX Transfer",
	tronreg.ContractTypeTriggerSmartContract: "Contract Call",
}

func contractTypeTitle(t int32) string {
	if name, ok := contractTypeNames[t]; ok {
		return name
	}
	return "Contract Type " + strconv.Itoa(int(t))
}

func parseTron(ctx *chain.Context, data []byte) (*fields.SignablePayload, error) {
	rd, err := tron.ParseRawData(data)
	if err != nil {
		return nil, err
	}
	if ctx.ChainID == 0 {
		// TVM calldata resolves token metadata through the contract table,
		// which namespaces Tron entries under the mainnet chain id.
		ctx.ChainID = registry.TronMainnet
	}

	p := fields.New(fields.PayloadTron, "Tron Transaction")
	p.Add(fields.Text("Network", "Tron"))
	p.Add(fields.Number("Expiration", strconv.FormatInt(rd.Expiration, 10), strconv.FormatInt(rd.Expiration, 10)))
	if rd.FeeLimit != 0 {
		limit := strconv.FormatInt(rd.FeeLimit, 10)
		p.Add(fields.Number("Fee Limit (sun)", limit, limit))
	}
	p.Add(fields.Divider(""))

	for i, c := range rd.Contracts {
		title := contractTypeTitle(c.Type)
		sub, err := tronreg.Visualize(ctx, &c)
		if err != nil {
			p.Add(fields.Unknown("Contract "+strconv.Itoa(i), "0x"+hex.EncodeToString(c.Parameter), err.Error()))
			continue
		}
		if sub == nil {
			// tronreg.Visualize returns (nil, nil) for a contract type it does
			// not recognize; render the raw parameter bytes rather than
			// silently dropping the contract.
			sub = []*fields.AnnotatedField{
				fields.Annotate(fields.Unknown("Parameter", "0x"+hex.EncodeToString(c.Parameter),
					"no visualizer registered for Tron contract type "+strconv.Itoa(int(c.Type)))),
			}
		}
		p.Add(fields.Preview("Contract", title, "",
			[]*fields.AnnotatedField{fields.Annotate(fields.Text("Contract", title))},
			sub))
	}

	return p, nil
}
