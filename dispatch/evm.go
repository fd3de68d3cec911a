package dispatch

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/evmreg"
	"github.com/ModChain/visualsign/fields"
)

// evmNetworkNames covers the handful of chain ids this module's embedded
// contract registry and presets actually target; any other chain id renders
// as "Unknown (Chain ID: N)", and an absent (zero) chain id as "Unknown".
var evmNetworkNames = map[uint64]string{
	1:        "Ethereum Mainnet",
	5:        "Goerli Testnet",
	10:       "Optimism",
	137:      "Polygon",
	8453:     "Base",
	42161:    "Arbitrum One",
	11155111: "Sepolia Testnet",
}

func networkName(chainID uint64) string {
	if name, ok := evmNetworkNames[chainID]; ok {
		return name
	}
	if chainID == 0 {
		return "Unknown"
	}
	return "Unknown (Chain ID: " + strconv.FormatUint(chainID, 10) + ")"
}

// etherOrGwei renders a wei amount in ETH, or in gwei when the magnitude is
// below 10^-6 ETH, where an ETH rendering would be all leading zeros.
func etherOrGwei(wei *big.Int) (amount, abbreviation string) {
	if wei == nil {
		wei = big.NewInt(0)
	}
	abs := new(big.Int).Abs(wei)
	microEthInWei := new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)
	if abs.Sign() != 0 && abs.Cmp(microEthInWei) < 0 {
		return evm.FormatUnits(wei, 9), "gwei"
	}
	return evm.FormatEther(wei), "ETH"
}

func parseEVM(ctx *chain.Context, data []byte) (*fields.SignablePayload, error) {
	tx, err := evm.Parse(data)
	if err != nil {
		return nil, err
	}

	chainID := tx.EffectiveChainID()
	if chainID == 0 {
		chainID = ctx.ChainID
	}
	ctx.ChainID = chainID

	p := fields.New(fields.PayloadEthereum, "Ethereum Transaction")
	p.Add(fields.Text("Network", networkName(chainID)))

	if to := tx.ToAddress(); to != "" {
		name := ""
		assetLabel := ""
		if info, ok := ctx.Contracts.Lookup(chainID, to); ok {
			name = info.DisplayName
			assetLabel = info.Symbol
		}
		p.Add(fields.Address("To", to, name, assetLabel))
	} else {
		p.Add(fields.Text("To", "Contract Creation"))
	}

	valueAmount, valueAbbrev := etherOrGwei(tx.Value)
	p.Add(fields.Amount("Value", valueAmount, valueAbbrev, valueAmount+" "+valueAbbrev))

	gasPriceAmount, gasPriceAbbrev := etherOrGwei(tx.GasFeeCap)
	p.Add(fields.Amount("Gas Price", gasPriceAmount, gasPriceAbbrev, gasPriceAmount+" "+gasPriceAbbrev))
	if tx.GasTipCap != nil {
		tipAmount, tipAbbrev := etherOrGwei(tx.GasTipCap)
		p.Add(fields.Amount("Priority Fee", tipAmount, tipAbbrev, tipAmount+" "+tipAbbrev))
	}

	p.Add(fields.Number("Gas Limit", strconv.FormatUint(tx.Gas, 10), strconv.FormatUint(tx.Gas, 10)))
	p.Add(fields.Number("Nonce", strconv.FormatUint(tx.Nonce, 10), strconv.FormatUint(tx.Nonce, 10)))

	if tx.Type == evm.TxEIP4844 && len(tx.BlobVersionedHashes) > 0 {
		p.Add(fields.Divider(""))
		for i, h := range tx.BlobVersionedHashes {
			label := "Blob hash " + strconv.Itoa(i)
			p.Add(fields.Text(label, "0x"+hex.EncodeToString(h[:])))
		}
	}

	if tx.Type == evm.TxEIP7702 && len(tx.AuthorizationList) > 0 {
		p.Add(fields.Divider(""))
		for i, auth := range tx.AuthorizationList {
			label := "Authorization " + strconv.Itoa(i)
			p.Add(fields.Address(label, evm.Checksum(auth.Address[:]), "", "EIP-7702 delegate"))
		}
	}

	if len(tx.To) == 0 {
		p.Add(fields.Divider(""))
		initCodeHash := "0x" + hex.EncodeToString(evm.Keccak256(tx.Data))
		lenStr := strconv.Itoa(len(tx.Data))
		p.Add(fields.Preview("Action", "Deploy Contract", "",
			[]*fields.AnnotatedField{fields.Annotate(fields.Text("Action", "Deploy Contract"))},
			[]*fields.AnnotatedField{
				fields.Annotate(fields.Number("Init code length", lenStr, lenStr)),
				fields.Annotate(fields.Text("Init code hash", initCodeHash)),
			}))
		p.Title = "Deploy Contract"
		return p, nil
	}

	if len(tx.Data) == 0 {
		return p, nil
	}

	p.Add(fields.Divider(""))
	var to20 [20]byte
	copy(to20[:], tx.To)
	view, err := evmreg.DecodeCall(ctx, to20, tx.Data)
	if err != nil {
		// A failure decoding the top-level call is a call-site failure, not
		// an envelope parse failure: degrade to unknown and still render
		// the envelope fields already assembled above.
		p.Add(fields.Unknown("Call", "0x"+hex.EncodeToString(tx.Data), err.Error()))
		return p, nil
	}
	p.Add(view.PreviewField("Action"))
	if view.Recognized {
		p.Title = view.Title
		p.Subtitle = view.Subtitle
	}
	return p, nil
}
