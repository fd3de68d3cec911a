package evmreg

import (
	"math/big"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
)

var (
	erc20TransferSelector     = evm.Selector("transfer(address,uint256)")
	erc20ApproveSelector      = evm.Selector("approve(address,uint256)")
	erc20TransferFromSelector = evm.Selector("transferFrom(address,address,uint256)")
)

func registerERC20(r *Registry) {
	r.RegisterSelector(erc20TransferSelector, visualizeERC20Transfer)
	r.RegisterSelector(erc20ApproveSelector, visualizeERC20Approve)
	r.RegisterSelector(erc20TransferFromSelector, visualizeERC20TransferFrom)
}

func visualizeERC20Transfer(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,uint256)")
	if err != nil {
		return nil, err
	}
	recipient := args[0].Address
	amount := args[1].Int

	return &CallView{
		Title:      "Transfer",
		Subtitle:   tokenSymbol(ctx, to),
		Condensed:  summaryField(tokenAmountText(ctx, to, amount) + " → " + shortAddr(recipient)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Token", to)),
			fields.Annotate(tokenAmountField(ctx, "Amount", to, amount)),
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
		},
	}, nil
}

func visualizeERC20Approve(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,uint256)")
	if err != nil {
		return nil, err
	}
	spender := args[0].Address
	amount := args[1].Int
	unlimited := amount != nil && amount.Cmp(maxUint256) == 0

	expanded := []*fields.AnnotatedField{
		fields.Annotate(tokenAddressField(ctx, "Token", to)),
		fields.Annotate(fields.Address("Spender", evm.Checksum(spender[:]), contractName(ctx, spender), "")),
	}
	summary := ""
	if unlimited {
		expanded = append(expanded, fields.Annotate(fields.Text("Allowance", "Unlimited")))
		summary = "Approve unlimited " + tokenSymbol(ctx, to) + " for " + shortAddr(spender)
	} else {
		expanded = append(expanded, fields.Annotate(tokenAmountField(ctx, "Allowance", to, amount)))
		summary = "Approve " + tokenAmountText(ctx, to, amount) + " for " + shortAddr(spender)
	}

	return &CallView{
		Title:      "Approve",
		Subtitle:   tokenSymbol(ctx, to),
		Condensed:  summaryField(summary),
		Expanded:   expanded,
		Recognized: true,
	}, nil
}

func visualizeERC20TransferFrom(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,address,uint256)")
	if err != nil {
		return nil, err
	}
	from := args[0].Address
	recipient := args[1].Address
	amount := args[2].Int

	return &CallView{
		Title:      "Transfer From",
		Subtitle:   tokenSymbol(ctx, to),
		Condensed:  summaryField(tokenAmountText(ctx, to, amount) + " " + shortAddr(from) + " → " + shortAddr(recipient)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Token", to)),
			fields.Annotate(tokenAmountField(ctx, "Amount", to, amount)),
			fields.Annotate(fields.Address("From", evm.Checksum(from[:]), "", "")),
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
		},
	}, nil
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
