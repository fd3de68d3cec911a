package evmreg

import (
	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
)

var (
	aaveSupplySelector   = evm.Selector("supply(address,uint256,address,uint16)")
	aaveWithdrawSelector = evm.Selector("withdraw(address,uint256,address)")
	aaveBorrowSelector   = evm.Selector("borrow(address,uint256,uint256,uint16,address)")
	aaveRepaySelector    = evm.Selector("repay(address,uint256,uint256,address)")
)

func registerAaveV3Pool(r *Registry) {
	r.RegisterSelector(aaveSupplySelector, visualizeAaveSupply)
	r.RegisterSelector(aaveWithdrawSelector, visualizeAaveWithdraw)
	r.RegisterSelector(aaveBorrowSelector, visualizeAaveBorrow)
	r.RegisterSelector(aaveRepaySelector, visualizeAaveRepay)
}

func visualizeAaveSupply(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,uint256,address,uint16)")
	if err != nil {
		return nil, err
	}
	asset := args[0].Address
	amount := args[1].Int
	onBehalfOf := args[2].Address
	referral := bigString(args[3].Int)

	return &CallView{
		Title:      "Aave Supply",
		Subtitle:   "on behalf of " + shortAddr(onBehalfOf),
		Condensed:  summaryField("Supply " + tokenAmountText(ctx, asset, amount)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Pool", evm.Checksum(to[:]), contractName(ctx, to), "")),
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(tokenAmountField(ctx, "Supply amount", asset, amount)),
			fields.Annotate(fields.Address("On behalf of", evm.Checksum(onBehalfOf[:]), "", "")),
			fields.Annotate(fields.Number("Referral code", referral, referral)),
		},
	}, nil
}

func visualizeAaveWithdraw(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,uint256,address)")
	if err != nil {
		return nil, err
	}
	asset := args[0].Address
	amount := args[1].Int
	recipient := args[2].Address

	// Aave uses max-uint256 as the "withdraw everything" sentinel.
	amountText := tokenAmountText(ctx, asset, amount)
	var amountField *fields.Field
	if amount != nil && amount.Cmp(maxUint256) == 0 {
		amountText = "entire " + tokenSymbol(ctx, asset) + " balance"
		amountField = fields.Text("Withdraw amount", "Entire balance")
	} else {
		amountField = tokenAmountField(ctx, "Withdraw amount", asset, amount)
	}

	return &CallView{
		Title:      "Aave Withdraw",
		Subtitle:   "to " + shortAddr(recipient),
		Condensed:  summaryField("Withdraw " + amountText),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Pool", evm.Checksum(to[:]), contractName(ctx, to), "")),
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(amountField),
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
		},
	}, nil
}

func visualizeAaveBorrow(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,uint256,uint256,uint16,address)")
	if err != nil {
		return nil, err
	}
	asset := args[0].Address
	amount := args[1].Int
	rateMode := args[2].Int
	onBehalfOf := args[4].Address
	rateModeStr := "variable"
	if rateMode != nil && rateMode.Int64() == 1 {
		rateModeStr = "stable"
	}

	return &CallView{
		Title:      "Aave Borrow",
		Subtitle:   "on behalf of " + shortAddr(onBehalfOf),
		Condensed:  summaryField("Borrow " + tokenAmountText(ctx, asset, amount) + " at " + rateModeStr + " rate"),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Pool", evm.Checksum(to[:]), contractName(ctx, to), "")),
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(tokenAmountField(ctx, "Borrow amount", asset, amount)),
			fields.Annotate(fields.Text("Rate mode", rateModeStr)),
			fields.Annotate(fields.Address("On behalf of", evm.Checksum(onBehalfOf[:]), "", "")),
		},
	}, nil
}

func visualizeAaveRepay(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,uint256,uint256,address)")
	if err != nil {
		return nil, err
	}
	asset := args[0].Address
	amount := args[1].Int
	rateMode := args[2].Int
	onBehalfOf := args[3].Address
	rateModeStr := "variable"
	if rateMode != nil && rateMode.Int64() == 1 {
		rateModeStr = "stable"
	}

	amountText := tokenAmountText(ctx, asset, amount)
	var amountField *fields.Field
	if amount != nil && amount.Cmp(maxUint256) == 0 {
		amountText = "entire " + tokenSymbol(ctx, asset) + " debt"
		amountField = fields.Text("Repay amount", "Entire debt")
	} else {
		amountField = tokenAmountField(ctx, "Repay amount", asset, amount)
	}

	return &CallView{
		Title:      "Aave Repay",
		Subtitle:   "on behalf of " + shortAddr(onBehalfOf),
		Condensed:  summaryField("Repay " + amountText + " (" + rateModeStr + " rate)"),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Pool", evm.Checksum(to[:]), contractName(ctx, to), "")),
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(amountField),
			fields.Annotate(fields.Text("Rate mode", rateModeStr)),
			fields.Annotate(fields.Address("On behalf of", evm.Checksum(onBehalfOf[:]), "", "")),
		},
	}, nil
}
