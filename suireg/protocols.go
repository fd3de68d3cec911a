package suireg

import (
	"strconv"
	"strings"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/registry"
	"github.com/ModChain/visualsign/sui"
)

// Mainnet package IDs for the protocol presets. The values a signer sees
// here are what is actually in the transaction bytes: a MoveCall pins the
// exact package object, so a lookalike package renders through the generic
// path instead of borrowing a protocol's name.
const (
	cetusCLMMPackage    = "0x1eabed72c53feb3805120a081dc15963c204dc8d091542592abaf7a35689b2fb"
	suilendPackage      = "0xf95b06141ed4a174f239417323bde3f209b972f5930d8521ea38a52aff3a6ddf"
	momentumCLMMPackage = "0xc84b1ef2ac2ba5c3018e2b8c956ba5d0391e0e46d1daa1926d5a99a6a42526b4"
)

func registerCetus(r *Registry) {
	r.Register(cetusCLMMPackage, "pool_script", "swap_a2b", "Cetus Swap", visualizeCLMMSwap)
	r.Register(cetusCLMMPackage, "pool_script", "swap_b2a", "Cetus Swap", visualizeCLMMSwap)
	r.Register(cetusCLMMPackage, "pool_script", "open_position_with_liquidity", "Cetus Open Position", visualizeCLMMLiquidity)
	r.Register(cetusCLMMPackage, "pool_script", "add_liquidity", "Cetus Add Liquidity", visualizeCLMMLiquidity)
	r.Register(cetusCLMMPackage, "pool_script", "remove_liquidity", "Cetus Remove Liquidity", visualizeCLMMLiquidity)
}

func registerSuilend(r *Registry) {
	r.Register(suilendPackage, "lending_market", "deposit_liquidity_and_mint_ctokens", "Suilend Deposit", visualizeLendingAction)
	r.Register(suilendPackage, "lending_market", "redeem_ctokens_and_withdraw_liquidity", "Suilend Withdraw", visualizeLendingAction)
	r.Register(suilendPackage, "lending_market", "borrow", "Suilend Borrow", visualizeLendingAction)
	r.Register(suilendPackage, "lending_market", "repay", "Suilend Repay", visualizeLendingAction)
}

func registerMomentum(r *Registry) {
	r.Register(momentumCLMMPackage, "trade", "swap", "Momentum Swap", visualizeCLMMSwap)
	r.Register(momentumCLMMPackage, "liquidity", "add_liquidity", "Momentum Add Liquidity", visualizeCLMMLiquidity)
	r.Register(momentumCLMMPackage, "liquidity", "remove_liquidity", "Momentum Remove Liquidity", visualizeCLMMLiquidity)
}

// visualizeCLMMSwap renders a concentrated-liquidity swap call: the pool's
// coin-type pair comes from the call's type arguments, the concrete amounts
// from the transaction's inputs (referenced by index, values not
// resolvable without execution, so the generic argument rendering applies).
func visualizeCLMMSwap(ctx *chain.Context, call *sui.MoveCallCommand) ([]*fields.AnnotatedField, error) {
	out := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Package", call.Package.String(), "", "")),
		fields.Annotate(fields.Text("Function", call.Module+"::"+call.Function)),
	}
	if len(call.TypeArguments) >= 2 {
		out = append(out,
			fields.Annotate(fields.Text("Coin A", coinLabel(ctx, call.TypeArguments[0]))),
			fields.Annotate(fields.Text("Coin B", coinLabel(ctx, call.TypeArguments[1]))),
		)
	}
	out = append(out, argumentFields(call.Arguments)...)
	return out, nil
}

func visualizeCLMMLiquidity(ctx *chain.Context, call *sui.MoveCallCommand) ([]*fields.AnnotatedField, error) {
	out := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Package", call.Package.String(), "", "")),
		fields.Annotate(fields.Text("Function", call.Module+"::"+call.Function)),
	}
	for i, t := range call.TypeArguments {
		out = append(out, fields.Annotate(fields.Text("Coin "+strconv.Itoa(i), coinLabel(ctx, t))))
	}
	out = append(out, argumentFields(call.Arguments)...)
	return out, nil
}

// visualizeLendingAction renders a Suilend lending-market call: one coin
// type argument names the asset.
func visualizeLendingAction(ctx *chain.Context, call *sui.MoveCallCommand) ([]*fields.AnnotatedField, error) {
	out := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Package", call.Package.String(), "", "")),
		fields.Annotate(fields.Text("Function", call.Module+"::"+call.Function)),
	}
	for _, t := range call.TypeArguments {
		out = append(out, fields.Annotate(fields.Text("Asset", coinLabel(ctx, t))))
	}
	out = append(out, argumentFields(call.Arguments)...)
	return out, nil
}

func argumentFields(args []sui.Argument) []*fields.AnnotatedField {
	out := make([]*fields.AnnotatedField, 0, len(args))
	for i, arg := range args {
		out = append(out, fields.Annotate(fields.Text("Argument "+strconv.Itoa(i), DescribeArgument(arg))))
	}
	return out
}

// coinLabel resolves a Move coin type to its registered symbol, falling
// back to a shortened form of the raw type string.
func coinLabel(ctx *chain.Context, coinType string) string {
	if ctx.Contracts != nil {
		if info, ok := ctx.Contracts.Lookup(registry.SuiMainnet, coinType); ok && info.Symbol != "" {
			return info.Symbol
		}
	}
	// "0xlong::module::NAME" -> "NAME (0xlong...::module)" stays legible
	// without hiding which package the type came from.
	parts := strings.Split(coinType, "::")
	if len(parts) == 3 && len(parts[0]) > 10 {
		return parts[2] + " (" + parts[0][:10] + "...::" + parts[1] + ")"
	}
	return coinType
}
