package evmreg

import (
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dynamicabi"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
)

var (
	// multicall(Call[]) where Call = {target, data, value, skipRevert,
	// callbackHash}. The older bundler generation exposed multicall(bytes[])
	// with every call targeting the bundler itself; both are registered so
	// either deployment renders.
	morphoBundlerMulticallSelector       = evm.Selector("multicall((address,bytes,uint256,bool,bytes32)[])")
	morphoBundlerLegacyMulticallSelector = evm.Selector("multicall(bytes[])")
)

// morphoActionVisualizer decodes one bundler action's argument tail (the
// bytes after the action's own 4-byte prefix).
type morphoActionVisualizer func(ctx *chain.Context, args []byte) (*CallView, error)

type morphoAction struct {
	name      string
	visualize morphoActionVisualizer
}

// morphoActions is the bundler-local selector table: each Call.data's
// 4-byte prefix dispatches here before falling through to the dynamic-ABI
// path against Call.target.
var morphoActions = map[[4]byte]morphoAction{
	evm.Selector("permit(address,uint256,uint256,uint8,bytes32,bytes32,bool)"): {"Permit", visualizeMorphoPermit},
	evm.Selector("permit2TransferFrom(address,uint256)"):                       {"Permit2 Transfer From", visualizeMorphoPermit2TransferFrom},
	evm.Selector("erc20Transfer(address,address,uint256)"):                     {"Token Transfer", visualizeMorphoErc20Transfer},
	evm.Selector("erc20TransferFrom(address,address,uint256)"):                 {"Token Transfer From", visualizeMorphoErc20TransferFrom},
	evm.Selector("erc4626Deposit(address,uint256,uint256,address)"):            {"Vault Deposit", visualizeMorphoErc4626Deposit},
	evm.Selector("erc4626Withdraw(address,uint256,uint256,address,address)"):   {"Vault Withdraw", visualizeMorphoErc4626Withdraw},
	evm.Selector("erc4626Redeem(address,uint256,uint256,address,address)"):     {"Vault Redeem", visualizeMorphoErc4626Redeem},
	evm.Selector("wrapNative(uint256)"):                                        {"Wrap Native", visualizeMorphoWrapNative},
	evm.Selector("unwrapNative(uint256)"):                                      {"Unwrap Native", visualizeMorphoUnwrapNative},
}

func registerMorphoBundler(r *Registry) {
	r.RegisterSelector(morphoBundlerMulticallSelector, visualizeMorphoMulticall)
	r.RegisterSelector(morphoBundlerLegacyMulticallSelector, visualizeMorphoLegacyMulticall)
}

// visualizeMorphoMulticall decodes multicall(Call[]) and dispatches each
// inner call's data through the bundler action table, then the dynamic-ABI
// registry against that call's target, and finally an unknown fallback.
func visualizeMorphoMulticall(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "((address,bytes,uint256,bool,bytes32)[])")
	if err != nil {
		return nil, err
	}
	calls := args[0].Items

	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Bundler", evm.Checksum(to[:]), contractName(ctx, to), "")),
	}
	for i, call := range calls {
		target := call.Items[0].Address
		data := call.Items[1].Bytes
		value := call.Items[2].Int
		skipRevert := call.Items[3].Bool
		callbackHash := call.Items[4].Bytes

		view := visualizeMorphoCall(ctx, target, data)
		callFields := view.Expanded
		if value != nil && value.Sign() != 0 {
			ethStr := evm.FormatEther(value)
			callFields = append(callFields, fields.Annotate(fields.Amount("Attached value", ethStr, "ETH", ethStr+" ETH")))
		}
		if skipRevert {
			callFields = append(callFields, fields.Annotate(fields.Text("On revert", "skipped")))
		}
		if nonZeroBytes(callbackHash) {
			callFields = append(callFields, fields.Annotate(fields.Text("Callback hash", hexPrefix(callbackHash))))
		}
		view.Expanded = callFields
		expanded = append(expanded, fields.Annotate(view.PreviewField("Action "+strconv.Itoa(i))))
	}

	return morphoOuterView(len(calls), expanded), nil
}

// visualizeMorphoLegacyMulticall decodes the bytes[]-shaped multicall where
// every inner call targets the bundler itself.
func visualizeMorphoLegacyMulticall(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(bytes[])")
	if err != nil {
		return nil, err
	}
	calls := args[0].Items

	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Bundler", evm.Checksum(to[:]), contractName(ctx, to), "")),
	}
	for i, call := range calls {
		view := visualizeMorphoCall(ctx, to, call.Bytes)
		expanded = append(expanded, fields.Annotate(view.PreviewField("Action "+strconv.Itoa(i))))
	}

	return morphoOuterView(len(calls), expanded), nil
}

func morphoOuterView(actionCount int, expanded []*fields.AnnotatedField) *CallView {
	noun := "actions"
	if actionCount == 1 {
		noun = "action"
	}
	title := "Morpho Bundler (" + strconv.Itoa(actionCount) + " " + noun + ")"
	return &CallView{
		Title:      title,
		Condensed:  summaryField(strconv.Itoa(actionCount) + " bundled " + noun),
		Expanded:   expanded,
		Recognized: true,
	}
}

// visualizeMorphoCall resolves one bundled call: the bundler-local action
// table first, then the full sub-call dispatch chain (preset registry, then
// the caller-supplied dynamic-ABI registry against the call's target), and
// finally an unknown view naming the unrecognized action prefix.
func visualizeMorphoCall(ctx *chain.Context, target [20]byte, data []byte) *CallView {
	if len(data) < 4 {
		return unknownView("Bundler Action", hexPrefix(data), "truncated bundler action data")
	}
	var prefix [4]byte
	copy(prefix[:], data[:4])

	if action, ok := morphoActions[prefix]; ok {
		view, err := action.visualize(ctx, data[4:])
		if err != nil {
			return unknownView(action.name, hexPrefix(data),
				"bundler action "+action.name+" could not be decoded: "+err.Error())
		}
		view.Title = action.name
		view.Recognized = true
		return view
	}

	_, inRegistry := sharedDefaultRegistry().Lookup(target, prefix)
	inDynamic := ctx.DynamicABI != nil && ctx.DynamicABI.Lookup(prefix) != nil
	if inRegistry || inDynamic {
		view, err := dispatchSubCall(ctx, target, data)
		if err != nil {
			return unknownView("Bundler Action", hexPrefix(data), err.Error())
		}
		return view
	}

	return unknownView("Bundler Action", hexPrefix(data),
		"Unrecognized bundler action 0x"+hexByte(prefix[0])+hexByte(prefix[1])+hexByte(prefix[2])+hexByte(prefix[3]))
}

func decodeMorphoArgs(args []byte, typeString string) ([]dynamicabi.Value, error) {
	t, err := parseTuple(typeString)
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, args)
	if err != nil {
		return nil, err
	}
	return v.Items, nil
}

func visualizeMorphoPermit(ctx *chain.Context, args []byte) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(address,uint256,uint256,uint8,bytes32,bytes32,bool)")
	if err != nil {
		return nil, err
	}
	asset := vals[0].Address
	amount := vals[1].Int
	deadline := bigString(vals[2].Int)

	return &CallView{
		Condensed: summaryField("Permit " + tokenAmountText(ctx, asset, amount)),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(tokenAmountField(ctx, "Amount", asset, amount)),
			fields.Annotate(fields.Number("Deadline", deadline, deadline)),
		},
	}, nil
}

func visualizeMorphoPermit2TransferFrom(ctx *chain.Context, args []byte) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(address,uint256)")
	if err != nil {
		return nil, err
	}
	asset := vals[0].Address
	amount := vals[1].Int

	return &CallView{
		Condensed: summaryField("Pull " + tokenAmountText(ctx, asset, amount) + " via Permit2"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(tokenAmountField(ctx, "Amount", asset, amount)),
		},
	}, nil
}

func visualizeMorphoErc20Transfer(ctx *chain.Context, args []byte) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(address,address,uint256)")
	if err != nil {
		return nil, err
	}
	asset := vals[0].Address
	recipient := vals[1].Address
	amount := vals[2].Int

	return &CallView{
		Condensed: summaryField(tokenAmountText(ctx, asset, amount) + " → " + shortAddr(recipient)),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(tokenAmountField(ctx, "Amount", asset, amount)),
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
		},
	}, nil
}

func visualizeMorphoErc20TransferFrom(ctx *chain.Context, args []byte) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(address,address,uint256)")
	if err != nil {
		return nil, err
	}
	asset := vals[0].Address
	from := vals[1].Address
	amount := vals[2].Int

	return &CallView{
		Condensed: summaryField("Pull " + tokenAmountText(ctx, asset, amount) + " from " + shortAddr(from)),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Asset", asset)),
			fields.Annotate(fields.Address("From", evm.Checksum(from[:]), "", "")),
			fields.Annotate(tokenAmountField(ctx, "Amount", asset, amount)),
		},
	}, nil
}

func visualizeMorphoErc4626Deposit(ctx *chain.Context, args []byte) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(address,uint256,uint256,address)")
	if err != nil {
		return nil, err
	}
	vault := vals[0].Address
	assets := bigString(vals[1].Int)
	minShares := bigString(vals[2].Int)
	receiver := vals[3].Address

	return &CallView{
		Condensed: summaryField("Deposit " + assets + " asset units into " + vaultLabel(ctx, vault)),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Vault", evm.Checksum(vault[:]), contractName(ctx, vault), "")),
			fields.Annotate(fields.Number("Assets (base units)", assets, assets)),
			fields.Annotate(fields.Number("Minimum shares", minShares, minShares)),
			fields.Annotate(fields.Address("Receiver", evm.Checksum(receiver[:]), "", "")),
		},
	}, nil
}

func visualizeMorphoErc4626Withdraw(ctx *chain.Context, args []byte) (*CallView, error) {
	return visualizeMorphoVaultExit(ctx, args, "Withdraw", "Assets (base units)", "Maximum shares")
}

func visualizeMorphoErc4626Redeem(ctx *chain.Context, args []byte) (*CallView, error) {
	return visualizeMorphoVaultExit(ctx, args, "Redeem", "Shares", "Minimum assets (base units)")
}

// visualizeMorphoVaultExit covers erc4626Withdraw and erc4626Redeem, which
// share the (vault, amount, bound, receiver, owner) shape with the roles of
// the two numeric arguments swapped.
func visualizeMorphoVaultExit(ctx *chain.Context, args []byte, verb, amountLabel, boundLabel string) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(address,uint256,uint256,address,address)")
	if err != nil {
		return nil, err
	}
	vault := vals[0].Address
	amount := bigString(vals[1].Int)
	bound := bigString(vals[2].Int)
	receiver := vals[3].Address
	owner := vals[4].Address

	return &CallView{
		Condensed: summaryField(verb + " " + amount + " from " + vaultLabel(ctx, vault)),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Vault", evm.Checksum(vault[:]), contractName(ctx, vault), "")),
			fields.Annotate(fields.Number(amountLabel, amount, amount)),
			fields.Annotate(fields.Number(boundLabel, bound, bound)),
			fields.Annotate(fields.Address("Receiver", evm.Checksum(receiver[:]), "", "")),
			fields.Annotate(fields.Address("Owner", evm.Checksum(owner[:]), "", "")),
		},
	}, nil
}

func visualizeMorphoWrapNative(ctx *chain.Context, args []byte) (*CallView, error) {
	return visualizeMorphoNative(args, "Wrap")
}

func visualizeMorphoUnwrapNative(ctx *chain.Context, args []byte) (*CallView, error) {
	return visualizeMorphoNative(args, "Unwrap")
}

func visualizeMorphoNative(args []byte, verb string) (*CallView, error) {
	vals, err := decodeMorphoArgs(args, "(uint256)")
	if err != nil {
		return nil, err
	}
	amount := evm.FormatEther(vals[0].Int)
	return &CallView{
		Condensed: summaryField(verb + " " + amount + " ETH"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Amount("Amount", amount, "ETH", amount+" ETH")),
		},
	}, nil
}

func vaultLabel(ctx *chain.Context, vault [20]byte) string {
	if name := contractName(ctx, vault); name != "" {
		return name
	}
	return shortAddr(vault)
}

func nonZeroBytes(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return true
		}
	}
	return false
}
