package evmreg

import (
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/visignerr"
)

var universalRouterExecuteSelector = evm.Selector("execute(bytes,bytes[],uint256)")

// Universal Router command bytes. The table is byte-exact with the on-chain
// dispatcher; any byte not listed here still appears as an unknown
// sub-call rather than being dropped. The high bit (0x80) of a command byte is the allow-revert flag
// and is masked off before lookup.
const (
	urV3SwapExactIn       = 0x00
	urV3SwapExactOut      = 0x01
	urPermit2TransferFrom = 0x02
	urSweep               = 0x04
	urTransfer            = 0x05
	urPayPortion          = 0x06
	urV2SwapExactIn       = 0x08
	urV2SwapExactOut      = 0x09
	urPermit2Permit       = 0x0A
	urWrapEth             = 0x0B
	urUnwrapWeth          = 0x0C
)

var uniswapCommandNames = map[byte]string{
	urV3SwapExactIn:       "V3_SWAP_EXACT_IN",
	urV3SwapExactOut:      "V3_SWAP_EXACT_OUT",
	urPermit2TransferFrom: "PERMIT2_TRANSFER_FROM",
	urSweep:               "SWEEP",
	urTransfer:            "TRANSFER",
	urPayPortion:          "PAY_PORTION",
	urV2SwapExactIn:       "V2_SWAP_EXACT_IN",
	urV2SwapExactOut:      "V2_SWAP_EXACT_OUT",
	urPermit2Permit:       "PERMIT2_PERMIT",
	urWrapEth:             "WRAP_ETH",
	urUnwrapWeth:          "UNWRAP_WETH",
}

func registerUniswapUniversalRouter(r *Registry) {
	r.RegisterSelector(universalRouterExecuteSelector, visualizeUniswapExecute)
}

func visualizeUniswapExecute(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(bytes,bytes[],uint256)")
	if err != nil {
		return nil, err
	}
	commands := args[0].Bytes
	inputs := args[1].Items
	deadline := args[2].Int

	var commandFields []*fields.AnnotatedField
	var swapSummary string
	for i, cmd := range commands {
		code := cmd &^ 0x80
		var input []byte
		if i < len(inputs) {
			input = inputs[i].Bytes
		}

		view := visualizeRouterCommand(ctx, code, input)
		if view.Recognized && swapSummary == "" && isSwapCommand(code) {
			if len(view.Condensed) > 0 && view.Condensed[0].Field.TextV2 != nil {
				swapSummary = view.Condensed[0].Field.TextV2.Text
			}
		}
		commandFields = append(commandFields, fields.Annotate(view.PreviewField("Command "+strconv.Itoa(i))))
	}

	deadlineStr := bigString(deadline)
	expanded := append([]*fields.AnnotatedField{
		fields.Annotate(fields.Address("Router", evm.Checksum(to[:]), contractName(ctx, to), "")),
		fields.Annotate(fields.Number("Deadline", deadlineStr, deadlineStr)),
	}, commandFields...)

	summary := strconv.Itoa(len(commands)) + " router commands"
	if swapSummary != "" {
		summary = swapSummary
	}

	return &CallView{
		Title:      "Uniswap Swap",
		Subtitle:   strconv.Itoa(len(commands)) + " commands",
		Condensed:  summaryField(summary),
		Expanded:   expanded,
		Recognized: true,
	}, nil
}

func isSwapCommand(code byte) bool {
	switch code {
	case urV3SwapExactIn, urV3SwapExactOut, urV2SwapExactIn, urV2SwapExactOut:
		return true
	}
	return false
}

// visualizeRouterCommand decodes one command's ABI-encoded input per that
// command's schema. Decode failures and unimplemented command bytes both
// degrade to an unknown view carrying the command byte and the raw input,
// never silently dropped.
func visualizeRouterCommand(ctx *chain.Context, code byte, input []byte) *CallView {
	title, known := uniswapCommandNames[code]
	if !known {
		return unknownView("Router Command 0x"+hexByte(code), hexPrefix(input),
			"router command byte 0x"+hexByte(code)+" is not in the known command table")
	}

	view, err := decodeRouterCommand(ctx, code, title, input)
	if err != nil {
		return unknownView(title, hexPrefix(input),
			"command input could not be decoded: "+err.Error())
	}
	return view
}

func decodeRouterCommand(ctx *chain.Context, code byte, title string, input []byte) (*CallView, error) {
	switch code {
	case urV3SwapExactIn, urV3SwapExactOut:
		return decodeV3Swap(ctx, code, title, input)
	case urV2SwapExactIn, urV2SwapExactOut:
		return decodeV2Swap(ctx, code, title, input)
	case urPermit2TransferFrom:
		return decodeTokenRecipientAmount(ctx, title, input, "Amount",
			"(address,address,uint160)")
	case urSweep:
		return decodeTokenRecipientAmount(ctx, title, input, "Minimum amount",
			"(address,address,uint256)")
	case urTransfer:
		return decodeTokenRecipientAmount(ctx, title, input, "Amount",
			"(address,address,uint256)")
	case urPayPortion:
		return decodePayPortion(ctx, title, input)
	case urPermit2Permit:
		return decodePermit2Permit(ctx, title, input)
	case urWrapEth, urUnwrapWeth:
		return decodeWrapUnwrap(title, input)
	}
	return nil, visignerr.Calldata("UnhandledRouterCommand", -1, nil)
}

// decodeV3Swap handles V3_SWAP_EXACT_IN/OUT:
// (address recipient, uint256 amount, uint256 amountLimit, bytes path, bool payerIsUser).
// For EXACT_IN the amounts are (amountIn, amountOutMin) and the path runs
// input token to output token; for EXACT_OUT they are (amountOut,
// amountInMax) and the encoded path is reversed (output token first).
func decodeV3Swap(ctx *chain.Context, code byte, title string, input []byte) (*CallView, error) {
	t, err := parseTuple("(address,uint256,uint256,bytes,bool)")
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, input)
	if err != nil {
		return nil, err
	}
	recipient := v.Items[0].Address
	amount := v.Items[1].Int
	amountLimit := v.Items[2].Int
	path := v.Items[3].Bytes
	payerIsUser := v.Items[4].Bool

	tokens, feeTiers, err := decodeV3Path(path)
	if err != nil {
		return nil, err
	}

	exactIn := code == urV3SwapExactIn
	inToken, outToken := tokens[0], tokens[len(tokens)-1]
	if !exactIn {
		// EXACT_OUT paths are encoded output-first.
		inToken, outToken = outToken, inToken
	}

	var summary string
	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
	}
	if exactIn {
		summary = "Swap " + tokenAmountText(ctx, inToken, amount) + " → min " + tokenAmountText(ctx, outToken, amountLimit)
		expanded = append(expanded,
			fields.Annotate(tokenAmountField(ctx, "Amount in", inToken, amount)),
			fields.Annotate(tokenAmountField(ctx, "Minimum amount out", outToken, amountLimit)),
		)
	} else {
		summary = "Swap max " + tokenAmountText(ctx, inToken, amountLimit) + " → " + tokenAmountText(ctx, outToken, amount)
		expanded = append(expanded,
			fields.Annotate(tokenAmountField(ctx, "Amount out", outToken, amount)),
			fields.Annotate(tokenAmountField(ctx, "Maximum amount in", inToken, amountLimit)),
		)
	}
	expanded = append(expanded, fields.Annotate(fields.Text("Path", renderV3Path(ctx, tokens, feeTiers))))
	expanded = append(expanded, fields.Annotate(fields.Text("Payer", payerText(payerIsUser))))

	return &CallView{
		Title:      title,
		Condensed:  summaryField(summary),
		Expanded:   expanded,
		Recognized: true,
	}, nil
}

// decodeV3Path splits a V3 path blob into its token hops and pool fee
// tiers: 20-byte token, then repeating (3-byte fee, 20-byte token) groups.
func decodeV3Path(path []byte) ([][20]byte, []uint32, error) {
	const tokenLen, feeLen = 20, 3
	if len(path) < tokenLen || (len(path)-tokenLen)%(feeLen+tokenLen) != 0 {
		return nil, nil, visignerr.Calldata("BadV3PathLength", -1, nil)
	}
	var tokens [][20]byte
	var fees []uint32

	var first [20]byte
	copy(first[:], path[:tokenLen])
	tokens = append(tokens, first)
	rest := path[tokenLen:]
	for len(rest) > 0 {
		fee := uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2])
		fees = append(fees, fee)
		var tok [20]byte
		copy(tok[:], rest[feeLen:feeLen+tokenLen])
		tokens = append(tokens, tok)
		rest = rest[feeLen+tokenLen:]
	}
	return tokens, fees, nil
}

func renderV3Path(ctx *chain.Context, tokens [][20]byte, fees []uint32) string {
	s := tokenSymbol(ctx, tokens[0])
	for i, fee := range fees {
		s += " -(" + strconv.FormatUint(uint64(fee), 10) + ")→ " + tokenSymbol(ctx, tokens[i+1])
	}
	return s
}

// decodeV2Swap handles V2_SWAP_EXACT_IN/OUT:
// (address recipient, uint256 amount, uint256 amountLimit, address[] path, bool payerIsUser).
func decodeV2Swap(ctx *chain.Context, code byte, title string, input []byte) (*CallView, error) {
	t, err := parseTuple("(address,uint256,uint256,address[],bool)")
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, input)
	if err != nil {
		return nil, err
	}
	recipient := v.Items[0].Address
	amount := v.Items[1].Int
	amountLimit := v.Items[2].Int
	pathItems := v.Items[3].Items
	payerIsUser := v.Items[4].Bool

	if len(pathItems) < 2 {
		return nil, visignerr.Calldata("BadV2PathLength", -1, nil)
	}
	tokens := make([][20]byte, len(pathItems))
	for i, item := range pathItems {
		tokens[i] = item.Address
	}
	inToken, outToken := tokens[0], tokens[len(tokens)-1]

	pathStr := tokenSymbol(ctx, tokens[0])
	for _, tok := range tokens[1:] {
		pathStr += " → " + tokenSymbol(ctx, tok)
	}

	exactIn := code == urV2SwapExactIn
	var summary string
	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
	}
	if exactIn {
		summary = "Swap " + tokenAmountText(ctx, inToken, amount) + " → min " + tokenAmountText(ctx, outToken, amountLimit)
		expanded = append(expanded,
			fields.Annotate(tokenAmountField(ctx, "Amount in", inToken, amount)),
			fields.Annotate(tokenAmountField(ctx, "Minimum amount out", outToken, amountLimit)),
		)
	} else {
		summary = "Swap max " + tokenAmountText(ctx, inToken, amountLimit) + " → " + tokenAmountText(ctx, outToken, amount)
		expanded = append(expanded,
			fields.Annotate(tokenAmountField(ctx, "Amount out", outToken, amount)),
			fields.Annotate(tokenAmountField(ctx, "Maximum amount in", inToken, amountLimit)),
		)
	}
	expanded = append(expanded, fields.Annotate(fields.Text("Path", pathStr)))
	expanded = append(expanded, fields.Annotate(fields.Text("Payer", payerText(payerIsUser))))

	return &CallView{
		Title:      title,
		Condensed:  summaryField(summary),
		Expanded:   expanded,
		Recognized: true,
	}, nil
}

// decodeTokenRecipientAmount covers the three commands sharing the
// (token, recipient, amount) shape: PERMIT2_TRANSFER_FROM, SWEEP, TRANSFER.
func decodeTokenRecipientAmount(ctx *chain.Context, title string, input []byte, amountLabel, typeString string) (*CallView, error) {
	t, err := parseTuple(typeString)
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, input)
	if err != nil {
		return nil, err
	}
	token := v.Items[0].Address
	recipient := v.Items[1].Address
	amount := v.Items[2].Int

	return &CallView{
		Title:      title,
		Condensed:  summaryField(tokenAmountText(ctx, token, amount) + " → " + shortAddr(recipient)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Token", token)),
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
			fields.Annotate(tokenAmountField(ctx, amountLabel, token, amount)),
		},
	}, nil
}

// decodePayPortion handles PAY_PORTION: (address token, address recipient,
// uint256 bips): the amount is a fraction of the router's balance, in
// basis points, not an absolute value.
func decodePayPortion(ctx *chain.Context, title string, input []byte) (*CallView, error) {
	t, err := parseTuple("(address,address,uint256)")
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, input)
	if err != nil {
		return nil, err
	}
	token := v.Items[0].Address
	recipient := v.Items[1].Address
	bips := bigString(v.Items[2].Int)

	return &CallView{
		Title:      title,
		Condensed:  summaryField(bips + " bips of " + tokenSymbol(ctx, token) + " → " + shortAddr(recipient)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(tokenAddressField(ctx, "Token", token)),
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
			fields.Annotate(fields.Number("Portion (bips)", bips, bips)),
		},
	}, nil
}

// decodePermit2Permit handles PERMIT2_PERMIT:
// (((address,uint160,uint48,uint48),address,uint256), bytes signature).
func decodePermit2Permit(ctx *chain.Context, title string, input []byte) (*CallView, error) {
	t, err := parseTuple("(((address,uint160,uint48,uint48),address,uint256),bytes)")
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, input)
	if err != nil {
		return nil, err
	}
	permitSingle := v.Items[0].Items
	details := permitSingle[0].Items
	token := details[0].Address
	amount := details[1].Int
	expiration := bigString(details[2].Int)
	nonce := bigString(details[3].Int)
	spender := permitSingle[1].Address
	sigDeadline := bigString(permitSingle[2].Int)
	signature := v.Items[1].Bytes

	summary := "Permit " + shortAddr(spender) + " to spend " + tokenAmountText(ctx, token, amount)
	expanded := []*fields.AnnotatedField{
		fields.Annotate(tokenAddressField(ctx, "Token", token)),
		fields.Annotate(tokenAmountField(ctx, "Allowance", token, amount)),
		fields.Annotate(fields.Address("Spender", evm.Checksum(spender[:]), contractName(ctx, spender), "")),
		fields.Annotate(fields.Number("Expiration", expiration, expiration)),
		fields.Annotate(fields.Number("Nonce", nonce, nonce)),
		fields.Annotate(fields.Number("Signature deadline", sigDeadline, sigDeadline)),
	}
	if len(signature) > 0 {
		sig := fields.Text("Signature", hexPrefix(signature))
		sig.FallbackText = truncateDisplay(sig.TextV2.Text)
		expanded = append(expanded, fields.Annotate(sig))
	}

	return &CallView{
		Title:      title,
		Condensed:  summaryField(summary),
		Expanded:   expanded,
		Recognized: true,
	}, nil
}

// decodeWrapUnwrap handles WRAP_ETH and UNWRAP_WETH:
// (address recipient, uint256 amountMin).
func decodeWrapUnwrap(title string, input []byte) (*CallView, error) {
	t, err := parseTuple("(address,uint256)")
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(t, input)
	if err != nil {
		return nil, err
	}
	recipient := v.Items[0].Address
	amount := v.Items[1].Int
	amountStr := evm.FormatEther(amount)

	action := "Wrap"
	if title == "UNWRAP_WETH" {
		action = "Unwrap"
	}
	return &CallView{
		Title:      title,
		Condensed:  summaryField(action + " " + amountStr + " ETH → " + shortAddr(recipient)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
			fields.Annotate(fields.Amount("Minimum amount", amountStr, "ETH", amountStr+" ETH")),
		},
	}, nil
}

func payerText(payerIsUser bool) string {
	if payerIsUser {
		return "user"
	}
	return "router"
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}
