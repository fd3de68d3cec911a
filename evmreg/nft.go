package evmreg

import (
	"strconv"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
)

// ERC-721 and ERC-1155 transfer/approval selectors. transferFrom is shared
// byte-for-byte with ERC-20 (same canonical signature) and is registered in
// erc20.go; the ERC-721 semantics differ only in how the third argument is
// labeled, which the generic rendering tolerates.
var (
	erc721SafeTransferSelector     = evm.Selector("safeTransferFrom(address,address,uint256)")
	erc721SafeTransferDataSelector = evm.Selector("safeTransferFrom(address,address,uint256,bytes)")
	setApprovalForAllSelector      = evm.Selector("setApprovalForAll(address,bool)")
	erc1155SafeTransferSelector    = evm.Selector("safeTransferFrom(address,address,uint256,uint256,bytes)")
	erc1155SafeBatchSelector       = evm.Selector("safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)")
)

func registerNFTStandards(r *Registry) {
	r.RegisterSelector(erc721SafeTransferSelector, visualizeERC721SafeTransfer)
	r.RegisterSelector(erc721SafeTransferDataSelector, visualizeERC721SafeTransferWithData)
	r.RegisterSelector(setApprovalForAllSelector, visualizeSetApprovalForAll)
	r.RegisterSelector(erc1155SafeTransferSelector, visualizeERC1155SafeTransfer)
	r.RegisterSelector(erc1155SafeBatchSelector, visualizeERC1155SafeBatchTransfer)
}

func nftTransferView(ctx *chain.Context, collection, from, recipient [20]byte, tokenID string, extra []*fields.AnnotatedField) *CallView {
	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Collection", evm.Checksum(collection[:]), contractName(ctx, collection), "")),
		fields.Annotate(fields.Number("Token ID", tokenID, tokenID)),
		fields.Annotate(fields.Address("From", evm.Checksum(from[:]), "", "")),
		fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
	}
	expanded = append(expanded, extra...)
	return &CallView{
		Title:      "NFT Transfer",
		Subtitle:   shortAddr(collection),
		Condensed:  summaryField("Token #" + tokenID + " " + shortAddr(from) + " → " + shortAddr(recipient)),
		Expanded:   expanded,
		Recognized: true,
	}
}

func visualizeERC721SafeTransfer(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,address,uint256)")
	if err != nil {
		return nil, err
	}
	return nftTransferView(ctx, to, args[0].Address, args[1].Address, bigString(args[2].Int), nil), nil
}

func visualizeERC721SafeTransferWithData(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,address,uint256,bytes)")
	if err != nil {
		return nil, err
	}
	var extra []*fields.AnnotatedField
	if len(args[3].Bytes) > 0 {
		extra = append(extra, fields.Annotate(fields.Unknown("Transfer data", hexPrefix(args[3].Bytes),
			"opaque bytes forwarded to the recipient's onERC721Received hook")))
	}
	return nftTransferView(ctx, to, args[0].Address, args[1].Address, bigString(args[2].Int), extra), nil
}

func visualizeSetApprovalForAll(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,bool)")
	if err != nil {
		return nil, err
	}
	operator := args[0].Address
	approved := args[1].Bool

	action := "Revoke operator"
	if approved {
		action = "Approve operator"
	}
	return &CallView{
		Title:      "Set Approval For All",
		Subtitle:   shortAddr(to),
		Condensed:  summaryField(action + " " + shortAddr(operator) + " for every token in " + shortAddr(to)),
		Recognized: true,
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Collection", evm.Checksum(to[:]), contractName(ctx, to), "")),
			fields.Annotate(fields.Address("Operator", evm.Checksum(operator[:]), contractName(ctx, operator), "")),
			fields.Annotate(fields.Text("Approved", boolText(approved))),
		},
	}, nil
}

func visualizeERC1155SafeTransfer(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,address,uint256,uint256,bytes)")
	if err != nil {
		return nil, err
	}
	tokenID := bigString(args[2].Int)
	quantity := bigString(args[3].Int)
	extra := []*fields.AnnotatedField{
		fields.Annotate(fields.Number("Quantity", quantity, quantity)),
	}
	if len(args[4].Bytes) > 0 {
		extra = append(extra, fields.Annotate(fields.Unknown("Transfer data", hexPrefix(args[4].Bytes),
			"opaque bytes forwarded to the recipient's onERC1155Received hook")))
	}
	v := nftTransferView(ctx, to, args[0].Address, args[1].Address, tokenID, extra)
	v.Condensed = summaryField(quantity + " of token #" + tokenID + " " + shortAddr(args[0].Address) + " → " + shortAddr(args[1].Address))
	return v, nil
}

func visualizeERC1155SafeBatchTransfer(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	args, err := decodeArgs(calldata, "(address,address,uint256[],uint256[],bytes)")
	if err != nil {
		return nil, err
	}
	from := args[0].Address
	recipient := args[1].Address
	ids := args[2].Items
	amounts := args[3].Items

	expanded := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Collection", evm.Checksum(to[:]), contractName(ctx, to), "")),
		fields.Annotate(fields.Address("From", evm.Checksum(from[:]), "", "")),
		fields.Annotate(fields.Address("Recipient", evm.Checksum(recipient[:]), "", "")),
	}
	for i := range ids {
		id := bigString(ids[i].Int)
		qty := "0"
		if i < len(amounts) {
			qty = bigString(amounts[i].Int)
		}
		expanded = append(expanded, fields.Annotate(fields.Text("Token #"+id, qty+" units")))
	}
	if len(args[4].Bytes) > 0 {
		expanded = append(expanded, fields.Annotate(fields.Unknown("Transfer data", hexPrefix(args[4].Bytes),
			"opaque bytes forwarded to the recipient's onERC1155BatchReceived hook")))
	}

	count := len(ids)
	return &CallView{
		Title:      "NFT Batch Transfer",
		Subtitle:   shortAddr(to),
		Condensed:  summaryField(strconv.Itoa(count) + " token kinds " + shortAddr(from) + " → " + shortAddr(recipient)),
		Expanded:   expanded,
		Recognized: true,
	}, nil
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
