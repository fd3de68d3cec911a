// Package evm decodes Ethereum-family transaction envelopes (legacy,
// EIP-2930, EIP-1559, EIP-4844, EIP-7702) into a structured Tx, and renders
// EIP-55 checksummed addresses.
//
// The envelope dispatch follows outscript's evmtx.go, which dispatches on
// the leading byte and decodes the same RLP field lists for
// signing/encoding. Unlike that library, this package is
// decode-only and strict: it rejects non-minimal integers and any trailing
// bytes rather than tolerating them, since a visualizer must never silently
// accept calldata it can't fully account for.
package evm

import (
	"encoding/hex"
	"math/big"

	"github.com/KarpelesLab/typutil"
	"github.com/ModChain/rlp"
	"github.com/ModChain/visualsign/visignerr"
)

// TxType mirrors the EIP-2718 envelope type byte.
type TxType int

const (
	TxLegacy TxType = iota
	TxEIP2930
	TxEIP1559
	TxEIP4844
	TxEIP7702
)

// AccessListEntry is one (address, storage keys) pair of an EIP-2930 access list.
type AccessListEntry struct {
	Address     [20]byte
	StorageKeys [][32]byte
}

// AuthorizationEntry is one EIP-7702 authorization tuple.
type AuthorizationEntry struct {
	ChainID uint64
	Address [20]byte
	Nonce   uint64
	YParity uint64
	R, S    *big.Int
}

// Tx is the decoded form of any supported Ethereum transaction envelope.
// Unused fields for a given Type are left zero.
type Tx struct {
	Type       TxType
	ChainID    uint64
	Nonce      uint64
	GasTipCap  *big.Int // maxPriorityFeePerGas
	GasFeeCap  *big.Int // maxFeePerGas / gasPrice
	Gas        uint64
	To         []byte // empty for contract creation
	Value      *big.Int
	Data       []byte
	AccessList []AccessListEntry

	// EIP-4844 only.
	MaxFeePerBlobGas   *big.Int
	BlobVersionedHashes [][32]byte

	// EIP-7702 only.
	AuthorizationList []AuthorizationEntry

	Signed bool
	Y, R, S *big.Int
}

// ToAddress renders To as an EIP-55 checksummed address, or "" for a
// contract-creation transaction.
func (tx *Tx) ToAddress() string {
	if len(tx.To) == 0 {
		return ""
	}
	return Checksum(tx.To)
}

// Checksum renders a 20-byte address with EIP-55 mixed-case checksumming.
func Checksum(addr []byte) string {
	lower := hex.EncodeToString(addr)
	digest := Keccak256([]byte(lower))

	out := make([]byte, len(lower))
	for i, c := range []byte(lower) {
		if c >= '0' && c <= '9' {
			out[i] = c
			continue
		}
		// nibble i of digest: high nibble for even i, low for odd i
		var nibble byte
		if i%2 == 0 {
			nibble = digest[i/2] >> 4
		} else {
			nibble = digest[i/2] & 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		} else {
			out[i] = c
		}
	}
	return "0x" + string(out)
}

// EffectiveChainID returns the chain id of the transaction: the envelope
// field directly for typed transactions, or the EIP-155-derived value from
// the legacy signature's V for legacy transactions (0 if the legacy
// transaction predates EIP-155).
func (tx *Tx) EffectiveChainID() uint64 {
	if tx.Type != TxLegacy {
		return tx.ChainID
	}
	if !tx.Signed || tx.Y == nil {
		return tx.ChainID
	}
	v := tx.Y.Uint64()
	if v < 35 {
		return 0
	}
	bit := 1 - (v & 1)
	return (v - 35 - bit) / 2
}

// Parse decodes a raw Ethereum transaction: a leading byte >= 0xc0 is a
// legacy RLP list per EIP-2718; 0x01/0x02/0x03/0x04 select the EIP-2930,
// EIP-1559, EIP-4844, and EIP-7702 typed envelopes respectively. Bytes
// 0x05-0xbf are neither a defined envelope type nor a list and are
// rejected outright.
func Parse(buf []byte) (*Tx, error) {
	if len(buf) < 1 {
		return nil, visignerr.Parse("EmptyInput", 0, nil)
	}
	if buf[0] >= 0xc0 {
		return parseLegacy(buf)
	}
	switch buf[0] {
	case 0x01:
		return parseTyped(buf, TxEIP2930)
	case 0x02:
		return parseTyped(buf, TxEIP1559)
	case 0x03:
		return parseTyped(buf, TxEIP4844)
	case 0x04:
		return parseTyped(buf, TxEIP7702)
	default:
		return nil, visignerr.UnsupportedTxType(buf[0])
	}
}

func strictDecodeList(buf []byte) ([]any, error) {
	dec, err := rlp.Decode(buf)
	if err != nil {
		return nil, visignerr.Parse("RlpDecodeFailed", 0, err)
	}
	if len(dec) != 1 {
		return nil, visignerr.Parse("NotASingleRlpValue", 0, nil)
	}
	list, ok := dec[0].([]any)
	if !ok {
		return nil, visignerr.Parse("NotAnRlpList", 0, nil)
	}
	// Re-encode and compare length: any trailing bytes after the one
	// top-level RLP value, or any non-minimal integer encoding inside it,
	// changes the re-encoded length versus the input.
	reenc, err := rlp.EncodeValue(list)
	if err != nil {
		return nil, visignerr.Parse("RlpReencodeFailed", 0, err)
	}
	if len(reenc) != len(buf) {
		return nil, visignerr.Parse("NonCanonicalOrTrailingRlp", len(reenc), nil)
	}
	return list, nil
}

func bigFromRlp(v any) *big.Int {
	return new(big.Int).SetBytes(bytesFromRlp(v))
}

func bytesFromRlp(v any) []byte {
	b, _ := typutil.As[[]byte](v)
	return b
}

func uint64FromRlp(v any) uint64 {
	return rlp.DecodeUint64(bytesFromRlp(v))
}

func parseLegacy(buf []byte) (*Tx, error) {
	list, err := strictDecodeList(buf)
	if err != nil {
		return nil, err
	}
	if len(list) != 6 && len(list) != 9 {
		return nil, visignerr.Calldata("BadLegacyFieldCount", 0, nil)
	}
	tx := &Tx{
		Type:      TxLegacy,
		Nonce:     uint64FromRlp(list[0]),
		GasFeeCap: bigFromRlp(list[1]),
		Gas:       uint64FromRlp(list[2]),
		To:        bytesFromRlp(list[3]),
		Value:     bigFromRlp(list[4]),
		Data:      bytesFromRlp(list[5]),
	}
	if len(list) == 9 {
		tx.Signed = true
		tx.Y = bigFromRlp(list[6])
		tx.R = bigFromRlp(list[7])
		tx.S = bigFromRlp(list[8])
	}
	return tx, nil
}

func parseTyped(buf []byte, typ TxType) (*Tx, error) {
	list, err := strictDecodeList(buf[1:])
	if err != nil {
		return nil, err
	}

	var minFields, signedFields int
	switch typ {
	case TxEIP2930:
		minFields, signedFields = 8, 11
	case TxEIP1559:
		minFields, signedFields = 9, 12
	case TxEIP4844:
		minFields, signedFields = 11, 14
	case TxEIP7702:
		minFields, signedFields = 10, 13
	}
	if len(list) != minFields && len(list) != signedFields {
		return nil, visignerr.Calldata("BadTypedFieldCount", 0, nil)
	}

	tx := &Tx{Type: typ, ChainID: uint64FromRlp(list[0])}
	i := 1
	tx.Nonce = uint64FromRlp(list[i])
	i++
	if typ == TxEIP2930 {
		tx.GasFeeCap = bigFromRlp(list[i])
		i++
	} else {
		tx.GasTipCap = bigFromRlp(list[i])
		i++
		tx.GasFeeCap = bigFromRlp(list[i])
		i++
	}
	tx.Gas = uint64FromRlp(list[i])
	i++
	tx.To = bytesFromRlp(list[i])
	i++
	tx.Value = bigFromRlp(list[i])
	i++
	tx.Data = bytesFromRlp(list[i])
	i++

	if al, ok := list[i].([]any); ok {
		tx.AccessList = decodeAccessList(al)
	}
	i++

	if typ == TxEIP4844 {
		tx.MaxFeePerBlobGas = bigFromRlp(list[i])
		i++
		if hashes, ok := list[i].([]any); ok {
			for _, h := range hashes {
				hb := bytesFromRlp(h)
				var arr [32]byte
				copy(arr[:], hb)
				tx.BlobVersionedHashes = append(tx.BlobVersionedHashes, arr)
			}
		}
		i++
	}

	if typ == TxEIP7702 {
		if auths, ok := list[i].([]any); ok {
			tx.AuthorizationList = decodeAuthorizationList(auths)
		}
		i++
	}

	if len(list) == signedFields {
		tx.Signed = true
		tx.Y = bigFromRlp(list[i])
		tx.R = bigFromRlp(list[i+1])
		tx.S = bigFromRlp(list[i+2])
	}

	return tx, nil
}

func decodeAccessList(al []any) []AccessListEntry {
	out := make([]AccessListEntry, 0, len(al))
	for _, e := range al {
		entry, ok := e.([]any)
		if !ok || len(entry) != 2 {
			continue
		}
		var acc AccessListEntry
		copy(acc.Address[:], bytesFromRlp(entry[0]))
		if keys, ok := entry[1].([]any); ok {
			for _, k := range keys {
				var arr [32]byte
				copy(arr[:], bytesFromRlp(k))
				acc.StorageKeys = append(acc.StorageKeys, arr)
			}
		}
		out = append(out, acc)
	}
	return out
}

func decodeAuthorizationList(auths []any) []AuthorizationEntry {
	out := make([]AuthorizationEntry, 0, len(auths))
	for _, a := range auths {
		entry, ok := a.([]any)
		if !ok || len(entry) != 6 {
			continue
		}
		var ae AuthorizationEntry
		ae.ChainID = uint64FromRlp(entry[0])
		copy(ae.Address[:], bytesFromRlp(entry[1]))
		ae.Nonce = uint64FromRlp(entry[2])
		ae.YParity = uint64FromRlp(entry[3])
		ae.R = bigFromRlp(entry[4])
		ae.S = bigFromRlp(entry[5])
		out = append(out, ae)
	}
	return out
}
