// Package dynamicabi implements a dynamic Solidity ABI decoder: a
// recursive AbiType tree built from caller-supplied ABI JSON fragments, and
// a head/tail offset-based decoder over arbitrary nested tuples and arrays.
//
// This is the decode-side mirror of outscript's evmabi.go AbiBuffer, which
// walks Go values against ABI type strings to produce encoded calldata (uint256/address/bytes/string,
// including the offset+length+data convention for dynamic types). Decoding
// untrusted calldata against a caller-supplied ABI needs the general
// recursive type tree evmabi.go's flat switch never required, since it only
// ever encoded primitive leaf types.
package dynamicabi

import "github.com/ModChain/visualsign/visignerr"

// Kind discriminates the ABI type categories this decoder understands.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindAddress
	KindBool
	KindBytes    // dynamic bytes
	KindString
	KindFixedBytes // bytesN
	KindFixedArray // T[N]
	KindDynArray   // T[]
	KindTuple
)

// AbiType is a recursive ABI type descriptor.
type AbiType struct {
	Kind     Kind
	BitSize  int       // for KindUint/KindInt
	ByteSize int       // for KindFixedBytes
	Elem     *AbiType  // for KindFixedArray/KindDynArray
	ArrayLen int       // for KindFixedArray
	Fields   []AbiType // for KindTuple
	Name     string    // display name, e.g. "amount" or "path"
}

// IsDynamic reports whether a type's encoding uses a head/tail offset
// rather than being inlined in the head directly, per the EVM ABI v2 spec.
func (t AbiType) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindDynArray:
		return true
	case KindFixedArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, f := range t.Fields {
			if f.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HeadSize returns the number of 32-byte words a type occupies in the head
// region: 1 for any static or dynamic (offset) type, except a static tuple
// or fixed array of static elements, which inlines its full contents.
func (t AbiType) HeadSize() int {
	if t.IsDynamic() {
		return 1
	}
	switch t.Kind {
	case KindFixedArray:
		return t.ArrayLen * t.Elem.HeadSize()
	case KindTuple:
		sum := 0
		for _, f := range t.Fields {
			sum += f.HeadSize()
		}
		return sum
	default:
		return 1
	}
}

func Uint(bits int) AbiType   { return AbiType{Kind: KindUint, BitSize: bits} }
func Int(bits int) AbiType    { return AbiType{Kind: KindInt, BitSize: bits} }
func Address() AbiType        { return AbiType{Kind: KindAddress} }
func Bool() AbiType           { return AbiType{Kind: KindBool} }
func Bytes() AbiType          { return AbiType{Kind: KindBytes} }
func String() AbiType         { return AbiType{Kind: KindString} }
func FixedBytes(n int) AbiType { return AbiType{Kind: KindFixedBytes, ByteSize: n} }
func DynArray(elem AbiType) AbiType {
	return AbiType{Kind: KindDynArray, Elem: &elem}
}
func FixedArray(elem AbiType, n int) AbiType {
	return AbiType{Kind: KindFixedArray, Elem: &elem, ArrayLen: n}
}
func Tuple(fields ...AbiType) AbiType {
	return AbiType{Kind: KindTuple, Fields: fields}
}

// ErrUnsupportedType is returned by ParseTypeString for grammar it does not
// recognize.
var ErrUnsupportedType = visignerr.Config("UnsupportedAbiTypeString", nil)
