package dynamicabi

import (
	"math/big"

	"github.com/ModChain/visualsign/visignerr"
)

// Value is a decoded ABI value. Exactly one of the fields matching Type.Kind
// is meaningful; callers switch on Type.Kind to interpret it.
type Value struct {
	Type    AbiType
	Int     *big.Int // KindUint/KindInt
	Bool    bool
	Bytes   []byte // KindBytes/KindFixedBytes
	Str     string // KindString
	Address [20]byte
	Items   []Value // KindFixedArray/KindDynArray/KindTuple
}

const wordSize = 32

// Decode decodes a single top-level value of the given type from a
// head+tail region starting at offset 0 of buf (i.e. buf is the region, not
// the whole calldata with a 4-byte selector prefix still attached; callers
// decoding a full call strip the selector first).
func Decode(t AbiType, buf []byte) (Value, error) {
	v, _, err := decodeAt(t, buf, 0)
	return v, err
}

// DecodeArgs decodes a sequence of top-level ABI parameters (a function's
// full argument list) from a single head+tail region.
func DecodeArgs(types []AbiType, buf []byte) ([]Value, error) {
	out := make([]Value, len(types))
	headOffset := 0
	for _, t := range types {
		headOffset += t.HeadSize() * wordSize
	}
	pos := 0
	for i, t := range types {
		v, err := decodeHeadSlot(t, buf, pos, headOffset)
		if err != nil {
			return nil, err
		}
		out[i] = v
		pos += t.HeadSize() * wordSize
	}
	return out, nil
}

func word(buf []byte, offset int) ([]byte, error) {
	if offset < 0 || offset+wordSize > len(buf) {
		return nil, visignerr.Calldata("OffsetOutOfRange", offset, nil)
	}
	return buf[offset : offset+wordSize], nil
}

// decodeHeadSlot decodes the value whose head begins at pos. baseTail is
// unused here but kept symmetrical with decodeAt's offset-is-absolute
// convention: dynamic types store an offset relative to the start of the
// enclosing head+tail region (buf itself), not relative to pos.
func decodeHeadSlot(t AbiType, buf []byte, pos int, _ int) (Value, error) {
	if t.IsDynamic() {
		w, err := word(buf, pos)
		if err != nil {
			return Value{}, err
		}
		offsetBig := new(big.Int).SetBytes(w)
		if !offsetBig.IsInt64() || offsetBig.Int64() > int64(len(buf)) {
			return Value{}, visignerr.Calldata("OffsetOverflow", pos, nil)
		}
		v, _, err := decodeAt(t, buf, int(offsetBig.Int64()))
		return v, err
	}
	v, _, err := decodeAt(t, buf, pos)
	return v, err
}

// decodeAt decodes a value of type t starting at byte offset off within buf,
// returning the value and the number of head bytes consumed (only
// meaningful for the tuple/fixed-array recursive case).
func decodeAt(t AbiType, buf []byte, off int) (Value, int, error) {
	switch t.Kind {
	case KindUint, KindInt:
		w, err := word(buf, off)
		if err != nil {
			return Value{}, 0, err
		}
		n := new(big.Int).SetBytes(w)
		if t.Kind == KindInt && len(w) > 0 && w[0]&0x80 != 0 {
			// two's complement of a 256-bit negative value
			mod := new(big.Int).Lsh(big.NewInt(1), 256)
			n.Sub(n, mod)
		}
		return Value{Type: t, Int: n}, wordSize, nil

	case KindAddress:
		w, err := word(buf, off)
		if err != nil {
			return Value{}, 0, err
		}
		var addr [20]byte
		copy(addr[:], w[12:])
		return Value{Type: t, Address: addr}, wordSize, nil

	case KindBool:
		w, err := word(buf, off)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: t, Bool: w[wordSize-1] != 0}, wordSize, nil

	case KindFixedBytes:
		w, err := word(buf, off)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: t, Bytes: append([]byte(nil), w[:t.ByteSize]...)}, wordSize, nil

	case KindBytes, KindString:
		w, err := word(buf, off)
		if err != nil {
			return Value{}, 0, err
		}
		lengthBig := new(big.Int).SetBytes(w)
		start := off + wordSize
		if !lengthBig.IsInt64() || lengthBig.Int64() > int64(len(buf)-start) {
			return Value{}, 0, visignerr.Calldata("DynamicLengthOutOfRange", off, nil)
		}
		length := int(lengthBig.Int64())
		raw := buf[start : start+length]
		if t.Kind == KindString {
			return Value{Type: t, Str: string(raw)}, wordSize, nil
		}
		return Value{Type: t, Bytes: append([]byte(nil), raw...)}, wordSize, nil

	case KindFixedArray:
		// Offsets of dynamic members are relative to the start of the
		// array's own encoding, so decoding proceeds against a region
		// beginning there, mirroring the KindDynArray case below.
		if off < 0 || off > len(buf) {
			return Value{}, 0, visignerr.Calldata("OffsetOutOfRange", off, nil)
		}
		region := buf[off:]
		items := make([]Value, t.ArrayLen)
		pos := 0
		for i := 0; i < t.ArrayLen; i++ {
			v, err := decodeHeadSlot(*t.Elem, region, pos, 0)
			if err != nil {
				return Value{}, 0, err
			}
			items[i] = v
			pos += t.Elem.HeadSize() * wordSize
		}
		return Value{Type: t, Items: items}, wordSize, nil

	case KindDynArray:
		w, err := word(buf, off)
		if err != nil {
			return Value{}, 0, err
		}
		countBig := new(big.Int).SetBytes(w)
		region := buf[off+wordSize:]
		// Every element claims at least one head word, so a count that
		// cannot fit in the remaining bytes is malformed, not just large.
		if !countBig.IsInt64() || countBig.Int64() > int64(len(region)/wordSize) {
			return Value{}, 0, visignerr.Calldata("ArrayLengthOutOfRange", off, nil)
		}
		count := int(countBig.Int64())
		items := make([]Value, count)
		pos := 0
		for i := 0; i < count; i++ {
			v, err := decodeHeadSlot(*t.Elem, region, pos, 0)
			if err != nil {
				return Value{}, 0, err
			}
			items[i] = v
			pos += t.Elem.HeadSize() * wordSize
		}
		return Value{Type: t, Items: items}, wordSize, nil

	case KindTuple:
		// As with arrays, a dynamic member's head offset is relative to the
		// start of this tuple's encoding, not to the outermost region.
		if off < 0 || off > len(buf) {
			return Value{}, 0, visignerr.Calldata("OffsetOutOfRange", off, nil)
		}
		region := buf[off:]
		items := make([]Value, len(t.Fields))
		pos := 0
		for i, f := range t.Fields {
			v, err := decodeHeadSlot(f, region, pos, 0)
			if err != nil {
				return Value{}, 0, err
			}
			items[i] = v
			pos += f.HeadSize() * wordSize
		}
		return Value{Type: t, Items: items}, wordSize, nil
	}
	return Value{}, 0, visignerr.Calldata("UnknownAbiKind", off, nil)
}
