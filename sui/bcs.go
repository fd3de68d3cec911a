// Package sui decodes Sui transaction data: BCS (Binary Canonical
// Serialization) primitives and the ProgrammableTransaction command set.
//
// The Go ecosystem has no maintained BCS library (the canonical
// implementations are Rust and TypeScript), so the format is hand-rolled
// here; it is a small, fully-specified grammar. The byte-cursor decoding
// style follows the same low-level approach this module's evm and svm
// packages use for their own wire formats.
package sui

import "github.com/ModChain/visualsign/visignerr"

// Cursor is a forward-only byte reader used by every BCS decode function.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for decoding.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Pos returns the current byte offset, for error reporting.
func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return visignerr.Parse("TruncatedBcs", c.pos, nil)
	}
	return nil
}

// ReadByte consumes and returns a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes consumes and returns the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// ReadULEB128 reads a ULEB128-encoded unsigned integer, the encoding BCS
// uses for every variable-length count (vector lengths, enum variant tags).
func (c *Cursor) ReadULEB128() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift >= 64 {
			return 0, visignerr.Calldata("Uleb128Overflow", c.pos, nil)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			// Reject non-minimal encodings: a final byte of 0 with shift > 0
			// means a shorter encoding existed.
			if b == 0 && shift > 0 {
				return 0, visignerr.Calldata("NonMinimalUleb128", c.pos, nil)
			}
			return result, nil
		}
		shift += 7
	}
}

// ReadUint8/16/32/64/128 read little-endian fixed-width integers.

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadByte()
	return b, err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	var v uint32
	for i := 3; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	return v, nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// ReadUint256 reads a little-endian 32-byte unsigned integer, returned as
// raw big-endian bytes for convenience with math/big.
func (c *Cursor) ReadUint256() ([]byte, error) {
	b, err := c.ReadBytes(32)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 32)
	for i := 0; i < 32; i++ {
		out[i] = b[31-i]
	}
	return out, nil
}

// ReadBool reads a BCS bool: exactly 0 or 1.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, visignerr.Calldata("BadBcsBool", c.pos-1, nil)
	}
}

// ReadVecLen reads a vector length prefix (ULEB128).
func (c *Cursor) ReadVecLen() (int, error) {
	n, err := c.ReadULEB128()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ReadFixedBytes reads a fixed-size byte array (e.g. a 32-byte ObjectID or
// address), which BCS encodes with no length prefix.
func (c *Cursor) ReadFixedBytes(n int) ([]byte, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// ReadVecBytes reads a length-prefixed byte vector.
func (c *Cursor) ReadVecBytes() ([]byte, error) {
	n, err := c.ReadVecLen()
	if err != nil {
		return nil, err
	}
	return c.ReadFixedBytes(n)
}

// ReadString reads a BCS string: a ULEB128 length followed by UTF-8 bytes.
func (c *Cursor) ReadString() (string, error) {
	b, err := c.ReadVecBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AssertExhausted returns an error if unread bytes remain. Every top-level
// decode must consume its whole input.
func (c *Cursor) AssertExhausted() error {
	if c.Remaining() != 0 {
		return visignerr.Calldata("TrailingBcsBytes", c.pos, nil)
	}
	return nil
}
