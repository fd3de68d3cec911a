// Package svm decodes Solana transaction messages, both legacy and v0
// (address-lookup-table) formats.
//
// The legacy wire format (header, compact-u16 lengths, compiled
// instructions) and account-ordering rules follow outscript's solanatx.go.
// This package adds v0 detection (the high bit of the first
// message byte) and address_table_lookups decoding, since outscript only
// ever produced legacy messages itself.
package svm

import (
	"github.com/ModChain/base58"
	"github.com/ModChain/visualsign/visignerr"
)

// Key is a 32-byte Solana account/program key, base58-rendered.
type Key [32]byte

// String renders the key base58, the convention every Solana explorer and
// wallet uses.
func (k Key) String() string {
	return base58.Bitcoin.Encode(k[:])
}

// ParseKey parses a base58-encoded Solana key.
func ParseKey(s string) (Key, error) {
	buf, err := base58.Bitcoin.Decode(s)
	if err != nil {
		return Key{}, visignerr.Parse("BadBase58Key", 0, err)
	}
	if len(buf) != 32 {
		return Key{}, visignerr.Parse("BadKeyLength", 0, nil)
	}
	var k Key
	copy(k[:], buf)
	return k, nil
}

// MessageHeader carries the signer/readonly account counts.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts and the target program by index
// into the fully-resolved account list (static keys followed by ALT keys).
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndices []uint8
	Data           []byte
}

// AddressTableLookup references one address lookup table and the indices
// of the writable/readonly accounts a v0 message pulls from it.
type AddressTableLookup struct {
	TableAddress      Key
	WritableIndices   []uint8
	ReadonlyIndices   []uint8
}

// Message is a decoded Solana message, legacy or v0.
type Message struct {
	IsVersion0      bool
	Header          MessageHeader
	AccountKeys     []Key // static keys only, as they appear on the wire
	RecentBlockhash Key
	Instructions    []CompiledInstruction
	AddressTableLookups []AddressTableLookup
}

// ALTResolver resolves the writable/readonly account keys referenced by an
// address lookup table. No network access is performed by this package,
// so resolution is always caller-supplied,
// e.g. from accounts the caller already fetched through its own channel.
type ALTResolver interface {
	Resolve(table Key) (writable, readonly []Key, err error)
}

// ResolvedAccounts returns the full account key list in the canonical
// ordering used by account indices: static keys in wire order, followed by
// every table's writable keys, followed by every table's readonly keys. For
// a legacy message this is simply AccountKeys.
func (m *Message) ResolvedAccounts(resolver ALTResolver) ([]Key, error) {
	if !m.IsVersion0 || len(m.AddressTableLookups) == 0 {
		return m.AccountKeys, nil
	}
	if resolver == nil {
		return nil, visignerr.AltUnresolved("<none>", 0)
	}
	out := append([]Key(nil), m.AccountKeys...)
	var writable, readonly []Key
	for _, lookup := range m.AddressTableLookups {
		w, r, err := resolver.Resolve(lookup.TableAddress)
		if err != nil {
			return nil, visignerr.Resolution("AltLookupFailed", err)
		}
		for _, idx := range lookup.WritableIndices {
			if int(idx) >= len(w) {
				return nil, visignerr.AltUnresolved(lookup.TableAddress.String(), int(idx))
			}
			writable = append(writable, w[idx])
		}
		for _, idx := range lookup.ReadonlyIndices {
			if int(idx) >= len(r) {
				return nil, visignerr.AltUnresolved(lookup.TableAddress.String(), int(idx))
			}
			readonly = append(readonly, r[idx])
		}
	}
	out = append(out, writable...)
	out = append(out, readonly...)
	return out, nil
}

// ParseMessage decodes a Solana message. The high bit of the first byte set
// indicates a versioned message; only version 0 is understood, matching
// every wallet/RPC client currently deployed.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, visignerr.Parse("EmptyMessage", 0, nil)
	}

	msg := &Message{}
	r := data
	if r[0]&0x80 != 0 {
		version := r[0] &^ 0x80
		if version != 0 {
			return nil, visignerr.Parse("UnsupportedMessageVersion", 0, nil)
		}
		msg.IsVersion0 = true
		r = r[1:]
	}

	if len(r) < 3 {
		return nil, visignerr.Parse("TruncatedHeader", 0, nil)
	}
	msg.Header = MessageHeader{
		NumRequiredSignatures:       r[0],
		NumReadonlySignedAccounts:   r[1],
		NumReadonlyUnsignedAccounts: r[2],
	}
	r = r[3:]

	keyCount, n, err := decodeCompactU16(r)
	if err != nil {
		return nil, err
	}
	r = r[n:]
	msg.AccountKeys = make([]Key, keyCount)
	for i := 0; i < keyCount; i++ {
		if len(r) < 32 {
			return nil, visignerr.Parse("TruncatedAccountKeys", 0, nil)
		}
		copy(msg.AccountKeys[i][:], r[:32])
		r = r[32:]
	}

	if len(r) < 32 {
		return nil, visignerr.Parse("TruncatedBlockhash", 0, nil)
	}
	copy(msg.RecentBlockhash[:], r[:32])
	r = r[32:]

	ixCount, n, err := decodeCompactU16(r)
	if err != nil {
		return nil, err
	}
	r = r[n:]
	msg.Instructions = make([]CompiledInstruction, ixCount)
	for i := 0; i < ixCount; i++ {
		if len(r) < 1 {
			return nil, visignerr.Parse("TruncatedInstruction", 0, nil)
		}
		msg.Instructions[i].ProgramIDIndex = r[0]
		r = r[1:]

		accCount, n, err := decodeCompactU16(r)
		if err != nil {
			return nil, err
		}
		r = r[n:]
		if len(r) < accCount {
			return nil, visignerr.Parse("TruncatedInstructionAccounts", 0, nil)
		}
		msg.Instructions[i].AccountIndices = append([]byte(nil), r[:accCount]...)
		r = r[accCount:]

		dataLen, n, err := decodeCompactU16(r)
		if err != nil {
			return nil, err
		}
		r = r[n:]
		if len(r) < dataLen {
			return nil, visignerr.Parse("TruncatedInstructionData", 0, nil)
		}
		msg.Instructions[i].Data = append([]byte(nil), r[:dataLen]...)
		r = r[dataLen:]
	}

	if msg.IsVersion0 && len(r) > 0 {
		lookupCount, n, err := decodeCompactU16(r)
		if err != nil {
			return nil, err
		}
		r = r[n:]
		msg.AddressTableLookups = make([]AddressTableLookup, lookupCount)
		for i := 0; i < lookupCount; i++ {
			if len(r) < 32 {
				return nil, visignerr.Parse("TruncatedLookupTable", 0, nil)
			}
			copy(msg.AddressTableLookups[i].TableAddress[:], r[:32])
			r = r[32:]

			wCount, n, err := decodeCompactU16(r)
			if err != nil {
				return nil, err
			}
			r = r[n:]
			if len(r) < wCount {
				return nil, visignerr.Parse("TruncatedLookupWritable", 0, nil)
			}
			msg.AddressTableLookups[i].WritableIndices = append([]byte(nil), r[:wCount]...)
			r = r[wCount:]

			rCount, n, err := decodeCompactU16(r)
			if err != nil {
				return nil, err
			}
			r = r[n:]
			if len(r) < rCount {
				return nil, visignerr.Parse("TruncatedLookupReadonly", 0, nil)
			}
			msg.AddressTableLookups[i].ReadonlyIndices = append([]byte(nil), r[:rCount]...)
			r = r[rCount:]
		}
	}

	if len(r) != 0 {
		return nil, visignerr.Calldata("TrailingBytesAfterMessage", len(data)-len(r), nil)
	}

	return msg, nil
}

// decodeCompactU16 decodes Solana's compact-u16 varint.
func decodeCompactU16(data []byte) (int, int, error) {
	if len(data) == 0 {
		return 0, 0, visignerr.Parse("TruncatedCompactU16", 0, nil)
	}
	b0 := data[0]
	if b0 < 0x80 {
		return int(b0), 1, nil
	}
	if len(data) < 2 {
		return 0, 0, visignerr.Parse("TruncatedCompactU16", 1, nil)
	}
	b1 := data[1]
	if b1 < 0x80 {
		return int(b0&0x7f) | int(b1)<<7, 2, nil
	}
	if len(data) < 3 {
		return 0, 0, visignerr.Parse("TruncatedCompactU16", 2, nil)
	}
	b2 := data[2]
	if b2 > 3 {
		return 0, 0, visignerr.Calldata("CompactU16Overflow", 2, nil)
	}
	return int(b0&0x7f) | int(b1&0x7f)<<7 | int(b2)<<14, 3, nil
}
