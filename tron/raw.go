// Package tron decodes a Tron transaction's raw_data protobuf message and
// its Contract entries using low-level protobuf wire primitives, without
// generated .proto code (fetching Tron's .proto definitions at build time
// is out of scope; protowire is the idiomatic wire-level primitive this
// module's gRPC stack already depends on).
package tron

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ModChain/visualsign/visignerr"
)

var errBadTag = visignerr.Parse("BadProtobufTag", 0, nil)

// Contract is one Contract entry of a Tron transaction's raw_data. Type is
// the Tron ContractType enum value (e.g. 1 = TransferContract, 31 =
// TriggerSmartContract); Parameter is the raw bytes of the
// google.protobuf.Any "value" field, still protobuf-encoded, to be decoded
// by a type-specific visualizer.
type Contract struct {
	Type      int32
	Parameter []byte
	TypeURL   string
}

// RawData is the decoded form of a Tron Transaction.raw_data message.
type RawData struct {
	RefBlockBytes []byte
	RefBlockHash  []byte
	Expiration    int64
	Contracts     []Contract
	Timestamp     int64
	FeeLimit      int64
}

// ParseRawData decodes a Tron Transaction.raw_data protobuf message.
// Field numbers follow Tron's core/Tron.proto Transaction.raw message:
// 1=ref_block_bytes, 2=ref_block_num, 3=ref_block_hash, 4=expiration,
// 11=contract (repeated Contract), 14=timestamp, 18=fee_limit.
func ParseRawData(buf []byte) (*RawData, error) {
	rd := &RawData{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, visignerr.Parse("BadProtobufTag", 0, nil)
		}
		buf = buf[n:]

		switch num {
		case 1: // ref_block_bytes
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			rd.RefBlockBytes = v
			buf = buf[n:]
		case 3: // ref_block_hash
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			rd.RefBlockHash = v
			buf = buf[n:]
		case 4: // expiration
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			rd.Expiration = int64(v)
			buf = buf[n:]
		case 11: // contract
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			c, err := parseContract(v)
			if err != nil {
				return nil, err
			}
			rd.Contracts = append(rd.Contracts, *c)
			buf = buf[n:]
		case 14: // timestamp
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			rd.Timestamp = int64(v)
			buf = buf[n:]
		case 18: // fee_limit
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			rd.FeeLimit = int64(v)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, visignerr.Parse("BadProtobufField", 0, nil)
			}
			buf = buf[n:]
		}
	}
	return rd, nil
}

// parseContract decodes one Tron Contract message: field 1 = type (enum
// varint), field 2 = parameter (google.protobuf.Any).
func parseContract(buf []byte) (*Contract, error) {
	c := &Contract{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, visignerr.Parse("BadProtobufTag", 0, nil)
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			c.Type = int32(v)
			buf = buf[n:]
		case 2:
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			typeURL, value, err := parseAny(v)
			if err != nil {
				return nil, err
			}
			c.TypeURL = typeURL
			c.Parameter = value
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, visignerr.Parse("BadProtobufField", 0, nil)
			}
			buf = buf[n:]
		}
	}
	return c, nil
}

// parseAny decodes a google.protobuf.Any: field 1 = type_url (string),
// field 2 = value (bytes).
func parseAny(buf []byte) (typeURL string, value []byte, err error) {
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return "", nil, visignerr.Parse("BadProtobufTag", 0, nil)
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, e := consumeBytes(buf, typ)
			if e != nil {
				return "", nil, e
			}
			typeURL = string(v)
			buf = buf[n:]
		case 2:
			v, n, e := consumeBytes(buf, typ)
			if e != nil {
				return "", nil, e
			}
			value = v
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return "", nil, visignerr.Parse("BadProtobufField", 0, nil)
			}
			buf = buf[n:]
		}
	}
	return typeURL, value, nil
}

func consumeVarint(buf []byte, typ protowire.Type) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, visignerr.Parse("WireTypeMismatch", 0, nil)
	}
	v, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return 0, 0, visignerr.Parse("BadVarint", 0, nil)
	}
	return v, n, nil
}

func consumeBytes(buf []byte, typ protowire.Type) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, visignerr.Parse("WireTypeMismatch", 0, nil)
	}
	v, n := protowire.ConsumeBytes(buf)
	if n < 0 {
		return nil, 0, visignerr.Parse("BadLengthDelimited", 0, nil)
	}
	return v, n, nil
}
