package tron

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ModChain/visualsign/visignerr"
)

// TransferContract moves TRX from owner to to_address. Field numbers follow
// core/Tron.proto's TransferContract: 1=owner_address, 2=to_address, 3=amount.
type TransferContract struct {
	OwnerAddress []byte
	ToAddress    []byte
	Amount       int64
}

// ParseTransferContract decodes a TransferContract's parameter bytes.
func ParseTransferContract(buf []byte) (*TransferContract, error) {
	tc := &TransferContract{}
	for len(buf) > 0 {
		num, typ, n, err := consumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			tc.OwnerAddress = v
			buf = buf[n:]
		case 2:
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			tc.ToAddress = v
			buf = buf[n:]
		case 3:
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			tc.Amount = int64(v)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, visignerr.Parse("BadProtobufField", 0, nil)
			}
			buf = buf[n:]
		}
	}
	return tc, nil
}

// TriggerSmartContract invokes a TRC-20/TVM contract. Field numbers follow
// core/Tron.proto's TriggerSmartContract: 1=owner_address,
// 2=contract_address, 3=call_value, 4=data, 5=call_token_value,
// 6=token_id.
type TriggerSmartContract struct {
	OwnerAddress    []byte
	ContractAddress []byte
	CallValue       int64
	Data            []byte
	CallTokenValue  int64
	TokenID         int64
}

// ParseTriggerSmartContract decodes a TriggerSmartContract's parameter bytes.
func ParseTriggerSmartContract(buf []byte) (*TriggerSmartContract, error) {
	tsc := &TriggerSmartContract{}
	for len(buf) > 0 {
		num, typ, n, err := consumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			tsc.OwnerAddress = v
			buf = buf[n:]
		case 2:
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			tsc.ContractAddress = v
			buf = buf[n:]
		case 3:
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			tsc.CallValue = int64(v)
			buf = buf[n:]
		case 4:
			v, n, err := consumeBytes(buf, typ)
			if err != nil {
				return nil, err
			}
			tsc.Data = v
			buf = buf[n:]
		case 5:
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			tsc.CallTokenValue = int64(v)
			buf = buf[n:]
		case 6:
			v, n, err := consumeVarint(buf, typ)
			if err != nil {
				return nil, err
			}
			tsc.TokenID = int64(v)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, visignerr.Parse("BadProtobufField", 0, nil)
			}
			buf = buf[n:]
		}
	}
	return tsc, nil
}

func consumeTag(buf []byte) (protowire.Number, protowire.Type, int, error) {
	num, typ, n := protowire.ConsumeTag(buf)
	if n < 0 {
		return 0, 0, 0, errBadTag
	}
	return num, typ, n, nil
}
