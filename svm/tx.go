package svm

import "github.com/ModChain/visualsign/visignerr"

// Tx is a decoded Solana transaction: a signature list plus its message.
type Tx struct {
	Signatures [][64]byte
	Message    *Message
}

// Parse decodes a full Solana transaction (signatures + message).
func Parse(data []byte) (*Tx, error) {
	sigCount, n, err := decodeCompactU16(data)
	if err != nil {
		return nil, err
	}
	r := data[n:]

	sigs := make([][64]byte, sigCount)
	for i := 0; i < sigCount; i++ {
		if len(r) < 64 {
			return nil, visignerr.Parse("TruncatedSignatures", 0, nil)
		}
		copy(sigs[i][:], r[:64])
		r = r[64:]
	}

	msg, err := ParseMessage(r)
	if err != nil {
		return nil, err
	}
	return &Tx{Signatures: sigs, Message: msg}, nil
}
