package sui

import "github.com/ModChain/visualsign/visignerr"

// GasData carries the gas payment a transaction authorizes: the coin
// objects to draw from, their owner, and the price/budget bounds.
type GasData struct {
	Payment []ObjectRef
	Owner   Address
	Price   uint64
	Budget  uint64
}

// TransactionExpiration bounds when a transaction may execute. HasEpoch
// false means no expiration (the None variant).
type TransactionExpiration struct {
	HasEpoch bool
	Epoch    uint64
}

// TransactionData is the decoded unsigned transaction envelope: the
// programmable transaction body plus the sender, gas data, and expiration
// the signer endorses alongside it.
type TransactionData struct {
	Sender     Address
	GasData    GasData
	Expiration TransactionExpiration
	Tx         *ProgrammableTransaction
}

// ParseTransactionData decodes a full unsigned transaction: the
// TransactionData version enum (only V1 exists), the TransactionKind enum
// (only ProgrammableTransaction is supported; system kinds like
// ChangeEpoch are validator-internal and never user-signed), then the
// body, sender, gas data, and expiration. Every byte of the input must be
// consumed.
func ParseTransactionData(data []byte) (*TransactionData, error) {
	c := NewCursor(data)

	version, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, visignerr.Parse("UnsupportedTransactionDataVersion", c.Pos()-1, nil)
	}

	kind, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if kind != 0 {
		return nil, visignerr.Parse("UnsupportedTransactionKind", c.Pos()-1, nil)
	}

	ptb, err := readProgrammableTransaction(c)
	if err != nil {
		return nil, err
	}

	sender, err := readAddress(c)
	if err != nil {
		return nil, err
	}

	gas, err := readGasData(c)
	if err != nil {
		return nil, err
	}

	expiration, err := readExpiration(c)
	if err != nil {
		return nil, err
	}

	if err := c.AssertExhausted(); err != nil {
		return nil, err
	}

	return &TransactionData{
		Sender:     sender,
		GasData:    gas,
		Expiration: expiration,
		Tx:         ptb,
	}, nil
}

func readGasData(c *Cursor) (GasData, error) {
	n, err := c.ReadVecLen()
	if err != nil {
		return GasData{}, err
	}
	payment := make([]ObjectRef, n)
	for i := range payment {
		ref, err := readObjectRef(c)
		if err != nil {
			return GasData{}, err
		}
		payment[i] = ref
	}
	owner, err := readAddress(c)
	if err != nil {
		return GasData{}, err
	}
	price, err := c.ReadUint64()
	if err != nil {
		return GasData{}, err
	}
	budget, err := c.ReadUint64()
	if err != nil {
		return GasData{}, err
	}
	return GasData{Payment: payment, Owner: owner, Price: price, Budget: budget}, nil
}

func readExpiration(c *Cursor) (TransactionExpiration, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return TransactionExpiration{}, err
	}
	switch tag {
	case 0: // None
		return TransactionExpiration{}, nil
	case 1: // Epoch
		epoch, err := c.ReadUint64()
		if err != nil {
			return TransactionExpiration{}, err
		}
		return TransactionExpiration{HasEpoch: true, Epoch: epoch}, nil
	default:
		return TransactionExpiration{}, visignerr.Calldata("UnknownExpirationTag", c.Pos()-1, nil)
	}
}
