package fields

import "encoding/hex"

// PayloadType tags the chain family a SignablePayload was produced from.
type PayloadType string

const (
	PayloadEthereum PayloadType = "EthereumTx"
	PayloadSolana   PayloadType = "SolanaTx"
	PayloadSui      PayloadType = "SuiTx"
	PayloadTron     PayloadType = "TronTx"
)

// SchemaVersion is the numeric Version stamped on every SignablePayload. It
// is rendered as a string on the wire; there is no schema bump defined
// yet, so this stays a constant.
const SchemaVersion = 0

// SignablePayload is the envelope a hardware signer or policy engine shows
// to a user for approval. Its Fields are the complete, exhaustive semantic
// rendering of the input bytes: nothing in the source transaction is allowed
// to affect the outcome of signing without appearing here.
type SignablePayload struct {
	Version              int
	Title                string
	Subtitle             string
	PayloadType          PayloadType
	Fields               []*Field
	EndorsedParamsDigest []byte
}

// New builds an empty envelope of the given payload type with the standard
// schema version.
func New(payloadType PayloadType, title string) *SignablePayload {
	return &SignablePayload{
		Version:     SchemaVersion,
		Title:       title,
		PayloadType: payloadType,
	}
}

// Add appends one or more fields in source order.
func (p *SignablePayload) Add(f ...*Field) {
	p.Fields = append(p.Fields, f...)
}

// DigestHex returns the hex encoding of EndorsedParamsDigest, or "" if unset.
func (p *SignablePayload) DigestHex() string {
	if len(p.EndorsedParamsDigest) == 0 {
		return ""
	}
	return hex.EncodeToString(p.EndorsedParamsDigest)
}
