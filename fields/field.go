// Package fields implements the SignablePayload field model: a tagged union
// of semantic field variants, the SignablePayload envelope that carries them,
// strict validation of every invariant the model requires, and a canonical
// (key-sorted, whitespace-free) JSON encoder so that two parses of the same
// input are byte-identical on the wire.
//
// The shape extends the field model of this project's earlier
// single-contract Ethereum parser (TextV2/AddressV2/AmountV2/
// PreviewLayout/ListLayout), generalized to the full tagged union (adds
// number, divider, unknown, and the legacy text/address/amount variants)
// plus the recursive Annotated field wrapper.
package fields

// FieldType is the discriminator tag of a SignablePayloadField.
type FieldType string

const (
	TypeText          FieldType = "text"
	TypeAddress       FieldType = "address"
	TypeAmount        FieldType = "amount"
	TypeTextV2        FieldType = "text_v2"
	TypeAddressV2     FieldType = "address_v2"
	TypeAmountV2      FieldType = "amount_v2"
	TypeNumber        FieldType = "number"
	TypeDivider       FieldType = "divider"
	TypePreviewLayout FieldType = "preview_layout"
	TypeListLayout    FieldType = "list_layout"
	TypeUnknown       FieldType = "unknown"
)

// TextPayload is the legacy `text` variant payload, kept for back-compat.
type TextPayload struct {
	Text string `json:"text"`
}

// AddressPayload is the legacy `address` variant payload, kept for back-compat.
type AddressPayload struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// AmountPayload is the legacy `amount` variant payload, kept for back-compat.
type AmountPayload struct {
	Amount string `json:"amount"`
}

// TextV2Payload is the current plain-text field payload.
type TextV2Payload struct {
	Text string `json:"text"`
}

// AddressV2Payload is the current address field payload.
type AddressV2Payload struct {
	Address    string `json:"address"`
	Name       string `json:"name,omitempty"`
	Memo       string `json:"memo,omitempty"`
	AssetLabel string `json:"asset_label,omitempty"`
	BadgeText  string `json:"badge_text,omitempty"`
}

// AmountV2Payload is the current amount field payload. Amount must satisfy
// the signed-proper-number grammar (see Validate).
type AmountV2Payload struct {
	Amount       string `json:"amount"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// NumberPayload carries a bare numeric value; FallbackText on the containing
// field carries the display form.
type NumberPayload struct {
	Number string `json:"number"`
}

// DividerPayload is purely presentational.
type DividerPayload struct {
	Style string `json:"style,omitempty"`
}

// UnknownPayload carries raw hex data the pipeline could not semantically
// decode, plus a human explanation of why. Both are required: silently
// dropping bytes is never acceptable.
type UnknownPayload struct {
	Data        string `json:"data"`
	Explanation string `json:"explanation"`
}

// PreviewLayout is a two-tier rendering: a one-line Condensed view and a
// full Expanded view, used for every top-level semantic action and every
// recursive sub-call (router commands, multicall entries, inner
// instructions).
type PreviewLayout struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Condensed ListLayout `json:"condensed"`
	Expanded  ListLayout `json:"expanded"`
}

// ListLayout is an ordered list of annotated fields.
type ListLayout struct {
	Fields []*AnnotatedField `json:"fields"`
}

// Field is the tagged union every rendered value flows through. Exactly one of the
// payload pointers matching Type is populated; Validate enforces that.
type Field struct {
	Label        string    `json:"label"`
	FallbackText string    `json:"fallback_text"`
	Type         FieldType `json:"type"`

	Text          *TextPayload     `json:"text,omitempty"`
	Address       *AddressPayload  `json:"address,omitempty"`
	Amount        *AmountPayload   `json:"amount,omitempty"`
	TextV2        *TextV2Payload   `json:"text_v2,omitempty"`
	AddressV2     *AddressV2Payload `json:"address_v2,omitempty"`
	AmountV2      *AmountV2Payload `json:"amount_v2,omitempty"`
	Number        *NumberPayload   `json:"number,omitempty"`
	Divider       *DividerPayload  `json:"divider,omitempty"`
	PreviewLayout *PreviewLayout   `json:"preview_layout,omitempty"`
	ListLayout    *ListLayout      `json:"list_layout,omitempty"`
	Unknown       *UnknownPayload  `json:"unknown,omitempty"`
}

// Text builds a text_v2 field.
func Text(label, text string) *Field {
	return &Field{Label: label, FallbackText: text, Type: TypeTextV2, TextV2: &TextV2Payload{Text: text}}
}

// Address builds an address_v2 field.
func Address(label, address, name, assetLabel string) *Field {
	return &Field{
		Label:        label,
		FallbackText: address,
		Type:         TypeAddressV2,
		AddressV2:    &AddressV2Payload{Address: address, Name: name, AssetLabel: assetLabel},
	}
}

// Amount builds an amount_v2 field.
func Amount(label, amount, abbreviation, fallback string) *Field {
	return &Field{
		Label:        label,
		FallbackText: fallback,
		Type:         TypeAmountV2,
		AmountV2:     &AmountV2Payload{Amount: amount, Abbreviation: abbreviation},
	}
}

// Number builds a number field.
func Number(label, number, fallback string) *Field {
	return &Field{Label: label, FallbackText: fallback, Type: TypeNumber, Number: &NumberPayload{Number: number}}
}

// Divider builds a divider field.
func Divider(style string) *Field {
	return &Field{Label: "", FallbackText: "-", Type: TypeDivider, Divider: &DividerPayload{Style: style}}
}

// Unknown builds an unknown field carrying raw hex data and an explanation.
// Callers must never drop bytes silently: use this whenever a sub-call or
// parameter cannot be decoded.
func Unknown(label, dataHex, explanation string) *Field {
	return &Field{
		Label:        label,
		FallbackText: explanation,
		Type:         TypeUnknown,
		Unknown:      &UnknownPayload{Data: dataHex, Explanation: explanation},
	}
}

// Preview builds a preview_layout field from its title and the condensed/expanded lists.
func Preview(label, title, subtitle string, condensed, expanded []*AnnotatedField) *Field {
	return &Field{
		Label:        label,
		FallbackText: title,
		Type:         TypePreviewLayout,
		PreviewLayout: &PreviewLayout{
			Title:     title,
			Subtitle:  subtitle,
			Condensed: ListLayout{Fields: condensed},
			Expanded:  ListLayout{Fields: expanded},
		},
	}
}
