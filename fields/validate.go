package fields

import (
	"encoding/hex"
	"regexp"

	"github.com/ModChain/visualsign/visignerr"
)

// properNumber is the signed-proper-number grammar every displayed amount
// must satisfy: optional leading sign, no leading zeros except "0.", no constraint on
// trailing zeros beyond what the producer chooses to emit.
var properNumber = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Validate checks every invariant of the field model and returns the
// first violation found. A failing field aborts the whole response; no
// partial SignablePayload is ever returned to a caller.
func (p *SignablePayload) Validate() error {
	for i, f := range p.Fields {
		if err := f.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) validate(index int) error {
	if f.Type == "" {
		return visignerr.Validation(index, "Type must not be empty")
	}
	if f.FallbackText == "" {
		return visignerr.Validation(index, "FallbackText must not be empty")
	}

	payloads := map[FieldType]bool{
		TypeText:          f.Text != nil,
		TypeAddress:       f.Address != nil,
		TypeAmount:        f.Amount != nil,
		TypeTextV2:        f.TextV2 != nil,
		TypeAddressV2:     f.AddressV2 != nil,
		TypeAmountV2:      f.AmountV2 != nil,
		TypeNumber:        f.Number != nil,
		TypeDivider:       f.Divider != nil,
		TypePreviewLayout: f.PreviewLayout != nil,
		TypeListLayout:    f.ListLayout != nil,
		TypeUnknown:       f.Unknown != nil,
	}

	for typ, set := range payloads {
		if typ == f.Type {
			if !set {
				return visignerr.Validation(index, string(f.Type)+" field is missing its payload")
			}
			continue
		}
		if set {
			return visignerr.Validation(index, "field of type "+string(f.Type)+" also sets the "+string(typ)+" payload")
		}
	}
	if _, known := payloads[f.Type]; !known {
		return visignerr.Validation(index, "unknown field type "+string(f.Type))
	}

	switch f.Type {
	case TypeText:
		if f.Text.Text == "" {
			return visignerr.Validation(index, "text.Text must not be empty")
		}
	case TypeTextV2:
		if f.TextV2.Text == "" {
			return visignerr.Validation(index, "text_v2.Text must not be empty")
		}
	case TypeAddress:
		if f.Address.Address == "" {
			return visignerr.Validation(index, "address.Address must not be empty")
		}
	case TypeAddressV2:
		if f.AddressV2.Address == "" {
			return visignerr.Validation(index, "address_v2.Address must not be empty")
		}
	case TypeAmount:
		if !properNumber.MatchString(f.Amount.Amount) {
			return visignerr.Validation(index, "amount.Amount is not a signed proper number")
		}
	case TypeAmountV2:
		if !properNumber.MatchString(f.AmountV2.Amount) {
			return visignerr.Validation(index, "amount_v2.Amount is not a signed proper number")
		}
	case TypeUnknown:
		if f.Unknown.Explanation == "" {
			return visignerr.Validation(index, "unknown.Explanation must not be empty")
		}
		if _, err := hex.DecodeString(trimHexPrefix(f.Unknown.Data)); err != nil {
			return visignerr.Validation(index, "unknown.Data is not valid hex")
		}
	case TypePreviewLayout:
		if f.PreviewLayout.Title == "" {
			return visignerr.Validation(index, "preview_layout.Title must not be empty")
		}
		if err := f.PreviewLayout.Condensed.validateCondensed(index); err != nil {
			return err
		}
		if err := f.PreviewLayout.Expanded.validate(index); err != nil {
			return err
		}
	case TypeListLayout:
		if err := f.ListLayout.validate(index); err != nil {
			return err
		}
	}

	return nil
}

func (l *ListLayout) validate(index int) error {
	for _, af := range l.Fields {
		if af == nil || af.Field == nil {
			return visignerr.Validation(index, "list_layout contains a nil field")
		}
		if af.Static != nil && af.Dynamic != nil {
			return visignerr.Validation(index, "annotated field sets both static and dynamic annotations")
		}
		if err := af.Field.validate(index); err != nil {
			return err
		}
	}
	return nil
}

// validateCondensed additionally enforces that the Condensed tier of a preview_layout may not itself contain a nested
// preview_layout, which is meant to stay a flat, one-line summary.
func (l *ListLayout) validateCondensed(index int) error {
	for _, af := range l.Fields {
		if af != nil && af.Field != nil && af.Field.Type == TypePreviewLayout {
			return visignerr.Validation(index, "preview_layout.Condensed must not contain a nested preview_layout")
		}
	}
	return l.validate(index)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
