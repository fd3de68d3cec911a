package fields

import (
	"encoding/json"
	"strconv"
)

// CanonicalJSON serializes a SignablePayload canonically: object keys sorted lexicographically at every depth, arrays in insertion
// order, Version as a JSON string, empty optional fields omitted, no
// whitespace. Two parses of the same input bytes produce byte-identical
// output.
//
// Go's encoding/json already sorts the keys of any map[string]any it
// marshals (this is documented behavior, not incidental), so the approach
// here is to build an intermediate map tree and
// let the encoder do the sorting, rather than relying on struct field
// declaration order (which encoding/json would otherwise preserve verbatim).
func CanonicalJSON(p *SignablePayload) ([]byte, error) {
	return json.Marshal(p.toMap())
}

func (p *SignablePayload) toMap() map[string]any {
	m := map[string]any{
		"version":      strconv.Itoa(p.Version),
		"title":        p.Title,
		"payload_type": string(p.PayloadType),
	}
	if p.Subtitle != "" {
		m["subtitle"] = p.Subtitle
	}
	fs := make([]any, len(p.Fields))
	for i, f := range p.Fields {
		fs[i] = f.toMap()
	}
	m["fields"] = fs
	if len(p.EndorsedParamsDigest) > 0 {
		m["endorsed_params_digest"] = p.DigestHex()
	}
	return m
}

func (f *Field) toMap() map[string]any {
	m := map[string]any{
		"label":         f.Label,
		"fallback_text": f.FallbackText,
		"type":          string(f.Type),
	}
	switch f.Type {
	case TypeText:
		m["text"] = map[string]any{"text": f.Text.Text}
	case TypeAddress:
		p := map[string]any{"address": f.Address.Address}
		if f.Address.Name != "" {
			p["name"] = f.Address.Name
		}
		m["address"] = p
	case TypeAmount:
		m["amount"] = map[string]any{"amount": f.Amount.Amount}
	case TypeTextV2:
		m["text_v2"] = map[string]any{"text": f.TextV2.Text}
	case TypeAddressV2:
		p := map[string]any{"address": f.AddressV2.Address, "asset_label": f.AddressV2.AssetLabel}
		if f.AddressV2.Name != "" {
			p["name"] = f.AddressV2.Name
		}
		if f.AddressV2.Memo != "" {
			p["memo"] = f.AddressV2.Memo
		}
		if f.AddressV2.BadgeText != "" {
			p["badge_text"] = f.AddressV2.BadgeText
		}
		m["address_v2"] = p
	case TypeAmountV2:
		p := map[string]any{"amount": f.AmountV2.Amount}
		if f.AmountV2.Abbreviation != "" {
			p["abbreviation"] = f.AmountV2.Abbreviation
		}
		m["amount_v2"] = p
	case TypeNumber:
		m["number"] = map[string]any{"number": f.Number.Number}
	case TypeDivider:
		p := map[string]any{}
		if f.Divider.Style != "" {
			p["style"] = f.Divider.Style
		}
		m["divider"] = p
	case TypePreviewLayout:
		pl := map[string]any{
			"title":     f.PreviewLayout.Title,
			"condensed": f.PreviewLayout.Condensed.toMap(),
			"expanded":  f.PreviewLayout.Expanded.toMap(),
		}
		if f.PreviewLayout.Subtitle != "" {
			pl["subtitle"] = f.PreviewLayout.Subtitle
		}
		m["preview_layout"] = pl
	case TypeListLayout:
		m["list_layout"] = f.ListLayout.toMap()
	case TypeUnknown:
		m["unknown"] = map[string]any{
			"data":        f.Unknown.Data,
			"explanation": f.Unknown.Explanation,
		}
	}
	return m
}

func (l *ListLayout) toMap() map[string]any {
	fs := make([]any, len(l.Fields))
	for i, af := range l.Fields {
		fs[i] = af.toMap()
	}
	return map[string]any{"fields": fs}
}

func (af *AnnotatedField) toMap() map[string]any {
	m := af.Field.toMap()
	if af.Static != nil {
		m["static_annotation"] = map[string]any{"text": af.Static.Text}
	}
	if af.Dynamic != nil {
		d := map[string]any{"type": af.Dynamic.Type, "id": af.Dynamic.ID}
		if len(af.Dynamic.Params) > 0 {
			ps := make([]any, len(af.Dynamic.Params))
			for i, p := range af.Dynamic.Params {
				ps[i] = p
			}
			d["params"] = ps
		}
		m["dynamic_annotation"] = d
	}
	return m
}
