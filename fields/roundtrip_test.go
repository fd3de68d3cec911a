package fields_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ModChain/visualsign/fields"
)

// TestFieldJSONRoundTrip checks that serializing a field and reading it
// back yields an equal value, for the text_v2, address_v2, amount_v2,
// number, divider, unknown and preview_layout variants.
func TestFieldJSONRoundTrip(t *testing.T) {
	cases := []*fields.Field{
		fields.Text("Network", "Ethereum Mainnet"),
		fields.Address("To", "0x3535353535353535353535353535353535353535", "Example", "WETH"),
		fields.Amount("Value", "1.5", "ETH", "1.5 ETH"),
		fields.Number("Nonce", "7", "7"),
		fields.Divider("thin"),
		fields.Unknown("Calldata", "0xdeadbeef", "unrecognized selector"),
		fields.Preview("Action", "Transfer", "USDT",
			[]*fields.AnnotatedField{fields.Annotate(fields.Text("Summary", "1 USDT"))},
			[]*fields.AnnotatedField{
				fields.AnnotateStatic(fields.Amount("Amount", "1", "USDT", "1 USDT"), "stablecoin"),
				fields.AnnotateDynamic(fields.Address("Recipient", "0xdead", "", ""), "price", "usd", "USDT"),
			}),
	}

	for _, original := range cases {
		body, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("%s: marshal: %s", original.Type, err)
		}
		restored := &fields.Field{}
		if err := json.Unmarshal(body, restored); err != nil {
			t.Fatalf("%s: unmarshal: %s", original.Type, err)
		}
		if !reflect.DeepEqual(original, restored) {
			t.Fatalf("%s: round trip mismatch:\noriginal %+v\nrestored %+v", original.Type, original, restored)
		}
	}
}

// TestPayloadCanonicalJSONShape spot-checks the envelope keys and the field
// discriminator survive a decode of the canonical serialization.
func TestPayloadCanonicalJSONShape(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "Ethereum Transaction")
	p.Subtitle = "demo"
	p.Add(fields.Text("Network", "Ethereum Mainnet"))
	p.Add(fields.Amount("Value", "1", "ETH", "1 ETH"))

	body, err := fields.CanonicalJSON(p)
	if err != nil {
		t.Fatalf("CanonicalJSON: %s", err)
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if m["payload_type"] != "EthereumTx" || m["title"] != "Ethereum Transaction" || m["subtitle"] != "demo" {
		t.Fatalf("envelope = %v", m)
	}
	fs, ok := m["fields"].([]any)
	if !ok || len(fs) != 2 {
		t.Fatalf("fields = %v", m["fields"])
	}
	first := fs[0].(map[string]any)
	if first["type"] != "text_v2" {
		t.Fatalf("first field = %v", first)
	}
	if _, hasAmountPayload := fs[1].(map[string]any)["amount_v2"]; !hasAmountPayload {
		t.Fatalf("second field = %v", fs[1])
	}
}

// TestValidateRejectsDoublePayload covers the both-legacy-and-v2 rule: a
// field tagged text_v2 that also sets the legacy text payload fails.
func TestValidateRejectsDoublePayload(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	f := fields.Text("Network", "mainnet")
	f.Text = &fields.TextPayload{Text: "mainnet"}
	p.Add(f)
	if err := p.Validate(); err == nil {
		t.Fatal("expected a validation error for a field with two payloads set")
	}
}
