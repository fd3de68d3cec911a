package fields_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ModChain/visualsign/fields"
)

func TestValidateRejectsEmptyType(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	p.Add(&fields.Field{Label: "x", FallbackText: "y"})
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for empty Type")
	}
}

func TestValidateRejectsMissingPayload(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	p.Add(&fields.Field{Label: "x", FallbackText: "y", Type: fields.TypeTextV2})
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for missing text_v2 payload")
	}
}

func TestValidateAcceptsWellFormedFields(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "Ethereum Transaction")
	p.Add(fields.Text("Network", "Ethereum Mainnet"))
	p.Add(fields.Address("To", "0xAbC0000000000000000000000000000000dEaD", "Dead Address", ""))
	p.Add(fields.Amount("Value", "1.5", "ETH", "1.5 ETH"))
	p.Add(fields.Number("Nonce", "7", "7"))
	p.Add(fields.Divider(""))
	p.Add(fields.Unknown("Extra", "0xdeadbeef", "unrecognized selector"))
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid payload, got %s", err)
	}
}

func TestValidateRejectsBadUnknownHex(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	p.Add(fields.Unknown("Extra", "not-hex", "explanation"))
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for non-hex unknown.Data")
	}
}

func TestValidateRejectsBadAmount(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	p.Add(fields.Amount("Value", "01.5", "ETH", "01.5 ETH"))
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for leading-zero amount")
	}
}

func TestValidateRejectsNestedPreviewInCondensed(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	nested := fields.Preview("Inner", "Inner Title", "", nil, nil)
	p.Add(fields.Preview("Outer", "Outer Title", "",
		[]*fields.AnnotatedField{fields.Annotate(nested)},
		[]*fields.AnnotatedField{fields.Annotate(fields.Text("a", "b"))}))
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for nested preview_layout in condensed tier")
	}
}

func TestCanonicalJSONVersionIsString(t *testing.T) {
	p := fields.New(fields.PayloadSolana, "Solana Transaction")
	p.Add(fields.Text("Network", "Solana"))

	body, err := fields.CanonicalJSON(p)
	if err != nil {
		t.Fatalf("CanonicalJSON: %s", err)
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	v, ok := m["version"].(string)
	if !ok {
		t.Fatalf("version must be a JSON string, got %T", m["version"])
	}
	if v != "0" {
		t.Fatalf("version = %q, want \"0\"", v)
	}
}

func TestCanonicalJSONIsDeterministic(t *testing.T) {
	build := func() *fields.SignablePayload {
		p := fields.New(fields.PayloadTron, "Tron Transaction")
		p.Add(fields.Text("Network", "Tron"))
		p.Add(fields.Amount("Amount", "10", "TRX", "10 TRX"))
		return p
	}

	a, err := fields.CanonicalJSON(build())
	if err != nil {
		t.Fatalf("CanonicalJSON: %s", err)
	}
	b, err := fields.CanonicalJSON(build())
	if err != nil {
		t.Fatalf("CanonicalJSON: %s", err)
	}
	if string(a) != string(b) {
		t.Fatalf("two parses of equivalent input produced different canonical JSON:\n%s\n%s", a, b)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, a); err != nil {
		t.Fatalf("canonical JSON is not valid JSON: %s", err)
	}
	if compact.String() != string(a) {
		t.Fatalf("canonical JSON must contain no insignificant whitespace, got %s", a)
	}
}

func TestCanonicalJSONKeysAreSorted(t *testing.T) {
	p := fields.New(fields.PayloadEthereum, "t")
	p.Add(fields.Address("To", "0xdead", "Name", "ASSET"))

	body, err := fields.CanonicalJSON(p)
	if err != nil {
		t.Fatalf("CanonicalJSON: %s", err)
	}
	// encoding/json sorts map[string]any keys lexicographically at every
	// depth: at the top level "fields" < "payload_type" < "title" < "version".
	idxFields := strings.Index(string(body), `"fields"`)
	idxPayloadType := strings.Index(string(body), `"payload_type"`)
	idxTitle := strings.Index(string(body), `"title"`)
	idxVersion := strings.Index(string(body), `"version"`)
	if idxFields == -1 || idxPayloadType == -1 || idxTitle == -1 || idxVersion == -1 {
		t.Fatalf("expected all keys present, got %s", body)
	}
	if !(idxFields < idxPayloadType && idxPayloadType < idxTitle && idxTitle < idxVersion) {
		t.Fatalf("top-level keys are not lexicographically sorted: %s", body)
	}
}
