package dispatch_test

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dispatch"
	"github.com/ModChain/visualsign/fields"
)

// legacyTransferHex is the canonical EIP-155 example transfer (nonce 0,
// 20 gwei gas price, 21000 gas, 1 ETH to 0x3535...3535) with its mainnet
// signature (v = 0x25), so the chain id decodes to 1.
const legacyTransferHex = "f86c808504a817c800825208943535353535353535353535353535353535353535880de0b6b3a764000080" +
	"25" +
	"a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276" +
	"a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"

// unsignedTransferHex is a bare 6-field legacy transfer: nonce 0, 1 gwei,
// 21000 gas, 1 ETH, empty calldata, no signature trailer.
const unsignedTransferHex = "e880843b9aca00825208943535353535353535353535353535353535353535880de0b6b3a764000080"

// creationHex is an unsigned legacy contract creation: empty to, zero
// value, 5 bytes of init code.
const creationHex = "d280843b9aca00830186a08080856001600101"

func findField(p *fields.SignablePayload, label string) *fields.Field {
	for _, f := range p.Fields {
		if f.Label == label {
			return f
		}
	}
	return nil
}

func TestParseSimpleEthTransfer(t *testing.T) {
	p, err := dispatch.Parse(context.Background(), legacyTransferHex, chain.EVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}

	if p.PayloadType != fields.PayloadEthereum {
		t.Fatalf("PayloadType = %s", p.PayloadType)
	}
	if p.Title != "Ethereum Transaction" {
		t.Fatalf("Title = %q", p.Title)
	}

	if f := findField(p, "Network"); f == nil || f.TextV2.Text != "Ethereum Mainnet" {
		t.Fatalf("Network field = %+v", f)
	}
	if f := findField(p, "To"); f == nil || f.AddressV2.Address != "0x3535353535353535353535353535353535353535" {
		t.Fatalf("To field = %+v", f)
	}
	if f := findField(p, "Value"); f == nil || f.AmountV2.Amount != "1" || f.AmountV2.Abbreviation != "ETH" {
		t.Fatalf("Value field = %+v", f)
	}
	if f := findField(p, "Gas Price"); f == nil || f.AmountV2.Amount != "20" || f.AmountV2.Abbreviation != "gwei" {
		t.Fatalf("Gas Price field = %+v", f)
	}
	if f := findField(p, "Gas Limit"); f == nil || f.Number.Number != "21000" {
		t.Fatalf("Gas Limit field = %+v", f)
	}
	if f := findField(p, "Nonce"); f == nil || f.Number.Number != "0" {
		t.Fatalf("Nonce field = %+v", f)
	}
}

func TestParseAcceptsBase64AndHexPrefix(t *testing.T) {
	raw, err := hex.DecodeString(legacyTransferHex)
	if err != nil {
		t.Fatal(err)
	}

	fromHex, err := dispatch.Parse(context.Background(), "0x"+legacyTransferHex, chain.EVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse(0x hex): %s", err)
	}
	fromB64, err := dispatch.Parse(context.Background(), base64.StdEncoding.EncodeToString(raw), chain.EVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse(base64): %s", err)
	}

	a, err := fields.CanonicalJSON(fromHex)
	if err != nil {
		t.Fatal(err)
	}
	b, err := fields.CanonicalJSON(fromB64)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("hex and base64 inputs produced different payloads:\n%s\n%s", a, b)
	}
}

func TestParseIsByteDeterministic(t *testing.T) {
	var prev []byte
	for i := 0; i < 3; i++ {
		p, err := dispatch.Parse(context.Background(), legacyTransferHex, chain.EVM, dispatch.Options{})
		if err != nil {
			t.Fatalf("Parse: %s", err)
		}
		body, err := fields.CanonicalJSON(p)
		if err != nil {
			t.Fatalf("CanonicalJSON: %s", err)
		}
		if prev != nil && string(prev) != string(body) {
			t.Fatalf("run %d produced different bytes:\n%s\n%s", i, prev, body)
		}
		prev = body
	}
}

func TestParsedPayloadValidates(t *testing.T) {
	p, err := dispatch.Parse(context.Background(), legacyTransferHex, chain.EVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
}

func TestEmptyCalldataEmitsEnvelopeOnly(t *testing.T) {
	p, err := dispatch.Parse(context.Background(), unsignedTransferHex, chain.EVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	for _, f := range p.Fields {
		if f.Type == fields.TypePreviewLayout {
			t.Fatalf("empty calldata must not produce a preview_layout, got %+v", f)
		}
	}
}

func TestContractCreationRendersInitCode(t *testing.T) {
	p, err := dispatch.Parse(context.Background(), creationHex, chain.EVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if p.Title != "Deploy Contract" {
		t.Fatalf("Title = %q", p.Title)
	}
	if f := findField(p, "Value"); f == nil || f.AmountV2.Amount != "0" {
		t.Fatalf("zero-value creation should display 0 ETH, got %+v", f)
	}
	action := findField(p, "Action")
	if action == nil || action.PreviewLayout == nil || action.PreviewLayout.Title != "Deploy Contract" {
		t.Fatalf("Action field = %+v", action)
	}
	lenField := action.PreviewLayout.Expanded.Fields[0].Field
	if lenField.Number == nil || lenField.Number.Number != "5" {
		t.Fatalf("init code length = %+v", lenField)
	}
}

func TestParseRejectsOversizedPayload(t *testing.T) {
	limits := chain.Limits{MaxDepth: 16, MaxPayloadSize: 8}
	_, err := dispatch.Parse(context.Background(), legacyTransferHex, chain.EVM, dispatch.Options{Limits: limits})
	if err == nil {
		t.Fatal("expected an error for a payload above MaxPayloadSize")
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := dispatch.Parse(context.Background(), legacyTransferHex+"00", chain.EVM, dispatch.Options{})
	if err == nil {
		t.Fatal("expected a parse error for trailing bytes after the envelope")
	}
}

func TestParseRejectsUnknownChain(t *testing.T) {
	_, err := dispatch.Parse(context.Background(), legacyTransferHex, chain.Chain("bogus"), dispatch.Options{})
	if err == nil {
		t.Fatal("expected an error for an unknown chain")
	}
}

func TestERC20TransferEndToEnd(t *testing.T) {
	// transfer(0x1234...7890, 1_000_000) against USDT: envelope + a
	// Transfer preview with the symbol-resolved condensed line.
	calldata := "a9059cbb" +
		"0000000000000000000000001234567890123456789012345678901234567890" +
		"00000000000000000000000000000000000000000000000000000000000f4240"
	// Unsigned legacy tx: nonce 0, 1 gwei, 60000 gas, to USDT, value 0.
	raw := "f86580" + "843b9aca00" + "82ea60" + "94dac17f958d2ee523a2206206994597c13d831ec7" + "80" + "b844" + calldata

	p, err := dispatch.Parse(context.Background(), raw, chain.EVM, dispatch.Options{ChainID: 1})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}

	if p.Title != "Transfer" {
		t.Fatalf("Title = %q, want Transfer", p.Title)
	}
	action := findField(p, "Action")
	if action == nil || action.PreviewLayout == nil {
		t.Fatalf("missing Action preview, fields = %+v", p.Fields)
	}
	condensed := action.PreviewLayout.Condensed.Fields[0].Field
	if condensed.TextV2 == nil || condensed.TextV2.Text != "1.000000 USDT → 0x1234...7890" {
		t.Fatalf("condensed = %+v", condensed)
	}
}
