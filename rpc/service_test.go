package rpc_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ModChain/visualsign/rpc"
)

const legacyTransferHex = "f86c808504a817c800825208943535353535353535353535353535353535353535880de0b6b3a764000080" +
	"25" +
	"a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276" +
	"a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"

func TestServiceParseReturnsCanonicalJSON(t *testing.T) {
	var svc rpc.Service
	resp, err := svc.Parse(context.Background(), &rpc.ParseRequest{
		UnsignedPayload: legacyTransferHex,
		Chain:           "ethereum",
	})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}

	body := string(resp.SignablePayloadJSON)
	if !strings.Contains(body, `"payload_type":"EthereumTx"`) {
		t.Fatalf("response JSON = %s", body)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, resp.SignablePayloadJSON); err != nil {
		t.Fatalf("response is not valid JSON: %s", err)
	}
	if compact.String() != body {
		t.Fatalf("canonical JSON must contain no insignificant whitespace: %s", body)
	}
}

func TestServiceParseRejectsUnknownChain(t *testing.T) {
	var svc rpc.Service
	if _, err := svc.Parse(context.Background(), &rpc.ParseRequest{
		UnsignedPayload: legacyTransferHex,
		Chain:           "dogecoin",
	}); err == nil {
		t.Fatal("expected an error for an unrecognized chain name")
	}
}

func TestServiceParseThreadsAbiMappings(t *testing.T) {
	// stake(uint256) against an arbitrary contract, decoded purely through
	// the caller-supplied ABI mapping.
	const abi = `[{"type":"function","name":"stake","inputs":[{"name":"amount","type":"uint256"}]}]`
	// selector keccak("stake(uint256)")[0:4] = 0xa694fc3a
	calldata := "a694fc3a" + "00000000000000000000000000000000000000000000000000000000000004d2"
	raw := "f84480" + "843b9aca00" + "82ea60" + "94a0b86991c6218b36c1d19d4a2e9eb0ce3606eb49" + "80" + "a4" + calldata

	var svc rpc.Service
	resp, err := svc.Parse(context.Background(), &rpc.ParseRequest{
		UnsignedPayload: raw,
		Chain:           "ethereum",
		AbiMappings: []rpc.AbiMappingRequest{
			{Name: "Staking", JSON: abi, Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb49"},
		},
	})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	body := string(resp.SignablePayloadJSON)
	if !strings.Contains(body, `"stake"`) {
		t.Fatalf("dynamic ABI name missing from response: %s", body)
	}
	if !strings.Contains(body, "1234") {
		t.Fatalf("decoded argument missing from response: %s", body)
	}
}

func TestServiceHealth(t *testing.T) {
	var svc rpc.Service
	resp, err := svc.Health(context.Background(), &rpc.HealthRequest{})
	if err != nil {
		t.Fatalf("Health: %s", err)
	}
	if resp.Status != "SERVING" {
		t.Fatalf("Status = %q", resp.Status)
	}
}
