package dynamicabi_test

import (
	"testing"

	"github.com/ModChain/visualsign/dynamicabi"
	"github.com/ModChain/visualsign/evm"
)

const erc20ABI = `[
  {"type":"function","name":"transfer","inputs":[
    {"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
  {"type":"function","name":"balanceOf","inputs":[
    {"name":"owner","type":"address"}]},
  {"type":"event","name":"Transfer","inputs":[]}
]`

func TestParseABIJSONComputesSelectors(t *testing.T) {
	reg, err := dynamicabi.ParseABIJSON([]byte(erc20ABI))
	if err != nil {
		t.Fatalf("ParseABIJSON: %s", err)
	}

	// keccak256("transfer(address,uint256)")[0..4] is the well-known
	// 0xa9059cbb; the registry must arrive at it from the JSON alone.
	want := [4]byte{0xa9, 0x05, 0x9c, 0xbb}
	fn := reg.Lookup(want)
	if fn == nil {
		t.Fatal("transfer selector not registered")
	}
	if fn.Name != "transfer" {
		t.Fatalf("Name = %q", fn.Name)
	}
	if fn.Selector != want {
		t.Fatalf("Selector = %x, want %x", fn.Selector, want)
	}
	if len(fn.ParamTypes) != 2 || fn.ParamNames[0] != "to" {
		t.Fatalf("params = %v / %v", fn.ParamNames, fn.ParamTypes)
	}
}

func TestSelectorMatchesCanonicalSignatureHash(t *testing.T) {
	reg, err := dynamicabi.ParseABIJSON([]byte(erc20ABI))
	if err != nil {
		t.Fatalf("ParseABIJSON: %s", err)
	}
	for _, s := range reg.Selectors() {
		fn := reg.Lookup(s)
		sigTypes := make([]string, len(fn.ParamTypes))
		for i, pt := range fn.ParamTypes {
			switch pt.Kind {
			case dynamicabi.KindAddress:
				sigTypes[i] = "address"
			case dynamicabi.KindUint:
				sigTypes[i] = "uint256"
			default:
				t.Fatalf("unexpected param kind in fixture: %v", pt.Kind)
			}
		}
		want := evm.Selector(dynamicabi.CanonicalSignature(fn.Name, sigTypes))
		if fn.Selector != want {
			t.Fatalf("%s: selector %x != keccak-derived %x", fn.Name, fn.Selector, want)
		}
	}
}

func TestParseABIJSONTupleComponents(t *testing.T) {
	abi := `[{"type":"function","name":"exec","inputs":[
	  {"name":"call","type":"tuple","components":[
	    {"name":"target","type":"address"},
	    {"name":"data","type":"bytes"}]}]}]`
	reg, err := dynamicabi.ParseABIJSON([]byte(abi))
	if err != nil {
		t.Fatalf("ParseABIJSON: %s", err)
	}
	// Tuples flatten to (a,b) in the canonical signature.
	want := evm.Selector("exec((address,bytes))")
	if reg.Lookup(want) == nil {
		t.Fatal("tuple-typed function selector not derived from flattened signature")
	}
}

func TestRegisterRejectsCollidingSelectors(t *testing.T) {
	reg := dynamicabi.NewRegistry()
	a := &dynamicabi.Function{Name: "a", Selector: [4]byte{1, 2, 3, 4}}
	b := &dynamicabi.Function{Name: "b", Selector: [4]byte{1, 2, 3, 4}}
	if err := reg.Register(a); err != nil {
		t.Fatalf("first Register: %s", err)
	}
	if err := reg.Register(b); err == nil {
		t.Fatal("expected DuplicateSelector for a colliding registration")
	}
}

func TestParseABIJSONRejectsMalformedJSON(t *testing.T) {
	if _, err := dynamicabi.ParseABIJSON([]byte(`{not json`)); err == nil {
		t.Fatal("expected an error for malformed ABI JSON")
	}
}
