package registry_test

import (
	"testing"

	"github.com/ModChain/visualsign/registry"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	r := registry.Embedded()

	lower, ok := r.Lookup(registry.EthereumMainnet, "0xdac17f958d2ee523a2206206994597c13d831ec7")
	if !ok {
		t.Fatal("lowercase USDT lookup failed")
	}
	mixed, ok := r.Lookup(registry.EthereumMainnet, "0xdAC17F958D2ee523a2206206994597C13D831ec7")
	if !ok {
		t.Fatal("EIP-55 mixed-case USDT lookup failed")
	}
	if lower.Symbol != "USDT" || mixed.Symbol != "USDT" || lower.Decimals != 6 {
		t.Fatalf("USDT metadata = %+v / %+v", lower, mixed)
	}
}

func TestChainNamespacesDoNotCollide(t *testing.T) {
	r := registry.Embedded()

	if _, ok := r.Lookup(registry.SolanaMainnet, "0xdac17f958d2ee523a2206206994597c13d831ec7"); ok {
		t.Fatal("an Ethereum address must not resolve in the Solana namespace")
	}
	if info, ok := r.Lookup(registry.SolanaMainnet, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"); !ok || info.Symbol != "USDC" {
		t.Fatalf("Solana USDC = %+v, ok=%v", info, ok)
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := registry.NewContractRegistry()
	r.Register(1, "0xabc", registry.ContractInfo{Symbol: "OLD"})
	r.Register(1, "0xABC", registry.ContractInfo{Symbol: "NEW"})

	info, ok := r.Lookup(1, "0xabc")
	if !ok || info.Symbol != "NEW" {
		t.Fatalf("info = %+v, ok=%v", info, ok)
	}
}

func TestUnknownAddressMisses(t *testing.T) {
	r := registry.Embedded()
	if _, ok := r.Lookup(registry.EthereumMainnet, "0x0000000000000000000000000000000000000001"); ok {
		t.Fatal("unexpected hit for an unregistered address")
	}
}
