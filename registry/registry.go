// Package registry holds the embedded, build-time contract/program
// metadata dataset (symbol, decimals, display name, verified flag) keyed
// by chain + address. Everything here is compiled in, never fetched over
// the network, mirroring outscript's Formats map (format.go), which is itself
// a static, compile-time table of output-script formats keyed by name.
package registry

import (
	"strings"
	"sync"
)

// Per-chain registry namespaces. EVM and Tron use their genesis chain ids;
// Solana and Sui have no on-wire chain id, so fixed sentinel values keep
// their address spaces from colliding with EVM networks in the same table.
const (
	EthereumMainnet uint64 = 1
	SolanaMainnet   uint64 = 101
	SuiMainnet      uint64 = 784
	TronMainnet     uint64 = 728126428
)

// ContractInfo is the static metadata known about one contract, program, or
// package address.
type ContractInfo struct {
	Symbol      string
	Decimals    int
	DisplayName string
	Verified    bool
}

// ContractRegistry maps a (chain id, address) pair to its ContractInfo.
// Addresses are stored case-folded so EVM's mixed-case EIP-55 rendering
// never causes a lookup miss.
type ContractRegistry struct {
	byKey map[registryKey]*ContractInfo
}

type registryKey struct {
	chainID uint64
	address string
}

// NewContractRegistry returns an empty registry.
func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{byKey: make(map[registryKey]*ContractInfo)}
}

// Register adds or replaces the metadata for an address on a chain.
func (r *ContractRegistry) Register(chainID uint64, address string, info ContractInfo) {
	r.byKey[registryKey{chainID, strings.ToLower(address)}] = &info
}

// Lookup returns the metadata registered for an address on a chain, if any.
func (r *ContractRegistry) Lookup(chainID uint64, address string) (*ContractInfo, bool) {
	info, ok := r.byKey[registryKey{chainID, strings.ToLower(address)}]
	return info, ok
}

// Embedded returns the registry pre-populated with the built-in set of
// well-known contracts, programs, and mints this module ships presets for.
// A real deployment would generate this table from a build-time data file;
// it is written out directly here since the set is small and static. The
// returned instance is shared and must be treated as read-only; callers
// needing extra entries build their own registry instead of mutating it.
var Embedded = sync.OnceValue(buildEmbedded)

func buildEmbedded() *ContractRegistry {
	r := NewContractRegistry()

	// Ethereum mainnet tokens.
	r.Register(EthereumMainnet, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", ContractInfo{Symbol: "USDC", Decimals: 6, DisplayName: "USD Coin", Verified: true})
	r.Register(EthereumMainnet, "0xdAC17F958D2ee523a2206206994597C13D831ec7", ContractInfo{Symbol: "USDT", Decimals: 6, DisplayName: "Tether USD", Verified: true})
	r.Register(EthereumMainnet, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", ContractInfo{Symbol: "WETH", Decimals: 18, DisplayName: "Wrapped Ether", Verified: true})
	r.Register(EthereumMainnet, "0x6B175474E89094C44Da98b954EedeAC495271d0F", ContractInfo{Symbol: "DAI", Decimals: 18, DisplayName: "Dai Stablecoin", Verified: true})
	r.Register(EthereumMainnet, "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", ContractInfo{Symbol: "WBTC", Decimals: 8, DisplayName: "Wrapped BTC", Verified: true})
	r.Register(EthereumMainnet, "0x7f39C581F595B53c5cb19bD0b3f8dA6c935E2Ca0", ContractInfo{Symbol: "wstETH", Decimals: 18, DisplayName: "Wrapped liquid staked Ether", Verified: true})

	// Ethereum mainnet protocol contracts.
	r.Register(EthereumMainnet, "0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD", ContractInfo{DisplayName: "Uniswap Universal Router", Verified: true})
	r.Register(EthereumMainnet, "0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2", ContractInfo{DisplayName: "Aave v3 Pool", Verified: true})
	r.Register(EthereumMainnet, "0x4095F064B8d3c3548A3bebfd0Bbfd04750E30077", ContractInfo{DisplayName: "Morpho Bundler", Verified: true})
	r.Register(EthereumMainnet, "0x000000000022D473030F116dDEE9F6B43aC78BA3", ContractInfo{DisplayName: "Permit2", Verified: true})

	// Solana mainnet mints and programs, keyed base58.
	r.Register(SolanaMainnet, "So11111111111111111111111111111111111111112", ContractInfo{Symbol: "wSOL", Decimals: 9, DisplayName: "Wrapped SOL", Verified: true})
	r.Register(SolanaMainnet, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", ContractInfo{Symbol: "USDC", Decimals: 6, DisplayName: "USD Coin", Verified: true})
	r.Register(SolanaMainnet, "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", ContractInfo{Symbol: "USDT", Decimals: 6, DisplayName: "Tether USD", Verified: true})
	r.Register(SolanaMainnet, "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", ContractInfo{Symbol: "JUP", Decimals: 6, DisplayName: "Jupiter", Verified: true})
	r.Register(SolanaMainnet, "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So", ContractInfo{Symbol: "mSOL", Decimals: 9, DisplayName: "Marinade staked SOL", Verified: true})

	// Sui mainnet coin types, keyed by their canonical Move type string.
	r.Register(SuiMainnet, "0x2::sui::SUI", ContractInfo{Symbol: "SUI", Decimals: 9, DisplayName: "Sui", Verified: true})
	r.Register(SuiMainnet, "0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN", ContractInfo{Symbol: "wUSDC", Decimals: 6, DisplayName: "Wormhole USD Coin", Verified: true})

	// Tron mainnet TRC-20 tokens, registered under both the base58check
	// display form and the raw 20-byte hex form the TVM calldata path
	// resolves against.
	r.Register(TronMainnet, "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", ContractInfo{Symbol: "USDT", Decimals: 6, DisplayName: "Tether USD", Verified: true})
	r.Register(TronMainnet, "0xa614f803b6fd780986a42c78ec9c7f77e6ded13c", ContractInfo{Symbol: "USDT", Decimals: 6, DisplayName: "Tether USD", Verified: true})

	return r
}
