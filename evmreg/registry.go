// Package evmreg is the EVM visualizer registry: a recursive mapping from
// (contract address, function selector) to a semantic decoder producing a
// two-tier call view, generalizing outscript's format.go Formats map (a
// name-keyed table of static decoders) to an address+selector-keyed table
// of dynamic ones.
package evmreg

import (
	"strings"

	"github.com/ModChain/visualsign/chain"
)

// Visualizer renders one EVM call into a CallView. calldata is the full
// call (4-byte selector included) so a visualizer that recurses into
// sub-calls (Universal Router commands, Bundler multicall entries) can
// dispatch each one back through the registry using the exact same
// signature, rather than threading a separately pre-decoded argument list
// through every layer of recursion.
type Visualizer func(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error)

// Registry dispatches by exact (address, selector) first, falling back to a
// selector-only entry (used for widely-deployed standard interfaces like
// ERC-20, where the same function exists verbatim across thousands of
// unrelated contract addresses).
type Registry struct {
	byAddrSelector map[string]Visualizer
	bySelector     map[[4]byte]Visualizer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byAddrSelector: make(map[string]Visualizer),
		bySelector:     make(map[[4]byte]Visualizer),
	}
}

// RegisterAddress registers a visualizer for one specific contract address
// and selector.
func (r *Registry) RegisterAddress(address [20]byte, selector [4]byte, v Visualizer) {
	r.byAddrSelector[addrSelectorKey(address, selector)] = v
}

// RegisterSelector registers a fallback visualizer for any contract
// exposing this selector, used for standard interfaces like ERC-20.
func (r *Registry) RegisterSelector(selector [4]byte, v Visualizer) {
	r.bySelector[selector] = v
}

// Lookup resolves the visualizer for a call, address-specific entries
// taking priority over selector-only fallbacks.
func (r *Registry) Lookup(address [20]byte, selector [4]byte) (Visualizer, bool) {
	if v, ok := r.byAddrSelector[addrSelectorKey(address, selector)]; ok {
		return v, true
	}
	v, ok := r.bySelector[selector]
	return v, ok
}

func addrSelectorKey(address [20]byte, selector [4]byte) string {
	var sb strings.Builder
	sb.Write(address[:])
	sb.Write(selector[:])
	return sb.String()
}

// NewDefaultRegistry returns the registry pre-populated with every preset
// this module ships: ERC-20 transfer/approve/transferFrom, ERC-721 and
// ERC-1155 transfers and approvals, the Uniswap Universal Router execute
// command table, Morpho Bundler multicall, and Aave v3 Pool
// supply/withdraw/borrow/repay.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerERC20(r)
	registerNFTStandards(r)
	registerUniswapUniversalRouter(r)
	registerMorphoBundler(r)
	registerAaveV3Pool(r)
	return r
}
