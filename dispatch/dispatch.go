// Package dispatch is the top-level entry point of the pipeline: bytes ->
// chain codec -> top-level transaction struct -> registry walk -> fields ->
// SignablePayload. It is the thing this
// module's own evm.Parse dispatch-by-leading-byte already does one level
// down, generalized here across chain families: one function a caller
// (CLI, RPC service) invokes uniformly regardless of which wire format the
// payload underneath actually uses.
package dispatch

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dynamicabi"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/registry"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/visignerr"
)

// AbiMapping is one caller-supplied ABI registration, mirroring the RPC
// request shape: {name, json, address, chain_id}.
// Address/ChainID are accepted but unused by the decode step itself (the
// fallback dispatches purely on selector); they exist so this type mirrors
// the RPC request shape exactly.
type AbiMapping struct {
	Name    string
	JSON    []byte
	Address string
	ChainID uint64
}

// Options bundles everything a caller may customize about one Parse call.
// A zero Options is valid: Parse fills in DefaultLimits and the embedded
// contract registry automatically.
type Options struct {
	// ChainID is the network to assume when the wire format itself carries
	// none (e.g. a pre-EIP-155 legacy EVM transaction, or a Solana message,
	// which has no chain id at all).
	ChainID uint64
	Limits  chain.Limits
	// ALTResolver resolves Solana address-lookup-table contents; nil means
	// any v0 message referencing a table fails resolution for that table
	// (the parser performs no network fetches, so this is always
	// caller-supplied).
	ALTResolver svm.ALTResolver
	// AbiMappings are caller-supplied EVM ABI JSON fragments, parsed into a
	// per-request dynamic-ABI fallback registry.
	AbiMappings []AbiMapping
	// Contracts overrides the embedded contract/token metadata table. Nil
	// uses registry.Embedded().
	Contracts *registry.ContractRegistry
}

func (o Options) limitsOrDefault() chain.Limits {
	if o.Limits.MaxDepth == 0 && o.Limits.MaxPayloadSize == 0 {
		return chain.DefaultLimits()
	}
	return o.Limits
}

func (o Options) contractsOrDefault() *registry.ContractRegistry {
	if o.Contracts != nil {
		return o.Contracts
	}
	return registry.Embedded()
}

// buildAbiRegistry parses every caller-supplied ABI mapping into a single
// dynamic-ABI registry for this request. A malformed mapping is a
// ConfigError and aborts the whole Parse call: an ABI the caller explicitly
// registered but that fails to parse is a caller mistake, not a
// sub-call-local decode failure.
func (o Options) buildAbiRegistry() (*dynamicabi.Registry, error) {
	if len(o.AbiMappings) == 0 {
		return nil, nil
	}
	merged := dynamicabi.NewRegistry()
	for _, m := range o.AbiMappings {
		reg, err := dynamicabi.ParseABIJSON(m.JSON)
		if err != nil {
			return nil, err
		}
		for _, selector := range reg.Selectors() {
			if err := merged.Register(reg.Lookup(selector)); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

// decodeInput accepts hex (with or without a 0x prefix) or base64.
func decodeInput(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	body := s
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		body = body[2:]
	}
	if isHex(body) {
		b, err := hex.DecodeString(body)
		if err != nil {
			return nil, visignerr.Parse("BadHex", -1, err)
		}
		return b, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		if b2, err2 := base64.RawStdEncoding.DecodeString(s); err2 == nil {
			return b2, nil
		}
		return nil, visignerr.Parse("BadHexOrBase64", -1, err)
	}
	return b, nil
}

func isHex(s string) bool {
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Parse is the single top-level entry point every surface (CLI, RPC) goes
// through. It decodes raw into bytes, routes to the chain-specific codec
// and visualizer walk, assembles the SignablePayload, and validates it
// before returning: a payload that fails its own invariants is never
// returned, and a ValidationError here indicates a bug in
// one of this module's own visualizers, not a problem with the input.
func Parse(ctx context.Context, raw string, ch chain.Chain, opts Options) (*fields.SignablePayload, error) {
	data, err := decodeInput(raw)
	if err != nil {
		return nil, err
	}
	limits := opts.limitsOrDefault()
	if len(data) > limits.MaxPayloadSize {
		return nil, chain.ErrPayloadTooLarge
	}

	abiReg, err := opts.buildAbiRegistry()
	if err != nil {
		return nil, err
	}

	cctx := chain.NewContext(ctx, ch, opts.ChainID, limits)
	cctx.DynamicABI = abiReg
	cctx.Contracts = opts.contractsOrDefault()

	var payload *fields.SignablePayload
	switch ch {
	case chain.EVM:
		payload, err = parseEVM(cctx, data)
	case chain.SVM:
		payload, err = parseSVM(cctx, data, opts.ALTResolver)
	case chain.Sui:
		payload, err = parseSui(cctx, data)
	case chain.Tron:
		payload, err = parseTron(cctx, data)
	default:
		return nil, visignerr.Parse("UnknownChain", -1, nil)
	}
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}
