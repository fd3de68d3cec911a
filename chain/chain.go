// Package chain holds the small set of types shared by every per-chain
// codec and visualizer: the Chain enum, recursion/size Limits, and the
// Context threaded through a parse instead of relying on package globals.
package chain

import (
	"context"

	"github.com/ModChain/visualsign/dynamicabi"
	"github.com/ModChain/visualsign/registry"
)

// Chain identifies which transaction family a payload belongs to.
type Chain string

const (
	EVM  Chain = "evm"
	SVM  Chain = "svm"
	Sui  Chain = "sui"
	Tron Chain = "tron"
)

// Limits bounds recursion and input size so a malicious or malformed payload
// cannot force unbounded work. These are always explicit fields on a
// Context, never package-level state, so a single process can safely run
// concurrent parses with different limits (e.g. a stricter policy-engine
// caller versus a looser debugging CLI invocation).
type Limits struct {
	// MaxDepth bounds how many levels of sub-call recursion a visualizer may
	// descend (Universal Router commands, Bundler multicalls, nested Move
	// calls, and so on).
	MaxDepth int
	// MaxPayloadSize bounds the number of bytes accepted for the top-level
	// transaction payload.
	MaxPayloadSize int
}

// DefaultLimits is the standard bound set: 16 levels of nesting, 1 MiB of
// input.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:       16,
		MaxPayloadSize: 1 << 20,
	}
}

// Context carries the ambient state of a single parse: cancellation,
// chain-id, limits, and the current recursion depth. Visualizers receive a
// Context and must call WithDepth before recursing into a sub-call so depth
// bounding is enforced uniformly.
type Context struct {
	Ctx     context.Context
	Chain   Chain
	ChainID uint64
	Limits  Limits
	Depth   int

	// DynamicABI is the caller-supplied ABI fallback registry for this
	// request. Nil when the caller registered no mappings.
	// This is per-request, not a package global: two concurrent parses may
	// legitimately run with different caller-supplied ABI sets.
	DynamicABI *dynamicabi.Registry
	// Contracts is the embedded/build-time contract metadata table used to
	// resolve token symbols and decimals for display.
	Contracts *registry.ContractRegistry
}

// NewContext builds a root Context (Depth 0) for the given chain.
func NewContext(ctx context.Context, c Chain, chainID uint64, limits Limits) *Context {
	return &Context{Ctx: ctx, Chain: c, ChainID: chainID, Limits: limits}
}

// WithDepth returns a child Context one level deeper, or an error if doing
// so would exceed Limits.MaxDepth.
func (c *Context) WithDepth() (*Context, error) {
	if c.Depth+1 > c.Limits.MaxDepth {
		return nil, ErrDepthExceeded
	}
	child := *c
	child.Depth = c.Depth + 1
	return &child, nil
}
