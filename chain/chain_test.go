package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ModChain/visualsign/chain"
)

func TestDefaultLimitsMatchSpec(t *testing.T) {
	l := chain.DefaultLimits()
	if l.MaxDepth != 16 {
		t.Fatalf("MaxDepth = %d, want 16", l.MaxDepth)
	}
	if l.MaxPayloadSize != 1<<20 {
		t.Fatalf("MaxPayloadSize = %d, want %d", l.MaxPayloadSize, 1<<20)
	}
}

func TestWithDepthIncrementsAndBounds(t *testing.T) {
	ctx := chain.NewContext(context.Background(), chain.EVM, 1, chain.Limits{MaxDepth: 2, MaxPayloadSize: 1024})
	if ctx.Depth != 0 {
		t.Fatalf("root Depth = %d, want 0", ctx.Depth)
	}

	child, err := ctx.WithDepth()
	if err != nil {
		t.Fatalf("unexpected error at depth 1: %s", err)
	}
	if child.Depth != 1 {
		t.Fatalf("Depth = %d, want 1", child.Depth)
	}

	grandchild, err := child.WithDepth()
	if err != nil {
		t.Fatalf("unexpected error at depth 2: %s", err)
	}
	if grandchild.Depth != 2 {
		t.Fatalf("Depth = %d, want 2", grandchild.Depth)
	}

	if _, err := grandchild.WithDepth(); !errors.Is(err, chain.ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded at depth 3, got %v", err)
	}
}

func TestWithDepthDoesNotMutateParent(t *testing.T) {
	ctx := chain.NewContext(context.Background(), chain.SVM, 0, chain.DefaultLimits())
	if _, err := ctx.WithDepth(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ctx.Depth != 0 {
		t.Fatalf("parent Depth mutated to %d, want 0", ctx.Depth)
	}
}

func TestNewContextCarriesChainAndChainID(t *testing.T) {
	ctx := chain.NewContext(context.Background(), chain.Tron, 728126428, chain.DefaultLimits())
	if ctx.Chain != chain.Tron {
		t.Fatalf("Chain = %s, want %s", ctx.Chain, chain.Tron)
	}
	if ctx.ChainID != 728126428 {
		t.Fatalf("ChainID = %d, want 728126428", ctx.ChainID)
	}
	if ctx.DynamicABI != nil {
		t.Fatal("expected nil DynamicABI on a fresh root context")
	}
}
