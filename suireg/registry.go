// Package suireg renders Sui ProgrammableTransaction commands into
// annotated fields. Unlike evmreg/svmreg, Sui's MoveCall target is a
// (package, module, function) triple rather than a single address, so the
// registry key is the joined "package::module::function" string; protocol
// presets (Cetus, Suilend, Momentum) register narrower entries here,
// falling through to the generic MoveCall renderer when none matches.
package suireg

import (
	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/sui"
)

// Visualizer renders one MoveCall command.
type Visualizer func(ctx *chain.Context, call *sui.MoveCallCommand) ([]*fields.AnnotatedField, error)

type entry struct {
	title string
	v     Visualizer
}

// Registry dispatches by "package::module::function".
type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a visualizer for a fully-qualified Move function, with the
// human-readable title the dispatcher uses for the enclosing preview.
func (r *Registry) Register(pkg, module, function, title string, v Visualizer) {
	r.entries[pkg+"::"+module+"::"+function] = entry{title: title, v: v}
}

// Lookup resolves the visualizer and display title for a Move function.
func (r *Registry) Lookup(pkg, module, function string) (Visualizer, string, bool) {
	e, ok := r.entries[pkg+"::"+module+"::"+function]
	return e.v, e.title, ok
}

// NewDefaultRegistry returns the registry pre-populated with the Cetus,
// Suilend, and Momentum presets. Package IDs are mainnet deployments,
// embedded at build time; nothing is fetched at runtime.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerCetus(r)
	registerSuilend(r)
	registerMomentum(r)
	return r
}
