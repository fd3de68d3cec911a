package dynamicabi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/visignerr"
)

// jsonParam mirrors one entry of a standard Solidity ABI JSON "inputs" array.
type jsonParam struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Components []jsonParam `json:"components,omitempty"`
}

// jsonEntry mirrors one top-level entry of a standard Solidity ABI JSON
// array (only the "function" entries matter to this decoder).
type jsonEntry struct {
	Type   string      `json:"type"`
	Name   string      `json:"name"`
	Inputs []jsonParam `json:"inputs"`
}

// Function is a registered, selector-addressable ABI function: its name,
// parameter types, and field labels (taken from the ABI's parameter names,
// falling back to a positional placeholder when unnamed).
type Function struct {
	Name       string
	ParamNames []string
	ParamTypes []AbiType
	Selector   [4]byte
}

// Registry maps a 4-byte selector to the Function it decodes as. Embedded
// from caller-supplied ABI JSON at the request boundary, never populated
// from network data.
type Registry struct {
	bySelector map[[4]byte]*Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySelector: make(map[[4]byte]*Function)}
}

// Lookup returns the Function registered for a selector, or nil.
func (r *Registry) Lookup(selector [4]byte) *Function {
	return r.bySelector[selector]
}

// Selectors returns every selector currently registered, in no particular
// order. Used when merging several independently-parsed ABI registries
// (e.g. one per caller-supplied ABI mapping) into one.
func (r *Registry) Selectors() [][4]byte {
	out := make([][4]byte, 0, len(r.bySelector))
	for s := range r.bySelector {
		out = append(out, s)
	}
	return out
}

// Register adds a Function, rejecting a selector collision with an entry
// already present: two distinct signatures must never silently resolve to
// the same selector slot, since that would make visualization ambiguous.
func (r *Registry) Register(fn *Function) error {
	if existing, ok := r.bySelector[fn.Selector]; ok && existing.Name != fn.Name {
		return visignerr.Config("DuplicateSelector", nil)
	}
	r.bySelector[fn.Selector] = fn
	return nil
}

// ParseABIJSON parses a standard Solidity ABI JSON array and registers
// every function entry found, computing each one's selector from its
// canonical signature.
func ParseABIJSON(data []byte) (*Registry, error) {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, visignerr.Config("BadAbiJson", err)
	}

	reg := NewRegistry()
	for _, e := range entries {
		if e.Type != "" && e.Type != "function" {
			continue
		}
		paramTypeStrings := make([]string, len(e.Inputs))
		paramTypes := make([]AbiType, len(e.Inputs))
		paramNames := make([]string, len(e.Inputs))
		for i, p := range e.Inputs {
			t, err := jsonParamToType(p)
			if err != nil {
				return nil, err
			}
			paramTypes[i] = t
			paramTypeStrings[i] = canonicalTypeString(p)
			paramNames[i] = p.Name
		}
		sig := CanonicalSignature(e.Name, paramTypeStrings)
		fn := &Function{
			Name:       e.Name,
			ParamNames: paramNames,
			ParamTypes: paramTypes,
			Selector:   evm.Selector(sig),
		}
		if err := reg.Register(fn); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// canonicalTypeString renders a parameter's type as it appears in the
// canonical signature: tuple components flatten to "(a,b)", keeping any
// array suffix, so "tuple[]" becomes e.g. "(address,bytes)[]".
func canonicalTypeString(p jsonParam) string {
	if len(p.Components) == 0 {
		return p.Type
	}
	parts := make([]string, len(p.Components))
	for i, c := range p.Components {
		parts[i] = canonicalTypeString(c)
	}
	return "(" + strings.Join(parts, ",") + ")" + strings.TrimPrefix(p.Type, "tuple")
}

func jsonParamToType(p jsonParam) (AbiType, error) {
	if len(p.Components) == 0 {
		return ParseTypeString(p.Type)
	}
	fields := make([]AbiType, len(p.Components))
	for i, c := range p.Components {
		t, err := jsonParamToType(c)
		if err != nil {
			return AbiType{}, err
		}
		fields[i] = t
	}
	// A tuple type string may carry an array suffix, e.g. "tuple[]".
	tuple := Tuple(fields...)
	if p.Type == "tuple" {
		return tuple, nil
	}
	// tuple[] / tuple[N]
	suffix := p.Type[len("tuple"):]
	return ParseArraySuffix(tuple, suffix)
}

// ParseArraySuffix wraps elem in the array nesting described by a bracket
// suffix like "[]" or "[2][3]" (left-most bracket binds innermost, matching
// Solidity's T[2][3] == array[3] of array[2] of T).
func ParseArraySuffix(elem AbiType, suffix string) (AbiType, error) {
	cur := elem
	for len(suffix) > 0 {
		if suffix[0] != '[' {
			return AbiType{}, visignerr.Config("BadArraySuffix", nil)
		}
		close := indexByte(suffix, ']')
		if close < 0 {
			return AbiType{}, visignerr.Config("BadArraySuffix", nil)
		}
		dim := suffix[1:close]
		if dim == "" {
			cur = DynArray(cur)
		} else {
			n, err := strconv.Atoi(dim)
			if err != nil {
				return AbiType{}, visignerr.Config("BadFixedArrayLength", err)
			}
			cur = FixedArray(cur, n)
		}
		suffix = suffix[close+1:]
	}
	return cur, nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
