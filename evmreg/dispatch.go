package evmreg

import (
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dynamicabi"
	"github.com/ModChain/visualsign/evm"
	"github.com/ModChain/visualsign/fields"
)

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// sharedDefaultRegistry returns the process-wide default registry, built
// once: the registry itself is immutable read-only data, so a
// single shared instance is safe across concurrent parses.
func sharedDefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() { defaultRegistry = NewDefaultRegistry() })
	return defaultRegistry
}

// decodeArgs strips the 4-byte selector from calldata and decodes the
// remainder against the given parameter type string, e.g.
// "(address,uint256)".
func decodeArgs(calldata []byte, typeString string) ([]dynamicabi.Value, error) {
	if len(calldata) < 4 {
		return nil, errBadArgCount
	}
	t, err := dynamicabi.ParseTypeString(typeString)
	if err != nil {
		return nil, err
	}
	v, err := dynamicabi.Decode(t, calldata[4:])
	if err != nil {
		return nil, err
	}
	return v.Items, nil
}

func hexPrefix(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func parseTuple(typeString string) (dynamicabi.AbiType, error) {
	return dynamicabi.ParseTypeString(typeString)
}

func decodeValue(t dynamicabi.AbiType, buf []byte) (dynamicabi.Value, error) {
	return dynamicabi.Decode(t, buf)
}

// dispatchSubCall resolves and renders one nested call's raw calldata,
// following the full fallback chain: address+selector match,
// then selector-only match, then the caller-supplied dynamic-ABI registry
// carried on ctx, and finally an unknown view so no bytes are ever
// silently dropped: a sub-call must account for every byte just as the
// top-level transaction does. A depth overflow or
// a visualizer's decode failure degrades this one sub-tree to an unknown
// view; the outer payload still renders.
func dispatchSubCall(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	childCtx, err := ctx.WithDepth()
	if err != nil {
		return unknownView("Contract Call", hexPrefix(calldata),
			"DepthExceeded: nested call deeper than the configured recursion limit"), nil
	}
	if len(calldata) < 4 {
		return unknownView("Contract Call", hexPrefix(calldata), "truncated call data"), nil
	}
	var selector [4]byte
	copy(selector[:], calldata[:4])

	if v, ok := sharedDefaultRegistry().Lookup(to, selector); ok {
		view, err := v(childCtx, to, calldata)
		if err != nil {
			return unknownView("Contract Call", hexPrefix(calldata),
				"call matched a known selector but its arguments could not be decoded: "+err.Error()), nil
		}
		return view, nil
	}

	if ctx.DynamicABI != nil {
		if fn := ctx.DynamicABI.Lookup(selector); fn != nil {
			return decodeDynamicCall(childCtx, to, fn, calldata), nil
		}
	}

	return unknownView("Contract Call", hexPrefix(calldata),
		"no visualizer registered for this selector on this contract"), nil
}

// decodeDynamicCall renders a call matched against a caller-supplied ABI
// function: one labeled field per parameter, left to right.
// A decode failure degrades this one call to an unknown view rather than
// aborting the whole response.
func decodeDynamicCall(ctx *chain.Context, to [20]byte, fn *dynamicabi.Function, calldata []byte) *CallView {
	values, err := dynamicabi.DecodeArgs(fn.ParamTypes, calldata[4:])
	if err != nil {
		return unknownView(fn.Name, hexPrefix(calldata),
			"dynamic ABI match for "+fn.Name+" but arguments could not be decoded: "+err.Error())
	}
	out := []*fields.AnnotatedField{
		fields.Annotate(fields.Address("Contract", evm.Checksum(to[:]), contractName(ctx, to), "")),
		fields.Annotate(fields.Text("Function", fn.Name)),
	}
	for i, v := range values {
		label := fn.ParamNames[i]
		if label == "" {
			label = "arg" + strconv.Itoa(i)
		}
		out = append(out, fields.Annotate(describeDynamicValue(label, v)))
	}
	return &CallView{
		Title:      fn.Name,
		Condensed:  summaryField(fn.Name + " (" + strconv.Itoa(len(values)) + " parameters)"),
		Expanded:   out,
		Recognized: true,
	}
}

func describeDynamicValue(label string, v dynamicabi.Value) *fields.Field {
	switch v.Type.Kind {
	case dynamicabi.KindAddress:
		return fields.Address(label, evm.Checksum(v.Address[:]), "", "")
	case dynamicabi.KindUint, dynamicabi.KindInt:
		s := "0"
		if v.Int != nil {
			s = v.Int.String()
		}
		return fields.Number(label, s, s)
	case dynamicabi.KindBool:
		s := "false"
		if v.Bool {
			s = "true"
		}
		return fields.Text(label, s)
	case dynamicabi.KindString:
		f := fields.Text(label, v.Str)
		f.FallbackText = truncateDisplay(v.Str)
		return f
	case dynamicabi.KindBytes, dynamicabi.KindFixedBytes:
		f := fields.Text(label, hexPrefix(v.Bytes))
		f.FallbackText = truncateDisplay(f.TextV2.Text)
		return f
	default:
		return fields.Text(label, describeDynamicValueCompound(v))
	}
}

// describeDynamicValueCompound renders a tuple or array as a bracketed list
// of its children's full text, since a single Field has no sub-list
// slot outside preview_layout/list_layout.
func describeDynamicValueCompound(v dynamicabi.Value) string {
	s := "["
	for i, item := range v.Items {
		if i > 0 {
			s += ", "
		}
		child := describeDynamicValue("", item)
		if child.TextV2 != nil {
			s += child.TextV2.Text
		} else {
			s += child.FallbackText
		}
	}
	return s + "]"
}

// truncateDisplay keeps single-field rendering compact: strings/bytes longer than
// 64 chars are cut to 64 chars plus an ellipsis. Callers apply it to a
// field's FallbackText only; the field's text_v2 value keeps the full
// string, so no part of the value is dropped.
func truncateDisplay(s string) string {
	if len(s) <= 64 {
		return s
	}
	return s[:64] + "..."
}

// DecodeTronStyleCall resolves a TVM contract call against the same
// registry used for Ethereum calldata. Tron's TriggerSmartContract payload
// is ABI-encoded exactly like an EVM call (4-byte selector plus head/tail
// arguments), so tronreg delegates here instead of duplicating the table.
func DecodeTronStyleCall(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	return dispatchSubCall(ctx, to, calldata)
}

// DecodeCall is the exported top-level entry point a chain dispatcher uses
// to resolve and render a call's calldata. It has the same fallback
// semantics as a nested sub-call; the only difference at the top level is
// that a resolution or malformed-calldata failure here still degrades to
// an unknown view rather than aborting the whole response; only an
// envelope-level parse failure aborts entirely.
func DecodeCall(ctx *chain.Context, to [20]byte, calldata []byte) (*CallView, error) {
	return dispatchSubCall(ctx, to, calldata)
}
