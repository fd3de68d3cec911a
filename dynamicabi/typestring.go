package dynamicabi

import (
	"strconv"
	"strings"

	"github.com/ModChain/visualsign/visignerr"
)

// ParseTypeString parses a canonical Solidity type string such as
// "uint256", "address", "bytes32", "uint256[]", "uint256[3]", or
// "(address,uint256)" for a tuple, into an AbiType tree. This is the
// grammar used both by ABI JSON "type"/"components" fields and by a
// function's canonical signature (as used for selector hashing).
func ParseTypeString(s string) (AbiType, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "]") {
		open := strings.LastIndexByte(s, '[')
		if open < 0 {
			return AbiType{}, visignerr.Config("BadArrayTypeString", nil)
		}
		elem, err := ParseTypeString(s[:open])
		if err != nil {
			return AbiType{}, err
		}
		inner := s[open+1 : len(s)-1]
		if inner == "" {
			return DynArray(elem), nil
		}
		n, err := strconv.Atoi(inner)
		if err != nil {
			return AbiType{}, visignerr.Config("BadFixedArrayLength", err)
		}
		return FixedArray(elem, n), nil
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		fields, err := splitTupleFields(s[1 : len(s)-1])
		if err != nil {
			return AbiType{}, err
		}
		types := make([]AbiType, len(fields))
		for i, f := range fields {
			t, err := ParseTypeString(f)
			if err != nil {
				return AbiType{}, err
			}
			types[i] = t
		}
		return Tuple(types...), nil
	}

	switch {
	case s == "address":
		return Address(), nil
	case s == "bool":
		return Bool(), nil
	case s == "bytes":
		return Bytes(), nil
	case s == "string":
		return String(), nil
	case s == "uint":
		return Uint(256), nil
	case s == "int":
		return Int(256), nil
	case strings.HasPrefix(s, "uint"):
		n, err := strconv.Atoi(s[4:])
		if err != nil {
			return AbiType{}, visignerr.Config("BadUintWidth", err)
		}
		return Uint(n), nil
	case strings.HasPrefix(s, "int"):
		n, err := strconv.Atoi(s[3:])
		if err != nil {
			return AbiType{}, visignerr.Config("BadIntWidth", err)
		}
		return Int(n), nil
	case strings.HasPrefix(s, "bytes"):
		n, err := strconv.Atoi(s[5:])
		if err != nil {
			return AbiType{}, visignerr.Config("BadBytesWidth", err)
		}
		return FixedBytes(n), nil
	}
	return AbiType{}, ErrUnsupportedType
}

// splitTupleFields splits a tuple's comma-separated field list, respecting
// nested parentheses/brackets so e.g. "(uint256,address)[],bool" splits
// into two top-level fields rather than three.
func splitTupleFields(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var fields []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, visignerr.Config("UnbalancedTupleParens", nil)
			}
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, visignerr.Config("UnbalancedTupleParens", nil)
	}
	fields = append(fields, s[start:])
	return fields, nil
}

// CanonicalSignature renders a function name and its parameter type strings
// into the canonical "name(type,type)" form used for selector hashing.
func CanonicalSignature(name string, paramTypes []string) string {
	return name + "(" + strings.Join(paramTypes, ",") + ")"
}
