// Package visignerr defines the error taxonomy used across the parsing and
// rendering pipeline: ParseError, ResolutionError, MalformedCalldata,
// ValidationError and ConfigError. None of these are ever raised as panics;
// malformed input always returns one of these kinds.
package visignerr

import "fmt"

// Kind identifies which branch of the taxonomy an error belongs to.
type Kind string

const (
	KindParse      Kind = "parse"
	KindResolution Kind = "resolution"
	KindCalldata   Kind = "calldata"
	KindValidation Kind = "validation"
	KindConfig     Kind = "config"
)

// Error is the common shape for every error this module returns. Reason is a
// short machine-stable subkind tag (e.g. "TrailingData", "OffsetOverflow");
// Offset is the byte offset within the input where known, or -1.
type Error struct {
	Kind   Kind
	Reason string
	Offset int
	Err    error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s (offset %d): %s", e.Kind, e.Reason, e.Offset, e.Err)
		}
		return fmt.Sprintf("%s: %s (offset %d)", e.Kind, e.Reason, e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, visignerr.ParseErrorOf("TrailingData")) style checks
// by comparing Kind and Reason; Offset and Err are not compared.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

func newErr(k Kind, reason string, offset int, err error) *Error {
	return &Error{Kind: k, Reason: reason, Offset: offset, Err: err}
}

// Parse builds a ParseError with a byte offset (-1 if unknown).
func Parse(reason string, offset int, err error) *Error {
	return newErr(KindParse, reason, offset, err)
}

// ParseErrorOf builds a comparison target for errors.Is without an offset or wrapped cause.
func ParseErrorOf(reason string) *Error { return newErr(KindParse, reason, -1, nil) }

// Resolution builds a ResolutionError.
func Resolution(reason string, err error) *Error {
	return newErr(KindResolution, reason, -1, err)
}

// ResolutionErrorOf builds a comparison target for errors.Is.
func ResolutionErrorOf(reason string) *Error { return newErr(KindResolution, reason, -1, nil) }

// Calldata builds a MalformedCalldata error.
func Calldata(reason string, offset int, err error) *Error {
	return newErr(KindCalldata, reason, offset, err)
}

// CalldataErrorOf builds a comparison target for errors.Is.
func CalldataErrorOf(reason string) *Error { return newErr(KindCalldata, reason, -1, nil) }

// Validation builds a ValidationError. FieldIndex is folded into Reason since
// the taxonomy only requires it be surfaced, not machine-matched.
func Validation(fieldIndex int, reason string) *Error {
	return newErr(KindValidation, fmt.Sprintf("field %d: %s", fieldIndex, reason), -1, nil)
}

// Config builds a ConfigError, raised only at registration time.
func Config(reason string, err error) *Error {
	return newErr(KindConfig, reason, -1, err)
}

// ConfigErrorOf builds a comparison target for errors.Is.
func ConfigErrorOf(reason string) *Error { return newErr(KindConfig, reason, -1, nil) }

// UnsupportedTxType reports an EVM envelope byte that isn't one of the
// recognized transaction type tags.
func UnsupportedTxType(b byte) *Error {
	return newErr(KindParse, fmt.Sprintf("UnsupportedTxType(0x%02x)", b), 0, nil)
}

// AltUnresolved reports a v0 Solana message referencing an address lookup
// table the caller did not supply a resolution for.
func AltUnresolved(table string, idx int) *Error {
	return newErr(KindResolution, fmt.Sprintf("AltUnresolved(%s, %d)", table, idx), -1, nil)
}
