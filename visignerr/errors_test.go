package visignerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ModChain/visualsign/visignerr"
)

func TestErrorStringIncludesOffset(t *testing.T) {
	err := visignerr.Parse("TrailingData", 42, nil)
	want := "parse: TrailingData (offset 42)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorStringOmitsOffsetWhenUnknown(t *testing.T) {
	err := visignerr.Resolution("AltUnresolved", nil)
	if got := err.Error(); got != "resolution: AltUnresolved" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("short buffer")
	err := visignerr.Parse("BadHex", -1, cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause via Unwrap")
	}
	if got := err.Error(); got != "parse: BadHex: short buffer" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestErrorIsComparesKindAndReason(t *testing.T) {
	err := visignerr.Calldata("OffsetOverflow", 10, nil)
	if !errors.Is(err, visignerr.CalldataErrorOf("OffsetOverflow")) {
		t.Fatal("expected errors.Is to match on Kind+Reason regardless of Offset")
	}
	if errors.Is(err, visignerr.CalldataErrorOf("DifferentReason")) {
		t.Fatal("expected errors.Is to reject a different Reason")
	}
	if errors.Is(err, visignerr.ParseErrorOf("OffsetOverflow")) {
		t.Fatal("expected errors.Is to reject a different Kind")
	}
}

func TestValidationFoldsFieldIndexIntoReason(t *testing.T) {
	err := visignerr.Validation(3, "amount.Amount is not a signed proper number")
	want := "validation: field 3: amount.Amount is not a signed proper number"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnsupportedTxTypeFormatsHexByte(t *testing.T) {
	err := visignerr.UnsupportedTxType(0x09)
	if got := err.Error(); got != "parse: UnsupportedTxType(0x09) (offset 0)" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestAltUnresolvedReportsTableAndIndex(t *testing.T) {
	err := visignerr.AltUnresolved("TableX", 2)
	want := fmt.Sprintf("resolution: AltUnresolved(%s, %d)", "TableX", 2)
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
