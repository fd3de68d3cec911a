package dispatch_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dispatch"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
)

func solKey(t *testing.T, s string) svm.Key {
	t.Helper()
	k, err := svm.ParseKey(s)
	if err != nil {
		t.Fatalf("ParseKey(%s): %s", s, err)
	}
	return k
}

func fillKey(fill byte) svm.Key {
	var k svm.Key
	for i := range k {
		k[i] = fill
	}
	return k
}

// buildSolTransferTx assembles a full legacy transaction: one placeholder
// signature and a message with a single system-program transfer.
func buildSolTransferTx(t *testing.T) []byte {
	t.Helper()
	system := solKey(t, "11111111111111111111111111111111")

	var buf []byte
	buf = append(buf, 1)
	buf = append(buf, make([]byte, 64)...) // placeholder signature
	buf = append(buf, 1, 0, 1)             // header
	buf = append(buf, 3)
	from := fillKey(0x11)
	to := fillKey(0x22)
	buf = append(buf, from[:]...)
	buf = append(buf, to[:]...)
	buf = append(buf, system[:]...)
	bh := fillKey(0x44)
	buf = append(buf, bh[:]...)
	buf = append(buf, 1)
	buf = append(buf, 2)       // program index (system)
	buf = append(buf, 2, 0, 1) // accounts
	buf = append(buf, 12)
	buf = append(buf, 2, 0, 0, 0, 0x00, 0xca, 0x9a, 0x3b, 0, 0, 0, 0) // 1 SOL
	return buf
}

func TestParseSolanaTransfer(t *testing.T) {
	raw := hex.EncodeToString(buildSolTransferTx(t))

	p, err := dispatch.Parse(context.Background(), raw, chain.SVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if p.PayloadType != fields.PayloadSolana {
		t.Fatalf("PayloadType = %s", p.PayloadType)
	}
	if f := findField(p, "Fee Payer"); f == nil || f.AddressV2.Address != fillKey(0x11).String() {
		t.Fatalf("Fee Payer = %+v", f)
	}

	instr := findField(p, "Instruction 0")
	if instr == nil || instr.PreviewLayout == nil || instr.PreviewLayout.Title != "SOL Transfer" {
		t.Fatalf("Instruction 0 = %+v", instr)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
}

// buildV0TxWithLookup assembles a v0 transaction referencing one lookup
// table, with no instructions, to exercise the unresolved-ALT path.
func buildV0TxWithLookup(t *testing.T) []byte {
	t.Helper()
	var buf []byte
	buf = append(buf, 1)
	buf = append(buf, make([]byte, 64)...)
	buf = append(buf, 0x80) // v0
	buf = append(buf, 1, 0, 0)
	buf = append(buf, 1)
	payer := fillKey(0x11)
	buf = append(buf, payer[:]...)
	bh := fillKey(0x44)
	buf = append(buf, bh[:]...)
	buf = append(buf, 0) // no instructions
	buf = append(buf, 1) // one lookup
	table := fillKey(0x55)
	buf = append(buf, table[:]...)
	buf = append(buf, 1, 0) // writable [0]
	buf = append(buf, 1, 1) // readonly [1]
	return buf
}

func TestParseV0WithUnresolvedLookupDegrades(t *testing.T) {
	raw := hex.EncodeToString(buildV0TxWithLookup(t))

	p, err := dispatch.Parse(context.Background(), raw, chain.SVM, dispatch.Options{})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}

	note := findField(p, "Address Lookup Tables")
	if note == nil || note.Unknown == nil {
		t.Fatal("missing the unresolved-ALT note")
	}

	// Placeholder display form: ALT(<table base58>)[idx].
	table := fillKey(0x55).String()
	placeholder := findField(p, "Loaded account 1")
	if placeholder == nil || placeholder.TextV2 == nil {
		t.Fatalf("missing loaded-account placeholder, fields = %+v", p.Fields)
	}
	if !strings.Contains(placeholder.TextV2.Text, "ALT("+table+")") {
		t.Fatalf("placeholder = %q", placeholder.TextV2.Text)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
}

type mapResolver map[svm.Key][2][]svm.Key

func (m mapResolver) Resolve(table svm.Key) (writable, readonly []svm.Key, err error) {
	e, ok := m[table]
	if !ok {
		return nil, nil, errNotFound
	}
	return e[0], e[1], nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "table not found" }

func TestParseV0WithResolverResolvesKeys(t *testing.T) {
	raw := hex.EncodeToString(buildV0TxWithLookup(t))

	resolver := mapResolver{
		fillKey(0x55): {
			{fillKey(0xa0), fillKey(0xa1)},
			{fillKey(0xb0), fillKey(0xb1)},
		},
	}
	p, err := dispatch.Parse(context.Background(), raw, chain.SVM, dispatch.Options{ALTResolver: resolver})
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}

	if f := findField(p, "Address Lookup Tables"); f != nil {
		t.Fatal("resolved lookups must not emit the unresolved-ALT note")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
}
