package tron

import (
	"crypto/sha256"

	"github.com/KarpelesLab/cryptutil"
	"github.com/ModChain/base58"
)

// AddressPrefix is the leading byte of every Tron base58check address.
const AddressPrefix = 0x41

// FormatAddress renders a raw 21-byte Tron address (0x41 prefix + 20-byte
// hash) as base58check, the form every Tron wallet and explorer displays.
// If raw is only 20 bytes, the prefix is added.
func FormatAddress(raw []byte) string {
	body := raw
	if len(body) == 20 {
		body = append([]byte{AddressPrefix}, body...)
	}
	checksum := cryptutil.Hash(body, sha256.New, sha256.New)[:4]
	return base58.Bitcoin.Encode(append(append([]byte(nil), body...), checksum...))
}
