package evm

import (
	"github.com/KarpelesLab/cryptutil"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes data with the legacy Keccak-256 used throughout the
// Ethereum wire formats (selectors, EIP-55 casing, init code hashes).
func Keccak256(data []byte) []byte {
	return cryptutil.Hash(data, sha3.NewLegacyKeccak256)
}

// Selector computes the 4-byte function selector of a Solidity signature
// such as "transfer(address,uint256)", the first four bytes of its
// keccak256 hash.
func Selector(signature string) [4]byte {
	sum := Keccak256([]byte(signature))
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}
