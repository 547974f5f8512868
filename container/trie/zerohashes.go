package trie

import "github.com/prysmaticlabs/gasper/crypto/hash"

// ZeroHashes is a precomputed table of the roots of all-zero subtrees, indexed by height.
var ZeroHashes = make([][32]byte, 100)

func init() {
	for i := 1; i < 100; i++ {
		ZeroHashes[i] = hash.HashConcat(ZeroHashes[i-1], ZeroHashes[i-1])
	}
}
