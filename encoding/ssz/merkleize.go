package ssz

import (
	"math/bits"

	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gohashtree"
)

// Depth returns the depth of the smallest perfect binary tree holding v leaves.
//  (in out): (0 0), (1 0), (2 1), (3 2), (4 2), (5 3), (8 3), (9 4)
func Depth(v uint64) uint8 {
	if v <= 1 {
		return 0
	}
	return uint8(bits.Len64(v - 1))
}

// Merkleize computes the root of count leaves padded with zero subtrees up to
// limit leaves. Only one partial node per level is kept in memory.
func Merkleize(hasher Hasher, count, limit uint64, leaf func(i uint64) []byte) (out [32]byte) {
	if count > limit {
		panic("merkleizing list that is too large, over limit")
	}
	if limit == 0 {
		return
	}
	limitDepth := Depth(limit)
	if limitDepth == 0 {
		if count == 1 {
			copy(out[:], leaf(0))
		}
		return
	}
	// pending[d] holds a left node at depth d waiting for its right sibling.
	pending := make([][32]byte, limitDepth+1)
	var node [32]byte
	for i := uint64(0); i < count; i++ {
		copy(node[:], leaf(i))
		d := uint8(0)
		for idx := i; idx&1 == 1; idx >>= 1 {
			node = hasher.Combi(pending[d], node)
			d++
		}
		pending[d] = node
	}
	// Fold the partial nodes up with zero right siblings.
	var acc [32]byte
	haveAcc := false
	for d := uint8(0); d < limitDepth; d++ {
		if count>>d&1 == 1 {
			if haveAcc {
				acc = hasher.Combi(pending[d], acc)
			} else {
				acc = hasher.Combi(pending[d], trie.ZeroHashes[d])
			}
			haveAcc = true
			continue
		}
		if haveAcc {
			acc = hasher.Combi(acc, trie.ZeroHashes[d])
		} else {
			acc = trie.ZeroHashes[d+1]
		}
	}
	if count == limit && count == uint64(1)<<limitDepth {
		return pending[limitDepth]
	}
	return acc
}

// MerkleizeVector hashes a vector of length chunks, padding the missing
// elements with zero subtrees. The elements slice is used as scratch space.
func MerkleizeVector(elements [][32]byte, length uint64) [32]byte {
	depth := Depth(length)
	if len(elements) == 0 {
		return trie.ZeroHashes[depth]
	}
	for i := uint8(0); i < depth; i++ {
		if len(elements)%2 == 1 {
			elements = append(elements, trie.ZeroHashes[i])
		}
		digests := make([][32]byte, len(elements)/2)
		if err := gohashtree.Hash(digests, elements); err != nil {
			hasher := DefaultHasher()
			for j := range digests {
				digests[j] = hasher.Combi(elements[2*j], elements[2*j+1])
			}
		}
		elements = digests
	}
	return elements[0]
}
