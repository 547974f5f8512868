// Package trie defines the sparse merkle trie used for the deposit contract
// root and deposit proofs.
package trie

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
)

// SparseMerkleTrie is a merkle trie of a fixed depth where only the populated
// left part of every layer is stored. Missing nodes are zero subtrees.
type SparseMerkleTrie struct {
	depth uint64
	// layers[0] are the leaves, layers[depth] holds the root.
	layers [][][32]byte
	// count is the number of inserted items, mixed into the root.
	count uint64
}

// NewTrie returns an empty trie of the given depth.
func NewTrie(depth uint64) (*SparseMerkleTrie, error) {
	var zero [32]byte
	m, err := GenerateTrieFromItems([][]byte{zero[:]}, depth)
	if err != nil {
		return nil, err
	}
	m.count = 0
	return m, nil
}

// GenerateTrieFromItems builds a trie of the given depth whose leaves are the
// items, each truncated or zero padded to 32 bytes.
func GenerateTrieFromItems(items [][]byte, depth uint64) (*SparseMerkleTrie, error) {
	if len(items) == 0 {
		return nil, errors.New("no items provided to generate Merkle trie")
	}
	if depth >= 64 {
		return nil, errors.Errorf("trie depth %d exceeds 63", depth)
	}
	m := &SparseMerkleTrie{
		depth:  depth,
		layers: make([][][32]byte, depth+1),
		count:  uint64(len(items)),
	}
	m.layers[0] = make([][32]byte, len(items))
	for i, item := range items {
		m.layers[0][i] = bytesutil.ToBytes32(item)
	}
	for d := uint64(0); d < depth; d++ {
		below := m.layers[d]
		next := make([][32]byte, (len(below)+1)/2)
		for j := range next {
			next[j] = hash.HashConcat(below[2*j], m.node(d, uint64(2*j+1)))
		}
		m.layers[d+1] = next
	}
	return m, nil
}

// node returns the node at the given layer and position, a zero subtree root
// when the position is not populated.
func (m *SparseMerkleTrie) node(layer, index uint64) [32]byte {
	if index < uint64(len(m.layers[layer])) {
		return m.layers[layer][index]
	}
	return ZeroHashes[layer]
}

// HashTreeRoot of the trie as the deposit contract computes it: the root node
// hashed with the little endian item count.
func (m *SparseMerkleTrie) HashTreeRoot() ([32]byte, error) {
	var count [32]byte
	binary.LittleEndian.PutUint64(count[:], m.count)
	return hash.HashConcat(m.layers[m.depth][0], count), nil
}

// Insert sets the leaf at index and rehashes its path to the root.
func (m *SparseMerkleTrie) Insert(item []byte, index int) error {
	if index < 0 {
		return errors.Errorf("negative index provided: %d", index)
	}
	if uint64(index) >= uint64(1)<<m.depth {
		return errors.Errorf("index %d does not fit a trie of depth %d", index, m.depth)
	}
	idx := uint64(index)
	for uint64(len(m.layers[0])) <= idx {
		m.layers[0] = append(m.layers[0], ZeroHashes[0])
	}
	m.layers[0][idx] = bytesutil.ToBytes32(item)
	if idx+1 > m.count {
		m.count = idx + 1
	}
	for d := uint64(0); d < m.depth; d++ {
		left := idx &^ 1
		parent := hash.HashConcat(m.node(d, left), m.node(d, left+1))
		idx >>= 1
		for uint64(len(m.layers[d+1])) <= idx {
			m.layers[d+1] = append(m.layers[d+1], ZeroHashes[d+1])
		}
		m.layers[d+1][idx] = parent
	}
	return nil
}

// MerkleProof returns the branch of the leaf at index followed by the mixed in
// item count, depth+1 entries in total.
func (m *SparseMerkleTrie) MerkleProof(index int) ([][]byte, error) {
	if index < 0 {
		return nil, errors.Errorf("merkle index is negative: %d", index)
	}
	if index >= len(m.layers[0]) {
		return nil, errors.Errorf("merkle index out of range in trie, max range: %d, received: %d", len(m.layers[0]), index)
	}
	proof := make([][]byte, m.depth+1)
	idx := uint64(index)
	for d := uint64(0); d < m.depth; d++ {
		sibling := m.node(d, idx^1)
		proof[d] = sibling[:]
		idx >>= 1
	}
	count := make([]byte, 32)
	binary.LittleEndian.PutUint64(count, m.count)
	proof[m.depth] = count
	return proof, nil
}

// VerifyMerkleProofWithDepth checks a branch of depth+1 nodes, the last one
// being the mixed in length, against root.
func VerifyMerkleProofWithDepth(root, item []byte, merkleIndex uint64, proof [][]byte, depth uint64) bool {
	if uint64(len(proof)) != depth+1 || depth >= 64 {
		return false
	}
	node := bytesutil.ToBytes32(item)
	for i := uint64(0); i <= depth; i++ {
		sibling := bytesutil.ToBytes32(proof[i])
		if merkleIndex>>i&1 == 1 {
			node = hash.HashConcat(sibling, node)
		} else {
			node = hash.HashConcat(node, sibling)
		}
	}
	return bytes.Equal(root, node[:])
}

// Copy performs a deep copy of the trie.
func (m *SparseMerkleTrie) Copy() *SparseMerkleTrie {
	layers := make([][][32]byte, len(m.layers))
	for i, l := range m.layers {
		layers[i] = make([][32]byte, len(l))
		copy(layers[i], l)
	}
	return &SparseMerkleTrie{depth: m.depth, layers: layers, count: m.count}
}

// NumOfItems returns the number of inserted items.
func (m *SparseMerkleTrie) NumOfItems() int {
	return int(m.count)
}
