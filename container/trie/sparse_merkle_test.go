package trie_test

import (
	"encoding/hex"
	"testing"

	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

var letters = [][]byte{
	[]byte("A"),
	[]byte("B"),
	[]byte("C"),
	[]byte("D"),
	[]byte("E"),
	[]byte("F"),
	[]byte("G"),
	[]byte("H"),
}

func TestMerkleTrie_MerkleProofOutOfRange(t *testing.T) {
	m, err := trie.GenerateTrieFromItems([][]byte{[]byte("hi")}, 2)
	require.NoError(t, err)
	_, err = m.MerkleProof(6)
	require.ErrorContains(t, "merkle index out of range", err)
}

func TestMerkleTrie_InsertBeyondDepth(t *testing.T) {
	m, err := trie.NewTrie(2)
	require.NoError(t, err)
	require.NoError(t, m.Insert([]byte{1}, 3))
	assert.Equal(t, 4, m.NumOfItems())
	require.ErrorContains(t, "does not fit a trie of depth 2", m.Insert([]byte{1}, 4))
}

func TestGenerateTrieFromItems_DepthTooLarge(t *testing.T) {
	_, err := trie.GenerateTrieFromItems(letters, 64)
	require.ErrorContains(t, "exceeds 63", err)
}

func TestMerkleTrieRoot_EmptyTrie(t *testing.T) {
	newTrie, err := trie.NewTrie(params.BeaconConfig().DepositContractTreeDepth)
	require.NoError(t, err)
	root, err := newTrie.HashTreeRoot()
	require.NoError(t, err)
	// Root reported by the deposit contract before any deposit was made.
	want, err := hex.DecodeString("d70a234731285c6804c2a4f56711ddb8c82c99740f207854891028af34e27e5e")
	require.NoError(t, err)
	require.DeepEqual(t, want, root[:])
	assert.Equal(t, 0, newTrie.NumOfItems())
}

func TestGenerateTrieFromItems_NoItemsProvided(t *testing.T) {
	_, err := trie.GenerateTrieFromItems(nil, params.BeaconConfig().DepositContractTreeDepth)
	require.ErrorContains(t, "no items provided", err)
}

func TestMerkleTrie_VerifyMerkleProof(t *testing.T) {
	depth := params.BeaconConfig().DepositContractTreeDepth
	m, err := trie.GenerateTrieFromItems(letters, depth)
	require.NoError(t, err)
	root, err := m.HashTreeRoot()
	require.NoError(t, err)

	for i, item := range letters {
		proof, err := m.MerkleProof(i)
		require.NoError(t, err)
		require.Equal(t, int(depth)+1, len(proof))
		assert.Equal(t, true, trie.VerifyMerkleProofWithDepth(root[:], item, uint64(i), proof, depth), "item %d", i)
	}
	proof, err := m.MerkleProof(3)
	require.NoError(t, err)
	assert.Equal(t, false, trie.VerifyMerkleProofWithDepth(root[:], []byte("buzz"), 3, proof, depth))
	assert.Equal(t, false, trie.VerifyMerkleProofWithDepth(root[:], letters[3], 4, proof, depth))
	assert.Equal(t, false, trie.VerifyMerkleProofWithDepth(root[:], letters[3], 3, proof[1:], depth))
	assert.Equal(t, false, trie.VerifyMerkleProofWithDepth(root[:], letters[3], 3, nil, depth))
}

func TestMerkleTrie_NegativeIndexes(t *testing.T) {
	m, err := trie.GenerateTrieFromItems(letters, params.BeaconConfig().DepositContractTreeDepth)
	require.NoError(t, err)
	_, err = m.MerkleProof(-1)
	require.ErrorContains(t, "merkle index is negative", err)
	require.ErrorContains(t, "negative index provided", m.Insert([]byte{'J'}, -1))
}

func TestMerkleTrie_VerifyMerkleProof_TrieUpdated(t *testing.T) {
	items := [][]byte{{1}, {2}, {3}, {4}}
	depth := params.BeaconConfig().DepositContractTreeDepth + 1
	m, err := trie.GenerateTrieFromItems(items, depth)
	require.NoError(t, err)
	proof, err := m.MerkleProof(0)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumOfItems())
	root, err := m.HashTreeRoot()
	require.NoError(t, err)
	require.Equal(t, true, trie.VerifyMerkleProofWithDepth(root[:], items[0], 0, proof, depth))

	require.NoError(t, m.Insert([]byte{5}, 3))
	proof, err = m.MerkleProof(3)
	require.NoError(t, err)
	root, err = m.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, true, trie.VerifyMerkleProofWithDepth(root[:], []byte{5}, 3, proof, depth))
	assert.Equal(t, false, trie.VerifyMerkleProofWithDepth(root[:], []byte{4}, 3, proof, depth))

	require.NoError(t, m.Insert([]byte{6}, 15))
}

func TestMerkleTrie_InsertMatchesGenerate(t *testing.T) {
	depth := params.BeaconConfig().DepositContractTreeDepth
	incremental, err := trie.NewTrie(depth)
	require.NoError(t, err)
	for i, item := range letters {
		require.NoError(t, incremental.Insert(item, i))
	}
	generated, err := trie.GenerateTrieFromItems(letters, depth)
	require.NoError(t, err)
	want, err := generated.HashTreeRoot()
	require.NoError(t, err)
	got, err := incremental.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCopy_OK(t *testing.T) {
	source, err := trie.GenerateTrieFromItems([][]byte{{1}, {2}, {3}, {4}}, params.BeaconConfig().DepositContractTreeDepth+1)
	require.NoError(t, err)
	copiedTrie := source.Copy()
	if copiedTrie == source {
		t.Errorf("Original trie returned.")
	}
	a, err := copiedTrie.HashTreeRoot()
	require.NoError(t, err)
	require.NoError(t, source.Insert([]byte{9}, 0))
	b, err := source.HashTreeRoot()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestZeroHashes(t *testing.T) {
	assert.Equal(t, [32]byte{}, trie.ZeroHashes[0])
	assert.Equal(t, hash.HashConcat([32]byte{}, [32]byte{}), trie.ZeroHashes[1])
}

func BenchmarkGenerateTrieFromItems(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := trie.GenerateTrieFromItems(letters, params.BeaconConfig().DepositContractTreeDepth)
		require.NoError(b, err, "Could not generate Merkle trie from items")
	}
}

func BenchmarkVerifyMerkleProofWithDepth(b *testing.B) {
	b.StopTimer()
	m, err := trie.GenerateTrieFromItems(letters, params.BeaconConfig().DepositContractTreeDepth)
	require.NoError(b, err)
	proof, err := m.MerkleProof(2)
	require.NoError(b, err)
	root, err := m.HashTreeRoot()
	require.NoError(b, err)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if ok := trie.VerifyMerkleProofWithDepth(root[:], letters[2], 2, proof, params.BeaconConfig().DepositContractTreeDepth); !ok {
			b.Error("Merkle proof did not verify")
		}
	}
}
