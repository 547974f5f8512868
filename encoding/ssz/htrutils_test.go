package ssz_test

import (
	"testing"

	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/go-bitfield"
)

func TestUint64Root(t *testing.T) {
	uintVal := uint64(1234567890)
	expected := [32]byte{210, 2, 150, 73, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	result := ssz.Uint64Root(uintVal)
	assert.Equal(t, expected, result)
}

func TestDepth(t *testing.T) {
	tests := []struct {
		in  uint64
		out uint8
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {8192, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, ssz.Depth(tt.in), "depth of %d", tt.in)
	}
}

func TestMerkleizeVector_MatchesBitwiseMerkleize(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		roots := make([][32]byte, n)
		for i := range roots {
			roots[i] = hash.Hash([]byte{byte(i)})
		}
		want, err := ssz.BitwiseMerkleizeArrays(hash.CustomSHA256Hasher(), roots, uint64(n), 16)
		require.NoError(t, err)
		cp := make([][32]byte, n)
		copy(cp, roots)
		assert.Equal(t, want, ssz.MerkleizeVector(cp, 16), "n=%d", n)
	}
}

func TestMerkleizeVector_Empty(t *testing.T) {
	assert.Equal(t, trie.ZeroHashes[3], ssz.MerkleizeVector(nil, 8))
}

func TestContainerRoot_TwoFields(t *testing.T) {
	a := ssz.Uint64Root(1)
	b := [32]byte{2}
	root, err := ssz.ContainerRoot([][32]byte{a, b})
	require.NoError(t, err)
	assert.Equal(t, hash.HashConcat(a, b), root)
}

func TestListRoot_MixesInLength(t *testing.T) {
	r1, err := ssz.ListRoot([][32]byte{{1}}, 4)
	require.NoError(t, err)
	r2, err := ssz.ListRoot([][32]byte{{1}, {}}, 4)
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2)
}

func TestUint64ListRoot(t *testing.T) {
	root, err := ssz.Uint64ListRoot([]uint64{1, 2}, 4)
	require.NoError(t, err)
	var chunk [32]byte
	chunk[0] = 1
	chunk[8] = 2
	assert.Equal(t, hash.HashConcat(chunk, ssz.Uint64Root(2)), root)
}

func TestBitlistRoot_DiffersByLength(t *testing.T) {
	a := bitfield.NewBitlist(4)
	b := bitfield.NewBitlist(5)
	ra, err := ssz.BitlistRoot(a, 2048)
	require.NoError(t, err)
	rb, err := ssz.BitlistRoot(b, 2048)
	require.NoError(t, err)
	assert.NotEqual(t, ra, rb)
}

func TestPack(t *testing.T) {
	chunks, err := ssz.Pack([][]byte{{1, 2}, {3}})
	require.NoError(t, err)
	require.Equal(t, 1, len(chunks))
	assert.Equal(t, 32, len(chunks[0]))
	assert.DeepEqual(t, []byte{1, 2, 3}, chunks[0][:3])

	chunks, err = ssz.Pack(nil)
	require.NoError(t, err)
	assert.DeepEqual(t, [][]byte{make([]byte, 32)}, chunks)
}

func TestRootsVectorRoot_LeavesInputIntact(t *testing.T) {
	roots := make([][32]byte, 33)
	for i := range roots {
		roots[i] = [32]byte{byte(i + 1)}
	}
	orig := make([][32]byte, len(roots))
	copy(orig, roots)
	want, err := ssz.BitwiseMerkleizeArrays(hash.CustomSHA256Hasher(), orig, 33, 33)
	require.NoError(t, err)

	got, err := ssz.RootsVectorRoot(roots)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DeepEqual(t, orig, roots)
}
