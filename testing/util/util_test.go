package util

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestNewBeaconState(t *testing.T) {
	st, err := NewBeaconState()
	require.NoError(t, err)
	assert.Equal(t, int(params.BeaconConfig().SlotsPerHistoricalRoot), len(st.BlockRoots()))
	_, err = st.HashTreeRoot(context.Background())
	require.NoError(t, err)
}

func TestFillRootsNaturalOpt(t *testing.T) {
	st, err := NewBeaconState(FillRootsNaturalOpt)
	require.NoError(t, err)
	r, err := st.BlockRootAtIndex(16)
	require.NoError(t, err)
	assert.Equal(t, byte(16), r[31])
}

func TestDeterministicDepositsAndEth1Data_ProofsVerify(t *testing.T) {
	ResetCache()
	deposits, eth1Data, err := DeterministicDepositsAndEth1Data(8)
	require.NoError(t, err)
	require.Equal(t, 8, len(deposits))
	assert.Equal(t, uint64(8), eth1Data.DepositCount)
	for i, d := range deposits {
		leaf, err := d.Data.HashTreeRoot()
		require.NoError(t, err)
		proof := make([][]byte, len(d.Proof))
		for j := range d.Proof {
			proof[j] = d.Proof[j][:]
		}
		assert.Equal(t, true, trie.VerifyMerkleProofWithDepth(eth1Data.DepositRoot[:], leaf[:], uint64(i), proof, params.BeaconConfig().DepositContractTreeDepth), "deposit %d", i)
	}

	// Smaller requests reuse the cache and still verify against their own root.
	small, smallEth1, err := DeterministicDepositsAndEth1Data(3)
	require.NoError(t, err)
	assert.Equal(t, deposits[2].Data.PublicKey, small[2].Data.PublicKey)
	assert.NotEqual(t, eth1Data.DepositRoot, smallEth1.DepositRoot)
}

func TestDeterministicGenesisState(t *testing.T) {
	st := DeterministicGenesisState(t, 16)
	assert.Equal(t, 16, st.NumValidators())
	assert.Equal(t, uint64(16), st.Eth1DepositIndex())
	idx, ok := st.ValidatorIndexByPubkey(DeterministicPubkey(5))
	require.Equal(t, true, ok)
	assert.Equal(t, uint64(5), uint64(idx))
}
