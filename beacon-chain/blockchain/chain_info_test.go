package blockchain

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/runtime/interop"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestService_ChainFinality_MatchesState(t *testing.T) {
	genesis := minimalGenesis(t, 16)
	s := setupService(t, genesis)
	ctx := context.Background()
	spe := uint64(params.BeaconConfig().SlotsPerEpoch)

	blks, post, err := interop.GenerateChain(ctx, genesis, 4*spe, interop.DefaultBlockGenConfig())
	require.NoError(t, err)
	var head [32]byte
	for _, b := range blks {
		head, err = s.ReceiveBlock(ctx, b)
		require.NoError(t, err)
	}

	res, err := s.ChainFinality(ctx, head)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Len())

	justified, ok := res.LatestJustified()
	require.Equal(t, true, ok)
	finalized, ok := res.LatestFinalized()
	require.Equal(t, true, ok)
	assert.Equal(t, primitives.Epoch(3), justified.Epoch)
	assert.Equal(t, primitives.Epoch(2), finalized.Epoch)
	assert.Equal(t, post.CurrentJustifiedCheckpoint(), justified)
	assert.Equal(t, post.FinalizedCheckpoint(), finalized)

	// Genesis is always justified and finalized.
	assert.Equal(t, true, res.Justified(res.Len()-1))
	assert.Equal(t, true, res.Finalized(res.Len()-1))
	assert.Equal(t, s.GenesisBlockRoot(), res.Checkpoint(res.Len()-1).Root)

	again, err := s.ChainFinality(ctx, head)
	require.NoError(t, err)
	assert.Equal(t, res, again, "Expected cached result")
}

func TestService_ChainFinality_NoParticipation(t *testing.T) {
	genesis := minimalGenesis(t, 16)
	s := setupService(t, genesis)
	ctx := context.Background()
	spe := uint64(params.BeaconConfig().SlotsPerEpoch)

	conf := interop.DefaultBlockGenConfig()
	conf.Attest = false
	blks, _, err := interop.GenerateChain(ctx, genesis, 3*spe, conf)
	require.NoError(t, err)
	var head [32]byte
	for _, b := range blks {
		head, err = s.ReceiveBlock(ctx, b)
		require.NoError(t, err)
	}

	res, err := s.ChainFinality(ctx, head)
	require.NoError(t, err)
	justified, _ := res.LatestJustified()
	assert.Equal(t, params.BeaconConfig().GenesisEpoch, justified.Epoch)
	assert.Equal(t, 1, len(res.JustifiedCheckpoints()))
}

func TestService_ChainFinality_UnknownHead(t *testing.T) {
	genesis := minimalGenesis(t, 8)
	s := setupService(t, genesis)
	_, err := s.ChainFinality(context.Background(), [32]byte{'u'})
	assert.ErrorContains(t, "block not found", err)
}
