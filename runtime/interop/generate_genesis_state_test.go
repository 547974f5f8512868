package interop_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/runtime/interop"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestGenerateGenesisState(t *testing.T) {
	numValidators := uint64(64)
	genesisState, deposits, err := interop.GenerateGenesisState(context.Background(), 0, numValidators)
	require.NoError(t, err)
	assert.Equal(t, int(numValidators), genesisState.NumValidators())
	assert.Equal(t, int(numValidators), len(deposits))
	assert.Equal(t, uint64(0), genesisState.GenesisTime())
	assert.Equal(t, numValidators, genesisState.Eth1DepositIndex())
	for i, v := range genesisState.Validators() {
		assert.Equal(t, params.BeaconConfig().GenesisEpoch, v.ActivationEpoch, "validator %d not active at genesis", i)
		assert.Equal(t, primitives.Gwei(params.BeaconConfig().MaxEffectiveBalance), v.EffectiveBalance)
	}
}

func TestGenerateGenesisState_VerifiesProofs(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig().Copy()
	cfg.VerifyDepositProofs = true
	params.OverrideBeaconConfig(cfg)

	genesisState, _, err := interop.GenerateGenesisState(context.Background(), 100, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, genesisState.NumValidators())
}

func TestDeterministicallyGenerateKeys_Unique(t *testing.T) {
	keys := interop.DeterministicallyGenerateKeys(0, 128)
	seen := make(map[[48]byte]bool, len(keys))
	for _, k := range keys {
		require.Equal(t, false, seen[k])
		seen[k] = true
	}
	assert.DeepEqual(t, keys[5:6], interop.DeterministicallyGenerateKeys(5, 1))
}

func TestGenerateGenesisState_HeaderMatchesGenesisBlock(t *testing.T) {
	ctx := context.Background()
	genesisState, _, err := interop.GenerateGenesisState(ctx, 0, 8)
	require.NoError(t, err)
	stateRoot, err := genesisState.HashTreeRoot(ctx)
	require.NoError(t, err)
	got, err := blocks.NewGenesisBlock(stateRoot).HashTreeRoot()
	require.NoError(t, err)

	header := genesisState.LatestBlockHeader()
	header.StateRoot = stateRoot
	want, err := header.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
