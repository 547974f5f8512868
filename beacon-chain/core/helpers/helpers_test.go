package helpers_test

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func stateWithRoots(t *testing.T, slot primitives.Slot) *state.BeaconState {
	params.SetupTestConfigCleanup(t)
	params.OverrideBeaconConfig(params.MinimalSpecConfig())
	h := params.BeaconConfig().SlotsPerHistoricalRoot
	roots := make([][32]byte, h)
	for i := range roots {
		roots[i] = [32]byte{byte(i)}
	}
	farFuture := params.BeaconConfig().FarFutureEpoch
	maxBal := primitives.Gwei(params.BeaconConfig().MaxEffectiveBalance)
	st, err := state.InitializeFromProto(&ethpb.BeaconState{
		Slot:       slot,
		BlockRoots: roots,
		StateRoots: make([][32]byte, h),
		Validators: []*ethpb.Validator{
			{PublicKey: [48]byte{1}, EffectiveBalance: maxBal, ExitEpoch: farFuture},
			{PublicKey: [48]byte{2}, EffectiveBalance: maxBal, ActivationEpoch: 5, ExitEpoch: farFuture},
			{PublicKey: [48]byte{3}, EffectiveBalance: maxBal, ExitEpoch: 1},
		},
		Balances: []primitives.Gwei{maxBal, maxBal, maxBal},
	})
	require.NoError(t, err)
	return st
}

func TestBlockRootAtSlot_CorrectBlockRoot(t *testing.T) {
	st := stateWithRoots(t, 10)
	r, err := helpers.BlockRootAtSlot(st, 9)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{9}, r)

	r, err = helpers.BlockRoot(st, 1)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{8}, r)
}

func TestBlockRootAtSlot_OutOfBounds(t *testing.T) {
	st := stateWithRoots(t, 100)
	_, err := helpers.BlockRootAtSlot(st, 100)
	assert.ErrorContains(t, "out of bounds", err)
	_, err = helpers.BlockRootAtSlot(st, 30)
	assert.ErrorContains(t, "out of bounds 36 to 100", err)

	// Ring buffer wraps at the history length.
	r, err := helpers.BlockRootAtSlot(st, 99)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{99 % 64}, r)
}

func TestActiveValidatorIndices(t *testing.T) {
	st := stateWithRoots(t, 0)
	assert.DeepEqual(t, []primitives.ValidatorIndex{0, 2}, helpers.ActiveValidatorIndices(st, 0))
	assert.DeepEqual(t, []primitives.ValidatorIndex{0, 1}, helpers.ActiveValidatorIndices(st, 5))
}

func TestTotalBalance(t *testing.T) {
	st := stateWithRoots(t, 0)
	maxBal := primitives.Gwei(params.BeaconConfig().MaxEffectiveBalance)
	assert.Equal(t, 2*maxBal, helpers.TotalActiveBalance(st))
	assert.Equal(t, primitives.Gwei(params.BeaconConfig().EffectiveBalanceIncrement), helpers.TotalBalance(st, nil))
}

func TestIncreaseBalance(t *testing.T) {
	st := stateWithRoots(t, 0)
	require.NoError(t, helpers.IncreaseBalance(st, 0, 5))
	bal, err := st.BalanceAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, primitives.Gwei(params.BeaconConfig().MaxEffectiveBalance+5), bal)

	require.NoError(t, st.UpdateBalancesAtIndex(2, primitives.Gwei(1<<63)))
	assert.ErrorContains(t, "addition overflows", helpers.IncreaseBalance(st, 2, primitives.Gwei(1<<63)))
	assert.ErrorContains(t, "does not exist", helpers.IncreaseBalance(st, 9, 1))
}

func TestVerifyAttestingIndices(t *testing.T) {
	tests := []struct {
		name    string
		indices []primitives.ValidatorIndex
		err     error
	}{
		{name: "ok", indices: []primitives.ValidatorIndex{0, 1, 4}},
		{name: "empty", indices: nil, err: helpers.ErrEmptyIndices},
		{name: "duplicate", indices: []primitives.ValidatorIndex{1, 1}, err: helpers.ErrIndicesNotSorted},
		{name: "unsorted", indices: []primitives.ValidatorIndex{2, 1}, err: helpers.ErrIndicesNotSorted},
		{name: "out of range", indices: []primitives.ValidatorIndex{0, 5}, err: helpers.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := helpers.VerifyAttestingIndices(tt.indices, 5)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAggregateAttestation(t *testing.T) {
	data := ethpb.AttestationData{Slot: 3}
	a, err := helpers.AggregateAttestation(
		&ethpb.Attestation{AttestingIndices: []primitives.ValidatorIndex{4, 1}, Data: data},
		&ethpb.Attestation{AttestingIndices: []primitives.ValidatorIndex{1, 2}, Data: data},
	)
	require.NoError(t, err)
	assert.DeepEqual(t, []primitives.ValidatorIndex{1, 2, 4}, a.AttestingIndices)

	_, err = helpers.AggregateAttestation(
		&ethpb.Attestation{Data: data},
		&ethpb.Attestation{Data: ethpb.AttestationData{Slot: 4}},
	)
	assert.ErrorContains(t, "different data", err)
}
