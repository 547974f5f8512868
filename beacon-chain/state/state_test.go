package state_test

import (
	"context"
	"sync"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/go-bitfield"
)

func newState(t *testing.T) *state.BeaconState {
	params.SetupTestConfigCleanup(t)
	params.OverrideBeaconConfig(params.MinimalSpecConfig())
	h := params.BeaconConfig().SlotsPerHistoricalRoot
	st, err := state.InitializeFromProto(&ethpb.BeaconState{
		Slot:              1,
		LatestBlockHeader: &ethpb.BeaconBlockHeader{},
		BlockRoots:        make([][32]byte, h),
		StateRoots:        make([][32]byte, h),
		Eth1Data:          &ethpb.Eth1Data{},
		Validators:        []*ethpb.Validator{{PublicKey: [48]byte{'a'}}},
		Balances:          []primitives.Gwei{10},
		JustificationBits: bitfield.NewBitvector4(),
	})
	require.NoError(t, err)
	return st
}

func TestInitializeFromProto_Nil(t *testing.T) {
	_, err := state.InitializeFromProto(nil)
	assert.ErrorIs(t, err, state.ErrNilInnerState)
}

func TestBeaconState_SlotDataRace(t *testing.T) {
	headState := newState(t)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		headState.SetSlot(0)
		wg.Done()
	}()
	go func() {
		headState.Slot()
		wg.Done()
	}()

	wg.Wait()
}

func TestBeaconState_HashTreeRootMatchesContainer(t *testing.T) {
	ctx := context.Background()
	st := newState(t)
	r1, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	want, err := st.ToProto().HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, r1)

	// Only dirty fields are recomputed; the cached result must stay exact.
	st.SetSlot(9)
	require.NoError(t, st.UpdateBlockRootAtIndex(3, [32]byte{'b'}))
	st.SetFinalizedCheckpoint(ethpb.Checkpoint{Epoch: 1, Root: [32]byte{'f'}})
	r2, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	want, err = st.ToProto().HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, r2)
	assert.NotEqual(t, r1, r2)
}

func TestBeaconState_CopyIsIndependent(t *testing.T) {
	ctx := context.Background()
	st := newState(t)
	before, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)

	cp := st.Copy()
	cp.SetSlot(100)
	require.NoError(t, cp.UpdateStateRootAtIndex(0, [32]byte{'s'}))
	require.NoError(t, cp.UpdateBalancesAtIndex(0, 99))
	cp.AppendCurrentEpochAttestations(&ethpb.PendingAttestation{InclusionDelay: 1})

	assert.Equal(t, primitives.Slot(1), st.Slot())
	bal, err := st.BalanceAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, primitives.Gwei(10), bal)
	assert.Equal(t, 0, len(st.CurrentEpochAttestations()))
	after, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBeaconState_GettersReturnCopies(t *testing.T) {
	st := newState(t)
	roots := st.BlockRoots()
	roots[0] = [32]byte{'x'}
	r, err := st.BlockRootAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{}, r)

	header := st.LatestBlockHeader()
	header.Slot = 50
	assert.Equal(t, primitives.Slot(0), st.LatestBlockHeader().Slot)

	bits := st.JustificationBits()
	bits.SetBitAt(0, true)
	assert.Equal(t, false, st.JustificationBits().BitAt(0))
}

func TestBeaconState_IndexOutOfRange(t *testing.T) {
	st := newState(t)
	h := uint64(params.BeaconConfig().SlotsPerHistoricalRoot)
	_, err := st.BlockRootAtIndex(h)
	assert.ErrorContains(t, "out of range", err)
	assert.ErrorContains(t, "invalid index", st.UpdateBlockRootAtIndex(h, [32]byte{}))
	assert.ErrorContains(t, "invalid index", st.UpdateStateRootAtIndex(h, [32]byte{}))
	_, err = st.ValidatorAtIndex(5)
	assert.ErrorContains(t, "out of range", err)
}

func TestBeaconState_AppendValidator(t *testing.T) {
	st := newState(t)
	idx, ok := st.ValidatorIndexByPubkey([48]byte{'a'})
	require.Equal(t, true, ok)
	assert.Equal(t, primitives.ValidatorIndex(0), idx)

	require.NoError(t, st.AppendValidator(&ethpb.Validator{PublicKey: [48]byte{'b'}}))
	st.AppendBalance(5)
	idx, ok = st.ValidatorIndexByPubkey([48]byte{'b'})
	require.Equal(t, true, ok)
	assert.Equal(t, primitives.ValidatorIndex(1), idx)
	assert.Equal(t, 2, st.NumValidators())

	assert.ErrorContains(t, "already registered", st.AppendValidator(&ethpb.Validator{PublicKey: [48]byte{'b'}}))
}

func TestBeaconState_RotateAttestations(t *testing.T) {
	st := newState(t)
	st.AppendCurrentEpochAttestations(&ethpb.PendingAttestation{ProposerIndex: 7})
	st.RotateAttestations()
	assert.Equal(t, 0, len(st.CurrentEpochAttestations()))
	prev := st.PreviousEpochAttestations()
	require.Equal(t, 1, len(prev))
	assert.Equal(t, primitives.ValidatorIndex(7), prev[0].ProposerIndex)
}
