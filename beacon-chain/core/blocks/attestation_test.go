package blocks_test

import (
	"context"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

var (
	prevJustified = ethpb.Checkpoint{Epoch: 1, Root: [32]byte{'p'}}
	currJustified = ethpb.Checkpoint{Epoch: 2, Root: [32]byte{'c'}}
)

// attestationState is at the second slot of epoch 3 with a block proposed by validator 3.
func attestationState(t *testing.T) *state.BeaconState {
	params.SetupTestConfigCleanup(t)
	params.OverrideBeaconConfig(params.MinimalSpecConfig())
	spe := params.BeaconConfig().SlotsPerEpoch
	st, err := util.NewBeaconState(util.ActiveValidatorsOpt(8), func(s *ethpb.BeaconState) error {
		s.Slot = 3*spe + 1
		s.LatestBlockHeader = util.HydrateBeaconHeader(&ethpb.BeaconBlockHeader{Slot: 3*spe + 1, ProposerIndex: 3})
		s.PreviousJustifiedCheckpoint = prevJustified
		s.CurrentJustifiedCheckpoint = currJustified
		return nil
	})
	require.NoError(t, err)
	return st
}

func TestProcessAttestations_CurrentAndPreviousEpoch(t *testing.T) {
	st := attestationState(t)
	spe := params.BeaconConfig().SlotsPerEpoch

	curr := util.NewAttestation(3*spe, [32]byte{'h'}, currJustified, ethpb.Checkpoint{Epoch: 3, Root: [32]byte{'t'}}, 0, 2, 5)
	prev := util.NewAttestation(2*spe+4, [32]byte{'h'}, prevJustified, ethpb.Checkpoint{Epoch: 2, Root: [32]byte{'t'}}, 1)

	st, err := blocks.ProcessAttestations(context.Background(), st, []*ethpb.Attestation{curr, prev})
	require.NoError(t, err)

	currAtts := st.CurrentEpochAttestations()
	require.Equal(t, 1, len(currAtts))
	assert.DeepEqual(t, &ethpb.PendingAttestation{
		AttestingIndices: []primitives.ValidatorIndex{0, 2, 5},
		Data:             curr.Data,
		InclusionDelay:   1,
		ProposerIndex:    3,
	}, currAtts[0])

	prevAtts := st.PreviousEpochAttestations()
	require.Equal(t, 1, len(prevAtts))
	assert.Equal(t, spe-3, prevAtts[0].InclusionDelay)
}

func TestProcessAttestation_Rejections(t *testing.T) {
	spe := params.MinimalSpecConfig().SlotsPerEpoch
	target := func(e primitives.Epoch) ethpb.Checkpoint { return ethpb.Checkpoint{Epoch: e, Root: [32]byte{'t'}} }
	tests := []struct {
		name    string
		att     *ethpb.Attestation
		wantErr string
	}{
		{
			name:    "nil attestation",
			wantErr: "nil attestation",
		},
		{
			name:    "target too old",
			att:     util.NewAttestation(spe, [32]byte{}, prevJustified, target(1), 0),
			wantErr: "expected target epoch (1) to be the previous epoch (2) or the current epoch (3)",
		},
		{
			name:    "slot outside target epoch",
			att:     util.NewAttestation(2*spe, [32]byte{}, currJustified, target(3), 0),
			wantErr: "does not match target epoch 3",
		},
		{
			name:    "wrong current source",
			att:     util.NewAttestation(3*spe, [32]byte{}, prevJustified, target(3), 0),
			wantErr: "source check point not equal to current justified checkpoint",
		},
		{
			name:    "wrong previous source",
			att:     util.NewAttestation(2*spe+2, [32]byte{}, currJustified, target(2), 0),
			wantErr: "source check point not equal to previous justified checkpoint",
		},
		{
			name:    "included too early",
			att:     util.NewAttestation(3*spe+1, [32]byte{}, currJustified, target(3), 0),
			wantErr: "inclusion delay",
		},
		{
			name:    "included too late",
			att:     util.NewAttestation(2*spe, [32]byte{}, prevJustified, target(2), 0),
			wantErr: "+ SLOTS_PER_EPOCH",
		},
		{
			name:    "unsorted indices",
			att:     util.NewAttestation(3*spe, [32]byte{}, currJustified, target(3), 2, 1),
			wantErr: "could not verify attesting indices",
		},
		{
			name:    "index out of range",
			att:     util.NewAttestation(3*spe, [32]byte{}, currJustified, target(3), 8),
			wantErr: "attesting index out of range",
		},
		{
			name:    "no attesters",
			att:     util.NewAttestation(3*spe, [32]byte{}, currJustified, target(3)),
			wantErr: "no attesting indices",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := attestationState(t)
			_, err := blocks.ProcessAttestation(context.Background(), st, tt.att)
			require.ErrorContains(t, tt.wantErr, err)
			assert.Equal(t, 0, len(st.CurrentEpochAttestations()))
			assert.Equal(t, 0, len(st.PreviousEpochAttestations()))
		})
	}
}

func TestFuzzProcessAttestation_10000(t *testing.T) {
	st := attestationState(t)
	fuzzer := fuzz.NewWithSeed(0)
	att := &ethpb.Attestation{}
	for i := 0; i < 10000; i++ {
		fuzzer.Fuzz(att)
		s, err := blocks.ProcessAttestation(context.Background(), st.Copy(), att)
		if err != nil && s != nil {
			t.Fatalf("return value should be nil on err. found: %v on error: %v for attestation: %v", s, err, att)
		}
	}
}
