package precompute

import (
	"testing"

	"github.com/prysmaticlabs/gasper/config/params"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
	"github.com/prysmaticlabs/go-bitfield"
)

func TestProcessJustificationAndFinalizationPreCompute_SkipsFirstTwoEpochs(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.OverrideBeaconConfig(params.MinimalSpecConfig())
	spe := params.BeaconConfig().SlotsPerEpoch

	st, err := util.NewBeaconState(util.FillRootsNaturalOpt, func(s *ethpb.BeaconState) error {
		s.Slot = 2*spe - 1
		return nil
	})
	require.NoError(t, err)
	st, err = ProcessJustificationAndFinalizationPreCompute(st, &Balance{ActiveCurrentEpoch: 3, PrevEpochTargetAttested: 3, CurrentEpochTargetAttested: 3})
	require.NoError(t, err)
	assert.DeepEqual(t, bitfield.NewBitvector4(), st.JustificationBits())
	assert.Equal(t, ethpb.Checkpoint{}, st.CurrentJustifiedCheckpoint())
}

func TestProcessJustificationAndFinalizationPreCompute_JustifiesPreviousEpoch(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.OverrideBeaconConfig(params.MinimalSpecConfig())
	spe := params.BeaconConfig().SlotsPerEpoch

	st, err := util.NewBeaconState(util.FillRootsNaturalOpt, func(s *ethpb.BeaconState) error {
		s.Slot = 3*spe - 1
		s.CurrentJustifiedCheckpoint = ethpb.Checkpoint{Epoch: 0, Root: [32]byte{'g'}}
		return nil
	})
	require.NoError(t, err)

	st, err = ProcessJustificationAndFinalizationPreCompute(st, &Balance{
		ActiveCurrentEpoch:         300,
		PrevEpochTargetAttested:    250,
		CurrentEpochTargetAttested: 100,
	})
	require.NoError(t, err)
	assert.DeepEqual(t, bitfield.Bitvector4{0b0010}, st.JustificationBits())
	assert.Equal(t, ethpb.Checkpoint{Epoch: 1, Root: naturalRoot(spe)}, st.CurrentJustifiedCheckpoint())
	assert.Equal(t, ethpb.Checkpoint{Epoch: 0, Root: [32]byte{'g'}}, st.PreviousJustifiedCheckpoint())
	assert.Equal(t, ethpb.Checkpoint{}, st.FinalizedCheckpoint())
}
