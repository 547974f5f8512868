package transition

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prysmaticlabs/gasper/config/params"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func TestProcessEpochPrecompute_EpochsSinceFinalityGauge(t *testing.T) {
	st, err := util.NewBeaconState(util.ActiveValidatorsOpt(4), func(s *ethpb.BeaconState) error {
		// Last slot of epoch 5, finalized at epoch 2.
		s.Slot = params.BeaconConfig().SlotsPerEpoch*6 - 1
		s.FinalizedCheckpoint = ethpb.Checkpoint{Epoch: 2}
		s.CurrentJustifiedCheckpoint = ethpb.Checkpoint{Epoch: 2}
		s.PreviousJustifiedCheckpoint = ethpb.Checkpoint{Epoch: 2}
		return nil
	})
	require.NoError(t, err)
	st, err = ProcessEpochPrecompute(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, 2, int(st.FinalizedCheckpoint().Epoch))
	assert.Equal(t, float64(3), testutil.ToFloat64(epochsSinceFinalityGauge))
	assert.Equal(t, float64(2), testutil.ToFloat64(finalizedEpochGauge))
}
