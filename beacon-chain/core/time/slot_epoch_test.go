package time_test

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestEpochAccessors(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.OverrideBeaconConfig(params.MinimalSpecConfig())
	spe := params.BeaconConfig().SlotsPerEpoch

	tests := []struct {
		name       string
		slot       primitives.Slot
		current    primitives.Epoch
		prev       primitives.Epoch
		canProcess bool
	}{
		{name: "genesis", slot: 0, current: 0, prev: 0},
		{name: "end of first epoch", slot: spe - 1, current: 0, prev: 0, canProcess: true},
		{name: "start of second epoch", slot: spe, current: 1, prev: 0},
		{name: "mid epoch", slot: 2*spe + 3, current: 2, prev: 1},
		{name: "end of fifth epoch", slot: 5*spe - 1, current: 4, prev: 3, canProcess: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := state.InitializeFromProto(&ethpb.BeaconState{Slot: tt.slot})
			require.NoError(t, err)
			assert.Equal(t, tt.current, time.CurrentEpoch(st))
			assert.Equal(t, tt.prev, time.PrevEpoch(st))
			assert.Equal(t, tt.canProcess, time.CanProcessEpoch(st))
		})
	}
}
