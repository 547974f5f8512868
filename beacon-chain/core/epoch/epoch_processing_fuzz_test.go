package epoch

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestFuzzProcessParticipationRecordUpdates_10000(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0)
	base := &ethpb.BeaconState{}

	for i := 0; i < 10000; i++ {
		fuzzer.Fuzz(base)
		s, err := state.InitializeFromProtoUnsafe(base)
		require.NoError(t, err)
		want := s.CurrentEpochAttestations()
		s, err = ProcessParticipationRecordUpdates(s)
		require.NoError(t, err)
		require.DeepEqual(t, want, s.PreviousEpochAttestations())
		_ = SinceFinality(s)
	}
}
