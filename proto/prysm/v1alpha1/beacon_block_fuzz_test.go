package eth_test

import (
	"fmt"
	"testing"

	fuzz "github.com/google/gofuzz"
	eth "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/require"
)

// fuzzCopies fills obj with random values and checks Copy returns an equal
// value that shares no memory with obj.
func fuzzCopies[T eth.Copier[T]](t *testing.T, obj T) {
	fuzzer := fuzz.NewWithSeed(0).NilChance(0.1).NumElements(0, 8)
	t.Run(fmt.Sprintf("%T", obj), func(t *testing.T) {
		for i := 0; i < 500; i++ {
			fuzzer.Fuzz(obj)
			got := obj.Copy()
			require.DeepEqual(t, obj, got)
			fuzzer.Fuzz(got)
			require.DeepNotEqual(t, obj, got, "copy aliases the original")
		}
	})
}

func TestCopyBeaconBlockFields_Fuzz(t *testing.T) {
	fuzzCopies(t, &eth.Eth1Data{})
	fuzzCopies(t, &eth.Checkpoint{})
	fuzzCopies(t, &eth.BeaconBlockHeader{})
	fuzzCopies(t, &eth.Deposit{})
	fuzzCopies(t, &eth.DepositData{})
	fuzzCopies(t, &eth.AttestationData{})
	fuzzCopies(t, &eth.Attestation{})
	fuzzCopies(t, &eth.PendingAttestation{})
}

func TestCopyBeaconBlock_Fuzz(t *testing.T) {
	fuzzCopies(t, &eth.BeaconBlockBody{})
	fuzzCopies(t, &eth.BeaconBlock{})
}

func TestCopyBeaconState_Fuzz(t *testing.T) {
	fuzzCopies(t, &eth.Validator{})
	fuzzCopies(t, &eth.BeaconState{})
}
