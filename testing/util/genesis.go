package util

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// DeterministicGenesisState returns a genesis state with numValidators active validators
// whose deposits are all processed against the deterministic eth1 data.
func DeterministicGenesisState(t testing.TB, numValidators uint64) *state.BeaconState {
	_, eth1Data, err := DeterministicDepositsAndEth1Data(numValidators)
	if err != nil {
		t.Fatal(err)
	}
	st, err := NewBeaconState(ActiveValidatorsOpt(numValidators), func(s *ethpb.BeaconState) error {
		s.Eth1Data = eth1Data
		s.Eth1DepositIndex = numValidators
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}
