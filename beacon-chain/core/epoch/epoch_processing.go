// Package epoch contains epoch processing libraries. These libraries
// process new balance for the validators, justify and finalize new
// check points, and shuffle and reassign validators to different slots and
// shards.
package epoch

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

// ProcessParticipationRecordUpdates rotates current/previous epoch attestations during epoch processing.
//
// nolint:dupword
// Reference pseudocode:
//
//	def process_participation_record_updates(state: BeaconState) -> None:
//	  # Rotate current/previous epoch attestations
//	  state.previous_epoch_attestations = state.current_epoch_attestations
//	  state.current_epoch_attestations = []
func ProcessParticipationRecordUpdates(st *state.BeaconState) (*state.BeaconState, error) {
	if st == nil {
		return nil, errors.New("nil state")
	}
	st.RotateAttestations()
	return st, nil
}

// SinceFinality returns the number of epochs between the current epoch
// and the finalized checkpoint.
func SinceFinality(st *state.BeaconState) primitives.Epoch {
	current := time.CurrentEpoch(st)
	finalized := st.FinalizedCheckpointEpoch()
	if finalized >= current {
		return 0
	}
	return current - finalized
}
