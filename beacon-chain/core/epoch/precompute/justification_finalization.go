package precompute

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/ffg"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
)

// ProcessJustificationAndFinalizationPreCompute processes justification and finalization during
// epoch processing. This is where a beacon node can justify and finalize a new epoch.
// The first two epochs are skipped since no previous epoch target can be attested yet.
func ProcessJustificationAndFinalizationPreCompute(st *state.BeaconState, pBal *Balance) (*state.BeaconState, error) {
	currentEpoch := time.CurrentEpoch(st)
	if currentEpoch <= params.BeaconConfig().GenesisEpoch+1 {
		return st, nil
	}
	prevEpoch := time.PrevEpoch(st)

	prevRoot, err := helpers.BlockRoot(st, prevEpoch)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get block root for previous epoch %d", prevEpoch)
	}
	currentRoot, err := helpers.BlockRoot(st, currentEpoch)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get block root for current epoch %d", currentEpoch)
	}

	out := ffg.ProcessJustificationBits(ffg.JustificationInput{
		CurrentEpoch:               currentEpoch,
		PreviousEpochBoundaryRoot:  prevRoot,
		CurrentEpochBoundaryRoot:   currentRoot,
		TotalActiveBalance:         pBal.ActiveCurrentEpoch,
		PrevEpochTargetAttested:    pBal.PrevEpochTargetAttested,
		CurrentEpochTargetAttested: pBal.CurrentEpochTargetAttested,
		JustificationBits:          st.JustificationBits(),
		PreviousJustified:          st.PreviousJustifiedCheckpoint(),
		CurrentJustified:           st.CurrentJustifiedCheckpoint(),
		Finalized:                  st.FinalizedCheckpoint(),
	})

	st.SetJustificationBits(out.JustificationBits)
	st.SetPreviousJustifiedCheckpoint(out.PreviousJustified)
	st.SetCurrentJustifiedCheckpoint(out.CurrentJustified)
	st.SetFinalizedCheckpoint(out.Finalized)
	return st, nil
}
