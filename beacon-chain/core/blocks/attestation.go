package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/time/slots"
	"go.opencensus.io/trace"
)

// ProcessAttestations applies processing operations to a block's inner attestation
// records.
func ProcessAttestations(
	ctx context.Context,
	beaconState *state.BeaconState,
	atts []*ethpb.Attestation,
) (*state.BeaconState, error) {
	var err error
	for idx, att := range atts {
		beaconState, err = ProcessAttestation(ctx, beaconState, att)
		if err != nil {
			return nil, errors.Wrapf(err, "could not verify attestation at index %d in block", idx)
		}
	}
	return beaconState, nil
}

// ProcessAttestation verifies an input attestation can pass through processing using the given beacon state
// and records it as a pending attestation of the epoch it targets.
//
// Reference pseudocode:
//
//	def process_attestation(state: BeaconState, attestation: Attestation) -> None:
//	  data = attestation.data
//	  assert data.target.epoch in (get_previous_epoch(state), get_current_epoch(state))
//	  assert data.target.epoch == compute_epoch_at_slot(data.slot)
//	  assert data.slot + MIN_ATTESTATION_INCLUSION_DELAY <= state.slot <= data.slot + SLOTS_PER_EPOCH
//
//	  pending_attestation = PendingAttestation(
//	      data=data,
//	      attesting_indices=attestation.attesting_indices,
//	      inclusion_delay=state.slot - data.slot,
//	      proposer_index=state.latest_block_header.proposer_index,
//	  )
//
//	  if data.target.epoch == get_current_epoch(state):
//	      assert data.source == state.current_justified_checkpoint
//	      state.current_epoch_attestations.append(pending_attestation)
//	  else:
//	      assert data.source == state.previous_justified_checkpoint
//	      state.previous_epoch_attestations.append(pending_attestation)
func ProcessAttestation(
	ctx context.Context,
	beaconState *state.BeaconState,
	att *ethpb.Attestation,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "blocks.ProcessAttestation")
	defer span.End()

	if err := VerifyAttestation(ctx, beaconState, att); err != nil {
		return nil, err
	}

	pendingAtt := &ethpb.PendingAttestation{
		AttestingIndices: att.AttestingIndices,
		Data:             att.Data,
		InclusionDelay:   beaconState.Slot() - att.Data.Slot,
		ProposerIndex:    beaconState.LatestBlockHeader().ProposerIndex,
	}
	if att.Data.Target.Epoch == time.CurrentEpoch(beaconState) {
		beaconState.AppendCurrentEpochAttestations(pendingAtt)
	} else {
		beaconState.AppendPreviousEpochAttestations(pendingAtt)
	}
	return beaconState, nil
}

// VerifyAttestation checks an attestation against the beacon state without
// modifying it. Signatures are not part of attestations here.
func VerifyAttestation(ctx context.Context, beaconState *state.BeaconState, att *ethpb.Attestation) error {
	_, span := trace.StartSpan(ctx, "blocks.VerifyAttestation")
	defer span.End()

	if att == nil {
		return errors.New("nil attestation")
	}
	currEpoch := time.CurrentEpoch(beaconState)
	prevEpoch := time.PrevEpoch(beaconState)
	data := att.Data
	if data.Target.Epoch != prevEpoch && data.Target.Epoch != currEpoch {
		return errors.Errorf(
			"expected target epoch (%d) to be the previous epoch (%d) or the current epoch (%d)",
			data.Target.Epoch,
			prevEpoch,
			currEpoch,
		)
	}
	if data.Target.Epoch != slots.ToEpoch(data.Slot) {
		return errors.Errorf("slot %d does not match target epoch %d", data.Slot, data.Target.Epoch)
	}

	if data.Target.Epoch == currEpoch {
		if data.Source != beaconState.CurrentJustifiedCheckpoint() {
			return errors.New("source check point not equal to current justified checkpoint")
		}
	} else {
		if data.Source != beaconState.PreviousJustifiedCheckpoint() {
			return errors.New("source check point not equal to previous justified checkpoint")
		}
	}

	s := data.Slot
	minInclusionCheck := uint64(s)+uint64(params.BeaconConfig().MinAttestationInclusionDelay) <= uint64(beaconState.Slot())
	epochInclusionCheck := uint64(beaconState.Slot()) <= uint64(s)+uint64(params.BeaconConfig().SlotsPerEpoch)
	if !minInclusionCheck {
		return errors.Errorf(
			"attestation slot %d + inclusion delay %d > state slot %d",
			s,
			params.BeaconConfig().MinAttestationInclusionDelay,
			beaconState.Slot(),
		)
	}
	if !epochInclusionCheck {
		return errors.Errorf(
			"state slot %d > attestation slot %d + SLOTS_PER_EPOCH %d",
			beaconState.Slot(),
			s,
			params.BeaconConfig().SlotsPerEpoch,
		)
	}

	if err := helpers.VerifyAttestingIndices(att.AttestingIndices, beaconState.NumValidators()); err != nil {
		return errors.Wrap(err, "could not verify attesting indices")
	}
	return nil
}
