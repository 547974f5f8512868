package util

import (
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// NewBeaconBlock creates a beacon block with minimum marshalable fields.
func NewBeaconBlock() *ethpb.BeaconBlock {
	return &ethpb.BeaconBlock{
		Body: &ethpb.BeaconBlockBody{
			Attestations: make([]*ethpb.Attestation, 0),
			Deposits:     make([]*ethpb.Deposit, 0),
		},
	}
}

// HydrateBeaconHeader returns a header whose body root commits to an empty block body.
func HydrateBeaconHeader(h *ethpb.BeaconBlockHeader) *ethpb.BeaconBlockHeader {
	if h == nil {
		h = &ethpb.BeaconBlockHeader{}
	}
	if h.BodyRoot == [32]byte{} {
		r, err := (&ethpb.BeaconBlockBody{}).HashTreeRoot()
		if err == nil {
			h.BodyRoot = r
		}
	}
	return h
}

// NewAttestation creates an attestation for the given validators voting source -> target at slot.
func NewAttestation(slot primitives.Slot, head [32]byte, source, target ethpb.Checkpoint, indices ...primitives.ValidatorIndex) *ethpb.Attestation {
	return &ethpb.Attestation{
		AttestingIndices: indices,
		Data: ethpb.AttestationData{
			Slot:            slot,
			BeaconBlockRoot: head,
			Source:          source,
			Target:          target,
		},
	}
}
