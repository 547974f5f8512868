// Package slots converts between slots and epochs.
package slots

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/gasper/math"
)

// ToEpoch returns the epoch number of the input slot.
//
// Reference pseudocode:
//
//	def compute_epoch_at_slot(slot: Slot) -> Epoch:
//	  """
//	  Return the epoch number at ``slot``.
//	  """
//	  return Epoch(slot // SLOTS_PER_EPOCH)
func ToEpoch(slot primitives.Slot) primitives.Epoch {
	return primitives.Epoch(slot.Div(uint64(params.BeaconConfig().SlotsPerEpoch)))
}

// EpochStart returns the first slot number of the
// current epoch.
//
// Reference pseudocode:
//
//	def compute_start_slot_at_epoch(epoch: Epoch) -> Slot:
//	  """
//	  Return the start slot of ``epoch``.
//	  """
//	  return Slot(epoch * SLOTS_PER_EPOCH)
func EpochStart(epoch primitives.Epoch) (primitives.Slot, error) {
	slot, err := params.BeaconConfig().SlotsPerEpoch.SafeMul(uint64(epoch))
	if err != nil {
		return slot, errors.Errorf("start slot calculation overflows: %v", err)
	}
	return slot, nil
}

// IsEpochStart returns true if the given slot number is an epoch starting slot
// number.
func IsEpochStart(slot primitives.Slot) bool {
	return slot%params.BeaconConfig().SlotsPerEpoch == 0
}

// IsEpochEnd returns true if the given slot number is an epoch ending slot
// number.
func IsEpochEnd(slot primitives.Slot) bool {
	return IsEpochStart(slot + 1)
}

// Since returns the number of slots between two slots, or an error when end precedes start.
func Since(start, end primitives.Slot) (primitives.Slot, error) {
	d, err := mathutil.Sub64(uint64(end), uint64(start))
	if err != nil {
		return 0, errors.Wrapf(err, "slot %d precedes %d", end, start)
	}
	return primitives.Slot(d), nil
}
