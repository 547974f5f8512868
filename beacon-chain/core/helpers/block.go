package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/time/slots"
)

// BlockRootAtSlot returns the block root stored in the BeaconState for a recent slot.
// It returns an error if the requested block root is not within the slot range.
//
// Reference pseudocode:
//
//	def get_block_root_at_slot(state: BeaconState, slot: Slot) -> Root:
//	  """
//	  Return the block root at a recent ``slot``.
//	  """
//	  assert slot < state.slot <= slot + SLOTS_PER_HISTORICAL_ROOT
//	  return state.block_roots[slot % SLOTS_PER_HISTORICAL_ROOT]
func BlockRootAtSlot(st *state.BeaconState, slot primitives.Slot) ([32]byte, error) {
	h := params.BeaconConfig().SlotsPerHistoricalRoot
	stateSlot := st.Slot()
	if slot >= stateSlot || uint64(stateSlot) > uint64(slot)+uint64(h) {
		earliestSlot := primitives.Slot(0)
		if stateSlot > h {
			earliestSlot = stateSlot - h
		}
		return [32]byte{}, errors.Errorf("slot %d out of bounds %d to %d", slot, earliestSlot, stateSlot)
	}
	return st.BlockRootAtIndex(uint64(slot % h))
}

// BlockRoot returns the block root stored in the BeaconState for epoch start slot.
//
// Reference pseudocode:
//
//	def get_block_root(state: BeaconState, epoch: Epoch) -> Root:
//	  """
//	  Return the block root at the start of a recent ``epoch``.
//	  """
//	  return get_block_root_at_slot(state, compute_start_slot_at_epoch(epoch))
func BlockRoot(st *state.BeaconState, epoch primitives.Epoch) ([32]byte, error) {
	s, err := slots.EpochStart(epoch)
	if err != nil {
		return [32]byte{}, err
	}
	return BlockRootAtSlot(st, s)
}
