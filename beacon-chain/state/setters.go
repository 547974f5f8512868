package state

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// SetGenesisTime for the beacon state.
func (b *BeaconState) SetGenesisTime(val uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.GenesisTime = val
	b.markFieldAsDirty(genesisTime)
}

// SetSlot for the beacon state.
func (b *BeaconState) SetSlot(val primitives.Slot) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Slot = val
	b.markFieldAsDirty(slot)
}

// SetLatestBlockHeader in the beacon state.
func (b *BeaconState) SetLatestBlockHeader(val *ethpb.BeaconBlockHeader) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.LatestBlockHeader = val.Copy()
	b.markFieldAsDirty(latestBlockHeader)
}

// UpdateBlockRootAtIndex for the beacon state. Updates the block root
// at a specific index to a new value.
func (b *BeaconState) UpdateBlockRootAtIndex(idx uint64, blockRoot [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if idx >= uint64(len(b.state.BlockRoots)) {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.BlockRoots[idx] = blockRoot
	b.markFieldAsDirty(blockRoots)
	return nil
}

// UpdateStateRootAtIndex for the beacon state. Updates the state root
// at a specific index to a new value.
func (b *BeaconState) UpdateStateRootAtIndex(idx uint64, stateRoot [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if idx >= uint64(len(b.state.StateRoots)) {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.StateRoots[idx] = stateRoot
	b.markFieldAsDirty(stateRoots)
	return nil
}

// SetEth1Data for the beacon state.
func (b *BeaconState) SetEth1Data(val *ethpb.Eth1Data) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1Data = val.Copy()
	b.markFieldAsDirty(eth1Data)
}

// SetEth1DepositIndex for the beacon state.
func (b *BeaconState) SetEth1DepositIndex(val uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1DepositIndex = val
	b.markFieldAsDirty(eth1DepositIndex)
}

// AppendValidator for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendValidator(val *ethpb.Validator) error {
	if val == nil {
		return errors.New("nil validator")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if _, ok := b.valMap[val.PublicKey]; ok {
		return errors.Errorf("validator with public key %#x already registered", val.PublicKey[:8])
	}
	b.state.Validators = append(b.state.Validators, val.Copy())
	b.valMap[val.PublicKey] = primitives.ValidatorIndex(len(b.state.Validators) - 1)
	b.markFieldAsDirty(validators)
	return nil
}

// AppendBalance for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendBalance(bal primitives.Gwei) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Balances = append(b.state.Balances, bal)
	b.markFieldAsDirty(balances)
}

// UpdateBalancesAtIndex for the beacon state. This method updates the balance
// at a specific index to a new value.
func (b *BeaconState) UpdateBalancesAtIndex(idx primitives.ValidatorIndex, val primitives.Gwei) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(idx) >= uint64(len(b.state.Balances)) {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.Balances[idx] = val
	b.markFieldAsDirty(balances)
	return nil
}

// AppendCurrentEpochAttestations for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendCurrentEpochAttestations(val *ethpb.PendingAttestation) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.CurrentEpochAttestations = append(b.state.CurrentEpochAttestations, val.Copy())
	b.markFieldAsDirty(currentEpochAttestations)
}

// AppendPreviousEpochAttestations for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendPreviousEpochAttestations(val *ethpb.PendingAttestation) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousEpochAttestations = append(b.state.PreviousEpochAttestations, val.Copy())
	b.markFieldAsDirty(previousEpochAttestations)
}

// RotateAttestations sets the previous epoch attestations to the current epoch attestations and
// then clears the current epoch attestations.
func (b *BeaconState) RotateAttestations() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousEpochAttestations = b.state.CurrentEpochAttestations
	b.state.CurrentEpochAttestations = []*ethpb.PendingAttestation{}
	b.markFieldAsDirty(previousEpochAttestations)
	b.markFieldAsDirty(currentEpochAttestations)
}

// SetJustificationBits for the beacon state.
func (b *BeaconState) SetJustificationBits(val bitfield.Bitvector4) {
	b.lock.Lock()
	defer b.lock.Unlock()
	bits := make(bitfield.Bitvector4, len(val))
	copy(bits, val)
	b.state.JustificationBits = bits
	b.markFieldAsDirty(justificationBits)
}

// SetPreviousJustifiedCheckpoint for the beacon state.
func (b *BeaconState) SetPreviousJustifiedCheckpoint(val ethpb.Checkpoint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousJustifiedCheckpoint = val
	b.markFieldAsDirty(previousJustifiedCheckpoint)
}

// SetCurrentJustifiedCheckpoint for the beacon state.
func (b *BeaconState) SetCurrentJustifiedCheckpoint(val ethpb.Checkpoint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.CurrentJustifiedCheckpoint = val
	b.markFieldAsDirty(currentJustifiedCheckpoint)
}

// SetFinalizedCheckpoint for the beacon state.
func (b *BeaconState) SetFinalizedCheckpoint(val ethpb.Checkpoint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.FinalizedCheckpoint = val
	b.markFieldAsDirty(finalizedCheckpoint)
}
