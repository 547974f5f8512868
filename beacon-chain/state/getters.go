package state

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// GenesisTime of the beacon state as a uint64.
func (b *BeaconState) GenesisTime() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.GenesisTime
}

// Slot of the current beacon chain state.
func (b *BeaconState) Slot() primitives.Slot {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Slot
}

// LatestBlockHeader stored within the beacon state.
func (b *BeaconState) LatestBlockHeader() *ethpb.BeaconBlockHeader {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.LatestBlockHeader.Copy()
}

// BlockRoots kept track of in the beacon state.
func (b *BeaconState) BlockRoots() [][32]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopyRoots(b.state.BlockRoots)
}

// BlockRootAtIndex retrieves a specific block root based on an
// input index value.
func (b *BeaconState) BlockRootAtIndex(idx uint64) ([32]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if idx >= uint64(len(b.state.BlockRoots)) {
		return [32]byte{}, errors.Errorf("index %d out of range", idx)
	}
	return b.state.BlockRoots[idx], nil
}

// StateRoots kept track of in the beacon state.
func (b *BeaconState) StateRoots() [][32]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopyRoots(b.state.StateRoots)
}

// Eth1Data corresponding to the proof-of-work chain information stored in the beacon state.
func (b *BeaconState) Eth1Data() *ethpb.Eth1Data {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Eth1Data.Copy()
}

// Eth1DepositIndex corresponds to the index of the deposit made to the
// validator deposit contract at the time of this state's eth1 data.
func (b *BeaconState) Eth1DepositIndex() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Eth1DepositIndex
}

// Validators participating in consensus on the beacon chain.
func (b *BeaconState) Validators() []*ethpb.Validator {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopySlice(b.state.Validators)
}

// ValidatorAtIndex is the validator at the provided index.
func (b *BeaconState) ValidatorAtIndex(idx primitives.ValidatorIndex) (*ethpb.Validator, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(idx) >= uint64(len(b.state.Validators)) {
		return nil, errors.Errorf("index %d out of range", idx)
	}
	return b.state.Validators[idx].Copy(), nil
}

// ValidatorIndexByPubkey returns a given validator by its 48-byte public key.
func (b *BeaconState) ValidatorIndexByPubkey(key [48]byte) (primitives.ValidatorIndex, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	idx, ok := b.valMap[key]
	return idx, ok
}

// NumValidators returns the size of the validator registry.
func (b *BeaconState) NumValidators() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.state.Validators)
}

// Balances of validators participating in consensus on the beacon chain.
func (b *BeaconState) Balances() []primitives.Gwei {
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]primitives.Gwei, len(b.state.Balances))
	copy(res, b.state.Balances)
	return res
}

// BalanceAtIndex of validator with the provided index.
func (b *BeaconState) BalanceAtIndex(idx primitives.ValidatorIndex) (primitives.Gwei, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(idx) >= uint64(len(b.state.Balances)) {
		return 0, errors.Errorf("index of %d does not exist", idx)
	}
	return b.state.Balances[idx], nil
}

// PreviousEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) PreviousEpochAttestations() []*ethpb.PendingAttestation {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopySlice(b.state.PreviousEpochAttestations)
}

// CurrentEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) CurrentEpochAttestations() []*ethpb.PendingAttestation {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopySlice(b.state.CurrentEpochAttestations)
}

// JustificationBits marking which epochs have been justified in the beacon chain.
func (b *BeaconState) JustificationBits() bitfield.Bitvector4 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.JustificationBits == nil {
		return bitfield.NewBitvector4()
	}
	res := make(bitfield.Bitvector4, len(b.state.JustificationBits))
	copy(res, b.state.JustificationBits)
	return res
}

// PreviousJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) PreviousJustifiedCheckpoint() ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.PreviousJustifiedCheckpoint
}

// CurrentJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) CurrentJustifiedCheckpoint() ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.CurrentJustifiedCheckpoint
}

// FinalizedCheckpoint denoting an epoch and block root.
func (b *BeaconState) FinalizedCheckpoint() ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FinalizedCheckpoint
}

// FinalizedCheckpointEpoch returns the epoch value of the finalized checkpoint.
func (b *BeaconState) FinalizedCheckpointEpoch() primitives.Epoch {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FinalizedCheckpoint.Epoch
}
