// Package state wraps the raw beacon state container with guarded,
// copy-returning accessors and a cache of per-field hash tree roots.
package state

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

type fieldIndex int

const (
	genesisTime fieldIndex = iota
	slot
	latestBlockHeader
	blockRoots
	stateRoots
	eth1Data
	eth1DepositIndex
	validators
	balances
	previousEpochAttestations
	currentEpochAttestations
	justificationBits
	previousJustifiedCheckpoint
	currentJustifiedCheckpoint
	finalizedCheckpoint
)

// ErrNilInnerState is returned when the wrapped container is missing.
var ErrNilInnerState = errors.New("nil inner state")

// BeaconState is the chain state. Reads take a read lock; writes are
// only made to states obtained from Copy that have not been published yet.
type BeaconState struct {
	state       *ethpb.BeaconState
	lock        sync.RWMutex
	fieldRoots  [][32]byte
	dirtyFields map[fieldIndex]bool
	valMap      map[[48]byte]primitives.ValidatorIndex
}

// InitializeFromProto the beacon state from a protobuf representation.
func InitializeFromProto(st *ethpb.BeaconState) (*BeaconState, error) {
	return InitializeFromProtoUnsafe(st.Copy())
}

// InitializeFromProtoUnsafe directly uses the beacon state protobuf pointer
// and sets it as the inner state of the BeaconState type.
func InitializeFromProtoUnsafe(st *ethpb.BeaconState) (*BeaconState, error) {
	if st == nil {
		return nil, ErrNilInnerState
	}
	b := &BeaconState{
		state:       st,
		fieldRoots:  make([][32]byte, ethpb.BeaconStateFieldCount),
		dirtyFields: make(map[fieldIndex]bool, ethpb.BeaconStateFieldCount),
		valMap:      make(map[[48]byte]primitives.ValidatorIndex, len(st.Validators)),
	}
	for i := 0; i < ethpb.BeaconStateFieldCount; i++ {
		b.dirtyFields[fieldIndex(i)] = true
	}
	for i, v := range st.Validators {
		if v != nil {
			b.valMap[v.PublicKey] = primitives.ValidatorIndex(i)
		}
	}
	return b, nil
}

// Copy returns a deep copy of the beacon state. Cached field roots are kept.
func (b *BeaconState) Copy() *BeaconState {
	if b == nil || b.state == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()

	dst := &BeaconState{
		state:       b.state.Copy(),
		fieldRoots:  make([][32]byte, len(b.fieldRoots)),
		dirtyFields: make(map[fieldIndex]bool, len(b.dirtyFields)),
		valMap:      make(map[[48]byte]primitives.ValidatorIndex, len(b.valMap)),
	}
	copy(dst.fieldRoots, b.fieldRoots)
	for k, v := range b.dirtyFields {
		dst.dirtyFields[k] = v
	}
	for k, v := range b.valMap {
		dst.valMap[k] = v
	}
	return dst
}

// HashTreeRoot of the beacon state retrieves the Merkle root of the trie
// representation of the beacon state based on the Ethereum Simple Serialize encoding.
func (b *BeaconState) HashTreeRoot(ctx context.Context) ([32]byte, error) {
	_, span := trace.StartSpan(ctx, "beaconState.HashTreeRoot")
	defer span.End()

	if b == nil || b.state == nil {
		return [32]byte{}, ErrNilInnerState
	}
	b.lock.Lock()
	defer b.lock.Unlock()

	for field, dirty := range b.dirtyFields {
		if !dirty {
			continue
		}
		root, err := b.state.FieldRoot(int(field))
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "could not compute root of field %d", field)
		}
		b.fieldRoots[field] = root
		delete(b.dirtyFields, field)
	}
	return ssz.ContainerRoot(b.fieldRoots)
}

// MarshalSSZ encodes the inner state.
func (b *BeaconState) MarshalSSZ() ([]byte, error) {
	if b == nil || b.state == nil {
		return nil, ErrNilInnerState
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.MarshalSSZ()
}

// ToProto returns a deep copy of the inner state container.
func (b *BeaconState) ToProto() *ethpb.BeaconState {
	if b == nil || b.state == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Copy()
}

func (b *BeaconState) markFieldAsDirty(field fieldIndex) {
	b.dirtyFields[field] = true
}
