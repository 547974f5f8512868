package kv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// State returns the saved state using block's root. A missing state is
// returned as nil without error.
func (s *Store) State(ctx context.Context, blockRoot [32]byte) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.State")
	defer span.End()
	var st *ethpb.BeaconState
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(stateBucket).Get(blockRoot[:])
		if enc == nil {
			return nil
		}
		st = &ethpb.BeaconState{}
		return decode(enc, st)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not read state %#x", blockRoot)
	}
	if st == nil {
		return nil, nil
	}
	return state.InitializeFromProtoUnsafe(st)
}

// HasState checks if a state by root exists in the db.
func (s *Store) HasState(ctx context.Context, blockRoot [32]byte) bool {
	_, span := trace.StartSpan(ctx, "BeaconDB.HasState")
	defer span.End()
	hasState := false
	if err := s.db.View(func(tx *bolt.Tx) error {
		hasState = tx.Bucket(stateBucket).Get(blockRoot[:]) != nil
		return nil
	}); err != nil {
		panic(err)
	}
	return hasState
}

// SaveState stores a state to the db using block's root which this state was generated from.
func (s *Store) SaveState(ctx context.Context, st *state.BeaconState, blockRoot [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveState")
	defer span.End()
	if st == nil {
		return errors.New("nil state")
	}
	enc, err := encode(st)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put(blockRoot[:], enc)
	})
}

// DeleteState by block root.
func (s *Store) DeleteState(ctx context.Context, blockRoot [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.DeleteState")
	defer span.End()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Delete(blockRoot[:])
	})
}
