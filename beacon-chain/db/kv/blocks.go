package kv

import (
	"context"

	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// Block retrieval by root. A missing block is returned as nil without error.
func (s *Store) Block(ctx context.Context, blockRoot [32]byte) (*ethpb.BeaconBlock, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.Block")
	defer span.End()
	// Return block from cache if it exists.
	if v, ok := s.blockCache.Get(string(blockRoot[:])); v != nil && ok {
		if blk, ok := v.(*ethpb.BeaconBlock); ok {
			return blk.Copy(), nil
		}
	}
	var blk *ethpb.BeaconBlock
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(blocksBucket).Get(blockRoot[:])
		if enc == nil {
			return nil
		}
		blk = &ethpb.BeaconBlock{}
		return decode(enc, blk)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not read block %#x", blockRoot)
	}
	if blk != nil {
		s.blockCache.Set(string(blockRoot[:]), blk.Copy(), int64(blk.SizeSSZ()))
	}
	return blk, nil
}

// BlockRoots returns the roots of every stored block in key order.
func (s *Store) BlockRoots(ctx context.Context) ([][32]byte, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.BlockRoots")
	defer span.End()
	roots := make([][32]byte, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(blocksBucket).ForEach(func(k, _ []byte) error {
			var r [32]byte
			copy(r[:], k)
			roots = append(roots, r)
			return nil
		})
	})
	return roots, err
}

// HasBlock checks if a block by root exists in the db.
func (s *Store) HasBlock(ctx context.Context, blockRoot [32]byte) bool {
	_, span := trace.StartSpan(ctx, "BeaconDB.HasBlock")
	defer span.End()
	if v, ok := s.blockCache.Get(string(blockRoot[:])); v != nil && ok {
		return true
	}
	exists := false
	if err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(blocksBucket).Get(blockRoot[:]) != nil
		return nil
	}); err != nil { // This view never returns an error, but we'll handle anyway for sanity.
		panic(err)
	}
	return exists
}

// SaveBlock to the db under its hash tree root.
func (s *Store) SaveBlock(ctx context.Context, block *ethpb.BeaconBlock) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveBlock")
	defer span.End()
	if block == nil || block.Body == nil {
		return errors.New("cannot save nil block")
	}
	blockRoot, err := block.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not hash block")
	}
	if v, ok := s.blockCache.Get(string(blockRoot[:])); v != nil && ok {
		return nil
	}
	enc, err := encode(block)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blocksBucket).Put(blockRoot[:], enc)
	}); err != nil {
		return err
	}
	s.blockCache.Set(string(blockRoot[:]), block.Copy(), int64(block.SizeSSZ()))
	return nil
}
