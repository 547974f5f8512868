package kv

import (
	"context"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// HeadBlockRoots returns the roots of every fork head, in key order.
func (s *Store) HeadBlockRoots(ctx context.Context) ([][32]byte, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.HeadBlockRoots")
	defer span.End()
	roots := make([][32]byte, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(headsBucket).ForEach(func(k, _ []byte) error {
			var r [32]byte
			copy(r[:], k)
			roots = append(roots, r)
			return nil
		})
	})
	return roots, err
}

// SaveHeadBlockRoot marks a stored block as a fork head.
func (s *Store) SaveHeadBlockRoot(ctx context.Context, blockRoot [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveHeadBlockRoot")
	defer span.End()
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(blocksBucket).Get(blockRoot[:]) == nil {
			return errors.Errorf("no block with root %#x in db", blockRoot)
		}
		return tx.Bucket(headsBucket).Put(blockRoot[:], []byte{})
	})
}

// DeleteHeadBlockRoot removes the fork head mark of a block. The block stays stored.
func (s *Store) DeleteHeadBlockRoot(ctx context.Context, blockRoot [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.DeleteHeadBlockRoot")
	defer span.End()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(headsBucket).Delete(blockRoot[:])
	})
}
