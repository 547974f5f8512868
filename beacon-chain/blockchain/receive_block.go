package blockchain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition/interop"
	"github.com/prysmaticlabs/gasper/monitoring/tracing"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// BlockReceiver interface defines the methods of chain service receive and processing new blocks.
type BlockReceiver interface {
	ReceiveBlock(ctx context.Context, block *ethpb.BeaconBlock) ([32]byte, error)
}

// ReceiveBlock applies a block on top of the stored state of its parent. The
// operations consist of:
//   1. Execute the state transition from the parent post state
//   2. Save the block and its post state
//   3. Move the fork head from the parent to the block
//
// Blocks extending the same parent are applied one at a time. Blocks on
// different forks are applied concurrently. A block whose post state is
// already stored is accepted without being applied again. The post state is
// dropped when the head cannot be moved, so a retry applies the block again.
func (s *Service) ReceiveBlock(ctx context.Context, block *ethpb.BeaconBlock) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "blockChain.ReceiveBlock")
	defer span.End()

	if block == nil || block.Body == nil {
		return [32]byte{}, ErrNilBlock
	}
	blockRoot, err := block.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash block")
	}
	span.AddAttributes(trace.Int64Attribute("slot", int64(block.Slot))) // lint:ignore uintcast -- This is OK for tracing.

	lock := s.headLock(block.ParentRoot)
	lock.Lock()
	defer lock.Unlock()

	if s.cfg.BeaconDB.HasState(ctx, blockRoot) {
		return blockRoot, nil
	}
	preState, err := s.cfg.BeaconDB.State(ctx, block.ParentRoot)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get pre state")
	}
	if preState == nil {
		err := errors.Wrapf(ErrUnknownParent, "parent root %#x", block.ParentRoot)
		tracing.AnnotateError(span, err)
		return [32]byte{}, err
	}

	postState, err := transition.ExecuteStateTransition(ctx, preState, block)
	if err != nil {
		blocksRejected.Inc()
		interop.WriteBlockToDisk(block, true /* failed */)
		err := errors.Wrap(err, "could not execute state transition")
		tracing.AnnotateError(span, err)
		return [32]byte{}, err
	}
	interop.WriteBlockToDisk(block, false)
	interop.WriteStateToDisk(postState)

	if err := s.cfg.BeaconDB.SaveBlock(ctx, block); err != nil {
		return [32]byte{}, errors.Wrapf(err, "could not save block from slot %d", block.Slot)
	}
	if err := s.cfg.BeaconDB.SaveState(ctx, postState, blockRoot); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save state")
	}
	if err := s.cfg.BeaconDB.SaveHeadBlockRoot(ctx, blockRoot); err != nil {
		if delErr := s.cfg.BeaconDB.DeleteState(ctx, blockRoot); delErr != nil {
			log.WithError(delErr).Error("Could not drop post state of unapplied block")
		}
		return [32]byte{}, errors.Wrap(err, "could not save head")
	}
	if err := s.cfg.BeaconDB.DeleteHeadBlockRoot(ctx, block.ParentRoot); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not delete parent head")
	}
	if heads, err := s.cfg.BeaconDB.HeadBlockRoots(ctx); err == nil {
		forkHeads.Set(float64(len(heads)))
	}
	blocksReceived.Inc()
	logStateTransitionData(block, blockRoot)
	return blockRoot, nil
}
