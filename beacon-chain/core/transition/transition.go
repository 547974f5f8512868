// Package transition implements the whole state transition
// function which consists of per slot, per-epoch transitions.
// It also bootstraps the genesis beacon state for slot 0.
package transition

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/cache"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	e "github.com/prysmaticlabs/gasper/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/epoch/precompute"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/gasper/math"
	"github.com/prysmaticlabs/gasper/monitoring/tracing"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ErrSlotOverflow is returned when a state cannot advance past the largest slot.
var ErrSlotOverflow = errors.New("slot overflows uint64")

var errNilState = errors.New("nil state")

// ExecuteStateTransition defines the procedure for a state transition function.
// The input state is never modified; the returned state is a new value.
//
// Reference pseudocode:
//
//	def state_transition(state: BeaconState, block: BeaconBlock) -> None:
//	  # Process slots (including those with no blocks) since block
//	  process_slots(state, block.slot)
//	  # Process block
//	  process_block(state, block)
//	  # Verify state root
//	  assert block.state_root == hash_tree_root(state)
func ExecuteStateTransition(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
) (*state.BeaconState, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if block == nil || block.Body == nil {
		return nil, blocks.ErrNilBlock
	}

	ctx, span := trace.StartSpan(ctx, "core.state.ExecuteStateTransition")
	defer span.End()

	postState, err := processSlotsAndBlock(ctx, st, block)
	if err != nil {
		tracing.AnnotateError(span, err)
		return nil, err
	}

	// State root validation.
	postStateRoot, err := postState.HashTreeRoot(ctx)
	if err != nil {
		tracing.AnnotateError(span, err)
		return nil, errors.Wrap(err, "could not compute post state root")
	}
	if postStateRoot != block.StateRoot {
		err := fmt.Errorf("could not validate state root, wanted: %#x, received: %#x",
			postStateRoot, block.StateRoot)
		tracing.AnnotateError(span, err)
		return nil, err
	}
	return postState, nil
}

// CalculateStateRoot runs the state transition for a block without checking its
// state root and returns the root of the resulting state. This is used for the
// proposer to compute the state root before proposing a new block, and this does
// not modify state.
func CalculateStateRoot(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.CalculateStateRoot")
	defer span.End()
	if ctx.Err() != nil {
		tracing.AnnotateError(span, ctx.Err())
		return [32]byte{}, ctx.Err()
	}
	if block == nil || block.Body == nil {
		return [32]byte{}, blocks.ErrNilBlock
	}

	postState, err := processSlotsAndBlock(ctx, st, block)
	if err != nil {
		tracing.AnnotateError(span, err)
		return [32]byte{}, err
	}
	return postState.HashTreeRoot(ctx)
}

func processSlotsAndBlock(ctx context.Context, st *state.BeaconState, block *ethpb.BeaconBlock) (*state.BeaconState, error) {
	if st == nil {
		return nil, errNilState
	}
	// ProcessSlots copies its input so st is left untouched.
	postState, err := ProcessSlots(ctx, st, block.Slot)
	if err != nil {
		return nil, errors.Wrap(err, "could not process slots")
	}
	postState, err = ProcessBlock(ctx, postState, block)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block")
	}
	return postState, nil
}

// ProcessSlot happens every slot and focuses on the slot counter and block roots record updates.
// It happens regardless if there's an incoming block or not.
//
// Reference pseudocode:
//
//	def process_slot(state: BeaconState) -> None:
//	  # Cache state root
//	  previous_state_root = hash_tree_root(state)
//	  state.state_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_state_root
//	  # Cache latest block header state root
//	  if state.latest_block_header.state_root == Bytes32():
//	      state.latest_block_header.state_root = previous_state_root
//	  # Cache block root
//	  previous_block_root = hash_tree_root(state.latest_block_header)
//	  state.block_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_block_root
func ProcessSlot(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlot")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("slot", int64(st.Slot())))

	if uint64(st.Slot()) == math.MaxUint64 {
		tracing.AnnotateError(span, ErrSlotOverflow)
		return nil, ErrSlotOverflow
	}

	prevStateRoot, err := st.HashTreeRoot(ctx)
	if err != nil {
		tracing.AnnotateError(span, err)
		return nil, errors.Wrap(err, "could not tree hash prev state root")
	}
	idx := uint64(st.Slot() % params.BeaconConfig().SlotsPerHistoricalRoot)
	if err := st.UpdateStateRootAtIndex(idx, prevStateRoot); err != nil {
		return nil, err
	}

	zeroHash := params.BeaconConfig().ZeroHash
	// Cache latest block header state root.
	header := st.LatestBlockHeader()
	if header.StateRoot == zeroHash {
		header.StateRoot = prevStateRoot
		st.SetLatestBlockHeader(header)
	}
	prevBlockRoot, err := st.LatestBlockHeader().HashTreeRoot()
	if err != nil {
		tracing.AnnotateError(span, err)
		return nil, errors.Wrap(err, "could not determine prev block root")
	}
	// Cache the block root.
	if err := st.UpdateBlockRootAtIndex(idx, prevBlockRoot); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessSlots process through skip slots and apply epoch transition when it's needed.
// The input state is copied once up front and never mutated.
//
// Reference pseudocode:
//
//	def process_slots(state: BeaconState, slot: Slot) -> None:
//	  assert state.slot < slot
//	  while state.slot < slot:
//	      process_slot(state)
//	      # Process epoch on the start slot of the next epoch
//	      if (state.slot + 1) % SLOTS_PER_EPOCH == 0:
//	          process_epoch(state)
//	      state.slot = Slot(state.slot + 1)
func ProcessSlots(ctx context.Context, st *state.BeaconState, slot primitives.Slot) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlots")
	defer span.End()
	if st == nil {
		return nil, errNilState
	}
	span.AddAttributes(trace.Int64Attribute("slots", int64(slot)-int64(st.Slot())))

	// The block must have a higher slot than parent state.
	if st.Slot() >= slot {
		err := fmt.Errorf("expected state.slot %d < slot %d", st.Slot(), slot)
		tracing.AnnotateError(span, err)
		return nil, err
	}

	key, err := SkipSlotCacheKey(ctx, st)
	if err != nil {
		return nil, err
	}
	highestSlot := st.Slot()
	st = st.Copy()

	// Restart from cached value, if one exists.
	cachedState, err := SkipSlotCache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cachedState != nil && cachedState.Slot() <= slot {
		highestSlot = cachedState.Slot()
		st = cachedState
	}
	switch err := SkipSlotCache.MarkInProgress(key); {
	case errors.Is(err, cache.ErrAlreadyInProgress):
		// Another advance of the same state is running. Wait and start from its result.
		cachedState, err = SkipSlotCache.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if cachedState != nil && cachedState.Slot() <= slot {
			highestSlot = cachedState.Slot()
			st = cachedState
		}
	case err != nil:
		return nil, err
	default:
		defer SkipSlotCache.MarkNotInProgress(key)
	}

	for st.Slot() < slot {
		if ctx.Err() != nil {
			tracing.AnnotateError(span, ctx.Err())
			// Cache last best value.
			if highestSlot < st.Slot() {
				SkipSlotCache.Put(ctx, key, st)
			}
			return nil, ctx.Err()
		}
		st, err = ProcessSlot(ctx, st)
		if err != nil {
			tracing.AnnotateError(span, err)
			return nil, errors.Wrap(err, "could not process slot")
		}
		if time.CanProcessEpoch(st) {
			st, err = ProcessEpochPrecompute(ctx, st)
			if err != nil {
				tracing.AnnotateError(span, err)
				return nil, errors.Wrap(err, "could not process epoch with optimizations")
			}
		}
		st.SetSlot(st.Slot() + 1)
		processedSlotsCount.Inc()
	}

	if highestSlot < st.Slot() {
		SkipSlotCache.Put(ctx, key, st)
	}
	return st, nil
}

// ProcessEpochPrecompute describes the per epoch operations that are performed on the beacon state.
// It's optimized by pre computing validator attested info and epoch total/attested balances upfront.
// Only justification, finalization and the participation record rotation are applied.
func ProcessEpochPrecompute(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessEpochPrecompute")
	defer span.End()
	if st == nil {
		return nil, errNilState
	}
	span.AddAttributes(trace.Int64Attribute("epoch", int64(time.CurrentEpoch(st))))

	vp, bp := precompute.New(ctx, st)
	_, bp, err := precompute.ProcessAttestations(ctx, st, vp, bp)
	if err != nil {
		return nil, errors.Wrap(err, "could not process attestations")
	}

	prevJustified := st.CurrentJustifiedCheckpoint()
	prevFinalized := st.FinalizedCheckpoint()
	st, err = precompute.ProcessJustificationAndFinalizationPreCompute(st, bp)
	if err != nil {
		return nil, errors.Wrap(err, "could not process justification")
	}
	justified := st.CurrentJustifiedCheckpoint()
	finalized := st.FinalizedCheckpoint()
	sinceFinality := e.SinceFinality(st)
	if justified != prevJustified || finalized != prevFinalized {
		log.WithFields(logrus.Fields{
			"epoch":               time.CurrentEpoch(st),
			"justifiedEpoch":      justified.Epoch,
			"justifiedRoot":       fmt.Sprintf("%#x", justified.Root),
			"finalizedEpoch":      finalized.Epoch,
			"finalizedRoot":       fmt.Sprintf("%#x", finalized.Root),
			"epochsSinceFinality": sinceFinality,
			"attestedBalance":     bp.CurrentEpochTargetAttested,
			"activeBalance":       bp.ActiveCurrentEpoch,
		}).Debug("Updated justification")
	}
	justifiedEpochGauge.Set(float64(justified.Epoch))
	finalizedEpochGauge.Set(float64(finalized.Epoch))
	epochsSinceFinalityGauge.Set(float64(sinceFinality))

	st, err = e.ProcessParticipationRecordUpdates(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process participation record updates")
	}
	processedEpochsCount.Inc()
	return st, nil
}

// ProcessBlock creates a new, modified beacon state by applying block operation
// transformations as defined by the beacon chain consensus rules.
//
// Reference pseudocode:
//
//	def process_block(state: BeaconState, block: BeaconBlock) -> None:
//	  process_block_header(state, block)
//	  process_operations(state, block.body)
func ProcessBlock(
	ctx context.Context,
	st *state.BeaconState,
	block *ethpb.BeaconBlock,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessBlock")
	defer span.End()

	if block == nil || block.Body == nil {
		return nil, blocks.ErrNilBlock
	}
	st, err := blocks.ProcessBlockHeader(ctx, st, block)
	if err != nil {
		tracing.AnnotateError(span, err)
		return nil, errors.Wrap(err, "could not process block header")
	}
	st, err = ProcessOperations(ctx, st, block.Body)
	if err != nil {
		tracing.AnnotateError(span, err)
		return nil, errors.Wrap(err, "could not process block operation")
	}
	return st, nil
}

// ProcessOperations processes the operations in the beacon block and updates beacon state
// with the operations in block.
//
// Reference pseudocode:
//
//	def process_operations(state: BeaconState, body: BeaconBlockBody) -> None:
//	  for operation in body.attestations:
//	      process_attestation(state, operation)
//	  for operation in body.deposits:
//	      process_deposit(state, operation)
func ProcessOperations(
	ctx context.Context,
	st *state.BeaconState,
	body *ethpb.BeaconBlockBody,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessOperations")
	defer span.End()

	if _, err := VerifyOperationLengths(ctx, st, body); err != nil {
		return nil, errors.Wrap(err, "could not verify operation lengths")
	}
	st, err := blocks.ProcessAttestations(ctx, st, body.Attestations)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block attestations")
	}
	st, err = blocks.ProcessDeposits(ctx, st, body.Deposits)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block validator deposits")
	}
	return st, nil
}

// VerifyOperationLengths verifies that block operation lengths are valid and that
// the deposits cannot push the eth1 deposit index past the largest uint64.
func VerifyOperationLengths(_ context.Context, st *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	if body == nil {
		return nil, blocks.ErrNilBlock
	}
	if uint64(len(body.Attestations)) > params.BeaconConfig().MaxAttestations {
		return nil, fmt.Errorf(
			"number of attestations (%d) in block body exceeds allowed threshold of %d",
			len(body.Attestations),
			params.BeaconConfig().MaxAttestations,
		)
	}
	if uint64(len(body.Deposits)) > params.BeaconConfig().MaxDeposits {
		return nil, fmt.Errorf(
			"number of deposits (%d) in block body exceeds allowed threshold of %d",
			len(body.Deposits),
			params.BeaconConfig().MaxDeposits,
		)
	}
	if _, err := mathutil.Add64(st.Eth1DepositIndex(), uint64(len(body.Deposits))); err != nil {
		return nil, errors.Wrapf(blocks.ErrDepositIndexOverflow, "index %d with %d deposits", st.Eth1DepositIndex(), len(body.Deposits))
	}
	return st, nil
}
