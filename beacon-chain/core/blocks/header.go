package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ErrNilBlock is returned for a nil block or a block without a body.
var ErrNilBlock = errors.New("nil block")

// ProcessBlockHeader validates a block by its header.
//
// Reference pseudocode:
//
//	def process_block_header(state: BeaconState, block: BeaconBlock) -> None:
//	  # Verify that the slots match
//	  assert block.slot == state.slot
//	  # Verify that the block is newer than latest block header
//	  assert block.slot > state.latest_block_header.slot
//	  # Verify that the parent matches
//	  assert block.parent_root == hash_tree_root(state.latest_block_header)
//	  # Cache current block as the new latest block
//	  state.latest_block_header = BeaconBlockHeader(
//	      slot=block.slot,
//	      proposer_index=block.proposer_index,
//	      parent_root=block.parent_root,
//	      state_root=Bytes32(),  # Overwritten in the next process_slot call
//	      body_root=hash_tree_root(block.body),
//	  )
func ProcessBlockHeader(
	ctx context.Context,
	beaconState *state.BeaconState,
	block *ethpb.BeaconBlock,
) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "blocks.ProcessBlockHeader")
	defer span.End()

	if block == nil {
		return nil, ErrNilBlock
	}
	header, err := block.Header()
	if err != nil {
		return nil, errors.Wrap(err, "could not compute block header")
	}
	return ProcessBlockHeaderNoVerify(beaconState, block.Slot, block.ProposerIndex, block.ParentRoot, header.BodyRoot)
}

// ProcessBlockHeaderNoVerify validates a block by its header and caches it as the
// latest block header with an unresolved state root.
func ProcessBlockHeaderNoVerify(
	beaconState *state.BeaconState,
	slot primitives.Slot,
	proposerIndex primitives.ValidatorIndex,
	parentRoot, bodyRoot [32]byte,
) (*state.BeaconState, error) {
	if beaconState.Slot() != slot {
		return nil, errors.Errorf("state slot: %d is different than block slot: %d", beaconState.Slot(), slot)
	}
	latest := beaconState.LatestBlockHeader()
	if slot <= latest.Slot {
		return nil, errors.Errorf("block slot: %d is not greater than latest block header slot: %d", slot, latest.Slot)
	}
	parentHeaderRoot, err := latest.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash latest block header")
	}
	if parentRoot != parentHeaderRoot {
		return nil, errors.Errorf(
			"parent root %#x does not match the latest block header signing root in state %#x",
			parentRoot, parentHeaderRoot)
	}
	if n := uint64(beaconState.NumValidators()); n > 0 && uint64(proposerIndex) >= n {
		return nil, errors.Errorf("proposer index %d out of range of %d validators", proposerIndex, beaconState.NumValidators())
	}

	beaconState.SetLatestBlockHeader(&ethpb.BeaconBlockHeader{
		Slot:          slot,
		ProposerIndex: proposerIndex,
		ParentRoot:    parentRoot,
		BodyRoot:      bodyRoot,
	})
	return beaconState, nil
}
