package interop

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	coreTime "github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/time/slots"
)

// BlockGenConfig is used to define the requested conditions
// for block generation.
type BlockGenConfig struct {
	// Attest adds one attestation for the previous slot to each block.
	Attest bool
	// Participation is the percentage of active validators voting in each attestation.
	Participation uint64
	// Graffiti is copied into every generated block body.
	Graffiti [32]byte
}

// DefaultBlockGenConfig returns the block config that utilizes the
// current params in the beacon config.
func DefaultBlockGenConfig() *BlockGenConfig {
	return &BlockGenConfig{
		Attest:        true,
		Participation: 100,
	}
}

// GenerateFullBlock generates a fully valid block with the requested parameters.
// The block is built on top of bState, which is not modified, and commits to the
// post state root.
func GenerateFullBlock(
	ctx context.Context,
	bState *state.BeaconState,
	conf *BlockGenConfig,
	slot primitives.Slot,
) (*ethpb.BeaconBlock, error) {
	if conf == nil {
		conf = DefaultBlockGenConfig()
	}
	advanced, err := transition.ProcessSlots(ctx, bState, slot)
	if err != nil {
		return nil, errors.Wrapf(err, "could not process slots to %d", slot)
	}
	parentRoot, err := advanced.LatestBlockHeader().HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash parent header")
	}

	var atts []*ethpb.Attestation
	if conf.Attest && slot > 0 {
		att, err := generateAttestation(advanced, slot-1, conf.Participation)
		if err != nil {
			return nil, errors.Wrapf(err, "could not generate attestation for slot %d", slot-1)
		}
		if att != nil {
			atts = append(atts, att)
		}
	}

	numValidators := uint64(advanced.NumValidators())
	var proposer primitives.ValidatorIndex
	if numValidators > 0 {
		proposer = primitives.ValidatorIndex(uint64(slot) % numValidators)
	}
	block := &ethpb.BeaconBlock{
		Slot:          slot,
		ProposerIndex: proposer,
		ParentRoot:    parentRoot,
		Body: &ethpb.BeaconBlockBody{
			Graffiti:     conf.Graffiti,
			Attestations: atts,
			Deposits:     make([]*ethpb.Deposit, 0),
		},
	}
	block.StateRoot, err = transition.CalculateStateRoot(ctx, bState, block)
	if err != nil {
		return nil, errors.Wrap(err, "could not calculate state root")
	}
	return block, nil
}

// generateAttestation builds an attestation for attSlot as seen from st, which must
// already be advanced past attSlot. The target is the epoch boundary block of the
// attestation epoch and the source the justified checkpoint st expects for it.
func generateAttestation(st *state.BeaconState, attSlot primitives.Slot, participation uint64) (*ethpb.Attestation, error) {
	targetEpoch := slots.ToEpoch(attSlot)
	headRoot, err := helpers.BlockRootAtSlot(st, attSlot)
	if err != nil {
		return nil, err
	}
	targetRoot, err := helpers.BlockRoot(st, targetEpoch)
	if err != nil {
		return nil, err
	}
	source := st.PreviousJustifiedCheckpoint()
	if targetEpoch == coreTime.CurrentEpoch(st) {
		source = st.CurrentJustifiedCheckpoint()
	}

	active := helpers.ActiveValidatorIndices(st, targetEpoch)
	if participation > 100 {
		participation = 100
	}
	n := (uint64(len(active))*participation + 99) / 100
	if n == 0 {
		return nil, nil
	}
	data := ethpb.AttestationData{
		Slot:            attSlot,
		BeaconBlockRoot: headRoot,
		Source:          source,
		Target:          ethpb.Checkpoint{Epoch: targetEpoch, Root: targetRoot},
	}
	// Every voter casts its own attestation and the block carries their aggregate.
	agg := &ethpb.Attestation{Data: data}
	for _, idx := range active[:n] {
		vote := &ethpb.Attestation{AttestingIndices: []primitives.ValidatorIndex{idx}, Data: data}
		agg, err = helpers.AggregateAttestation(agg, vote)
		if err != nil {
			return nil, errors.Wrapf(err, "could not aggregate vote of validator %d", idx)
		}
	}
	return agg, nil
}

// GenerateChain applies numBlocks generated blocks on top of genesisState, one per
// slot, and returns the blocks along with the final post state.
func GenerateChain(
	ctx context.Context,
	genesisState *state.BeaconState,
	numBlocks uint64,
	conf *BlockGenConfig,
) ([]*ethpb.BeaconBlock, *state.BeaconState, error) {
	st := genesisState
	blks := make([]*ethpb.BeaconBlock, 0, numBlocks)
	for i := uint64(0); i < numBlocks; i++ {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		blk, err := GenerateFullBlock(ctx, st, conf, st.Slot()+1)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not generate block %d", i)
		}
		st, err = transition.ExecuteStateTransition(ctx, st, blk)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not apply block %d", i)
		}
		blks = append(blks, blk)
	}
	return blks, st, nil
}
