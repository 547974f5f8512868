package transition

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// GenesisBeaconState gets called when MinGenesisActiveValidatorCount count of
// full deposits were made to the deposit contract and the ChainStart log gets emitted.
// Every deposit is processed in order against eth1Data, then validators holding the
// maximum effective balance are activated at the genesis epoch.
//
// Reference pseudocode:
//
//	def initialize_beacon_state_from_eth1(eth1_block_hash: Bytes32,
//	                                      eth1_timestamp: uint64,
//	                                      deposits: Sequence[Deposit]) -> BeaconState:
//	  state = BeaconState(
//	      genesis_time=eth1_timestamp,
//	      eth1_data=Eth1Data(block_hash=eth1_block_hash, deposit_count=len(deposits)),
//	      latest_block_header=BeaconBlockHeader(body_root=hash_tree_root(BeaconBlockBody())),
//	  )
//	  # Process deposits
//	  for deposit in deposits:
//	      process_deposit(state, deposit)
//	  # Process activations
//	  for index, validator in enumerate(state.validators):
//	      if validator.effective_balance == MAX_EFFECTIVE_BALANCE:
//	          validator.activation_eligibility_epoch = GENESIS_EPOCH
//	          validator.activation_epoch = GENESIS_EPOCH
//	  return state
func GenesisBeaconState(ctx context.Context, deposits []*ethpb.Deposit, genesisTime uint64, eth1Data *ethpb.Eth1Data) (*state.BeaconState, error) {
	if eth1Data == nil {
		return nil, errors.New("no eth1data provided for genesis state")
	}
	st, err := EmptyGenesisState()
	if err != nil {
		return nil, err
	}
	st.SetGenesisTime(genesisTime)
	st.SetEth1Data(eth1Data.Copy())

	st, err = blocks.ProcessDeposits(ctx, st, deposits)
	if err != nil {
		return nil, errors.Wrap(err, "could not process validator deposits")
	}
	return activateGenesisValidators(st)
}

// EmptyGenesisState returns an empty beacon state at the genesis slot with
// zeroed history buffers and a latest block header committing to an empty body.
func EmptyGenesisState() (*state.BeaconState, error) {
	cfg := params.BeaconConfig()
	bodyRoot, err := (&ethpb.BeaconBlockBody{}).HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash empty block body")
	}
	blockRoots := make([][32]byte, cfg.SlotsPerHistoricalRoot)
	stateRoots := make([][32]byte, cfg.SlotsPerHistoricalRoot)
	for i := range blockRoots {
		blockRoots[i] = cfg.ZeroHash
		stateRoots[i] = cfg.ZeroHash
	}
	genesisCheckpoint := ethpb.Checkpoint{Epoch: cfg.GenesisEpoch, Root: cfg.ZeroHash}
	return state.InitializeFromProtoUnsafe(&ethpb.BeaconState{
		Slot: cfg.GenesisSlot,
		LatestBlockHeader: &ethpb.BeaconBlockHeader{
			Slot:       cfg.GenesisSlot,
			ParentRoot: cfg.ZeroHash,
			StateRoot:  cfg.ZeroHash,
			BodyRoot:   bodyRoot,
		},
		BlockRoots:                  blockRoots,
		StateRoots:                  stateRoots,
		Eth1Data:                    &ethpb.Eth1Data{},
		Validators:                  make([]*ethpb.Validator, 0),
		Balances:                    make([]primitives.Gwei, 0),
		PreviousEpochAttestations:   make([]*ethpb.PendingAttestation, 0),
		CurrentEpochAttestations:    make([]*ethpb.PendingAttestation, 0),
		JustificationBits:           bitfield.NewBitvector4(),
		PreviousJustifiedCheckpoint: genesisCheckpoint,
		CurrentJustifiedCheckpoint:  genesisCheckpoint,
		FinalizedCheckpoint:         genesisCheckpoint,
	})
}

func activateGenesisValidators(st *state.BeaconState) (*state.BeaconState, error) {
	cfg := params.BeaconConfig()
	raw := st.ToProto()
	for _, v := range raw.Validators {
		if uint64(v.EffectiveBalance) == cfg.MaxEffectiveBalance {
			v.ActivationEligibilityEpoch = cfg.GenesisEpoch
			v.ActivationEpoch = cfg.GenesisEpoch
		}
	}
	return state.InitializeFromProtoUnsafe(raw)
}
