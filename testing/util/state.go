package util

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// FillRootsNaturalOpt is meant to be used as an option when calling NewBeaconState.
// It fills state and block roots with big endian representations of natural numbers starting with 0.
// Example: 16 becomes 0x00...0f.
func FillRootsNaturalOpt(st *ethpb.BeaconState) error {
	st.StateRoots = prepareRoots()
	st.BlockRoots = prepareRoots()
	return nil
}

// NewBeaconState creates a beacon state with minimum marshalable fields.
func NewBeaconState(options ...func(state *ethpb.BeaconState) error) (*state.BeaconState, error) {
	h := uint64(params.BeaconConfig().SlotsPerHistoricalRoot)
	seed := &ethpb.BeaconState{
		LatestBlockHeader:         HydrateBeaconHeader(nil),
		BlockRoots:                make([][32]byte, h),
		StateRoots:                make([][32]byte, h),
		Eth1Data:                  &ethpb.Eth1Data{},
		Validators:                make([]*ethpb.Validator, 0),
		Balances:                  make([]primitives.Gwei, 0),
		PreviousEpochAttestations: make([]*ethpb.PendingAttestation, 0),
		CurrentEpochAttestations:  make([]*ethpb.PendingAttestation, 0),
		JustificationBits:         bitfield.NewBitvector4(),
	}

	for _, opt := range options {
		if err := opt(seed); err != nil {
			return nil, err
		}
	}

	st, err := state.InitializeFromProtoUnsafe(seed)
	if err != nil {
		return nil, err
	}
	return st.Copy(), nil
}

// ActiveValidatorsOpt registers n validators active from genesis, each with the maximum
// effective balance and a deterministic public key.
func ActiveValidatorsOpt(n uint64) func(*ethpb.BeaconState) error {
	return func(st *ethpb.BeaconState) error {
		cfg := params.BeaconConfig()
		st.Validators = make([]*ethpb.Validator, n)
		st.Balances = make([]primitives.Gwei, n)
		for i := uint64(0); i < n; i++ {
			st.Validators[i] = &ethpb.Validator{
				PublicKey:                  DeterministicPubkey(i),
				EffectiveBalance:           primitives.Gwei(cfg.MaxEffectiveBalance),
				ActivationEligibilityEpoch: cfg.GenesisEpoch,
				ActivationEpoch:            cfg.GenesisEpoch,
				ExitEpoch:                  cfg.FarFutureEpoch,
				WithdrawableEpoch:          cfg.FarFutureEpoch,
			}
			st.Balances[i] = primitives.Gwei(cfg.MaxEffectiveBalance)
		}
		return nil
	}
}

func prepareRoots() [][32]byte {
	rootsLen := uint64(params.BeaconConfig().SlotsPerHistoricalRoot)
	roots := make([][32]byte, rootsLen)
	for j := uint64(0); j < rootsLen; j++ {
		copy(roots[j][24:], bytesutil.Uint64ToBytesBigEndian(j))
	}
	return roots
}
