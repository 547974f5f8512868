package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	mathutil "github.com/prysmaticlabs/gasper/math"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ErrDepositIndexOverflow is returned when processing deposits would move the
// eth1 deposit index past the largest uint64.
var ErrDepositIndexOverflow = errors.New("eth1 deposit index overflows")

// ProcessDeposits is one of the operations performed on each processed
// beacon block to verify queued validators from the Ethereum 1.0 Deposit Contract
// into the beacon chain. Deposits are applied strictly in order and each one
// advances the eth1 deposit index by exactly one.
//
// Reference pseudocode:
//
//	For each deposit in block.body.deposits:
//	  process_deposit(state, deposit)
func ProcessDeposits(
	ctx context.Context,
	beaconState *state.BeaconState,
	deposits []*ethpb.Deposit,
) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "blocks.ProcessDeposits")
	defer span.End()

	if _, err := mathutil.Add64(beaconState.Eth1DepositIndex(), uint64(len(deposits))); err != nil {
		return nil, errors.Wrapf(ErrDepositIndexOverflow, "index %d with %d deposits", beaconState.Eth1DepositIndex(), len(deposits))
	}
	verify := params.BeaconConfig().VerifyDepositProofs
	var err error
	for i, d := range deposits {
		if d == nil || d.Data == nil {
			return nil, errors.Errorf("got a nil deposit at index %d in block", i)
		}
		beaconState, err = ProcessDeposit(beaconState, d, verify)
		if err != nil {
			return nil, errors.Wrapf(err, "could not process deposit %d", i)
		}
	}
	return beaconState, nil
}

// ProcessDeposit takes in a deposit object and inserts it
// into the registry as a new validator or balance change.
//
// Reference pseudocode:
//
//	def process_deposit(state: BeaconState, deposit: Deposit) -> None:
//	  # Verify the Merkle branch
//	  assert is_valid_merkle_branch(
//	      leaf=hash_tree_root(deposit.data),
//	      branch=deposit.proof,
//	      depth=DEPOSIT_CONTRACT_TREE_DEPTH + 1,  # Add 1 for the List length mix-in
//	      index=state.eth1_deposit_index,
//	      root=state.eth1_data.deposit_root,
//	  )
//
//	  # Deposits must be processed in order
//	  state.eth1_deposit_index += 1
//
//	  pubkey = deposit.data.pubkey
//	  amount = deposit.data.amount
//	  validator_pubkeys = [v.pubkey for v in state.validators]
//	  if pubkey not in validator_pubkeys:
//	      # Add validator and balance entries
//	      state.validators.append(get_validator_from_deposit(state, deposit))
//	      state.balances.append(amount)
//	  else:
//	      # Increase balance by deposit amount
//	      index = ValidatorIndex(validator_pubkeys.index(pubkey))
//	      increase_balance(state, index, amount)
func ProcessDeposit(beaconState *state.BeaconState, deposit *ethpb.Deposit, verifyProof bool) (*state.BeaconState, error) {
	index := beaconState.Eth1DepositIndex()
	if verifyProof {
		if err := verifyDeposit(beaconState, deposit); err != nil {
			return nil, errors.Wrapf(err, "could not verify deposit from %#x", bytesutil.Trunc(deposit.Data.PublicKey[:]))
		}
	}
	next, err := mathutil.Add64(index, 1)
	if err != nil {
		return nil, ErrDepositIndexOverflow
	}
	beaconState.SetEth1DepositIndex(next)

	pubKey := deposit.Data.PublicKey
	amount := primitives.Gwei(deposit.Data.Amount)
	idx, ok := beaconState.ValidatorIndexByPubkey(pubKey)
	if !ok {
		if err := beaconState.AppendValidator(GetValidatorFromDeposit(deposit.Data)); err != nil {
			return nil, err
		}
		beaconState.AppendBalance(amount)
		return beaconState, nil
	}
	if err := helpers.IncreaseBalance(beaconState, idx, amount); err != nil {
		return nil, err
	}
	return beaconState, nil
}

// GetValidatorFromDeposit gets a new validator object with provided parameters.
//
// Reference pseudocode:
//
//	def get_validator_from_deposit(state: BeaconState, deposit: Deposit) -> Validator:
//	  amount = deposit.data.amount
//	  effective_balance = min(amount - amount % EFFECTIVE_BALANCE_INCREMENT, MAX_EFFECTIVE_BALANCE)
//
//	  return Validator(
//	      pubkey=deposit.data.pubkey,
//	      withdrawal_credentials=deposit.data.withdrawal_credentials,
//	      activation_eligibility_epoch=FAR_FUTURE_EPOCH,
//	      activation_epoch=FAR_FUTURE_EPOCH,
//	      exit_epoch=FAR_FUTURE_EPOCH,
//	      withdrawable_epoch=FAR_FUTURE_EPOCH,
//	      effective_balance=effective_balance,
//	  )
func GetValidatorFromDeposit(data *ethpb.DepositData) *ethpb.Validator {
	cfg := params.BeaconConfig()
	effectiveBalance := data.Amount - (data.Amount % cfg.EffectiveBalanceIncrement)
	if cfg.MaxEffectiveBalance < effectiveBalance {
		effectiveBalance = cfg.MaxEffectiveBalance
	}
	return &ethpb.Validator{
		PublicKey:                  data.PublicKey,
		WithdrawalCredentials:      data.WithdrawalCredentials,
		ActivationEligibilityEpoch: cfg.FarFutureEpoch,
		ActivationEpoch:            cfg.FarFutureEpoch,
		ExitEpoch:                  cfg.FarFutureEpoch,
		WithdrawableEpoch:          cfg.FarFutureEpoch,
		EffectiveBalance:           primitives.Gwei(effectiveBalance),
	}
}

func verifyDeposit(beaconState *state.BeaconState, deposit *ethpb.Deposit) error {
	eth1Data := beaconState.Eth1Data()
	if eth1Data == nil {
		return errors.New("received nil eth1 data in the beacon state")
	}
	leaf, err := deposit.Data.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not tree hash deposit data")
	}
	proof := make([][]byte, len(deposit.Proof))
	for i := range deposit.Proof {
		proof[i] = deposit.Proof[i][:]
	}
	if ok := trie.VerifyMerkleProofWithDepth(
		eth1Data.DepositRoot[:],
		leaf[:],
		beaconState.Eth1DepositIndex(),
		proof,
		params.BeaconConfig().DepositContractTreeDepth,
	); !ok {
		return errors.Errorf(
			"deposit merkle branch of deposit root did not verify for root: %#x",
			eth1Data.DepositRoot,
		)
	}
	return nil
}
