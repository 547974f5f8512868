package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/gasper/math"
)

// TotalBalance returns the total amount at stake in Gwei
// of input validators.
//
// Reference pseudocode:
//
//	def get_total_balance(state: BeaconState, indices: Set[ValidatorIndex]) -> Gwei:
//	  """
//	  Return the combined effective balance of the ``indices``.
//	  ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  Math safe up to ~10B ETH, after which this overflows uint64.
//	  """
//	  return Gwei(max(EFFECTIVE_BALANCE_INCREMENT, sum([state.validators[index].effective_balance for index in indices])))
func TotalBalance(st *state.BeaconState, indices []primitives.ValidatorIndex) primitives.Gwei {
	total := primitives.Gwei(0)
	for _, idx := range indices {
		val, err := st.ValidatorAtIndex(idx)
		if err != nil {
			continue
		}
		total += val.EffectiveBalance
	}
	return primitives.Gwei(mathutil.Max(params.BeaconConfig().EffectiveBalanceIncrement, uint64(total)))
}

// TotalActiveBalance returns the total amount at stake in Gwei
// of active validators.
//
// Reference pseudocode:
//
//	def get_total_active_balance(state: BeaconState) -> Gwei:
//	  """
//	  Return the combined effective balance of the active validators.
//	  Note: ``get_total_balance`` returns ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  """
//	  return get_total_balance(state, set(get_active_validator_indices(state, get_current_epoch(state))))
func TotalActiveBalance(st *state.BeaconState) primitives.Gwei {
	return TotalBalance(st, ActiveValidatorIndices(st, time.CurrentEpoch(st)))
}

// IncreaseBalance increases validator with the given 'index' balance by 'delta' in Gwei.
//
// Reference pseudocode:
//
//	def increase_balance(state: BeaconState, index: ValidatorIndex, delta: Gwei) -> None:
//	  """
//	  Increase the validator balance at index ``index`` by ``delta``.
//	  """
//	  state.balances[index] += delta
func IncreaseBalance(st *state.BeaconState, idx primitives.ValidatorIndex, delta primitives.Gwei) error {
	balAtIdx, err := st.BalanceAtIndex(idx)
	if err != nil {
		return err
	}
	newBal, err := mathutil.Add64(uint64(balAtIdx), uint64(delta))
	if err != nil {
		return errors.Wrapf(err, "could not increase balance of validator %d", idx)
	}
	return st.UpdateBalancesAtIndex(idx, primitives.Gwei(newBal))
}
