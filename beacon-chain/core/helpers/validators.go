package helpers

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// IsActiveValidator returns the boolean value on whether the validator
// is active or not.
//
// Reference pseudocode:
//
//	def is_active_validator(validator: Validator, epoch: Epoch) -> bool:
//	  """
//	  Check if ``validator`` is active.
//	  """
//	  return validator.activation_epoch <= epoch < validator.exit_epoch
func IsActiveValidator(validator *ethpb.Validator, epoch primitives.Epoch) bool {
	return validator != nil && validator.IsActive(epoch)
}

// ActiveValidatorIndices filters out active validators based on validator status
// and returns their indices in a list.
//
// Reference pseudocode:
//
//	def get_active_validator_indices(state: BeaconState, epoch: Epoch) -> Sequence[ValidatorIndex]:
//	  """
//	  Return the sequence of active validator indices at ``epoch``.
//	  """
//	  return [ValidatorIndex(i) for i, v in enumerate(state.validators) if is_active_validator(v, epoch)]
func ActiveValidatorIndices(st *state.BeaconState, epoch primitives.Epoch) []primitives.ValidatorIndex {
	vals := st.Validators()
	indices := make([]primitives.ValidatorIndex, 0, len(vals))
	for i, v := range vals {
		if IsActiveValidator(v, epoch) {
			indices = append(indices, primitives.ValidatorIndex(i))
		}
	}
	return indices
}
