package precompute

import (
	"context"
	"math"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"go.opencensus.io/trace"
)

// New gets called at the beginning of process epoch cycle to return
// pre computed instances of validators attesting records and total
// balances attested in an epoch.
func New(ctx context.Context, st *state.BeaconState) ([]*Validator, *Balance) {
	_, span := trace.StartSpan(ctx, "precomputeEpoch.New")
	defer span.End()

	vals := st.Validators()
	pValidators := make([]*Validator, len(vals))
	pBal := &Balance{}

	currentEpoch := time.CurrentEpoch(st)
	prevEpoch := time.PrevEpoch(st)

	for i, val := range vals {
		// Was validator withdrawable or slashed
		withdrawable := prevEpoch+1 >= val.WithdrawableEpoch
		pVal := &Validator{
			IsSlashed:                    val.Slashed,
			IsWithdrawableCurrentEpoch:   withdrawable,
			CurrentEpochEffectiveBalance: val.EffectiveBalance,
			InclusionSlot:                primitives.Slot(math.MaxUint64),
			InclusionDistance:            primitives.Slot(math.MaxUint64),
		}
		// Was validator active current epoch
		if val.IsActive(currentEpoch) {
			pVal.IsActiveCurrentEpoch = true
			pBal.ActiveCurrentEpoch += val.EffectiveBalance
		}
		// Was validator active previous epoch
		if val.IsActive(prevEpoch) {
			pVal.IsActivePrevEpoch = true
			pBal.ActivePrevEpoch += val.EffectiveBalance
		}
		pValidators[i] = pVal
	}
	return pValidators, pBal
}
