package precompute

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/time"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/monitoring/tracing"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// vote is what a single pending attestation contributes to its attesters.
type vote struct {
	currentEpoch, currentTarget     bool
	prevEpoch, prevTarget, prevHead bool
	inclusionSlot                   primitives.Slot
	inclusionDelay                  primitives.Slot
	proposer                        primitives.ValidatorIndex
}

// ProcessAttestations walks the pending attestations of the previous and
// current epoch, marks every attester in vp and sums the attested balances
// into pBal.
func ProcessAttestations(
	ctx context.Context,
	st *state.BeaconState,
	vp []*Validator,
	pBal *Balance,
) ([]*Validator, *Balance, error) {
	_, span := trace.StartSpan(ctx, "precomputeEpoch.ProcessAttestations")
	defer span.End()

	pending := append(st.PreviousEpochAttestations(), st.CurrentEpochAttestations()...)
	for _, a := range pending {
		if a.InclusionDelay == 0 {
			return nil, nil, errors.New("attestation with inclusion delay of 0")
		}
		v, err := classify(st, a)
		if err != nil {
			tracing.AnnotateError(span, err)
			return nil, nil, errors.Wrap(err, "could not classify pending attestation")
		}
		if err := helpers.VerifyAttestingIndices(a.AttestingIndices, len(vp)); err != nil {
			return nil, nil, errors.Wrap(err, "invalid pending attestation")
		}
		for _, i := range a.AttestingIndices {
			v.apply(vp[i])
		}
	}
	return vp, UpdateBalance(vp, pBal), nil
}

// classify compares the attestation target and head with the block roots the
// state recorded for the same epoch and slot.
func classify(st *state.BeaconState, a *ethpb.PendingAttestation) (*vote, error) {
	v := &vote{
		inclusionSlot:  a.Data.Slot + a.InclusionDelay,
		inclusionDelay: a.InclusionDelay,
		proposer:       a.ProposerIndex,
	}
	target := a.Data.Target
	if target.Epoch == time.CurrentEpoch(st) {
		v.currentEpoch = true
		root, err := helpers.BlockRoot(st, target.Epoch)
		if err != nil {
			return nil, errors.Wrap(err, "could not get current epoch boundary root")
		}
		v.currentTarget = root == target.Root
	}
	if target.Epoch == time.PrevEpoch(st) {
		v.prevEpoch = true
		root, err := helpers.BlockRoot(st, target.Epoch)
		if err != nil {
			return nil, errors.Wrap(err, "could not get previous epoch boundary root")
		}
		v.prevTarget = root == target.Root
		if v.prevTarget {
			head, err := helpers.BlockRootAtSlot(st, a.Data.Slot)
			if err != nil {
				return nil, errors.Wrap(err, "could not get head root")
			}
			v.prevHead = head == a.Data.BeaconBlockRoot
		}
	}
	return v, nil
}

// apply marks the validator record. Flags are only ever set and the earliest
// previous epoch inclusion is kept.
func (v *vote) apply(p *Validator) {
	p.IsCurrentEpochAttester = p.IsCurrentEpochAttester || v.currentEpoch
	p.IsCurrentEpochTargetAttester = p.IsCurrentEpochTargetAttester || v.currentTarget
	p.IsPrevEpochTargetAttester = p.IsPrevEpochTargetAttester || v.prevTarget
	p.IsPrevEpochHeadAttester = p.IsPrevEpochHeadAttester || v.prevHead
	if v.prevEpoch {
		p.IsPrevEpochAttester = true
		if v.inclusionSlot < p.InclusionSlot {
			p.InclusionSlot = v.inclusionSlot
			p.InclusionDistance = v.inclusionDelay
			p.ProposerIndex = v.proposer
		}
	}
}

// UpdateBalance adds the effective balance of every unslashed attester to the
// matching totals of bBal.
func UpdateBalance(vp []*Validator, bBal *Balance) *Balance {
	for _, v := range vp {
		if v.IsSlashed {
			continue
		}
		eb := v.CurrentEpochEffectiveBalance
		for _, c := range []struct {
			set   bool
			total *primitives.Gwei
		}{
			{v.IsCurrentEpochAttester, &bBal.CurrentEpochAttested},
			{v.IsCurrentEpochTargetAttester, &bBal.CurrentEpochTargetAttested},
			{v.IsPrevEpochAttester, &bBal.PrevEpochAttested},
			{v.IsPrevEpochTargetAttester, &bBal.PrevEpochTargetAttested},
			{v.IsPrevEpochHeadAttester, &bBal.PrevEpochHeadAttested},
		} {
			if c.set {
				*c.total += eb
			}
		}
	}
	return EnsureBalancesLowerBound(bBal)
}

// EnsureBalancesLowerBound raises every total of bBal to at least one
// EFFECTIVE_BALANCE_INCREMENT so that divisions by them are safe.
func EnsureBalancesLowerBound(bBal *Balance) *Balance {
	ebi := primitives.Gwei(params.BeaconConfig().EffectiveBalanceIncrement)
	for _, b := range []*primitives.Gwei{
		&bBal.ActiveCurrentEpoch,
		&bBal.ActivePrevEpoch,
		&bBal.CurrentEpochAttested,
		&bBal.CurrentEpochTargetAttested,
		&bBal.PrevEpochAttested,
		&bBal.PrevEpochTargetAttested,
		&bBal.PrevEpochHeadAttested,
	} {
		if *b < ebi {
			*b = ebi
		}
	}
	return bBal
}
