package ffg

import (
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sirupsen/logrus"
)

// JustificationInput carries what the rolling justification rule reads from a state.
type JustificationInput struct {
	CurrentEpoch               primitives.Epoch
	PreviousEpochBoundaryRoot  [32]byte
	CurrentEpochBoundaryRoot   [32]byte
	TotalActiveBalance         primitives.Gwei
	PrevEpochTargetAttested    primitives.Gwei
	CurrentEpochTargetAttested primitives.Gwei
	JustificationBits          bitfield.Bitvector4
	PreviousJustified          ethpb.Checkpoint
	CurrentJustified           ethpb.Checkpoint
	Finalized                  ethpb.Checkpoint
}

// JustificationOutput is what the rolling justification rule writes back.
type JustificationOutput struct {
	JustificationBits bitfield.Bitvector4
	PreviousJustified ethpb.Checkpoint
	CurrentJustified  ethpb.Checkpoint
	Finalized         ethpb.Checkpoint
}

// ProcessJustificationBits applies the justification and finalization rule over
// the last four epochs. Bit i of the window records whether epoch current-i was
// justified. Finalization checks use the justified checkpoints from before this update.
func ProcessJustificationBits(in JustificationInput) JustificationOutput {
	out := JustificationOutput{
		PreviousJustified: in.CurrentJustified,
		CurrentJustified:  in.CurrentJustified,
		Finalized:         in.Finalized,
		JustificationBits: shiftBits(in.JustificationBits),
	}
	current := in.CurrentEpoch
	previous := params.BeaconConfig().GenesisEpoch
	if current > previous {
		previous = current - 1
	}
	bits := out.JustificationBits

	if IsSupermajority(uint64(in.PrevEpochTargetAttested), uint64(in.TotalActiveBalance)) {
		out.CurrentJustified = ethpb.Checkpoint{Epoch: previous, Root: in.PreviousEpochBoundaryRoot}
		bits.SetBitAt(1, true)
	}
	if IsSupermajority(uint64(in.CurrentEpochTargetAttested), uint64(in.TotalActiveBalance)) {
		out.CurrentJustified = ethpb.Checkpoint{Epoch: current, Root: in.CurrentEpochBoundaryRoot}
		bits.SetBitAt(0, true)
	}

	oldPrev := in.PreviousJustified
	oldCurr := in.CurrentJustified
	switch {
	case allSet(bits, 1, 3) && oldPrev.Epoch+3 == current:
		out.Finalized = oldPrev
	case allSet(bits, 1, 2) && oldPrev.Epoch+2 == current:
		out.Finalized = oldPrev
	}
	switch {
	case allSet(bits, 0, 2) && oldCurr.Epoch+2 == current:
		out.Finalized = oldCurr
	case allSet(bits, 0, 1) && oldCurr.Epoch+1 == current:
		out.Finalized = oldCurr
	}

	if out.CurrentJustified != in.CurrentJustified || out.Finalized != in.Finalized {
		log.WithFields(logrus.Fields{
			"epoch":          current,
			"justifiedEpoch": out.CurrentJustified.Epoch,
			"finalizedEpoch": out.Finalized.Epoch,
		}).Debug("Updated justification")
	}
	return out
}

// shiftBits moves every bit one epoch older and clears bit 0. The input is not modified.
func shiftBits(bits bitfield.Bitvector4) bitfield.Bitvector4 {
	shifted := bitfield.NewBitvector4()
	if len(bits) == 0 {
		return shifted
	}
	copy(shifted, bits)
	shifted.Shift(1)
	return shifted
}

func allSet(bits bitfield.Bitvector4, from, to uint64) bool {
	for i := from; i <= to; i++ {
		if !bits.BitAt(i) {
			return false
		}
	}
	return true
}
