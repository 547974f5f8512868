package blockchain

import (
	"fmt"

	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "blockchain")

// logs state transition related data every slot.
func logStateTransitionData(b *ethpb.BeaconBlock, r [32]byte) {
	log.WithFields(logrus.Fields{
		"slot":         b.Slot,
		"root":         shortRoot(r),
		"attestations": len(b.Body.Attestations),
		"deposits":     len(b.Body.Deposits),
	}).Info("Finished applying state transition")
}

func shortRoot(r [32]byte) string {
	return fmt.Sprintf("%#x", r[:8])
}
