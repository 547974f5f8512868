package interop

import (
	"fmt"
	"os"
	"path"

	"github.com/prysmaticlabs/gasper/config/features"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// outputDir is where the debug dumps are written.
var outputDir = os.TempDir

// WriteBlockToDisk as a block ssz. Writes to temp directory. Debug!
func WriteBlockToDisk(block *ethpb.BeaconBlock, failed bool) {
	if !features.Get().WriteSSZStateTransitions || block == nil {
		return
	}

	filename := fmt.Sprintf("beacon_block_%d.ssz", block.Slot)
	if failed {
		filename = "failed_" + filename
	}
	fp := path.Join(outputDir(), filename)
	log.Warnf("Writing block to disk at %s", fp)
	enc, err := block.MarshalSSZ()
	if err != nil {
		log.WithError(err).Error("Failed to ssz encode block")
		return
	}
	if err := os.WriteFile(fp, enc, 0600); err != nil {
		log.WithError(err).Error("Failed to write to disk")
	}
}
