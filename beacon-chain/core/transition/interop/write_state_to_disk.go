package interop

import (
	"fmt"
	"os"
	"path"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/features"
)

// WriteStateToDisk as a state ssz. Writes to temp directory. Debug!
func WriteStateToDisk(st *state.BeaconState) {
	if !features.Get().WriteSSZStateTransitions || st == nil {
		return
	}
	fp := path.Join(outputDir(), fmt.Sprintf("beacon_state_%d.ssz", st.Slot()))
	log.Warnf("Writing state to disk at %s", fp)
	enc, err := st.MarshalSSZ()
	if err != nil {
		log.WithError(err).Error("Failed to ssz encode state")
		return
	}
	if err := os.WriteFile(fp, enc, 0600); err != nil {
		log.WithError(err).Error("Failed to write to disk")
	}
}
