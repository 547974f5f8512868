package transition

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/cache"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
)

// SkipSlotCache exists for the unlikely scenario that is a large gap between the head state and
// the current slot. If the beacon chain were ever to be stalled for several epochs, it may be
// difficult or impossible to compute the appropriate beacon state for assignments within a
// reasonable amount of time.
var SkipSlotCache = cache.NewSkipSlotCache()

// SkipSlotCacheKey is the key for skip slot cache is mixed between state root and state slot.
// state root is in the mix to defend against different forks with same skip slots
// to hit the same cache. We don't want beacon states mixed up between different chains.
// [0:24] represents the state root
// [24:32] represents the state slot
func SkipSlotCacheKey(ctx context.Context, st *state.BeaconState) ([32]byte, error) {
	sr, err := st.HashTreeRoot(ctx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash state for skip slot cache key")
	}
	var key [32]byte
	copy(key[:24], sr[:24])
	copy(key[24:], bytesutil.Uint64ToBytesBigEndian(uint64(st.Slot())))
	return key, nil
}
