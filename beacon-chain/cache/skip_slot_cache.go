// Package cache holds the in-memory caches used by state transition.
package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"go.opencensus.io/trace"
)

var (
	skipSlotCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skip_slot_cache_hit",
		Help: "The total number of cache hits on the skip slot cache.",
	})
	skipSlotCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skip_slot_cache_miss",
		Help: "The total number of cache misses on the skip slot cache.",
	})
)

// SkipSlotCache keeps states that were advanced through empty slots, keyed by
// the pre state they started from. A key can be marked in progress so that
// concurrent advances of the same state wait for the first one.
type SkipSlotCache struct {
	lock     sync.Mutex
	states   *lru.Cache
	disabled bool
	// pending holds a channel per in progress key, closed on release.
	pending map[[32]byte]chan struct{}
}

// NewSkipSlotCache returns an enabled cache sized by SkipSlotCacheSize.
func NewSkipSlotCache() *SkipSlotCache {
	size := params.BeaconConfig().SkipSlotCacheSize
	if size <= 0 {
		size = 1
	}
	states, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return &SkipSlotCache{
		states:  states,
		pending: make(map[[32]byte]chan struct{}),
	}
}

// Enable turns the cache back on.
func (c *SkipSlotCache) Enable() {
	c.lock.Lock()
	c.disabled = false
	c.lock.Unlock()
}

// Disable makes every Get miss and every Put and mark a no-op.
func (c *SkipSlotCache) Disable() {
	c.lock.Lock()
	c.disabled = true
	c.lock.Unlock()
}

// Clear drops every cached state and releases every in progress key.
func (c *SkipSlotCache) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.states.Purge()
	for r, done := range c.pending {
		close(done)
		delete(c.pending, r)
	}
}

// Get returns a copy of the state cached under r, or nil on a miss. While r is
// in progress Get blocks until it is released or ctx is done.
func (c *SkipSlotCache) Get(ctx context.Context, r [32]byte) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "skipSlotCache.Get")
	defer span.End()

	waited := false
	for {
		c.lock.Lock()
		if c.disabled {
			c.lock.Unlock()
			skipSlotCacheMiss.Inc()
			return nil, nil
		}
		done, busy := c.pending[r]
		c.lock.Unlock()
		if !busy {
			break
		}
		waited = true
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	span.AddAttributes(trace.BoolAttribute("inProgress", waited))

	item, ok := c.states.Get(r)
	if !ok || item == nil {
		skipSlotCacheMiss.Inc()
		span.AddAttributes(trace.BoolAttribute("hit", false))
		return nil, nil
	}
	st, ok := item.(*state.BeaconState)
	if !ok {
		return nil, errors.Wrap(ErrCastingFailed, "item in cache is not a beacon state")
	}
	skipSlotCacheHit.Inc()
	span.AddAttributes(trace.BoolAttribute("hit", true))
	return st.Copy(), nil
}

// MarkInProgress claims r. It fails with ErrAlreadyInProgress when another
// caller holds the claim.
func (c *SkipSlotCache) MarkInProgress(r [32]byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.disabled {
		return nil
	}
	if _, busy := c.pending[r]; busy {
		return ErrAlreadyInProgress
	}
	c.pending[r] = make(chan struct{})
	return nil
}

// MarkNotInProgress releases the claim on r and wakes its waiters. Call it
// after Put.
func (c *SkipSlotCache) MarkNotInProgress(r [32]byte) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if done, busy := c.pending[r]; busy {
		close(done)
		delete(c.pending, r)
	}
}

// Put stores a copy of st under r.
func (c *SkipSlotCache) Put(_ context.Context, r [32]byte, st *state.BeaconState) {
	c.lock.Lock()
	disabled := c.disabled
	c.lock.Unlock()
	if disabled {
		return
	}
	c.states.Add(r, st.Copy())
}
