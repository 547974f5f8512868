package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/prysmaticlabs/gasper/beacon-chain/cache"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestSkipSlotCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := cache.NewSkipSlotCache()

	r := [32]byte{'a'}
	st, err := c.Get(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, true, st == nil, "Empty cache returned an object")

	require.NoError(t, c.MarkInProgress(r))

	st, err = state.InitializeFromProto(&ethpb.BeaconState{Slot: 10})
	require.NoError(t, err)

	c.Put(ctx, r, st)
	c.MarkNotInProgress(r)

	res, err := c.Get(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, st.Slot(), res.Slot())

	res.SetSlot(11)
	again, err := c.Get(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, st.Slot(), again.Slot(), "Cached state was mutated through a returned copy")
}

func TestSkipSlotCache_DisabledAndClear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewSkipSlotCache()
	st, err := state.InitializeFromProto(&ethpb.BeaconState{Slot: 3})
	require.NoError(t, err)

	c.Disable()
	c.Put(ctx, [32]byte{1}, st)
	c.Enable()
	res, err := c.Get(ctx, [32]byte{1})
	require.NoError(t, err)
	assert.Equal(t, true, res == nil)

	c.Put(ctx, [32]byte{1}, st)
	c.Clear()
	res, err = c.Get(ctx, [32]byte{1})
	require.NoError(t, err)
	assert.Equal(t, true, res == nil)
}

func TestSkipSlotCache_MarkInProgress(t *testing.T) {
	c := cache.NewSkipSlotCache()
	r := [32]byte{'b'}
	require.NoError(t, c.MarkInProgress(r))
	assert.ErrorIs(t, c.MarkInProgress(r), cache.ErrAlreadyInProgress)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Get(ctx, r)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.MarkNotInProgress(r)
	require.NoError(t, c.MarkInProgress(r))
}

func TestSkipSlotCache_GetWaitsForRelease(t *testing.T) {
	ctx := context.Background()
	c := cache.NewSkipSlotCache()
	r := [32]byte{'c'}
	require.NoError(t, c.MarkInProgress(r))

	got := make(chan *state.BeaconState)
	go func() {
		st, err := c.Get(ctx, r)
		if err != nil {
			st = nil
		}
		got <- st
	}()

	st, err := state.InitializeFromProto(&ethpb.BeaconState{Slot: 7})
	require.NoError(t, err)
	c.Put(ctx, r, st)
	c.MarkNotInProgress(r)

	select {
	case res := <-got:
		require.NotNil(t, res)
		assert.Equal(t, st.Slot(), res.Slot())
	case <-time.After(5 * time.Second):
		t.Fatal("Get did not return after the key was released")
	}
}
