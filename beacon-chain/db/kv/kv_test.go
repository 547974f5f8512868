package kv

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

// setupDB instantiates and returns a Store instance.
func setupDB(t testing.TB) *Store {
	db, err := NewKVStore(context.Background(), t.TempDir())
	require.NoError(t, err, "Failed to instantiate DB")
	t.Cleanup(func() {
		require.NoError(t, db.Close(), "Failed to close database")
	})
	return db
}

func TestStore_ClearDB(t *testing.T) {
	dir := t.TempDir()
	db, err := NewKVStore(context.Background(), dir)
	require.NoError(t, err)
	_, err = os.Stat(path.Join(dir, DatabaseFileName))
	require.NoError(t, err)

	require.NoError(t, db.ClearDB())
	_, err = os.Stat(path.Join(dir, DatabaseFileName))
	assert.Equal(t, true, os.IsNotExist(err))
	require.NoError(t, db.Close())
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := NewKVStore(ctx, dir)
	require.NoError(t, err)
	blk := testBlock(3)
	require.NoError(t, db.SaveBlock(ctx, blk))
	root, err := blk.HashTreeRoot()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewKVStore(ctx, dir)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	assert.Equal(t, true, db.HasBlock(ctx, root))
	assert.Equal(t, dir, db.DatabasePath())
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKVStore(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
