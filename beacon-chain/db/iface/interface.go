// Package iface defines the actual database interface used
// by the fork-head service, also containing useful, scoped interfaces such as
// a ReadOnlyDatabase.
package iface

import (
	"context"
	"io"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// ReadOnlyDatabase defines a struct which only has read access to database methods.
type ReadOnlyDatabase interface {
	// Block related methods.
	Block(ctx context.Context, blockRoot [32]byte) (*ethpb.BeaconBlock, error)
	BlockRoots(ctx context.Context) ([][32]byte, error)
	HasBlock(ctx context.Context, blockRoot [32]byte) bool
	// State related methods.
	State(ctx context.Context, blockRoot [32]byte) (*state.BeaconState, error)
	HasState(ctx context.Context, blockRoot [32]byte) bool
	// Fork head related methods.
	HeadBlockRoots(ctx context.Context) ([][32]byte, error)
	// DatabasePath at which the store writes files.
	DatabasePath() string
}

// NoHeadAccessDatabase defines a struct without access to fork head methods.
type NoHeadAccessDatabase interface {
	ReadOnlyDatabase

	// Block related methods.
	SaveBlock(ctx context.Context, block *ethpb.BeaconBlock) error
	// State related methods.
	SaveState(ctx context.Context, state *state.BeaconState, blockRoot [32]byte) error
	DeleteState(ctx context.Context, blockRoot [32]byte) error
}

// HeadAccessDatabase defines a struct with access to reading chain head data.
type HeadAccessDatabase interface {
	NoHeadAccessDatabase

	SaveHeadBlockRoot(ctx context.Context, blockRoot [32]byte) error
	DeleteHeadBlockRoot(ctx context.Context, blockRoot [32]byte) error
}

// Database interface with full access.
type Database interface {
	io.Closer
	HeadAccessDatabase

	ClearDB() error
	Backup(ctx context.Context, outputDir string, permissionOverride bool) error
}
