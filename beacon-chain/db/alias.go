package db

import "github.com/prysmaticlabs/gasper/beacon-chain/db/iface"

// ReadOnlyDatabase exposes the store's read only methods.
type ReadOnlyDatabase = iface.ReadOnlyDatabase

// HeadAccessDatabase exposes the store's fork head methods.
type HeadAccessDatabase = iface.HeadAccessDatabase

// Database defines the necessary methods for the chain store.
type Database = iface.Database
