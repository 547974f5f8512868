package blockchain

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/db/iface"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
)

// Option is a functional option for the blockchain service.
type Option func(s *Service) error

// WithDatabase for head access.
func WithDatabase(beaconDB iface.HeadAccessDatabase) Option {
	return func(s *Service) error {
		s.cfg.BeaconDB = beaconDB
		return nil
	}
}

// WithGenesisState sets the state saved as genesis on start when the
// database has no fork head.
func WithGenesisState(st *state.BeaconState) Option {
	return func(s *Service) error {
		s.cfg.GenesisState = st
		return nil
	}
}
