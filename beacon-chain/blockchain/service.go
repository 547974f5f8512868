// Package blockchain defines the fork-head service. It applies blocks on top
// of any stored fork head, keeps the chain store up to date, and computes the
// justification and finality view of each fork from the attestations its
// blocks carry.
package blockchain

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/db/iface"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/features"
	"github.com/prysmaticlabs/gasper/runtime"
)

var _ runtime.Service = (*Service)(nil)

const (
	finalityCacheExpiration = 10 * time.Minute
	finalityCacheCleanup    = 20 * time.Minute
)

// Service represents a service that applies blocks to the fork heads of
// the chain store.
type Service struct {
	cfg           *config
	ctx           context.Context
	cancel        context.CancelFunc
	genesisRoot   [32]byte
	genesisLock   sync.RWMutex
	headLocks     map[[32]byte]*sync.Mutex
	headLocksLock sync.Mutex
	finality      *gocache.Cache
	statusErr     error
}

// config options for the service.
type config struct {
	BeaconDB     iface.HeadAccessDatabase
	GenesisState *state.BeaconState
}

// NewService instantiates a new block service instance that will
// be registered into a running beacon node.
func NewService(ctx context.Context, opts ...Option) (*Service, error) {
	ctx, cancel := context.WithCancel(ctx)
	srv := &Service{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       &config{},
		headLocks: make(map[[32]byte]*sync.Mutex),
		finality:  gocache.New(finalityCacheExpiration, finalityCacheCleanup),
	}
	for _, opt := range opts {
		if err := opt(srv); err != nil {
			cancel()
			return nil, err
		}
	}
	if srv.cfg.BeaconDB == nil {
		cancel()
		return nil, errNilDatabase
	}
	if features.Get().DisableSkipSlotCache {
		transition.SkipSlotCache.Disable()
	}
	return srv, nil
}

// Start a blockchain service's main event loop. A genesis state passed with
// WithGenesisState is saved when the store has no fork head yet.
func (s *Service) Start() {
	log.Info("Starting blockchain service")
	if err := s.initialize(s.ctx); err != nil {
		log.WithError(err).Error("Could not initialize blockchain service")
		s.statusErr = err
	}
}

// Stop the blockchain service's main event loop and associated goroutines.
func (s *Service) Stop() error {
	defer s.cancel()
	log.Info("Stopping blockchain service")
	return nil
}

// Status always returns nil unless there is an error condition that causes
// this service to be unhealthy.
func (s *Service) Status() error {
	return s.statusErr
}

func (s *Service) initialize(ctx context.Context) error {
	heads, err := s.cfg.BeaconDB.HeadBlockRoots(ctx)
	if err != nil {
		return errors.Wrap(err, "could not read fork heads")
	}
	if len(heads) > 0 {
		log.WithField("heads", len(heads)).Info("Resuming from stored fork heads")
		forkHeads.Set(float64(len(heads)))
		return nil
	}
	if s.cfg.GenesisState == nil {
		return errors.New("no fork heads in db and no genesis state provided")
	}
	_, err = s.SaveGenesisData(ctx, s.cfg.GenesisState)
	return err
}

// SaveGenesisData saves the genesis block built from the genesis state and
// marks it as the only fork head.
func (s *Service) SaveGenesisData(ctx context.Context, genesisState *state.BeaconState) ([32]byte, error) {
	if genesisState == nil {
		return [32]byte{}, errors.New("nil genesis state")
	}
	stateRoot, err := genesisState.HashTreeRoot(ctx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash genesis state")
	}
	genesisBlk := blocks.NewGenesisBlock(stateRoot)
	genesisRoot, err := genesisBlk.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get genesis block root")
	}
	if err := s.cfg.BeaconDB.SaveBlock(ctx, genesisBlk); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save genesis block")
	}
	if err := s.cfg.BeaconDB.SaveState(ctx, genesisState, genesisRoot); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save genesis state")
	}
	if err := s.cfg.BeaconDB.SaveHeadBlockRoot(ctx, genesisRoot); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save genesis head")
	}
	s.genesisLock.Lock()
	s.genesisRoot = genesisRoot
	s.genesisLock.Unlock()
	forkHeads.Set(1)
	log.WithField("root", shortRoot(genesisRoot)).Info("Saved genesis block")
	return genesisRoot, nil
}

// GenesisBlockRoot returns the root of the genesis block saved by this service.
func (s *Service) GenesisBlockRoot() [32]byte {
	s.genesisLock.RLock()
	defer s.genesisLock.RUnlock()
	return s.genesisRoot
}

// headLock returns the lock serializing block application on top of root.
func (s *Service) headLock(root [32]byte) *sync.Mutex {
	s.headLocksLock.Lock()
	defer s.headLocksLock.Unlock()
	l, ok := s.headLocks[root]
	if !ok {
		l = &sync.Mutex{}
		s.headLocks[root] = l
	}
	return l
}
