package blockchain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/ffg"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/time/slots"
	"go.opencensus.io/trace"
)

// ChainInfoFetcher defines a common interface for methods in blockchain service which
// directly retrieve chain info related data.
type ChainInfoFetcher interface {
	HeadRoots(ctx context.Context) ([][32]byte, error)
	HeadState(ctx context.Context, headRoot [32]byte) (*state.BeaconState, error)
	ChainFinality(ctx context.Context, headRoot [32]byte) (*ffg.Result, error)
}

// HeadRoots returns the block roots of every fork head.
func (s *Service) HeadRoots(ctx context.Context) ([][32]byte, error) {
	return s.cfg.BeaconDB.HeadBlockRoots(ctx)
}

// HeadState returns a copy of the post state of a stored block.
func (s *Service) HeadState(ctx context.Context, headRoot [32]byte) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "blockChain.HeadState")
	defer span.End()
	st, err := s.cfg.BeaconDB.State(ctx, headRoot)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.Wrapf(errNilHeadState, "root %#x", headRoot)
	}
	return st, nil
}

// ChainFinality computes which epoch boundary checkpoints of the chain ending at
// headRoot are justified and finalized, counting the votes of the attestations
// included in the blocks of that chain. Results are cached per head root since
// a chain is immutable once stored.
func (s *Service) ChainFinality(ctx context.Context, headRoot [32]byte) (*ffg.Result, error) {
	ctx, span := trace.StartSpan(ctx, "blockChain.ChainFinality")
	defer span.End()

	key := string(headRoot[:])
	if v, ok := s.finality.Get(key); ok {
		if res, ok := v.(*ffg.Result); ok {
			finalityCacheHit.Inc()
			return res, nil
		}
	}
	finalityCacheMiss.Inc()

	headBlk, err := s.cfg.BeaconDB.Block(ctx, headRoot)
	if err != nil {
		return nil, err
	}
	if headBlk == nil {
		return nil, errors.Wrapf(ffg.ErrMissingBlock, "head root %#x", headRoot)
	}
	headState, err := s.HeadState(ctx, headRoot)
	if err != nil {
		return nil, err
	}
	chain, err := ffg.CanonicalChain(ctx, s.cfg.BeaconDB, headRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not walk chain")
	}
	ebbs, err := ffg.EpochBoundaryBlocks(ctx, s.cfg.BeaconDB, chain, slots.ToEpoch(headBlk.Slot))
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve epoch boundary blocks")
	}
	links, err := s.chainLinks(ctx, chain, ebbs[len(ebbs)-1])
	if err != nil {
		return nil, err
	}

	opts := make([]ffg.Option, 0, 1)
	if n := uint64(headState.NumValidators()); n > 0 {
		opts = append(opts, ffg.WithCommitteeSize(n))
	}
	engine := ffg.NewEngine(opts...)
	span.AddAttributes(trace.Int64Attribute("committeeSize", int64(engine.CommitteeSize())))
	res := engine.Process(ffg.Checkpoints(ebbs), links)
	s.finality.SetDefault(key, res)
	return res, nil
}

// chainLinks collects the source -> target votes of every attestation included
// in the chain. The genesis checkpoint is committed to with a zero root in the
// state and is mapped to the genesis block root here.
func (s *Service) chainLinks(ctx context.Context, chain [][32]byte, genesisRoot [32]byte) ([]*ffg.AttestationLink, error) {
	genesisEpoch := params.BeaconConfig().GenesisEpoch
	zero := params.BeaconConfig().ZeroHash
	resolve := func(cp ethpb.Checkpoint) ethpb.Checkpoint {
		if cp.Epoch == genesisEpoch && cp.Root == zero {
			cp.Root = genesisRoot
		}
		return cp
	}
	var links []*ffg.AttestationLink
	for _, r := range chain {
		blk, err := s.cfg.BeaconDB.Block(ctx, r)
		if err != nil {
			return nil, err
		}
		if blk == nil {
			return nil, errors.Wrapf(ffg.ErrMissingBlock, "root %#x", r)
		}
		for _, att := range blk.Body.Attestations {
			if att == nil {
				continue
			}
			links = append(links, &ffg.AttestationLink{
				Source:     resolve(att.Data.Source),
				Target:     resolve(att.Data.Target),
				Validators: att.AttestingIndices,
			})
		}
	}
	return links, nil
}
