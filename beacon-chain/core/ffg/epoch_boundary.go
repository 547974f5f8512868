package ffg

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/monitoring/tracing"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/time/slots"
	"go.opencensus.io/trace"
)

var (
	// ErrMissingBlock is returned when a root of the chain cannot be resolved to a block.
	ErrMissingBlock = errors.New("block not found")
	// ErrNoBoundaryBlock is returned when no block of the chain is at or before an epoch start.
	// It means the chain does not end at a genesis block.
	ErrNoBoundaryBlock = errors.New("chain has no block at or before epoch start")
	// ErrNotSlotDecreasing is returned when walking parents does not strictly decrease the slot.
	ErrNotSlotDecreasing = errors.New("parent block slot is not lower than child slot")
	// ErrEpochOverflow is returned for an epoch whose start slot does not fit a uint64.
	ErrEpochOverflow = errors.New("epoch start slot overflows")
)

// BlockFetcher resolves block roots to blocks.
type BlockFetcher interface {
	Block(ctx context.Context, blockRoot [32]byte) (*ethpb.BeaconBlock, error)
}

// EpochBoundaryBlocks returns the epoch boundary block roots of epochs 0..epoch
// for a chain of roots given most recent first and ending at genesis.
// The result has epoch+1 entries and the entry at position epoch-k is the
// boundary block of epoch k: the most recent chain block whose slot is at most
// the first slot of epoch k. The chain is scanned once and never rewound.
func EpochBoundaryBlocks(
	ctx context.Context,
	fetcher BlockFetcher,
	chain [][32]byte,
	epoch primitives.Epoch,
) ([][32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "ffg.EpochBoundaryBlocks")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("epoch", int64(epoch))) // lint:ignore uintcast -- This is OK for tracing.

	if len(chain) == 0 {
		return nil, ErrNoBoundaryBlock
	}
	if _, err := slots.EpochStart(epoch); err != nil || epoch == math.MaxUint64 {
		return nil, errors.Wrapf(ErrEpochOverflow, "epoch %d", epoch)
	}
	ebbs := make([][32]byte, uint64(epoch)+1)
	slotCache := make(map[int]primitives.Slot)
	slotAt := func(i int) (primitives.Slot, error) {
		if s, ok := slotCache[i]; ok {
			return s, nil
		}
		blk, err := fetcher.Block(ctx, chain[i])
		if err != nil {
			return 0, errors.Wrapf(err, "could not fetch block %#x", chain[i])
		}
		if blk == nil {
			return 0, errors.Wrapf(ErrMissingBlock, "root %#x", chain[i])
		}
		slotCache[i] = blk.Slot
		return blk.Slot, nil
	}

	pos := 0
	for k := epoch; ; k-- {
		if err := ctx.Err(); err != nil {
			tracing.AnnotateError(span, err)
			return nil, err
		}
		bound, err := slots.EpochStart(k)
		if err != nil {
			return nil, errors.Wrapf(ErrEpochOverflow, "epoch %d", k)
		}
		for {
			if pos == len(chain) {
				err := errors.Wrapf(ErrNoBoundaryBlock, "epoch %d", k)
				tracing.AnnotateError(span, err)
				return nil, err
			}
			s, err := slotAt(pos)
			if err != nil {
				tracing.AnnotateError(span, err)
				return nil, err
			}
			if s <= bound {
				break
			}
			pos++
		}
		ebbs[epoch-k] = chain[pos]
		if k == 0 {
			break
		}
	}
	return ebbs, nil
}

// CanonicalChain walks parent roots from head down to the genesis block and
// returns the visited roots, most recent first.
func CanonicalChain(ctx context.Context, fetcher BlockFetcher, head [32]byte) ([][32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "ffg.CanonicalChain")
	defer span.End()

	var chain [][32]byte
	root := head
	lastSlot := primitives.Slot(math.MaxUint64)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blk, err := fetcher.Block(ctx, root)
		if err != nil {
			tracing.AnnotateError(span, err)
			return nil, errors.Wrapf(err, "could not fetch block %#x", root)
		}
		if blk == nil {
			return nil, errors.Wrapf(ErrMissingBlock, "root %#x", root)
		}
		if len(chain) > 0 && blk.Slot >= lastSlot {
			return nil, errors.Wrapf(ErrNotSlotDecreasing, "slot %d after %d", blk.Slot, lastSlot)
		}
		chain = append(chain, root)
		if blk.Slot == params.BeaconConfig().GenesisSlot {
			return chain, nil
		}
		lastSlot = blk.Slot
		root = blk.ParentRoot
	}
}

// Checkpoints pairs epoch boundary block roots with their epochs. The input is
// ordered as returned by EpochBoundaryBlocks, so ebbs[i] belongs to epoch len(ebbs)-1-i.
func Checkpoints(ebbs [][32]byte) []ethpb.Checkpoint {
	cps := make([]ethpb.Checkpoint, len(ebbs))
	last := len(ebbs) - 1
	for i, r := range ebbs {
		cps[i] = ethpb.Checkpoint{Epoch: primitives.Epoch(last - i), Root: r}
	}
	return cps
}
