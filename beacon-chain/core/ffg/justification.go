package ffg

import (
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

// AttestationLink is a vote by a set of validators for the link Source -> Target.
type AttestationLink struct {
	Source     ethpb.Checkpoint
	Target     ethpb.Checkpoint
	Validators []primitives.ValidatorIndex
}

type linkKey struct {
	source ethpb.Checkpoint
	target ethpb.Checkpoint
}

// Engine decides which epoch boundary checkpoints of a chain are justified and finalized.
type Engine struct {
	committeeSize uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithCommitteeSize sets the number of validators a link is measured against.
func WithCommitteeSize(n uint64) Option {
	return func(e *Engine) {
		e.committeeSize = n
	}
}

// NewEngine returns an engine. The committee size defaults to MaxValidatorsPerCommittee.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{committeeSize: params.BeaconConfig().MaxValidatorsPerCommittee}
	for _, o := range opts {
		o(e)
	}
	return e
}

// CommitteeSize of the engine.
func (e *Engine) CommitteeSize() uint64 {
	return e.committeeSize
}

// Result of running the engine over a list of checkpoints. Indices follow the
// checkpoint list: index 0 is the most recent epoch and the last index is genesis.
type Result struct {
	checkpoints []ethpb.Checkpoint
	justified   []bool
	finalized   []bool
}

// Process runs the justification rule over the checkpoints, ordered most recent
// first as returned by Checkpoints, using votes from links.
func (e *Engine) Process(checkpoints []ethpb.Checkpoint, links []*AttestationLink) *Result {
	n := len(checkpoints)
	res := &Result{
		checkpoints: checkpoints,
		justified:   make([]bool, n),
		finalized:   make([]bool, n),
	}
	if n == 0 {
		return res
	}
	genesis := n - 1
	res.justified[genesis] = true
	res.finalized[genesis] = true
	if n < 2 {
		return res
	}

	votes := make(map[linkKey]map[primitives.ValidatorIndex]struct{})
	for _, l := range links {
		if l == nil {
			continue
		}
		k := linkKey{source: l.Source, target: l.Target}
		voters, ok := votes[k]
		if !ok {
			voters = make(map[primitives.ValidatorIndex]struct{}, len(l.Validators))
			votes[k] = voters
		}
		for _, v := range l.Validators {
			voters[v] = struct{}{}
		}
	}
	supermajority := func(from, to int) bool {
		k := linkKey{source: checkpoints[from], target: checkpoints[to]}
		return IsSupermajority(uint64(len(votes[k])), e.committeeSize)
	}

	latestJustified := genesis
	for i := genesis - 1; i >= 0; i-- {
		for j := i + 1; j <= genesis; j++ {
			if res.justified[j] && supermajority(j, i) {
				res.justified[i] = true
				latestJustified = i
				break
			}
		}
	}

	for i := 1; i < genesis; i++ {
		if !res.justified[i] {
			continue
		}
		if supermajority(i, i-1) {
			res.finalized[i] = true
			continue
		}
		if i > 1 && res.justified[i-1] && supermajority(i, i-2) {
			res.finalized[i] = true
		}
	}

	lf, _ := res.LatestFinalized()
	log.WithFields(logrus.Fields{
		"checkpoints":          n,
		"links":                len(links),
		"latestJustifiedEpoch": checkpoints[latestJustified].Epoch,
		"latestFinalizedEpoch": lf.Epoch,
	}).Debug("Processed justification")
	return res
}

// Len is the number of checkpoints in the result.
func (r *Result) Len() int {
	return len(r.checkpoints)
}

// Checkpoint at index i.
func (r *Result) Checkpoint(i int) ethpb.Checkpoint {
	return r.checkpoints[i]
}

// Justified reports whether the checkpoint at index i is justified.
func (r *Result) Justified(i int) bool {
	if i < 0 || i >= len(r.justified) {
		return false
	}
	return r.justified[i]
}

// Finalized reports whether the checkpoint at index i is finalized.
func (r *Result) Finalized(i int) bool {
	if i < 0 || i >= len(r.finalized) {
		return false
	}
	return r.finalized[i]
}

// LatestJustified returns the justified checkpoint with the highest epoch.
func (r *Result) LatestJustified() (ethpb.Checkpoint, bool) {
	return latest(r.checkpoints, r.justified)
}

// LatestFinalized returns the finalized checkpoint with the highest epoch.
func (r *Result) LatestFinalized() (ethpb.Checkpoint, bool) {
	return latest(r.checkpoints, r.finalized)
}

// JustifiedCheckpoints returns all justified checkpoints, most recent first.
func (r *Result) JustifiedCheckpoints() []ethpb.Checkpoint {
	var cps []ethpb.Checkpoint
	for i, ok := range r.justified {
		if ok {
			cps = append(cps, r.checkpoints[i])
		}
	}
	return cps
}

func latest(cps []ethpb.Checkpoint, set []bool) (ethpb.Checkpoint, bool) {
	for i, ok := range set {
		if ok {
			return cps[i], true
		}
	}
	return ethpb.Checkpoint{}, false
}
