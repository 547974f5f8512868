package helpers

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

var (
	// ErrIndicesNotSorted is returned when attesting indices are not strictly increasing.
	ErrIndicesNotSorted = errors.New("attesting indices are not sorted and unique")
	// ErrIndexOutOfRange is returned when an attesting index is not in the registry.
	ErrIndexOutOfRange = errors.New("attesting index out of range")
	// ErrEmptyIndices is returned when an attestation has no attesters.
	ErrEmptyIndices = errors.New("attestation has no attesting indices")
)

// VerifyAttestingIndices checks that indices are non empty, strictly increasing and
// refer to validators of a registry of the given size.
func VerifyAttestingIndices(indices []primitives.ValidatorIndex, numValidators int) error {
	if len(indices) == 0 {
		return ErrEmptyIndices
	}
	for i, idx := range indices {
		if uint64(idx) >= uint64(numValidators) {
			return errors.Wrapf(ErrIndexOutOfRange, "index %d, registry size %d", idx, numValidators)
		}
		if i > 0 && indices[i-1] >= idx {
			return ErrIndicesNotSorted
		}
	}
	return nil
}

// AggregateAttestation aggregates attestations a1 and a2 together. Both must vote for the same data.
func AggregateAttestation(a1 *ethpb.Attestation, a2 *ethpb.Attestation) (*ethpb.Attestation, error) {
	if a1.Data != a2.Data {
		return nil, errors.New("can not aggregate attestations with different data")
	}
	seen := make(map[primitives.ValidatorIndex]bool, len(a1.AttestingIndices)+len(a2.AttestingIndices))
	merged := make([]primitives.ValidatorIndex, 0, len(a1.AttestingIndices)+len(a2.AttestingIndices))
	for _, list := range [][]primitives.ValidatorIndex{a1.AttestingIndices, a2.AttestingIndices} {
		for _, idx := range list {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			merged = append(merged, idx)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	return &ethpb.Attestation{AttestingIndices: merged, Data: a1.Data}, nil
}
