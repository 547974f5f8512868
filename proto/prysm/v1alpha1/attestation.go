package eth

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
)

const (
	attestationDataSize           = 8 + 32 + checkpointSize + checkpointSize
	attestationFixedSize          = bytesPerLengthOffset + attestationDataSize
	pendingAttestationFixedSize   = bytesPerLengthOffset + attestationDataSize + 8 + 8
	validatorIndexSize            = 8
)

// AttestationData is the vote cast by a validator: a head block and an FFG
// source -> target link between two checkpoints.
type AttestationData struct {
	Slot            primitives.Slot
	BeaconBlockRoot [32]byte
	Source          Checkpoint
	Target          Checkpoint
}

// Copy --
func (a *AttestationData) Copy() *AttestationData {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// MarshalSSZ ssz marshals the AttestationData object
func (a *AttestationData) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the AttestationData object to a target array
func (a *AttestationData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = fssz.MarshalUint64(dst, uint64(a.Slot))
	dst = append(dst, a.BeaconBlockRoot[:]...)
	dst, _ = a.Source.MarshalSSZTo(dst)
	dst, _ = a.Target.MarshalSSZTo(dst)
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the AttestationData object
func (a *AttestationData) SizeSSZ() int {
	return attestationDataSize
}

// UnmarshalSSZ ssz unmarshals the AttestationData object
func (a *AttestationData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != attestationDataSize {
		return fssz.ErrSize
	}
	a.Slot = primitives.Slot(fssz.UnmarshallUint64(buf[0:8]))
	copy(a.BeaconBlockRoot[:], buf[8:40])
	if err := a.Source.UnmarshalSSZ(buf[40:80]); err != nil {
		return err
	}
	return a.Target.UnmarshalSSZ(buf[80:120])
}

// HashTreeRoot ssz hashes the AttestationData object
func (a *AttestationData) HashTreeRoot() ([32]byte, error) {
	sourceRoot, err := a.Source.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	targetRoot, err := a.Target.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{
		ssz.Uint64Root(uint64(a.Slot)),
		a.BeaconBlockRoot,
		sourceRoot,
		targetRoot,
	})
}

// Attestation carries a vote together with the sorted indices of the validators that cast it.
type Attestation struct {
	AttestingIndices []primitives.ValidatorIndex
	Data             AttestationData
}

// Copy --
func (a *Attestation) Copy() *Attestation {
	if a == nil {
		return nil
	}
	return &Attestation{
		AttestingIndices: copyIndices(a.AttestingIndices),
		Data:             a.Data,
	}
}

// MarshalSSZ ssz marshals the Attestation object
func (a *Attestation) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the Attestation object to a target array
func (a *Attestation) MarshalSSZTo(dst []byte) ([]byte, error) {
	if uint64(len(a.AttestingIndices)) > params.BeaconConfig().MaxValidatorsPerCommittee {
		return nil, errors.Wrap(ErrListTooBig, "attesting indices")
	}
	dst = fssz.WriteOffset(dst, attestationFixedSize)
	dst, _ = a.Data.MarshalSSZTo(dst)
	return marshalIndices(dst, a.AttestingIndices), nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Attestation object
func (a *Attestation) SizeSSZ() int {
	return attestationFixedSize + len(a.AttestingIndices)*validatorIndexSize
}

// UnmarshalSSZ ssz unmarshals the Attestation object
func (a *Attestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < attestationFixedSize {
		return fssz.ErrSize
	}
	if fssz.ReadOffset(buf[0:4]) != attestationFixedSize {
		return fssz.ErrOffset
	}
	if err := a.Data.UnmarshalSSZ(buf[4:attestationFixedSize]); err != nil {
		return err
	}
	indices, err := unmarshalIndices(buf[attestationFixedSize:], params.BeaconConfig().MaxValidatorsPerCommittee)
	if err != nil {
		return err
	}
	a.AttestingIndices = indices
	return nil
}

// HashTreeRoot ssz hashes the Attestation object
func (a *Attestation) HashTreeRoot() ([32]byte, error) {
	indicesRoot, err := indicesRoot(a.AttestingIndices, params.BeaconConfig().MaxValidatorsPerCommittee)
	if err != nil {
		return [32]byte{}, err
	}
	dataRoot, err := a.Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{indicesRoot, dataRoot})
}

// PendingAttestation is an attestation recorded in the state until the end of
// the epoch after its target, when it is counted towards justification.
type PendingAttestation struct {
	AttestingIndices []primitives.ValidatorIndex
	Data             AttestationData
	InclusionDelay   primitives.Slot
	ProposerIndex    primitives.ValidatorIndex
}

// Copy --
func (a *PendingAttestation) Copy() *PendingAttestation {
	if a == nil {
		return nil
	}
	return &PendingAttestation{
		AttestingIndices: copyIndices(a.AttestingIndices),
		Data:             a.Data,
		InclusionDelay:   a.InclusionDelay,
		ProposerIndex:    a.ProposerIndex,
	}
}

// MarshalSSZ ssz marshals the PendingAttestation object
func (a *PendingAttestation) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the PendingAttestation object to a target array
func (a *PendingAttestation) MarshalSSZTo(dst []byte) ([]byte, error) {
	if uint64(len(a.AttestingIndices)) > params.BeaconConfig().MaxValidatorsPerCommittee {
		return nil, errors.Wrap(ErrListTooBig, "attesting indices")
	}
	dst = fssz.WriteOffset(dst, pendingAttestationFixedSize)
	dst, _ = a.Data.MarshalSSZTo(dst)
	dst = fssz.MarshalUint64(dst, uint64(a.InclusionDelay))
	dst = fssz.MarshalUint64(dst, uint64(a.ProposerIndex))
	return marshalIndices(dst, a.AttestingIndices), nil
}

// SizeSSZ returns the ssz encoded size in bytes for the PendingAttestation object
func (a *PendingAttestation) SizeSSZ() int {
	return pendingAttestationFixedSize + len(a.AttestingIndices)*validatorIndexSize
}

// UnmarshalSSZ ssz unmarshals the PendingAttestation object
func (a *PendingAttestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < pendingAttestationFixedSize {
		return fssz.ErrSize
	}
	if fssz.ReadOffset(buf[0:4]) != pendingAttestationFixedSize {
		return fssz.ErrOffset
	}
	if err := a.Data.UnmarshalSSZ(buf[4 : 4+attestationDataSize]); err != nil {
		return err
	}
	a.InclusionDelay = primitives.Slot(fssz.UnmarshallUint64(buf[124:132]))
	a.ProposerIndex = primitives.ValidatorIndex(fssz.UnmarshallUint64(buf[132:140]))
	indices, err := unmarshalIndices(buf[pendingAttestationFixedSize:], params.BeaconConfig().MaxValidatorsPerCommittee)
	if err != nil {
		return err
	}
	a.AttestingIndices = indices
	return nil
}

// HashTreeRoot ssz hashes the PendingAttestation object
func (a *PendingAttestation) HashTreeRoot() ([32]byte, error) {
	indicesRoot, err := indicesRoot(a.AttestingIndices, params.BeaconConfig().MaxValidatorsPerCommittee)
	if err != nil {
		return [32]byte{}, err
	}
	dataRoot, err := a.Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{
		indicesRoot,
		dataRoot,
		ssz.Uint64Root(uint64(a.InclusionDelay)),
		ssz.Uint64Root(uint64(a.ProposerIndex)),
	})
}

func copyIndices(indices []primitives.ValidatorIndex) []primitives.ValidatorIndex {
	if indices == nil {
		return nil
	}
	c := make([]primitives.ValidatorIndex, len(indices))
	copy(c, indices)
	return c
}

func marshalIndices(dst []byte, indices []primitives.ValidatorIndex) []byte {
	for _, idx := range indices {
		dst = fssz.MarshalUint64(dst, uint64(idx))
	}
	return dst
}

func unmarshalIndices(buf []byte, limit uint64) ([]primitives.ValidatorIndex, error) {
	var indices []primitives.ValidatorIndex
	if _, err := unmarshalFixedList(buf, validatorIndexSize, limit, func(_ int, b []byte) error {
		indices = append(indices, primitives.ValidatorIndex(fssz.UnmarshallUint64(b)))
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "attesting indices")
	}
	return indices, nil
}

func indicesRoot(indices []primitives.ValidatorIndex, limit uint64) ([32]byte, error) {
	vals := make([]uint64, len(indices))
	for i, idx := range indices {
		vals[i] = uint64(idx)
	}
	return ssz.Uint64ListRoot(vals, limit)
}
