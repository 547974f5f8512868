package eth

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
	"github.com/prysmaticlabs/go-bitfield"
)

// BeaconState is the raw chain state container. It is wrapped by the
// beacon-chain/state package, which owns copy-on-write access to it.
type BeaconState struct {
	GenesisTime                 uint64
	Slot                        primitives.Slot
	LatestBlockHeader           *BeaconBlockHeader
	BlockRoots                  [][32]byte
	StateRoots                  [][32]byte
	Eth1Data                    *Eth1Data
	Eth1DepositIndex            uint64
	Validators                  []*Validator
	Balances                    []primitives.Gwei
	PreviousEpochAttestations   []*PendingAttestation
	CurrentEpochAttestations    []*PendingAttestation
	JustificationBits           bitfield.Bitvector4
	PreviousJustifiedCheckpoint Checkpoint
	CurrentJustifiedCheckpoint  Checkpoint
	FinalizedCheckpoint         Checkpoint
}

// Copy --
func (s *BeaconState) Copy() *BeaconState {
	if s == nil {
		return nil
	}
	var balances []primitives.Gwei
	if s.Balances != nil {
		balances = make([]primitives.Gwei, len(s.Balances))
		copy(balances, s.Balances)
	}
	var bits bitfield.Bitvector4
	if s.JustificationBits != nil {
		bits = bytesutil.SafeCopyBytes(s.JustificationBits)
	}
	return &BeaconState{
		GenesisTime:                 s.GenesisTime,
		Slot:                        s.Slot,
		LatestBlockHeader:           s.LatestBlockHeader.Copy(),
		BlockRoots:                  bytesutil.SafeCopyRoots(s.BlockRoots),
		StateRoots:                  bytesutil.SafeCopyRoots(s.StateRoots),
		Eth1Data:                    s.Eth1Data.Copy(),
		Eth1DepositIndex:            s.Eth1DepositIndex,
		Validators:                  CopySlice(s.Validators),
		Balances:                    balances,
		PreviousEpochAttestations:   CopySlice(s.PreviousEpochAttestations),
		CurrentEpochAttestations:    CopySlice(s.CurrentEpochAttestations),
		JustificationBits:           bits,
		PreviousJustifiedCheckpoint: s.PreviousJustifiedCheckpoint,
		CurrentJustifiedCheckpoint:  s.CurrentJustifiedCheckpoint,
		FinalizedCheckpoint:         s.FinalizedCheckpoint,
	}
}

func historicalRootsLength() int {
	return int(params.BeaconConfig().SlotsPerHistoricalRoot)
}

func pendingAttestationsLimit() uint64 {
	cfg := params.BeaconConfig()
	return cfg.MaxAttestations * uint64(cfg.SlotsPerEpoch)
}

func beaconStateFixedSize() int {
	return 8 + 8 + blockHeaderSize + 2*32*historicalRootsLength() + eth1DataSize + 8 +
		4*bytesPerLengthOffset + 1 + 3*checkpointSize
}

// MarshalSSZ ssz marshals the BeaconState object
func (s *BeaconState) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(s)
}

// MarshalSSZTo ssz marshals the BeaconState object to a target array
func (s *BeaconState) MarshalSSZTo(dst []byte) ([]byte, error) {
	h := historicalRootsLength()
	if len(s.BlockRoots) != h || len(s.StateRoots) != h {
		return nil, errors.Wrapf(fssz.ErrBytesLength, "historical roots must have %d elements", h)
	}
	cfg := params.BeaconConfig()
	if uint64(len(s.Validators)) > cfg.ValidatorRegistryLimit || uint64(len(s.Balances)) > cfg.ValidatorRegistryLimit {
		return nil, errors.Wrap(ErrListTooBig, "validator registry")
	}
	if uint64(len(s.PreviousEpochAttestations)) > pendingAttestationsLimit() ||
		uint64(len(s.CurrentEpochAttestations)) > pendingAttestationsLimit() {
		return nil, errors.Wrap(ErrListTooBig, "pending attestations")
	}

	dst = fssz.MarshalUint64(dst, s.GenesisTime)
	dst = fssz.MarshalUint64(dst, uint64(s.Slot))
	header := s.LatestBlockHeader
	if header == nil {
		header = &BeaconBlockHeader{}
	}
	dst, _ = header.MarshalSSZTo(dst)
	for _, r := range s.BlockRoots {
		dst = append(dst, r[:]...)
	}
	for _, r := range s.StateRoots {
		dst = append(dst, r[:]...)
	}
	eth1Data := s.Eth1Data
	if eth1Data == nil {
		eth1Data = &Eth1Data{}
	}
	dst, _ = eth1Data.MarshalSSZTo(dst)
	dst = fssz.MarshalUint64(dst, s.Eth1DepositIndex)

	offset := beaconStateFixedSize()
	dst = fssz.WriteOffset(dst, offset)
	offset += len(s.Validators) * validatorSize
	dst = fssz.WriteOffset(dst, offset)
	offset += len(s.Balances) * 8
	dst = fssz.WriteOffset(dst, offset)
	offset += dynamicListSize(s.PreviousEpochAttestations)
	dst = fssz.WriteOffset(dst, offset)

	dst = append(dst, justificationByte(s.JustificationBits))
	dst, _ = s.PreviousJustifiedCheckpoint.MarshalSSZTo(dst)
	dst, _ = s.CurrentJustifiedCheckpoint.MarshalSSZTo(dst)
	dst, _ = s.FinalizedCheckpoint.MarshalSSZTo(dst)

	for _, v := range s.Validators {
		if v == nil {
			v = &Validator{}
		}
		dst, _ = v.MarshalSSZTo(dst)
	}
	for _, b := range s.Balances {
		dst = fssz.MarshalUint64(dst, uint64(b))
	}
	var err error
	if dst, err = marshalDynamicList(dst, s.PreviousEpochAttestations); err != nil {
		return nil, errors.Wrap(err, "previous epoch attestations")
	}
	if dst, err = marshalDynamicList(dst, s.CurrentEpochAttestations); err != nil {
		return nil, errors.Wrap(err, "current epoch attestations")
	}
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconState object
func (s *BeaconState) SizeSSZ() int {
	return beaconStateFixedSize() +
		len(s.Validators)*validatorSize +
		len(s.Balances)*8 +
		dynamicListSize(s.PreviousEpochAttestations) +
		dynamicListSize(s.CurrentEpochAttestations)
}

// UnmarshalSSZ ssz unmarshals the BeaconState object
func (s *BeaconState) UnmarshalSSZ(buf []byte) error {
	fixed := beaconStateFixedSize()
	if len(buf) < fixed {
		return fssz.ErrSize
	}
	cfg := params.BeaconConfig()
	h := historicalRootsLength()

	s.GenesisTime = fssz.UnmarshallUint64(buf[0:8])
	s.Slot = primitives.Slot(fssz.UnmarshallUint64(buf[8:16]))
	pos := 16
	s.LatestBlockHeader = &BeaconBlockHeader{}
	if err := s.LatestBlockHeader.UnmarshalSSZ(buf[pos : pos+blockHeaderSize]); err != nil {
		return err
	}
	pos += blockHeaderSize
	s.BlockRoots = make([][32]byte, h)
	for i := 0; i < h; i++ {
		copy(s.BlockRoots[i][:], buf[pos:pos+32])
		pos += 32
	}
	s.StateRoots = make([][32]byte, h)
	for i := 0; i < h; i++ {
		copy(s.StateRoots[i][:], buf[pos:pos+32])
		pos += 32
	}
	s.Eth1Data = &Eth1Data{}
	if err := s.Eth1Data.UnmarshalSSZ(buf[pos : pos+eth1DataSize]); err != nil {
		return err
	}
	pos += eth1DataSize
	s.Eth1DepositIndex = fssz.UnmarshallUint64(buf[pos : pos+8])
	pos += 8

	offsets := make([]uint64, 5)
	for i := 0; i < 4; i++ {
		offsets[i] = fssz.ReadOffset(buf[pos : pos+4])
		pos += 4
	}
	offsets[4] = uint64(len(buf))
	if offsets[0] != uint64(fixed) {
		return fssz.ErrOffset
	}
	for i := 0; i < 4; i++ {
		if offsets[i] > offsets[i+1] {
			return fssz.ErrOffset
		}
	}

	if buf[pos]&0xf0 != 0 {
		return errors.New("justification bits has bits set above its length")
	}
	s.JustificationBits = bitfield.Bitvector4{buf[pos]}
	pos++
	if err := s.PreviousJustifiedCheckpoint.UnmarshalSSZ(buf[pos : pos+checkpointSize]); err != nil {
		return err
	}
	pos += checkpointSize
	if err := s.CurrentJustifiedCheckpoint.UnmarshalSSZ(buf[pos : pos+checkpointSize]); err != nil {
		return err
	}
	pos += checkpointSize
	if err := s.FinalizedCheckpoint.UnmarshalSSZ(buf[pos : pos+checkpointSize]); err != nil {
		return err
	}

	s.Validators = nil
	if _, err := unmarshalFixedList(buf[offsets[0]:offsets[1]], validatorSize, cfg.ValidatorRegistryLimit, func(_ int, elem []byte) error {
		v := &Validator{}
		if err := v.UnmarshalSSZ(elem); err != nil {
			return err
		}
		s.Validators = append(s.Validators, v)
		return nil
	}); err != nil {
		return errors.Wrap(err, "validators")
	}
	s.Balances = nil
	if _, err := unmarshalFixedList(buf[offsets[1]:offsets[2]], 8, cfg.ValidatorRegistryLimit, func(_ int, elem []byte) error {
		s.Balances = append(s.Balances, primitives.Gwei(fssz.UnmarshallUint64(elem)))
		return nil
	}); err != nil {
		return errors.Wrap(err, "balances")
	}
	prev, err := unmarshalPendingAttestations(buf[offsets[2]:offsets[3]])
	if err != nil {
		return errors.Wrap(err, "previous epoch attestations")
	}
	s.PreviousEpochAttestations = prev
	curr, err := unmarshalPendingAttestations(buf[offsets[3]:offsets[4]])
	if err != nil {
		return errors.Wrap(err, "current epoch attestations")
	}
	s.CurrentEpochAttestations = curr
	return nil
}

func unmarshalPendingAttestations(buf []byte) ([]*PendingAttestation, error) {
	var atts []*PendingAttestation
	if _, err := unmarshalDynamicList(buf, pendingAttestationsLimit(), func(_ int, elem []byte) error {
		a := &PendingAttestation{}
		if err := a.UnmarshalSSZ(elem); err != nil {
			return err
		}
		atts = append(atts, a)
		return nil
	}); err != nil {
		return nil, err
	}
	return atts, nil
}

func justificationByte(bits bitfield.Bitvector4) byte {
	if len(bits) == 0 {
		return 0
	}
	return bits[0] & 0x0f
}

// BeaconStateFieldCount is the number of fields of the BeaconState container.
const BeaconStateFieldCount = 15

// HashTreeRoot ssz hashes the BeaconState object
func (s *BeaconState) HashTreeRoot() ([32]byte, error) {
	roots := make([][32]byte, BeaconStateFieldCount)
	for i := range roots {
		r, err := s.FieldRoot(i)
		if err != nil {
			return [32]byte{}, err
		}
		roots[i] = r
	}
	return ssz.ContainerRoot(roots)
}

// FieldRoot returns the hash tree root of the field at the given position
// in the container, so callers can cache roots of unchanged fields.
func (s *BeaconState) FieldRoot(field int) ([32]byte, error) {
	cfg := params.BeaconConfig()
	switch field {
	case 0:
		return ssz.Uint64Root(s.GenesisTime), nil
	case 1:
		return ssz.Uint64Root(uint64(s.Slot)), nil
	case 2:
		header := s.LatestBlockHeader
		if header == nil {
			header = &BeaconBlockHeader{}
		}
		return header.HashTreeRoot()
	case 3, 4:
		roots, name := s.BlockRoots, "block roots"
		if field == 4 {
			roots, name = s.StateRoots, "state roots"
		}
		if len(roots) != historicalRootsLength() {
			return [32]byte{}, errors.Wrapf(fssz.ErrBytesLength, "historical roots must have %d elements", historicalRootsLength())
		}
		r, err := ssz.RootsVectorRoot(roots)
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "could not compute %s merkleization", name)
		}
		return r, nil
	case 5:
		eth1Data := s.Eth1Data
		if eth1Data == nil {
			eth1Data = &Eth1Data{}
		}
		return eth1Data.HashTreeRoot()
	case 6:
		return ssz.Uint64Root(s.Eth1DepositIndex), nil
	case 7:
		valRoots := make([][32]byte, len(s.Validators))
		for i, v := range s.Validators {
			if v == nil {
				v = &Validator{}
			}
			r, err := v.HashTreeRoot()
			if err != nil {
				return [32]byte{}, err
			}
			valRoots[i] = r
		}
		r, err := ssz.ListRoot(valRoots, cfg.ValidatorRegistryLimit)
		if err != nil {
			return [32]byte{}, errors.Wrap(err, "could not compute validator registry merkleization")
		}
		return r, nil
	case 8:
		balances := make([]uint64, len(s.Balances))
		for i, b := range s.Balances {
			balances[i] = uint64(b)
		}
		r, err := ssz.Uint64ListRoot(balances, cfg.ValidatorRegistryLimit)
		if err != nil {
			return [32]byte{}, errors.Wrap(err, "could not compute balances merkleization")
		}
		return r, nil
	case 9:
		return pendingAttestationsRoot(s.PreviousEpochAttestations)
	case 10:
		return pendingAttestationsRoot(s.CurrentEpochAttestations)
	case 11:
		return [32]byte{justificationByte(s.JustificationBits)}, nil
	case 12:
		return s.PreviousJustifiedCheckpoint.HashTreeRoot()
	case 13:
		return s.CurrentJustifiedCheckpoint.HashTreeRoot()
	case 14:
		return s.FinalizedCheckpoint.HashTreeRoot()
	default:
		return [32]byte{}, errors.Errorf("beacon state has no field %d", field)
	}
}

func pendingAttestationsRoot(atts []*PendingAttestation) ([32]byte, error) {
	roots := make([][32]byte, len(atts))
	for i, a := range atts {
		if a == nil {
			a = &PendingAttestation{}
		}
		r, err := a.HashTreeRoot()
		if err != nil {
			return [32]byte{}, errors.Wrap(err, "could not hash pending attestation")
		}
		roots[i] = r
	}
	return ssz.ListRoot(roots, pendingAttestationsLimit())
}
