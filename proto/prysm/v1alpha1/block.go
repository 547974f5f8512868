package eth

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
)

const (
	blockHeaderSize    = 8 + 8 + 32 + 32 + 32
	blockFixedSize     = 8 + 8 + 32 + 32 + bytesPerLengthOffset
	blockBodyFixedSize = 32 + bytesPerLengthOffset + bytesPerLengthOffset
)

// BeaconBlockHeader summarizes a block with the root of its body.
// A zero StateRoot marks a header whose post-state root is not yet known.
type BeaconBlockHeader struct {
	Slot          primitives.Slot
	ProposerIndex primitives.ValidatorIndex
	ParentRoot    [32]byte
	StateRoot     [32]byte
	BodyRoot      [32]byte
}

// Copy --
func (h *BeaconBlockHeader) Copy() *BeaconBlockHeader {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// MarshalSSZ ssz marshals the BeaconBlockHeader object
func (h *BeaconBlockHeader) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(h)
}

// MarshalSSZTo ssz marshals the BeaconBlockHeader object to a target array
func (h *BeaconBlockHeader) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = fssz.MarshalUint64(dst, uint64(h.Slot))
	dst = fssz.MarshalUint64(dst, uint64(h.ProposerIndex))
	dst = append(dst, h.ParentRoot[:]...)
	dst = append(dst, h.StateRoot[:]...)
	dst = append(dst, h.BodyRoot[:]...)
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlockHeader object
func (h *BeaconBlockHeader) SizeSSZ() int {
	return blockHeaderSize
}

// UnmarshalSSZ ssz unmarshals the BeaconBlockHeader object
func (h *BeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != blockHeaderSize {
		return fssz.ErrSize
	}
	h.Slot = primitives.Slot(fssz.UnmarshallUint64(buf[0:8]))
	h.ProposerIndex = primitives.ValidatorIndex(fssz.UnmarshallUint64(buf[8:16]))
	copy(h.ParentRoot[:], buf[16:48])
	copy(h.StateRoot[:], buf[48:80])
	copy(h.BodyRoot[:], buf[80:112])
	return nil
}

// HashTreeRoot ssz hashes the BeaconBlockHeader object
func (h *BeaconBlockHeader) HashTreeRoot() ([32]byte, error) {
	return ssz.ContainerRoot([][32]byte{
		ssz.Uint64Root(uint64(h.Slot)),
		ssz.Uint64Root(uint64(h.ProposerIndex)),
		h.ParentRoot,
		h.StateRoot,
		h.BodyRoot,
	})
}

// BeaconBlockBody holds the operations carried by a block.
type BeaconBlockBody struct {
	Graffiti     [32]byte
	Attestations []*Attestation
	Deposits     []*Deposit
}

// Copy --
func (b *BeaconBlockBody) Copy() *BeaconBlockBody {
	if b == nil {
		return nil
	}
	return &BeaconBlockBody{
		Graffiti:     b.Graffiti,
		Attestations: CopySlice(b.Attestations),
		Deposits:     CopySlice(b.Deposits),
	}
}

// MarshalSSZ ssz marshals the BeaconBlockBody object
func (b *BeaconBlockBody) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the BeaconBlockBody object to a target array
func (b *BeaconBlockBody) MarshalSSZTo(dst []byte) ([]byte, error) {
	cfg := params.BeaconConfig()
	if uint64(len(b.Attestations)) > cfg.MaxAttestations {
		return nil, errors.Wrap(ErrListTooBig, "attestations")
	}
	if uint64(len(b.Deposits)) > cfg.MaxDeposits {
		return nil, errors.Wrap(ErrListTooBig, "deposits")
	}
	dst = append(dst, b.Graffiti[:]...)
	offset := blockBodyFixedSize
	dst = fssz.WriteOffset(dst, offset)
	offset += dynamicListSize(b.Attestations)
	dst = fssz.WriteOffset(dst, offset)

	var err error
	if dst, err = marshalDynamicList(dst, b.Attestations); err != nil {
		return nil, errors.Wrap(err, "attestations")
	}
	for _, d := range b.Deposits {
		if dst, err = d.MarshalSSZTo(dst); err != nil {
			return nil, errors.Wrap(err, "deposits")
		}
	}
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlockBody object
func (b *BeaconBlockBody) SizeSSZ() int {
	return blockBodyFixedSize + dynamicListSize(b.Attestations) + len(b.Deposits)*depositSize()
}

// UnmarshalSSZ ssz unmarshals the BeaconBlockBody object
func (b *BeaconBlockBody) UnmarshalSSZ(buf []byte) error {
	if len(buf) < blockBodyFixedSize {
		return fssz.ErrSize
	}
	cfg := params.BeaconConfig()
	copy(b.Graffiti[:], buf[0:32])
	o0 := fssz.ReadOffset(buf[32:36])
	o1 := fssz.ReadOffset(buf[36:40])
	if o0 != blockBodyFixedSize || o1 < o0 || o1 > uint64(len(buf)) {
		return fssz.ErrOffset
	}

	b.Attestations = nil
	if _, err := unmarshalDynamicList(buf[o0:o1], cfg.MaxAttestations, func(_ int, elem []byte) error {
		att := &Attestation{}
		if err := att.UnmarshalSSZ(elem); err != nil {
			return err
		}
		b.Attestations = append(b.Attestations, att)
		return nil
	}); err != nil {
		return errors.Wrap(err, "attestations")
	}

	b.Deposits = nil
	if _, err := unmarshalFixedList(buf[o1:], depositSize(), cfg.MaxDeposits, func(_ int, elem []byte) error {
		d := &Deposit{}
		if err := d.UnmarshalSSZ(elem); err != nil {
			return err
		}
		b.Deposits = append(b.Deposits, d)
		return nil
	}); err != nil {
		return errors.Wrap(err, "deposits")
	}
	return nil
}

// HashTreeRoot ssz hashes the BeaconBlockBody object
func (b *BeaconBlockBody) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	attRoots := make([][32]byte, len(b.Attestations))
	for i, a := range b.Attestations {
		r, err := a.HashTreeRoot()
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "attestation %d", i)
		}
		attRoots[i] = r
	}
	attsRoot, err := ssz.ListRoot(attRoots, cfg.MaxAttestations)
	if err != nil {
		return [32]byte{}, err
	}
	depRoots := make([][32]byte, len(b.Deposits))
	for i, d := range b.Deposits {
		r, err := d.HashTreeRoot()
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "deposit %d", i)
		}
		depRoots[i] = r
	}
	depsRoot, err := ssz.ListRoot(depRoots, cfg.MaxDeposits)
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{b.Graffiti, attsRoot, depsRoot})
}

// BeaconBlock is a proposed block. Its root equals the root of its header.
type BeaconBlock struct {
	Slot          primitives.Slot
	ProposerIndex primitives.ValidatorIndex
	ParentRoot    [32]byte
	StateRoot     [32]byte
	Body          *BeaconBlockBody
}

// Copy --
func (b *BeaconBlock) Copy() *BeaconBlock {
	if b == nil {
		return nil
	}
	return &BeaconBlock{
		Slot:          b.Slot,
		ProposerIndex: b.ProposerIndex,
		ParentRoot:    b.ParentRoot,
		StateRoot:     b.StateRoot,
		Body:          b.Body.Copy(),
	}
}

func (b *BeaconBlock) body() *BeaconBlockBody {
	if b.Body == nil {
		return &BeaconBlockBody{}
	}
	return b.Body
}

// Header returns the header summarizing the block.
func (b *BeaconBlock) Header() (*BeaconBlockHeader, error) {
	bodyRoot, err := b.body().HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash block body")
	}
	return &BeaconBlockHeader{
		Slot:          b.Slot,
		ProposerIndex: b.ProposerIndex,
		ParentRoot:    b.ParentRoot,
		StateRoot:     b.StateRoot,
		BodyRoot:      bodyRoot,
	}, nil
}

// MarshalSSZ ssz marshals the BeaconBlock object
func (b *BeaconBlock) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the BeaconBlock object to a target array
func (b *BeaconBlock) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = fssz.MarshalUint64(dst, uint64(b.Slot))
	dst = fssz.MarshalUint64(dst, uint64(b.ProposerIndex))
	dst = append(dst, b.ParentRoot[:]...)
	dst = append(dst, b.StateRoot[:]...)
	dst = fssz.WriteOffset(dst, blockFixedSize)
	return b.body().MarshalSSZTo(dst)
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlock object
func (b *BeaconBlock) SizeSSZ() int {
	return blockFixedSize + b.body().SizeSSZ()
}

// UnmarshalSSZ ssz unmarshals the BeaconBlock object
func (b *BeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < blockFixedSize {
		return fssz.ErrSize
	}
	b.Slot = primitives.Slot(fssz.UnmarshallUint64(buf[0:8]))
	b.ProposerIndex = primitives.ValidatorIndex(fssz.UnmarshallUint64(buf[8:16]))
	copy(b.ParentRoot[:], buf[16:48])
	copy(b.StateRoot[:], buf[48:80])
	if fssz.ReadOffset(buf[80:84]) != blockFixedSize {
		return fssz.ErrOffset
	}
	b.Body = &BeaconBlockBody{}
	return b.Body.UnmarshalSSZ(buf[blockFixedSize:])
}

// HashTreeRoot ssz hashes the BeaconBlock object
func (b *BeaconBlock) HashTreeRoot() ([32]byte, error) {
	h, err := b.Header()
	if err != nil {
		return [32]byte{}, err
	}
	return h.HashTreeRoot()
}
