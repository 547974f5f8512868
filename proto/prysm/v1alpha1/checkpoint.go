package eth

import (
	"fmt"

	fssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
)

const (
	checkpointSize = 40
	eth1DataSize   = 72
)

// Checkpoint is an (epoch, root) pair naming the epoch boundary block of an epoch.
// It is a comparable value and can be used as a map key.
type Checkpoint struct {
	Epoch primitives.Epoch
	Root  [32]byte
}

// Copy --
func (cp *Checkpoint) Copy() *Checkpoint {
	if cp == nil {
		return nil
	}
	c := *cp
	return &c
}

// String renders the checkpoint for logs.
func (cp Checkpoint) String() string {
	return fmt.Sprintf("%d:%#x", cp.Epoch, cp.Root[:6])
}

// MarshalSSZ ssz marshals the Checkpoint object
func (cp *Checkpoint) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(cp)
}

// MarshalSSZTo ssz marshals the Checkpoint object to a target array
func (cp *Checkpoint) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = fssz.MarshalUint64(dst, uint64(cp.Epoch))
	dst = append(dst, cp.Root[:]...)
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Checkpoint object
func (cp *Checkpoint) SizeSSZ() int {
	return checkpointSize
}

// UnmarshalSSZ ssz unmarshals the Checkpoint object
func (cp *Checkpoint) UnmarshalSSZ(buf []byte) error {
	if len(buf) != checkpointSize {
		return fssz.ErrSize
	}
	cp.Epoch = primitives.Epoch(fssz.UnmarshallUint64(buf[0:8]))
	copy(cp.Root[:], buf[8:40])
	return nil
}

// HashTreeRoot ssz hashes the Checkpoint object
func (cp *Checkpoint) HashTreeRoot() ([32]byte, error) {
	return ssz.ContainerRoot([][32]byte{ssz.Uint64Root(uint64(cp.Epoch)), cp.Root})
}

// Eth1Data is the deposit contract commitment voted in from the eth1 chain.
type Eth1Data struct {
	DepositRoot  [32]byte
	DepositCount uint64
	BlockHash    [32]byte
}

// Copy --
func (e *Eth1Data) Copy() *Eth1Data {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// MarshalSSZ ssz marshals the Eth1Data object
func (e *Eth1Data) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(e)
}

// MarshalSSZTo ssz marshals the Eth1Data object to a target array
func (e *Eth1Data) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, e.DepositRoot[:]...)
	dst = fssz.MarshalUint64(dst, e.DepositCount)
	dst = append(dst, e.BlockHash[:]...)
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Eth1Data object
func (e *Eth1Data) SizeSSZ() int {
	return eth1DataSize
}

// UnmarshalSSZ ssz unmarshals the Eth1Data object
func (e *Eth1Data) UnmarshalSSZ(buf []byte) error {
	if len(buf) != eth1DataSize {
		return fssz.ErrSize
	}
	copy(e.DepositRoot[:], buf[0:32])
	e.DepositCount = fssz.UnmarshallUint64(buf[32:40])
	copy(e.BlockHash[:], buf[40:72])
	return nil
}

// HashTreeRoot ssz hashes the Eth1Data object
func (e *Eth1Data) HashTreeRoot() ([32]byte, error) {
	return ssz.ContainerRoot([][32]byte{e.DepositRoot, ssz.Uint64Root(e.DepositCount), e.BlockHash})
}
