package eth

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
)

const (
	pubkeyLength      = 48
	signatureLength   = 96
	depositDataSize   = pubkeyLength + 32 + 8 + signatureLength
	withdrawalCredsLength = 32
)

// DepositData is the payload of a deposit made to the deposit contract.
type DepositData struct {
	PublicKey             [pubkeyLength]byte
	WithdrawalCredentials [withdrawalCredsLength]byte
	Amount                uint64
	Signature             [signatureLength]byte
}

// Copy --
func (d *DepositData) Copy() *DepositData {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// MarshalSSZ ssz marshals the DepositData object
func (d *DepositData) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(d)
}

// MarshalSSZTo ssz marshals the DepositData object to a target array
func (d *DepositData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, d.PublicKey[:]...)
	dst = append(dst, d.WithdrawalCredentials[:]...)
	dst = fssz.MarshalUint64(dst, d.Amount)
	dst = append(dst, d.Signature[:]...)
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the DepositData object
func (d *DepositData) SizeSSZ() int {
	return depositDataSize
}

// UnmarshalSSZ ssz unmarshals the DepositData object
func (d *DepositData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != depositDataSize {
		return fssz.ErrSize
	}
	copy(d.PublicKey[:], buf[0:48])
	copy(d.WithdrawalCredentials[:], buf[48:80])
	d.Amount = fssz.UnmarshallUint64(buf[80:88])
	copy(d.Signature[:], buf[88:184])
	return nil
}

// HashTreeRoot ssz hashes the DepositData object
func (d *DepositData) HashTreeRoot() ([32]byte, error) {
	pubkeyRoot, err := ssz.ByteVectorRoot(d.PublicKey[:])
	if err != nil {
		return [32]byte{}, err
	}
	sigRoot, err := ssz.ByteVectorRoot(d.Signature[:])
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{
		pubkeyRoot,
		d.WithdrawalCredentials,
		ssz.Uint64Root(d.Amount),
		sigRoot,
	})
}

// Deposit is a deposit receipt together with its Merkle branch in the
// deposit contract tree. The branch has one extra element for the mixed in length.
type Deposit struct {
	Proof [][32]byte
	Data  *DepositData
}

// DepositProofLength is the number of branch elements carried by a deposit.
func DepositProofLength() int {
	return int(params.BeaconConfig().DepositContractTreeDepth) + 1
}

// Copy --
func (d *Deposit) Copy() *Deposit {
	if d == nil {
		return nil
	}
	var proof [][32]byte
	if d.Proof != nil {
		proof = make([][32]byte, len(d.Proof))
		copy(proof, d.Proof)
	}
	return &Deposit{
		Proof: proof,
		Data:  d.Data.Copy(),
	}
}

// MarshalSSZ ssz marshals the Deposit object
func (d *Deposit) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(d)
}

// MarshalSSZTo ssz marshals the Deposit object to a target array
func (d *Deposit) MarshalSSZTo(dst []byte) ([]byte, error) {
	if len(d.Proof) != DepositProofLength() {
		return nil, errors.Wrapf(fssz.ErrBytesLength, "proof has %d elements, want %d", len(d.Proof), DepositProofLength())
	}
	for _, p := range d.Proof {
		dst = append(dst, p[:]...)
	}
	data := d.Data
	if data == nil {
		data = &DepositData{}
	}
	return data.MarshalSSZTo(dst)
}

// SizeSSZ returns the ssz encoded size in bytes for the Deposit object
func (d *Deposit) SizeSSZ() int {
	return depositSize()
}

func depositSize() int {
	return DepositProofLength()*32 + depositDataSize
}

// UnmarshalSSZ ssz unmarshals the Deposit object
func (d *Deposit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != depositSize() {
		return fssz.ErrSize
	}
	n := DepositProofLength()
	d.Proof = make([][32]byte, n)
	for i := 0; i < n; i++ {
		copy(d.Proof[i][:], buf[i*32:(i+1)*32])
	}
	if d.Data == nil {
		d.Data = &DepositData{}
	}
	return d.Data.UnmarshalSSZ(buf[n*32:])
}

// HashTreeRoot ssz hashes the Deposit object
func (d *Deposit) HashTreeRoot() ([32]byte, error) {
	if len(d.Proof) != DepositProofLength() {
		return [32]byte{}, errors.Wrapf(fssz.ErrBytesLength, "proof has %d elements, want %d", len(d.Proof), DepositProofLength())
	}
	proofRoot, err := ssz.RootsVectorRoot(d.Proof)
	if err != nil {
		return [32]byte{}, err
	}
	data := d.Data
	if data == nil {
		data = &DepositData{}
	}
	dataRoot, err := data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{proofRoot, dataRoot})
}
