package eth

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
)

const validatorSize = pubkeyLength + withdrawalCredsLength + 8 + 1 + 4*8

// Validator is a registry entry.
type Validator struct {
	PublicKey                  [pubkeyLength]byte
	WithdrawalCredentials      [withdrawalCredsLength]byte
	EffectiveBalance           primitives.Gwei
	Slashed                    bool
	ActivationEligibilityEpoch primitives.Epoch
	ActivationEpoch            primitives.Epoch
	ExitEpoch                  primitives.Epoch
	WithdrawableEpoch          primitives.Epoch
}

// Copy --
func (v *Validator) Copy() *Validator {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// IsActive reports whether the validator is active at the given epoch.
func (v *Validator) IsActive(epoch primitives.Epoch) bool {
	return v.ActivationEpoch <= epoch && epoch < v.ExitEpoch
}

// MarshalSSZ ssz marshals the Validator object
func (v *Validator) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalSSZ(v)
}

// MarshalSSZTo ssz marshals the Validator object to a target array
func (v *Validator) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, v.PublicKey[:]...)
	dst = append(dst, v.WithdrawalCredentials[:]...)
	dst = fssz.MarshalUint64(dst, uint64(v.EffectiveBalance))
	dst = append(dst, ssz.MarshalBool(v.Slashed)...)
	dst = fssz.MarshalUint64(dst, uint64(v.ActivationEligibilityEpoch))
	dst = fssz.MarshalUint64(dst, uint64(v.ActivationEpoch))
	dst = fssz.MarshalUint64(dst, uint64(v.ExitEpoch))
	dst = fssz.MarshalUint64(dst, uint64(v.WithdrawableEpoch))
	return dst, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Validator object
func (v *Validator) SizeSSZ() int {
	return validatorSize
}

// UnmarshalSSZ ssz unmarshals the Validator object
func (v *Validator) UnmarshalSSZ(buf []byte) error {
	if len(buf) != validatorSize {
		return fssz.ErrSize
	}
	copy(v.PublicKey[:], buf[0:48])
	copy(v.WithdrawalCredentials[:], buf[48:80])
	v.EffectiveBalance = primitives.Gwei(fssz.UnmarshallUint64(buf[80:88]))
	slashed, err := ssz.UnmarshalBool(buf[88:89])
	if err != nil {
		return err
	}
	v.Slashed = slashed
	v.ActivationEligibilityEpoch = primitives.Epoch(fssz.UnmarshallUint64(buf[89:97]))
	v.ActivationEpoch = primitives.Epoch(fssz.UnmarshallUint64(buf[97:105]))
	v.ExitEpoch = primitives.Epoch(fssz.UnmarshallUint64(buf[105:113]))
	v.WithdrawableEpoch = primitives.Epoch(fssz.UnmarshallUint64(buf[113:121]))
	return nil
}

// HashTreeRoot ssz hashes the Validator object
func (v *Validator) HashTreeRoot() ([32]byte, error) {
	pubkeyRoot, err := ssz.ByteVectorRoot(v.PublicKey[:])
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.ContainerRoot([][32]byte{
		pubkeyRoot,
		v.WithdrawalCredentials,
		ssz.Uint64Root(uint64(v.EffectiveBalance)),
		ssz.BoolRoot(v.Slashed),
		ssz.Uint64Root(uint64(v.ActivationEligibilityEpoch)),
		ssz.Uint64Root(uint64(v.ActivationEpoch)),
		ssz.Uint64Root(uint64(v.ExitEpoch)),
		ssz.Uint64Root(uint64(v.WithdrawableEpoch)),
	})
}
