// Package ssz implements the simple serialize encoding of the basic values
// used by consensus containers, plus the merkleization helpers that compute
// their hash tree roots.
package ssz

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
)

var (
	// ErrIncorrectByteSize is returned when the input has the wrong number of bytes for the type.
	ErrIncorrectByteSize = errors.New("incorrect byte size")
	// ErrInvalidBoolValue is returned when a boolean is encoded as anything but 0x00 or 0x01.
	ErrInvalidBoolValue = errors.New("invalid boolean value")
	// ErrBitlistExceedsLimit is returned when a decoded bitlist is longer than its declared capacity.
	ErrBitlistExceedsLimit = errors.New("bitlist exceeds limit")
	// ErrMissingBitlistMarker is returned when a bitlist is empty or its length marker bit is absent.
	ErrMissingBitlistMarker = errors.New("bitlist missing length marker")
)

// BoolSize, Uint8Size and Bytes32Size are the serialized widths of the fixed size basic values.
const (
	BoolSize    = 1
	Uint8Size   = 1
	Bytes32Size = 32
)

// MarshalBool serializes a boolean as a single byte.
func MarshalBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// UnmarshalBool decodes a boolean from exactly one byte.
func UnmarshalBool(buf []byte) (bool, error) {
	if len(buf) != BoolSize {
		return false, errors.Wrapf(ErrIncorrectByteSize, "bool wants %d byte, got %d", BoolSize, len(buf))
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(ErrInvalidBoolValue, "got %#x", buf[0])
	}
}

// MarshalUint8 serializes an 8-bit unsigned integer.
func MarshalUint8(v uint8) []byte {
	return []byte{v}
}

// UnmarshalUint8 decodes an 8-bit unsigned integer from exactly one byte.
func UnmarshalUint8(buf []byte) (uint8, error) {
	if len(buf) != Uint8Size {
		return 0, errors.Wrapf(ErrIncorrectByteSize, "uint8 wants %d byte, got %d", Uint8Size, len(buf))
	}
	return buf[0], nil
}

// MarshalBytes32 serializes a fixed 32 byte blob.
func MarshalBytes32(v [32]byte) []byte {
	out := make([]byte, Bytes32Size)
	copy(out, v[:])
	return out
}

// UnmarshalBytes32 decodes a fixed 32 byte blob.
func UnmarshalBytes32(buf []byte) ([32]byte, error) {
	var out [32]byte
	if len(buf) != Bytes32Size {
		return out, errors.Wrapf(ErrIncorrectByteSize, "bytes32 wants %d bytes, got %d", Bytes32Size, len(buf))
	}
	copy(out[:], buf)
	return out, nil
}

// MarshalBitlist serializes a bitlist. The bitlist already carries its length
// marker, so the encoding is a copy of its bytes.
func MarshalBitlist(b bitfield.Bitlist, limit uint64) ([]byte, error) {
	if len(b) == 0 || b[len(b)-1] == 0 {
		return nil, ErrMissingBitlistMarker
	}
	if b.Len() > limit {
		return nil, errors.Wrapf(ErrBitlistExceedsLimit, "length %d, limit %d", b.Len(), limit)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// UnmarshalBitlist decodes a bitlist with the given capacity. The highest set
// bit of the final byte marks the length and is not part of the data.
func UnmarshalBitlist(buf []byte, limit uint64) (bitfield.Bitlist, error) {
	if len(buf) == 0 {
		return nil, errors.Wrap(ErrMissingBitlistMarker, "empty bitlist")
	}
	if buf[len(buf)-1] == 0 {
		return nil, errors.Wrap(ErrMissingBitlistMarker, "trailing byte is zero")
	}
	if uint64(len(buf)) > limit/8+1 {
		return nil, errors.Wrapf(ErrBitlistExceedsLimit, "%d bytes, limit %d bits", len(buf), limit)
	}
	b := make(bitfield.Bitlist, len(buf))
	copy(b, buf)
	if b.Len() > limit {
		return nil, errors.Wrapf(ErrBitlistExceedsLimit, "length %d, limit %d", b.Len(), limit)
	}
	return b, nil
}
