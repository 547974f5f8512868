package eth

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
)

const bytesPerLengthOffset = 4

// ErrListTooBig is returned when a decoded list holds more elements than its limit.
var ErrListTooBig = errors.New("list exceeds its maximum length")

// sszSized is the subset of the fastssz marshaler used to size list elements.
type sszSized interface {
	SizeSSZ() int
	MarshalSSZTo(dst []byte) ([]byte, error)
}

// marshalDynamicList appends the offset table followed by each element.
func marshalDynamicList[T sszSized](dst []byte, elems []T) ([]byte, error) {
	offset := len(elems) * bytesPerLengthOffset
	for _, e := range elems {
		dst = fssz.WriteOffset(dst, offset)
		offset += e.SizeSSZ()
	}
	var err error
	for _, e := range elems {
		if dst, err = e.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func dynamicListSize[T sszSized](elems []T) int {
	size := len(elems) * bytesPerLengthOffset
	for _, e := range elems {
		size += e.SizeSSZ()
	}
	return size
}

// unmarshalDynamicList walks the offset table of a list of variable size elements.
func unmarshalDynamicList(buf []byte, limit uint64, decode func(i int, b []byte) error) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) < bytesPerLengthOffset {
		return 0, fssz.ErrSize
	}
	first := fssz.ReadOffset(buf[0:4])
	if first == 0 || first%bytesPerLengthOffset != 0 || first > uint64(len(buf)) {
		return 0, fssz.ErrOffset
	}
	n := first / bytesPerLengthOffset
	if n > limit {
		return 0, errors.Wrapf(ErrListTooBig, "%d elements, limit %d", n, limit)
	}
	offsets := make([]uint64, n+1)
	for i := uint64(0); i < n; i++ {
		offsets[i] = fssz.ReadOffset(buf[i*4 : i*4+4])
	}
	offsets[n] = uint64(len(buf))
	for i := uint64(0); i < n; i++ {
		if offsets[i] > offsets[i+1] || offsets[i] < first {
			return 0, fssz.ErrOffset
		}
		if err := decode(int(i), buf[offsets[i]:offsets[i+1]]); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}

// unmarshalFixedList decodes a list whose elements all have the given size.
func unmarshalFixedList(buf []byte, size int, limit uint64, decode func(i int, b []byte) error) (int, error) {
	if len(buf)%size != 0 {
		return 0, fssz.ErrSize
	}
	n := len(buf) / size
	if uint64(n) > limit {
		return 0, errors.Wrapf(ErrListTooBig, "%d elements, limit %d", n, limit)
	}
	for i := 0; i < n; i++ {
		if err := decode(i, buf[i*size:(i+1)*size]); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// Copier represents a type that can return a deep copy of itself.
type Copier[T any] interface {
	Copy() T
}

// CopySlice deep copies a slice of copiable elements, keeping nil slices nil.
func CopySlice[T Copier[T]](original []T) []T {
	if original == nil {
		return nil
	}
	newSlice := make([]T, len(original))
	for i, e := range original {
		newSlice[i] = e.Copy()
	}
	return newSlice
}
