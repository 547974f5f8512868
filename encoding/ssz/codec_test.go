package ssz_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/go-bitfield"
)

func TestBool_RoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		got, err := ssz.UnmarshalBool(ssz.MarshalBool(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	assert.DeepNotEqual(t, ssz.MarshalBool(true), ssz.MarshalBool(false))
}

func TestUnmarshalBool_Errors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		err  error
	}{
		{name: "empty", buf: []byte{}, err: ssz.ErrIncorrectByteSize},
		{name: "two bytes", buf: []byte{1, 0}, err: ssz.ErrIncorrectByteSize},
		{name: "not a boolean", buf: []byte{2}, err: ssz.ErrInvalidBoolValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ssz.UnmarshalBool(tt.buf)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUint8_RoundTripAllValues(t *testing.T) {
	seen := make(map[string]uint8)
	for i := 0; i < 256; i++ {
		v := uint8(i)
		enc := ssz.MarshalUint8(v)
		prev, ok := seen[string(enc)]
		require.Equal(t, false, ok, "encoding of %d collides with %d", v, prev)
		seen[string(enc)] = v
		got, err := ssz.UnmarshalUint8(enc)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := ssz.UnmarshalUint8(nil)
	require.ErrorIs(t, err, ssz.ErrIncorrectByteSize)
	_, err = ssz.UnmarshalUint8([]byte{1, 2})
	require.ErrorIs(t, err, ssz.ErrIncorrectByteSize)
}

func TestBytes32_RoundTrip(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0)
	for i := 0; i < 100; i++ {
		var v [32]byte
		fuzzer.Fuzz(&v)
		got, err := ssz.UnmarshalBytes32(ssz.MarshalBytes32(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := ssz.UnmarshalBytes32(make([]byte, 31))
	require.ErrorIs(t, err, ssz.ErrIncorrectByteSize)
	_, err = ssz.UnmarshalBytes32(make([]byte, 33))
	require.ErrorIs(t, err, ssz.ErrIncorrectByteSize)
}

func TestBitlist_RoundTrip(t *testing.T) {
	for _, length := range []uint64{0, 1, 7, 8, 9, 64, 2048} {
		b := bitfield.NewBitlist(length)
		for i := uint64(0); i < length; i += 3 {
			b.SetBitAt(i, true)
		}
		enc, err := ssz.MarshalBitlist(b, 2048)
		require.NoError(t, err)
		got, err := ssz.UnmarshalBitlist(enc, 2048)
		require.NoError(t, err)
		assert.Equal(t, length, got.Len())
		assert.DeepEqual(t, b, got)
	}
}

func TestBitlist_Injective(t *testing.T) {
	// Same set bits, different lengths.
	a := bitfield.NewBitlist(4)
	b := bitfield.NewBitlist(5)
	a.SetBitAt(1, true)
	b.SetBitAt(1, true)
	encA, err := ssz.MarshalBitlist(a, 16)
	require.NoError(t, err)
	encB, err := ssz.MarshalBitlist(b, 16)
	require.NoError(t, err)
	assert.DeepNotEqual(t, encA, encB)
}

func TestUnmarshalBitlist_Errors(t *testing.T) {
	tests := []struct {
		name  string
		buf   []byte
		limit uint64
		err   error
	}{
		{name: "empty input", buf: []byte{}, limit: 8, err: ssz.ErrMissingBitlistMarker},
		{name: "no marker", buf: []byte{0xff, 0x00}, limit: 16, err: ssz.ErrMissingBitlistMarker},
		{name: "length over limit", buf: []byte{0xff, 0x01}, limit: 7, err: ssz.ErrBitlistExceedsLimit},
		{name: "too many bytes", buf: []byte{0x00, 0x00, 0x01}, limit: 8, err: ssz.ErrBitlistExceedsLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ssz.UnmarshalBitlist(tt.buf, tt.limit)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUnmarshalBitlist_AtLimit(t *testing.T) {
	b, err := ssz.UnmarshalBitlist([]byte{0xff, 0x01}, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), b.Len())
}

func TestMarshalBitlist_Errors(t *testing.T) {
	_, err := ssz.MarshalBitlist(bitfield.Bitlist{}, 8)
	require.ErrorIs(t, err, ssz.ErrMissingBitlistMarker)
	_, err = ssz.MarshalBitlist(bitfield.NewBitlist(9), 8)
	require.ErrorIs(t, err, ssz.ErrBitlistExceedsLimit)
}

func FuzzUnmarshalBitlist(f *testing.F) {
	f.Add([]byte{0x01}, uint64(8))
	f.Add([]byte{0xff, 0x00}, uint64(16))
	f.Fuzz(func(t *testing.T, buf []byte, limit uint64) {
		b, err := ssz.UnmarshalBitlist(buf, limit)
		if err != nil {
			return
		}
		if b.Len() > limit {
			t.Fatalf("decoded length %d exceeds limit %d", b.Len(), limit)
		}
		enc, err := ssz.MarshalBitlist(b, limit)
		require.NoError(t, err)
		require.DeepEqual(t, buf, enc)
	})
}
