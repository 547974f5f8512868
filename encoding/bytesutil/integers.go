// Package bytesutil defines helper methods for converting integers to byte slices.
package bytesutil

import "encoding/binary"

// Bytes8 is x.to_bytes(8, 'little').
func Bytes8(x uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

// Bytes32 is x.to_bytes(32, 'little'), used for the mixed in length of lists.
func Bytes32(x uint64) []byte {
	b := make([]byte, 32)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

// Uint64ToBytesBigEndian encodes i so that bolt cursors iterate keys in
// numeric order.
func Uint64ToBytesBigEndian(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)
	return b
}
