package ssz

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	"github.com/prysmaticlabs/go-bitfield"
)

const bytesPerChunk = 32

// Uint64Root computes the HashTreeRoot Merkleization of
// a simple uint64 value according to the Ethereum
// Simple Serialize encoding.
func Uint64Root(val uint64) [32]byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, val)
	root := bytesutil.ToBytes32(buf)
	return root
}

// BoolRoot computes the HashTreeRoot of a boolean.
func BoolRoot(v bool) [32]byte {
	var root [32]byte
	if v {
		root[0] = 1
	}
	return root
}

// BitwiseMerkleize merkleizes a list of chunks of at most 32 bytes each, padded to the limit.
func BitwiseMerkleize(hasher HashFn, chunks [][]byte, count, limit uint64) ([32]byte, error) {
	if count > limit {
		return [32]byte{}, errors.New("merkleizing list that is too large, over limit")
	}
	hashFn := NewHasherFunc(hasher)
	leafIndexer := func(i uint64) []byte {
		if len(chunks[i]) < bytesPerChunk {
			return bytesutil.PadTo(bytesutil.SafeCopyBytes(chunks[i]), bytesPerChunk)
		}
		return chunks[i]
	}
	return Merkleize(hashFn, count, limit, leafIndexer), nil
}

// BitwiseMerkleizeArrays is used when a set of 32-byte root chunks are provided.
func BitwiseMerkleizeArrays(hasher HashFn, chunks [][32]byte, count, limit uint64) ([32]byte, error) {
	if count > limit {
		return [32]byte{}, errors.New("merkleizing list that is too large, over limit")
	}
	hashFn := NewHasherFunc(hasher)
	leafIndexer := func(i uint64) []byte {
		return chunks[i][:]
	}
	return Merkleize(hashFn, count, limit, leafIndexer), nil
}

// Pack a given byte array's final chunk with zeroes if needed.
func Pack(serializedItems [][]byte) ([][]byte, error) {
	areAllEmpty := true
	for _, item := range serializedItems {
		if len(item) != 0 {
			areAllEmpty = false
			break
		}
	}
	// If there are no items, we return an empty chunk.
	if len(serializedItems) == 0 || areAllEmpty {
		emptyChunk := make([]byte, bytesPerChunk)
		return [][]byte{emptyChunk}, nil
	} else if len(serializedItems[0]) == bytesPerChunk {
		// If each item has exactly BYTES_PER_CHUNK length, we return the list of serialized items.
		return serializedItems, nil
	}
	// We flatten the list in order to pack its items into byte chunks correctly.
	var orderedItems []byte
	for _, item := range serializedItems {
		orderedItems = append(orderedItems, item...)
	}
	numItems := len(orderedItems)
	var chunks [][]byte
	for i := 0; i < numItems; i += bytesPerChunk {
		j := i + bytesPerChunk
		// We create our upper bound index of the chunk, if it is greater than numItems,
		// we set it as numItems itself.
		if j > numItems {
			j = numItems
		}
		// We create chunks from the list of items based on the
		// indices determined above.
		chunks = append(chunks, orderedItems[i:j])
	}
	// Right-pad the last chunk with zero bytes if it does not
	// have length bytesPerChunk.
	lastChunk := chunks[len(chunks)-1]
	for len(lastChunk) < bytesPerChunk {
		lastChunk = append(lastChunk, 0)
	}
	chunks[len(chunks)-1] = lastChunk
	return chunks, nil
}

// MixInLength appends hash length to root
func MixInLength(root [32]byte, length []byte) [32]byte {
	var hash [32]byte
	h := DefaultHasher()
	hash = h.Combi(root, bytesutil.ToBytes32(length))
	return hash
}

// RootsVectorRoot computes the root of a fixed length vector of 32 byte roots.
func RootsVectorRoot(roots [][32]byte) ([32]byte, error) {
	scratch := make([][32]byte, len(roots), len(roots)+1)
	copy(scratch, roots)
	return MerkleizeVector(scratch, uint64(len(roots))), nil
}

// Uint64ListRoot computes the root of a list of uint64 values with the given limit.
func Uint64ListRoot(vals []uint64, limit uint64) ([32]byte, error) {
	serialized := make([][]byte, len(vals))
	for i, v := range vals {
		serialized[i] = bytesutil.Bytes8(v)
	}
	chunks, err := Pack(serialized)
	if err != nil {
		return [32]byte{}, err
	}
	chunkLimit := (limit*8 + 31) / 32
	root, err := BitwiseMerkleize(DefaultHasher().Hash, chunks, uint64(len(chunks)), chunkLimit)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not merkleize uint64 list")
	}
	return MixInLength(root, bytesutil.Bytes32(uint64(len(vals)))), nil
}

// ContainerRoot merkleizes the field roots of a container.
func ContainerRoot(fieldRoots [][32]byte) ([32]byte, error) {
	return BitwiseMerkleizeArrays(DefaultHasher().Hash, fieldRoots, uint64(len(fieldRoots)), uint64(len(fieldRoots)))
}

// ListRoot merkleizes the roots of the elements of a list with the given limit
// and mixes in the list length.
func ListRoot(elementRoots [][32]byte, limit uint64) ([32]byte, error) {
	root, err := BitwiseMerkleizeArrays(DefaultHasher().Hash, elementRoots, uint64(len(elementRoots)), limit)
	if err != nil {
		return [32]byte{}, err
	}
	return MixInLength(root, bytesutil.Bytes32(uint64(len(elementRoots)))), nil
}

// BitlistRoot returns the mix in length of a bitwise Merkleized bitfield.
func BitlistRoot(bfield bitfield.Bitlist, maxCapacity uint64) ([32]byte, error) {
	limit := (maxCapacity + 255) / 256
	if bfield == nil || bfield.Len() == 0 {
		length := make([]byte, 32)
		root, err := BitwiseMerkleize(DefaultHasher().Hash, [][]byte{}, 0, limit)
		if err != nil {
			return [32]byte{}, err
		}
		return MixInLength(root, length), nil
	}
	chunks, err := Pack([][]byte{bfield.Bytes()})
	if err != nil {
		return [32]byte{}, err
	}
	output := bytesutil.Bytes32(bfield.Len())
	root, err := BitwiseMerkleize(DefaultHasher().Hash, chunks, uint64(len(chunks)), limit)
	if err != nil {
		return [32]byte{}, err
	}
	return MixInLength(root, output), nil
}

// ByteVectorRoot merkleizes a fixed length byte vector such as a public key.
func ByteVectorRoot(b []byte) ([32]byte, error) {
	chunks, err := Pack([][]byte{b})
	if err != nil {
		return [32]byte{}, err
	}
	return BitwiseMerkleize(DefaultHasher().Hash, chunks, uint64(len(chunks)), uint64(len(chunks)))
}
