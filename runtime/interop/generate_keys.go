// Package interop contains deterministic utilities for generating
// genesis states and chains of blocks for local runs and tests.
package interop

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// DeterministicallyGenerateKeys returns count public keys starting at
// startIndex. Keys are derived from the index alone since no signatures
// are checked.
func DeterministicallyGenerateKeys(startIndex, count uint64) [][48]byte {
	pubKeys := make([][48]byte, count)
	for i := uint64(0); i < count; i++ {
		idx := startIndex + i
		h := hash.Hash(bytesutil.Bytes8(idx))
		copy(pubKeys[i][:], h[:])
		copy(pubKeys[i][32:], bytesutil.Bytes8(idx))
	}
	return pubKeys
}

// DepositDataFromKeys generates a list of maximum balance deposit data items
// and their hash tree roots from a set of public keys.
func DepositDataFromKeys(pubKeys [][48]byte) ([]*ethpb.DepositData, [][]byte, error) {
	dataList := make([]*ethpb.DepositData, len(pubKeys))
	dataRoots := make([][]byte, len(pubKeys))
	for i, pk := range pubKeys {
		creds := hash.Hash(pk[:])
		// BLS withdrawal prefix.
		creds[0] = 0
		data := &ethpb.DepositData{
			PublicKey:             pk,
			WithdrawalCredentials: creds,
			Amount:                params.BeaconConfig().MaxEffectiveBalance,
		}
		root, err := data.HashTreeRoot()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not hash tree root deposit data item %d", i)
		}
		dataList[i] = data
		dataRoots[i] = root[:]
	}
	return dataList, dataRoots, nil
}

// GenerateDepositsFromData a list of deposit items by creating proofs for each of them from a sparse Merkle trie.
func GenerateDepositsFromData(depositDataItems []*ethpb.DepositData, t *trie.SparseMerkleTrie) ([]*ethpb.Deposit, error) {
	deposits := make([]*ethpb.Deposit, len(depositDataItems))
	for i, item := range depositDataItems {
		proof, err := t.MerkleProof(i)
		if err != nil {
			return nil, errors.Wrapf(err, "could not generate proof for deposit %d", i)
		}
		branch := make([][32]byte, len(proof))
		for j, p := range proof {
			branch[j] = bytesutil.ToBytes32(p)
		}
		deposits[i] = &ethpb.Deposit{
			Proof: branch,
			Data:  item,
		}
	}
	return deposits, nil
}
