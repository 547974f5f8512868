package util

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

var lock sync.Mutex

var cachedDeposits []*ethpb.Deposit

// DeterministicPubkey returns a public key derived from the validator index.
// No signatures are checked, so the key only needs to be unique.
func DeterministicPubkey(i uint64) [48]byte {
	h := hash.Hash(bytesutil.Bytes8(i))
	var pk [48]byte
	copy(pk[:], h[:])
	copy(pk[32:], bytesutil.Bytes8(i))
	return pk
}

// DeterministicDepositData returns maximum balance deposit data for validator i.
func DeterministicDepositData(i uint64) *ethpb.DepositData {
	pk := DeterministicPubkey(i)
	creds := hash.Hash(pk[:])
	// BLS withdrawal prefix.
	creds[0] = 0
	return &ethpb.DepositData{
		PublicKey:             pk,
		WithdrawalCredentials: creds,
		Amount:                params.BeaconConfig().MaxEffectiveBalance,
	}
}

// DeterministicDepositsAndEth1Data returns numDeposits deposits with valid Merkle proofs and
// the eth1 data committing to them. Deposits are cached across calls.
func DeterministicDepositsAndEth1Data(numDeposits uint64) ([]*ethpb.Deposit, *ethpb.Eth1Data, error) {
	lock.Lock()
	defer lock.Unlock()

	for i := uint64(len(cachedDeposits)); i < numDeposits; i++ {
		cachedDeposits = append(cachedDeposits, &ethpb.Deposit{Data: DeterministicDepositData(i)})
	}

	// Proofs come from a trie holding exactly numDeposits leaves so they
	// verify against the returned root.
	depth := params.BeaconConfig().DepositContractTreeDepth
	t, err := trie.NewTrie(depth)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not create new trie")
	}
	for i := uint64(0); i < numDeposits; i++ {
		root, err := cachedDeposits[i].Data.HashTreeRoot()
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not hash deposit data")
		}
		if err := t.Insert(root[:], int(i)); err != nil {
			return nil, nil, errors.Wrap(err, "could not insert deposit into trie")
		}
	}
	deposits := make([]*ethpb.Deposit, numDeposits)
	for i := range deposits {
		proof, err := t.MerkleProof(i)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not generate proof")
		}
		d := cachedDeposits[i].Copy()
		d.Proof = make([][32]byte, len(proof))
		for j, p := range proof {
			d.Proof[j] = bytesutil.ToBytes32(p)
		}
		deposits[i] = d
	}
	root, err := t.HashTreeRoot()
	if err != nil {
		return nil, nil, err
	}
	eth1Data := &ethpb.Eth1Data{
		DepositRoot:  root,
		DepositCount: uint64(t.NumOfItems()),
		BlockHash:    hash.Hash([]byte("eth1")),
	}
	return deposits, eth1Data, nil
}

// ResetCache clears the cached deposits.
func ResetCache() {
	lock.Lock()
	defer lock.Unlock()
	cachedDeposits = nil
}
