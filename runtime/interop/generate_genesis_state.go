package interop

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

// GenerateGenesisState deterministically given a genesis time and number of validators.
// If a genesis time of 0 is supplied it is used as is.
func GenerateGenesisState(ctx context.Context, genesisTime, numValidators uint64) (*state.BeaconState, []*ethpb.Deposit, error) {
	pubKeys := DeterministicallyGenerateKeys(0 /*startIndex*/, numValidators)
	depositDataItems, depositDataRoots, err := DepositDataFromKeys(pubKeys)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate deposit data from keys")
	}
	t, err := trie.GenerateTrieFromItems(depositDataRoots, params.BeaconConfig().DepositContractTreeDepth)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate Merkle trie for deposit proofs")
	}
	deposits, err := GenerateDepositsFromData(depositDataItems, t)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate deposits from the deposit data provided")
	}
	root, err := t.HashTreeRoot()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not hash tree root of deposit trie")
	}
	beaconState, err := transition.GenesisBeaconState(ctx, deposits, genesisTime, &ethpb.Eth1Data{
		DepositRoot:  root,
		DepositCount: uint64(len(deposits)),
		BlockHash:    hash.Hash([]byte("interop")),
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate genesis state")
	}
	log.WithFields(logrus.Fields{
		"validators":  beaconState.NumValidators(),
		"genesisTime": genesisTime,
	}).Debug("Generated interop genesis state")
	return beaconState, deposits, nil
}
