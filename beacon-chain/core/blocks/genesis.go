// Package blocks contains block processing libraries according to
// the Ethereum beacon chain spec.
package blocks

import (
	"github.com/prysmaticlabs/gasper/config/params"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// NewGenesisBlock returns the canonical, genesis block for the beacon chain protocol.
func NewGenesisBlock(stateRoot [32]byte) *ethpb.BeaconBlock {
	return &ethpb.BeaconBlock{
		Slot:       params.BeaconConfig().GenesisSlot,
		ParentRoot: params.BeaconConfig().ZeroHash,
		StateRoot:  stateRoot,
		Body: &ethpb.BeaconBlockBody{
			Attestations: make([]*ethpb.Attestation, 0),
			Deposits:     make([]*ethpb.Deposit, 0),
		},
	}
}
