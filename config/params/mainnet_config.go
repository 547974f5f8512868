package params

import (
	"math"
)

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig
}

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (Non-configurable)
	FarFutureEpoch:           math.MaxUint64,
	FarFutureSlot:            math.MaxUint64,
	DepositContractTreeDepth: 32,
	JustificationBitsLength:  4,
	GenesisDelay:             604800, // 1 week.

	// Misc constant.
	PresetBase:                     "mainnet",
	ConfigName:                     MainnetName,
	MaxValidatorsPerCommittee:      2048,
	MinGenesisActiveValidatorCount: 16384,
	MinGenesisTime:                 1606824000, // Dec 1, 2020, 12pm UTC.

	// Gwei value constants.
	MinDepositAmount:          1 * 1e9,
	MaxEffectiveBalance:       32 * 1e9,
	EjectionBalance:           16 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	// Initial value constants.
	ZeroHash: [32]byte{},

	// Time parameter constants.
	MinAttestationInclusionDelay: 1,
	SecondsPerSlot:               12,
	SlotsPerEpoch:                32,
	SlotsPerHistoricalRoot:       8192,

	// State list length constants.
	ValidatorRegistryLimit: 1099511627776,

	// Max operations per block constants.
	MaxAttestations: 128,
	MaxDeposits:     16,

	// Prysm constants.
	GweiPerEth:         1000000000,
	BLSPubkeyLength:    48,
	BLSSignatureLength: 96,
	SkipSlotCacheSize:  8,
	BlockCacheSize:     256,

	VerifyDepositProofs: false,
}
