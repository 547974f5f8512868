package params

// MinimalSpecConfig retrieves the minimal config used in spec tests.
func MinimalSpecConfig() *BeaconChainConfig {
	minimalConfig := mainnetBeaconConfig.Copy()

	// Misc
	minimalConfig.MaxValidatorsPerCommittee = 2048
	minimalConfig.MinGenesisActiveValidatorCount = 64
	minimalConfig.MinGenesisTime = 1578009600
	minimalConfig.GenesisDelay = 300 // 5 minutes

	// Gwei values
	minimalConfig.MinDepositAmount = 1e9
	minimalConfig.MaxEffectiveBalance = 32e9
	minimalConfig.EjectionBalance = 16e9
	minimalConfig.EffectiveBalanceIncrement = 1e9

	// Time parameters
	minimalConfig.SecondsPerSlot = 6
	minimalConfig.MinAttestationInclusionDelay = 1
	minimalConfig.SlotsPerEpoch = 8
	minimalConfig.SlotsPerHistoricalRoot = 64

	// State vector lengths
	minimalConfig.ValidatorRegistryLimit = 1099511627776

	// Max operations per block
	minimalConfig.MaxAttestations = 128
	minimalConfig.MaxDeposits = 16

	minimalConfig.DepositContractTreeDepth = 32
	minimalConfig.PresetBase = "minimal"
	minimalConfig.ConfigName = MinimalName

	return minimalConfig
}
