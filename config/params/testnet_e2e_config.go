package params

// E2ETestConfig retrieves the configurations made specifically for end-to-end runs
// of the chain simulator: few slots per epoch and a short history window so that
// ring buffer wraparound and finality are reached quickly.
//
// WARNING: This config is only for testing, it is not meant for use outside of E2E.
func E2ETestConfig() *BeaconChainConfig {
	e2eConfig := MinimalSpecConfig()

	// Misc.
	e2eConfig.MinGenesisActiveValidatorCount = 16
	e2eConfig.GenesisDelay = 10

	// Time parameters.
	e2eConfig.SecondsPerSlot = 2
	e2eConfig.SlotsPerEpoch = 4
	e2eConfig.SlotsPerHistoricalRoot = 16

	// Prysm constants.
	e2eConfig.ConfigName = EndToEndName
	e2eConfig.VerifyDepositProofs = true
	return e2eConfig
}
