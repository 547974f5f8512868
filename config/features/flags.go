package features

import "github.com/urfave/cli/v2"

var (
	// MinimalConfigFlag enables the minimal preset.
	MinimalConfigFlag = &cli.BoolFlag{
		Name:  "minimal-config",
		Usage: "Use minimal config with parameters as defined in the spec.",
	}
	// ChainConfigNameFlag selects one of the built-in presets by name.
	ChainConfigNameFlag = &cli.StringFlag{
		Name:  "chain-config-name",
		Usage: "Use the named built-in chain config (mainnet, minimal or end-to-end)",
	}
	// ChainConfigFileFlag loads the beacon config from a YAML file.
	ChainConfigFileFlag = &cli.StringFlag{
		Name:  "chain-config-file",
		Usage: "The path to a YAML file with chain config values",
	}
	writeSSZStateTransitionsFlag = &cli.BoolFlag{
		Name:  "interop-write-ssz-state-transitions",
		Usage: "Write ssz states to disk after attempted state transition",
	}
	disableSkipSlotCacheFlag = &cli.BoolFlag{
		Name:  "disable-skip-slot-cache",
		Usage: "Disables the skip slot cache. Every slot advance is recomputed from the pre state.",
	}
	verifyDepositProofsFlag = &cli.BoolFlag{
		Name:  "verify-deposit-proofs",
		Usage: "Checks the Merkle branch of every deposit against the eth1 deposit root.",
	}
)

// BeaconChainFlags contains a list of all the feature flags that apply to the beacon-chain tooling.
var BeaconChainFlags = append(deprecatedFlags, []cli.Flag{
	MinimalConfigFlag,
	ChainConfigNameFlag,
	ChainConfigFileFlag,
	writeSSZStateTransitionsFlag,
	disableSkipSlotCacheFlag,
	verifyDepositProofsFlag,
}...)
