/*
Package features defines which features are enabled for runtime
in order to selectively enable certain features to maintain a stable runtime.

The process for implementing new features using this package is as follows:
	1. Add a new CMD flag in flags.go, and place it in the proper list(s) var for its client.
	2. Add a condition for the flag in ConfigureFlags below.
	3. Place any "new" behavior in the `if flagEnabled` statement.
	4. Place any "previous" behavior in the `else` statement.
	5. Use the following to enable your flag for tests:
	cfg := &features.Flags{
		WriteSSZStateTransitions: true,
	}
	resetCfg := features.InitWithReset(cfg)
	defer resetCfg()
*/
package features

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "flags")

// Flags is a struct to represent which features the client will perform on runtime.
type Flags struct {
	WriteSSZStateTransitions bool // WriteSSZStateTransitions to tmp directory.
	DisableSkipSlotCache     bool // DisableSkipSlotCache disables the cache of states advanced through empty slots.
	VerifyDepositProofs      bool // VerifyDepositProofs checks deposit Merkle branches against the eth1 deposit root.
	MinimalConfig            bool // MinimalConfig runs with the minimal preset (8 slots per epoch).
}

var (
	featureConfig *Flags
	featureLock   sync.RWMutex
)

// Get retrieves feature config.
func Get() *Flags {
	featureLock.RLock()
	defer featureLock.RUnlock()

	if featureConfig == nil {
		return &Flags{}
	}
	return featureConfig
}

// Init sets the global config equal to the config that is passed in.
func Init(c *Flags) {
	featureLock.Lock()
	defer featureLock.Unlock()

	featureConfig = c
}

// InitWithReset sets the global config and returns function that is used to reset configuration.
func InitWithReset(c *Flags) func() {
	var prevConfig Flags
	if featureConfig != nil {
		prevConfig = *featureConfig
	} else {
		prevConfig = Flags{}
	}
	resetFunc := func() {
		Init(&prevConfig)
	}
	Init(c)
	return resetFunc
}

// ConfigureFlags sets the global config based on what flags are enabled and
// applies the ones that map onto the beacon config.
func ConfigureFlags(ctx *cli.Context) error {
	complainOnDeprecatedFlags(ctx)
	cfg := &Flags{}
	if ctx.Bool(MinimalConfigFlag.Name) {
		log.Warn("Using minimal config")
		cfg.MinimalConfig = true
		params.OverrideBeaconConfig(params.MinimalSpecConfig().Copy())
	}
	if ctx.IsSet(ChainConfigNameFlag.Name) {
		name := ctx.String(ChainConfigNameFlag.Name)
		chainCfg, ok := params.ByName(name)
		if !ok {
			return errors.Errorf("unknown chain config name %q", name)
		}
		log.WithField("name", name).Info("Using named chain config")
		params.OverrideBeaconConfig(chainCfg)
	}
	if ctx.IsSet(ChainConfigFileFlag.Name) {
		if err := params.LoadChainConfigFile(ctx.String(ChainConfigFileFlag.Name)); err != nil {
			return err
		}
	}
	if ctx.Bool(writeSSZStateTransitionsFlag.Name) {
		log.Warn("Writing SSZ states and blocks after state transitions")
		cfg.WriteSSZStateTransitions = true
	}
	if ctx.Bool(disableSkipSlotCacheFlag.Name) {
		log.Warn("Disabling the skip slot cache")
		cfg.DisableSkipSlotCache = true
	}
	if ctx.Bool(verifyDepositProofsFlag.Name) {
		log.Warn("Verifying deposit Merkle proofs")
		cfg.VerifyDepositProofs = true
		c := params.BeaconConfig().Copy()
		c.VerifyDepositProofs = true
		params.OverrideBeaconConfig(c)
	}
	Init(cfg)
	return nil
}

func complainOnDeprecatedFlags(ctx *cli.Context) {
	for _, f := range deprecatedFlags {
		if ctx.IsSet(f.Names()[0]) {
			log.Errorf("%s is deprecated and has no effect. Do not use this flag, it will be deleted soon.", f.Names()[0])
		}
	}
}
