package params

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// UnmarshalConfig parses a chain config in the consensus-specs yaml format. Values
// missing from the file keep the preset named by PRESET_BASE, mainnet by default.
func UnmarshalConfig(yamlFile []byte) (*BeaconChainConfig, error) {
	// Default to using mainnet.
	conf := MainnetConfig().Copy()
	// To track if config name is defined inside config file.
	hasConfigName := false
	lines := strings.Split(string(yamlFile), "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "CONFIG_NAME") {
			hasConfigName = true
		}
		if strings.HasPrefix(line, "PRESET_BASE: 'minimal'") ||
			strings.HasPrefix(line, `PRESET_BASE: "minimal"`) ||
			strings.HasPrefix(line, "PRESET_BASE: minimal") ||
			strings.HasPrefix(line, "# Minimal preset") {
			conf = MinimalSpecConfig().Copy()
		}
	}
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		if _, ok := err.(*yaml.TypeError); !ok {
			return nil, errors.Wrap(err, "failed to parse chain config yaml file")
		}
		log.WithError(err).Error("There were some issues parsing the config from a yaml file")
	}
	if !hasConfigName {
		conf.ConfigName = DevnetName
	}
	if conf.SlotsPerEpoch == 0 {
		return nil, errors.New("SLOTS_PER_EPOCH must be positive")
	}
	if conf.SlotsPerHistoricalRoot == 0 {
		return nil, errors.New("SLOTS_PER_HISTORICAL_ROOT must be positive")
	}
	if conf.DepositContractTreeDepth >= 64 {
		return nil, errors.New("DEPOSIT_CONTRACT_TREE_DEPTH must be below 64")
	}
	log.Debugf("Config file values: %+v", conf)
	return conf, nil
}

// LoadChainConfigFile load, unmarshal, and apply beacon chain config file.
func LoadChainConfigFile(chainConfigFileName string) error {
	yamlFile, err := os.ReadFile(chainConfigFileName) // #nosec G304
	if err != nil {
		return errors.Wrap(err, "failed to read chain config file")
	}
	conf, err := UnmarshalConfig(yamlFile)
	if err != nil {
		return err
	}
	OverrideBeaconConfig(conf)
	return nil
}

// ConfigToYaml takes a provided config and outputs its contents
// in yaml. This allows custom configs to be read by other clients.
func ConfigToYaml(cfg *BeaconChainConfig) []byte {
	lines := []string{}
	lines = append(lines, fmt.Sprintf("PRESET_BASE: '%s'", cfg.PresetBase))
	lines = append(lines, fmt.Sprintf("CONFIG_NAME: '%s'", cfg.ConfigName))
	lines = append(lines, fmt.Sprintf("MIN_GENESIS_ACTIVE_VALIDATOR_COUNT: %d", cfg.MinGenesisActiveValidatorCount))
	lines = append(lines, fmt.Sprintf("GENESIS_DELAY: %d", cfg.GenesisDelay))
	lines = append(lines, fmt.Sprintf("MIN_GENESIS_TIME: %d", cfg.MinGenesisTime))
	lines = append(lines, fmt.Sprintf("SECONDS_PER_SLOT: %d", cfg.SecondsPerSlot))
	lines = append(lines, fmt.Sprintf("SLOTS_PER_EPOCH: %d", cfg.SlotsPerEpoch))
	lines = append(lines, fmt.Sprintf("SLOTS_PER_HISTORICAL_ROOT: %d", cfg.SlotsPerHistoricalRoot))
	lines = append(lines, fmt.Sprintf("MIN_ATTESTATION_INCLUSION_DELAY: %d", cfg.MinAttestationInclusionDelay))
	lines = append(lines, fmt.Sprintf("MAX_EFFECTIVE_BALANCE: %d", cfg.MaxEffectiveBalance))
	lines = append(lines, fmt.Sprintf("EFFECTIVE_BALANCE_INCREMENT: %d", cfg.EffectiveBalanceIncrement))
	lines = append(lines, fmt.Sprintf("EJECTION_BALANCE: %d", cfg.EjectionBalance))
	lines = append(lines, fmt.Sprintf("MIN_DEPOSIT_AMOUNT: %d", cfg.MinDepositAmount))
	lines = append(lines, fmt.Sprintf("MAX_ATTESTATIONS: %d", cfg.MaxAttestations))
	lines = append(lines, fmt.Sprintf("MAX_DEPOSITS: %d", cfg.MaxDeposits))
	lines = append(lines, fmt.Sprintf("VERIFY_DEPOSIT_PROOFS: %t", cfg.VerifyDepositProofs))

	yamlFile := []byte(strings.Join(lines, "\n"))
	return yamlFile
}
