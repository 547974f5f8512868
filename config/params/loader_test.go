package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

func TestUnmarshalConfig_MinimalPreset(t *testing.T) {
	cfg, err := params.UnmarshalConfig([]byte("PRESET_BASE: 'minimal'\nCONFIG_NAME: 'local'\nSLOTS_PER_EPOCH: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.ConfigName)
	assert.Equal(t, primitives.Slot(4), cfg.SlotsPerEpoch)
	assert.Equal(t, primitives.Slot(64), cfg.SlotsPerHistoricalRoot)
}

func TestUnmarshalConfig_DefaultsToMainnet(t *testing.T) {
	cfg, err := params.UnmarshalConfig([]byte("MAX_DEPOSITS: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, params.DevnetName, cfg.ConfigName)
	assert.Equal(t, uint64(4), cfg.MaxDeposits)
	assert.Equal(t, primitives.Slot(32), cfg.SlotsPerEpoch)
	// The preset itself is untouched.
	assert.Equal(t, uint64(16), params.MainnetConfig().MaxDeposits)
}

func TestUnmarshalConfig_Malformed(t *testing.T) {
	_, err := params.UnmarshalConfig([]byte("SLOTS_PER_EPOCH: [\n"))
	require.ErrorContains(t, "failed to parse chain config yaml file", err)
}

func TestUnmarshalConfig_UnknownKeyIsLogged(t *testing.T) {
	hook := logTest.NewGlobal()
	cfg, err := params.UnmarshalConfig([]byte("NOT_A_FIELD: 1\nMAX_DEPOSITS: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cfg.MaxDeposits)
	assert.LogsContain(t, hook, "There were some issues parsing the config")
}

func TestUnmarshalConfig_RejectsZeroSlotsPerEpoch(t *testing.T) {
	_, err := params.UnmarshalConfig([]byte("SLOTS_PER_EPOCH: 0\n"))
	require.ErrorContains(t, "SLOTS_PER_EPOCH must be positive", err)
}

func TestLoadChainConfigFile_RoundTrip(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	want := params.E2ETestConfig()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, params.ConfigToYaml(want), 0600))

	require.NoError(t, params.LoadChainConfigFile(file))
	got := params.BeaconConfig()
	assert.Equal(t, want.SlotsPerEpoch, got.SlotsPerEpoch)
	assert.Equal(t, want.SlotsPerHistoricalRoot, got.SlotsPerHistoricalRoot)
	assert.Equal(t, want.ConfigName, got.ConfigName)
	assert.Equal(t, true, got.VerifyDepositProofs)
}

func TestLoadChainConfigFile_Missing(t *testing.T) {
	err := params.LoadChainConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, "failed to read chain config file", err)
}

func TestCopy_IsIndependent(t *testing.T) {
	cfg := params.MainnetConfig().Copy()
	cfg.SlotsPerEpoch = 3
	assert.Equal(t, primitives.Slot(32), params.MainnetConfig().SlotsPerEpoch)
}

func TestAllConfigs(t *testing.T) {
	all := params.AllConfigs()
	assert.Equal(t, 3, len(all))
	assert.Equal(t, primitives.Slot(4), all[params.EndToEnd].SlotsPerEpoch)
	cfg, ok := params.ByName("minimal")
	require.Equal(t, true, ok)
	assert.Equal(t, primitives.Slot(8), cfg.SlotsPerEpoch)
	assert.Equal(t, "minimal", params.Minimal.String())
}
