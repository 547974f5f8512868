package params

const (
	// MainnetName is the name of the mainnet preset.
	MainnetName = "mainnet"
	// MinimalName is the name of the minimal preset.
	MinimalName = "minimal"
	// EndToEndName is the name of the end-to-end testing preset.
	EndToEndName = "end-to-end"
	// DevnetName is used for configs loaded from a file without a CONFIG_NAME.
	DevnetName = "devnet"
)

// ConfigName enum describes the type of known network in use.
type ConfigName int

const (
	Mainnet ConfigName = iota
	Minimal
	EndToEnd
)

// ConfigNames provides network configuration names.
var ConfigNames = map[ConfigName]string{
	Mainnet:  MainnetName,
	Minimal:  MinimalName,
	EndToEnd: EndToEndName,
}

func (n ConfigName) String() string {
	s, ok := ConfigNames[n]
	if !ok {
		return "undefined"
	}
	return s
}

// AllConfigs returns a copy of every known preset keyed by its name.
func AllConfigs() map[ConfigName]*BeaconChainConfig {
	all := make(map[ConfigName]*BeaconChainConfig)
	for name := range ConfigNames {
		var cfg *BeaconChainConfig
		switch name {
		case Mainnet:
			cfg = MainnetConfig()
		case Minimal:
			cfg = MinimalSpecConfig()
		case EndToEnd:
			cfg = E2ETestConfig()
		}
		all[name] = cfg.Copy()
	}
	return all
}

// ByName returns a copy of the preset with the given name.
func ByName(name string) (*BeaconChainConfig, bool) {
	for n, s := range ConfigNames {
		if s == name {
			return AllConfigs()[n], true
		}
	}
	return nil, false
}
