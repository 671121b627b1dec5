package config

// BridgeConfig describes a single managed bridge configuration. The shape is
// declared for the user configuration document; loading it is not implemented
// yet.
//
// TODO: load BridgeSet from AppConfig.UserConf once the bridge lifecycle is
// specified.
type BridgeConfig struct {
	Path   string `toml:"path"`
	Token  bool   `toml:"token"`
	URI    string `toml:"uri"`
	Active bool   `toml:"connected"`
}

// BridgeSet groups the bridge configurations of the user document.
type BridgeSet struct {
	Confs []BridgeConfig `toml:"confs"`
}
