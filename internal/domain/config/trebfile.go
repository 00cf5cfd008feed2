package config

// DeployFileConfig represents the full treb-deploy.toml configuration file
type DeployFileConfig struct {
	Artifacts   string                       `toml:"artifacts,omitempty"`   // Defaults to "out"
	Deployments string                       `toml:"deployments,omitempty"` // Defaults to "deployments"
	Factory     FactoryFileConfig            `toml:"factory"`
	Sender      SenderConfig                 `toml:"sender"`
	Networks    map[string]NetworkFileConfig `toml:"networks"`
}

// FactoryFileConfig represents a [factory] section
type FactoryFileConfig struct {
	Address   string `toml:"address,omitempty"`
	SaltGuard string `toml:"salt_guard,omitempty"` // "guarded" or "raw"
}

// NetworkFileConfig represents a [networks.<name>] section.
// Factory and Sender override the top level sections for this network.
type NetworkFileConfig struct {
	ChainID     uint64             `toml:"chain_id"`
	RPCURL      string             `toml:"rpc_url"`
	ExplorerURL string             `toml:"explorer_url,omitempty"`
	Verifiers   []string           `toml:"verifiers,omitempty"`
	Production  bool               `toml:"production,omitempty"`
	Factory     *FactoryFileConfig `toml:"factory,omitempty"`
	Sender      *SenderConfig      `toml:"sender,omitempty"`
}
