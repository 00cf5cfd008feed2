package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

// DeployFileName is the project configuration file
const DeployFileName = "treb-deploy.toml"

// loadEnvFiles loads .env and .env.local from the project root so that
// ${VAR} references in treb-deploy.toml can be expanded. Variables already set
// in the environment win.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// loadDeployFile loads and parses treb-deploy.toml. A missing file yields an
// empty configuration.
func loadDeployFile(projectRoot string) (*config.DeployFileConfig, error) {
	path := filepath.Join(projectRoot, DeployFileName)

	var cfg config.DeployFileConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeployFileName, err)
	}

	expandFactory(&cfg.Factory)
	expandSender(&cfg.Sender)
	for name, n := range cfg.Networks {
		n.RPCURL = os.ExpandEnv(n.RPCURL)
		n.ExplorerURL = os.ExpandEnv(n.ExplorerURL)
		if n.Factory != nil {
			expandFactory(n.Factory)
		}
		if n.Sender != nil {
			expandSender(n.Sender)
		}
		cfg.Networks[name] = n
	}

	return &cfg, nil
}

func expandFactory(f *config.FactoryFileConfig) {
	f.Address = os.ExpandEnv(f.Address)
	f.SaltGuard = os.ExpandEnv(f.SaltGuard)
}

func expandSender(s *config.SenderConfig) {
	s.PrivateKey = os.ExpandEnv(s.PrivateKey)
	s.Keystore = os.ExpandEnv(s.Keystore)
	s.Address = os.ExpandEnv(s.Address)
}

// parseFactory validates a factory section, filling in the canonical CreateX
// address and the guarded salt mode when omitted.
func parseFactory(f config.FactoryFileConfig) (config.FactoryConfig, error) {
	out := config.FactoryConfig{Address: config.DefaultFactoryAddress}
	if f.Address != "" {
		if !common.IsHexAddress(f.Address) {
			return out, fmt.Errorf("%w: invalid factory address %q", domain.ErrInvalidConfig, f.Address)
		}
		out.Address = common.HexToAddress(f.Address)
	}

	guard, err := domain.ParseSaltGuard(f.SaltGuard)
	if err != nil {
		return out, err
	}
	out.SaltGuard = guard
	return out, nil
}

// buildRegistry converts the [networks] tables into a validated registry.
// Per-network factory sections are merged over the top level one.
func buildRegistry(file *config.DeployFileConfig) (*config.NetworkRegistry, error) {
	names := make([]string, 0, len(file.Networks))
	for name := range file.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	networks := make([]*config.Network, 0, len(names))
	for _, name := range names {
		raw := file.Networks[name]
		n := &config.Network{
			ChainID:     raw.ChainID,
			Name:        name,
			RPCURL:      raw.RPCURL,
			ExplorerURL: raw.ExplorerURL,
			Verifiers:   raw.Verifiers,
			Production:  raw.Production,
		}

		if raw.Factory != nil {
			merged := file.Factory
			if raw.Factory.Address != "" {
				merged.Address = raw.Factory.Address
			}
			if raw.Factory.SaltGuard != "" {
				merged.SaltGuard = raw.Factory.SaltGuard
			}
			factory, err := parseFactory(merged)
			if err != nil {
				return nil, fmt.Errorf("network '%s': %w", name, err)
			}
			n.Factory = &factory
		}
		if raw.Sender != nil {
			sender := *raw.Sender
			n.Sender = &sender
		}

		networks = append(networks, n)
	}

	return config.NewNetworkRegistry(networks)
}
