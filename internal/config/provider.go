package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection. The network
// registry is validated here, so a bad treb-deploy.toml fails before any
// command runs.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	file, err := loadDeployFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		DataDir:           filepath.Join(projectRoot, ".treb"),
		ArtifactsDir:      projectPath(projectRoot, file.Artifacts, "out"),
		DeploymentsDir:    projectPath(projectRoot, file.Deployments, "deployments"),
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		JSON:              v.GetBool("json"),
		SkipVerify:        v.GetBool("skip_verify"),
		Timeout:           v.GetDuration("timeout"),
		ReceiptRetryDelay: v.GetDuration("receipt_retry_delay"),
		VerifyTimeout:     v.GetDuration("verify_timeout"),
		Sender:            file.Sender,
	}

	cfg.Factory, err = parseFactory(file.Factory)
	if err != nil {
		return nil, fmt.Errorf("invalid [factory] section: %w", err)
	}

	cfg.Networks, err = buildRegistry(file)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", DeployFileName, err)
	}

	if ref := v.GetString("network"); ref != "" {
		network, err := cfg.Networks.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", ref, err)
		}
		cfg.Network = network
		if network.Factory != nil {
			cfg.Factory = *network.Factory
		}
		if network.Sender != nil {
			cfg.Sender = *network.Sender
		}
	}

	return cfg, nil
}

func projectPath(root, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(root, value)
}

// FindProjectRoot walks up from the current directory to the first directory
// holding treb-deploy.toml or foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{DeployFileName, "foundry.toml"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a project (%s or foundry.toml not found)", DeployFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance. Flags are bound with
// dashes replaced by underscores, so --non-interactive reads as non_interactive.
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".treb"))

	v.SetEnvPrefix("TREB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "5m")
	v.SetDefault("receipt_retry_delay", "500ms")
	v.SetDefault("verify_timeout", "2m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
