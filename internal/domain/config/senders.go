package config

type SenderType string

var (
	SenderTypePrivateKey SenderType = "private_key"
	SenderTypeKeystore   SenderType = "keystore"
)

// SenderConfig represents the account that signs deployments.
// Values may reference environment variables as ${VAR}.
type SenderConfig struct {
	Type        SenderType `toml:"type"`
	PrivateKey  string     `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Keystore    string     `toml:"keystore,omitempty"`     // Path to an encrypted JSON key file
	PasswordEnv string     `toml:"password_env,omitempty"` // Env var holding the keystore password
	Address     string     `toml:"address,omitempty"`      // Optional, checked against the key
}

// IsZero reports whether no sender has been configured
func (s SenderConfig) IsZero() bool {
	return s.Type == "" && s.PrivateKey == "" && s.Keystore == ""
}
