package senders

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// Service builds credential providers from the effective sender configuration
type Service struct {
	sender config.SenderConfig
}

// NewService creates a new sender service
func NewService(cfg *config.RuntimeConfig) *Service {
	return &Service{sender: cfg.Sender}
}

// Provider returns a fresh credential provider for one invocation. Keys are
// unlocked on first use and never shared between providers.
func (s *Service) Provider() (usecase.CredentialProvider, error) {
	if err := ValidateSender(s.sender); err != nil {
		return nil, err
	}

	var p *credentialProvider
	switch s.sender.Type {
	case config.SenderTypePrivateKey:
		p = &credentialProvider{load: func() (*ecdsa.PrivateKey, error) {
			return parsePrivateKey(s.sender.PrivateKey)
		}}
	case config.SenderTypeKeystore:
		p = &credentialProvider{load: func() (*ecdsa.PrivateKey, error) {
			return decryptKeystore(s.sender.Keystore, s.sender.PasswordEnv)
		}}
	}
	if s.sender.Address != "" {
		p.expected = common.HexToAddress(s.sender.Address)
		p.checkAddress = true
	}
	return p, nil
}

// ValidateSender validates a sender configuration without unlocking it
func ValidateSender(sender config.SenderConfig) error {
	if sender.IsZero() {
		return fmt.Errorf("%w: no sender configured, add a [sender] section", domain.ErrInvalidConfig)
	}

	switch sender.Type {
	case config.SenderTypePrivateKey:
		if sender.PrivateKey == "" {
			return fmt.Errorf("%w: private key is required for private_key sender", domain.ErrInvalidConfig)
		}
		if !isValidPrivateKey(sender.PrivateKey) {
			return fmt.Errorf("%w: invalid private key format", domain.ErrInvalidConfig)
		}
	case config.SenderTypeKeystore:
		if sender.Keystore == "" {
			return fmt.Errorf("%w: keystore path is required for keystore sender", domain.ErrInvalidConfig)
		}
		if sender.PasswordEnv == "" {
			return fmt.Errorf("%w: password_env is required for keystore sender", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown sender type: %s", domain.ErrInvalidConfig, sender.Type)
	}

	if sender.Address != "" && !common.IsHexAddress(sender.Address) {
		return fmt.Errorf("%w: invalid sender address %s", domain.ErrInvalidConfig, sender.Address)
	}
	return nil
}

type credentialProvider struct {
	load         func() (*ecdsa.PrivateKey, error)
	expected     common.Address
	checkAddress bool

	once sync.Once
	cred *domain.Credential
	err  error
}

// Credential unlocks the key on first call
func (p *credentialProvider) Credential(ctx context.Context) (*domain.Credential, error) {
	p.once.Do(func() {
		key, err := p.load()
		if err != nil {
			p.err = err
			return
		}
		addr := crypto.PubkeyToAddress(key.PublicKey)
		if p.checkAddress && addr != p.expected {
			p.err = fmt.Errorf("%w: sender key belongs to %s, expected %s", domain.ErrInvalidConfig, addr.Hex(), p.expected.Hex())
			return
		}
		p.cred = &domain.Credential{Address: addr, PrivateKey: key}
	})
	return p.cred, p.err
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

func decryptKeystore(path, passwordEnv string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}
	password, ok := os.LookupEnv(passwordEnv)
	if !ok {
		return nil, fmt.Errorf("%w: keystore password variable %s is not set", domain.ErrInvalidConfig, passwordEnv)
	}
	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore %s: %w", path, err)
	}
	return key.PrivateKey, nil
}

func isValidPrivateKey(key string) bool {
	key = strings.TrimPrefix(key, "0x")
	if len(key) != 64 {
		return false
	}
	for _, c := range key {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
