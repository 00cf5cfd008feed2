package senders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

const anvilKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var anvilAddress = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func provider(t *testing.T, sender config.SenderConfig) *credentialProvider {
	t.Helper()
	p, err := NewService(&config.RuntimeConfig{Sender: sender}).Provider()
	require.NoError(t, err)
	return p.(*credentialProvider)
}

func TestPrivateKeySender(t *testing.T) {
	p := provider(t, config.SenderConfig{Type: config.SenderTypePrivateKey, PrivateKey: anvilKey})

	cred, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, anvilAddress, cred.Address)

	again, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.Same(t, cred, again)
}

func TestSenderAddressCheck(t *testing.T) {
	p := provider(t, config.SenderConfig{
		Type:       config.SenderTypePrivateKey,
		PrivateKey: anvilKey,
		Address:    "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	})

	_, err := p.Credential(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), anvilAddress.Hex())
}

func TestKeystoreSender(t *testing.T) {
	key, err := crypto.HexToECDSA(anvilKey[2:])
	require.NoError(t, err)

	encrypted, err := keystore.EncryptKey(&keystore.Key{
		Id:         uuid.New(),
		Address:    anvilAddress,
		PrivateKey: key,
	}, "hunter2", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "deployer.json")
	require.NoError(t, os.WriteFile(path, encrypted, 0600))

	sender := config.SenderConfig{Type: config.SenderTypeKeystore, Keystore: path, PasswordEnv: "TEST_KEYSTORE_PASSWORD"}

	t.Run("decrypts with the password from the environment", func(t *testing.T) {
		t.Setenv("TEST_KEYSTORE_PASSWORD", "hunter2")

		cred, err := provider(t, sender).Credential(context.Background())
		require.NoError(t, err)
		assert.Equal(t, anvilAddress, cred.Address)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Setenv("TEST_KEYSTORE_PASSWORD", "wrong")

		_, err := provider(t, sender).Credential(context.Background())
		assert.ErrorIs(t, err, keystore.ErrDecrypt)
	})
}

func TestValidateSender(t *testing.T) {
	tests := []struct {
		name    string
		sender  config.SenderConfig
		wantErr string
	}{
		{"empty", config.SenderConfig{}, "no sender configured"},
		{"missing key", config.SenderConfig{Type: config.SenderTypePrivateKey}, "private key is required"},
		{"malformed key", config.SenderConfig{Type: config.SenderTypePrivateKey, PrivateKey: "0x1234"}, "invalid private key format"},
		{"keystore without password", config.SenderConfig{Type: config.SenderTypeKeystore, Keystore: "k.json"}, "password_env is required"},
		{"unknown type", config.SenderConfig{Type: "ledger", PrivateKey: anvilKey}, "unknown sender type"},
		{"bad address", config.SenderConfig{Type: config.SenderTypePrivateKey, PrivateKey: anvilKey, Address: "0x12"}, "invalid sender address"},
		{"valid", config.SenderConfig{Type: config.SenderTypePrivateKey, PrivateKey: anvilKey}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSender(tt.sender)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
