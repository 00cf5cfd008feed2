package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDeployer = common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")

func TestNewSalt(t *testing.T) {
	salt, err := NewSalt(testDeployer, big.NewInt(1000))
	require.NoError(t, err)

	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb922660000000000000000000003e8", salt.Hex())
	assert.Equal(t, testDeployer, salt.Deployer())
	assert.Equal(t, SaltMarkerByte, salt[20])
	assert.Equal(t, int64(1000), salt.Entropy().Int64())
}

func TestNewSalt_EntropyBounds(t *testing.T) {
	maxValid := new(big.Int).Sub(MaxEntropy, big.NewInt(1))

	salt, err := NewSalt(testDeployer, maxValid)
	require.NoError(t, err)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb9226600ffffffffffffffffffffff", salt.Hex())

	for name, entropy := range map[string]*big.Int{
		"two to the 88": new(big.Int).Set(MaxEntropy),
		"negative":      big.NewInt(-1),
		"nil":           nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewSalt(testDeployer, entropy)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEntropy))
		})
	}
}

func TestGuardedSalt(t *testing.T) {
	salt, err := NewSalt(testDeployer, big.NewInt(1000))
	require.NoError(t, err)

	guarded := GuardedSalt(testDeployer, salt)
	assert.Equal(t, "0x37324f69bd390d6512d165d859d78478fe55c6d904b5b29b06790a854412a8d9", guarded.Hex())
}

func TestSaltGuard_PredictionSalt(t *testing.T) {
	salt, err := NewSalt(testDeployer, big.NewInt(1000))
	require.NoError(t, err)

	assert.Equal(t, [32]byte(salt), SaltGuardRaw.PredictionSalt(testDeployer, salt))
	assert.Equal(t, [32]byte(GuardedSalt(testDeployer, salt)), SaltGuardGuarded.PredictionSalt(testDeployer, salt))
}

func TestParseSaltGuard(t *testing.T) {
	guard, err := ParseSaltGuard("")
	require.NoError(t, err)
	assert.Equal(t, SaltGuardGuarded, guard)

	guard, err = ParseSaltGuard(" RAW ")
	require.NoError(t, err)
	assert.Equal(t, SaltGuardRaw, guard)

	_, err = ParseSaltGuard("permissioned")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestParseEntropy(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{input: "1000", expected: 1000},
		{input: "0x3e8", expected: 1000},
		{input: " 42 ", expected: 42},
		{input: "0", expected: 0},
		{input: "-5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "309485009821345068724781056", wantErr: true}, // 2^88
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			entropy, err := ParseEntropy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidEntropy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, entropy.Int64())
		})
	}
}
