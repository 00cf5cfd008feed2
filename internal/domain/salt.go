package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// EntropyBits is the width of the entropy segment of a salt
	EntropyBits = 88

	entropyBytes = EntropyBits / 8
)

// SaltMarkerByte sits between the deployer and the entropy. CreateX reads
// 0x00 as "no cross-chain redeploy protection" for sender-prefixed salts.
const SaltMarkerByte byte = 0x00

// MaxEntropy is the smallest value rejected as entropy (2^88)
var MaxEntropy = new(big.Int).Lsh(big.NewInt(1), EntropyBits)

// Salt is the 32-byte value handed to the factory: deployer ∥ marker ∥ entropy
type Salt [32]byte

// Hex returns the 0x-prefixed hex encoding of the salt
func (s Salt) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Salt) String() string {
	return s.Hex()
}

// Deployer returns the address embedded in the first 20 bytes of the salt
func (s Salt) Deployer() common.Address {
	return common.BytesToAddress(s[:common.AddressLength])
}

// Entropy returns the 88-bit entropy stored in the last 11 bytes
func (s Salt) Entropy() *big.Int {
	return new(big.Int).SetBytes(s[32-entropyBytes:])
}

// ValidateEntropy rejects nil, negative or >= 2^88 entropy
func ValidateEntropy(entropy *big.Int) error {
	if entropy == nil || entropy.Sign() < 0 || entropy.Cmp(MaxEntropy) >= 0 {
		value := "<nil>"
		if entropy != nil {
			value = entropy.String()
		}
		return &ValidationError{Field: "entropy", Value: value, Err: ErrInvalidEntropy}
	}
	return nil
}

// ParseEntropy parses decimal or 0x-prefixed hex entropy and validates its range
func ParseEntropy(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	entropy, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, &ValidationError{Field: "entropy", Value: s, Err: ErrInvalidEntropy}
	}
	if err := ValidateEntropy(entropy); err != nil {
		return nil, err
	}
	return entropy, nil
}

// NewSalt builds the factory salt for a deployer and entropy
func NewSalt(deployer common.Address, entropy *big.Int) (Salt, error) {
	var salt Salt
	if err := ValidateEntropy(entropy); err != nil {
		return salt, err
	}

	copy(salt[:common.AddressLength], deployer.Bytes())
	salt[common.AddressLength] = SaltMarkerByte
	entropy.FillBytes(salt[32-entropyBytes:])
	return salt, nil
}

// GuardedSalt computes keccak256(abi.encode(deployer, salt)), the value CreateX
// substitutes for a sender-protected salt before deriving the address.
func GuardedSalt(deployer common.Address, salt Salt) common.Hash {
	return crypto.Keccak256Hash(common.LeftPadBytes(deployer.Bytes(), 32), salt[:])
}

// SaltGuard selects which salt is handed to the factory for address prediction
type SaltGuard string

const (
	// SaltGuardGuarded predicts with GuardedSalt, matching CreateX's own salt processing
	SaltGuardGuarded SaltGuard = "guarded"
	// SaltGuardRaw predicts with the raw salt, for factories that do not guard
	SaltGuardRaw SaltGuard = "raw"
)

// ParseSaltGuard validates a configured salt guard, defaulting to guarded when empty
func ParseSaltGuard(s string) (SaltGuard, error) {
	switch SaltGuard(strings.ToLower(strings.TrimSpace(s))) {
	case "", SaltGuardGuarded:
		return SaltGuardGuarded, nil
	case SaltGuardRaw:
		return SaltGuardRaw, nil
	}
	return "", fmt.Errorf("%w: salt_guard must be %q or %q, got %q", ErrInvalidConfig, SaltGuardGuarded, SaltGuardRaw, s)
}

// PredictionSalt returns the salt to pass to the factory's address computation
func (g SaltGuard) PredictionSalt(deployer common.Address, salt Salt) [32]byte {
	if g == SaltGuardRaw {
		return salt
	}
	return GuardedSalt(deployer, salt)
}
