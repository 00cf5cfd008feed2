package domain

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Credential is an unlocked signing key for one deployment request
type Credential struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}
