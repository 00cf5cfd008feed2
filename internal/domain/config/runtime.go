package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
)

// LocalChainID is the development chain ID for which verification is skipped
const LocalChainID uint64 = 31337

// DefaultFactoryAddress is the canonical CreateX deployment address
var DefaultFactoryAddress = common.HexToAddress("0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed")

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	ArtifactsDir   string
	DeploymentsDir string

	// Networks is validated at load time; Network is nil if none was selected
	Networks *NetworkRegistry
	Network  *Network

	// Effective settings for the selected network (top level when none is selected)
	Factory FactoryConfig
	Sender  SenderConfig

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	SkipVerify     bool
	Timeout        time.Duration

	ReceiptRetryDelay time.Duration
	VerifyTimeout     time.Duration
}

// FactoryConfig is a validated factory selection
type FactoryConfig struct {
	Address   common.Address
	SaltGuard domain.SaltGuard
}

// Network represents network configuration
type Network struct {
	ChainID     uint64   `json:"chainId"`
	Name        string   `json:"name"`
	RPCURL      string   `json:"rpcUrl"`
	ExplorerURL string   `json:"explorerUrl,omitempty"`
	Verifiers   []string `json:"verifiers,omitempty"`
	Production  bool     `json:"production,omitempty"`

	Factory *FactoryConfig `json:"-"`
	Sender  *SenderConfig  `json:"-"`
}

// IsLocal reports whether this is a local development chain
func (n *Network) IsLocal() bool {
	return n.ChainID == LocalChainID
}
