package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DeploymentMethod represents how the contract was deployed
type DeploymentMethod string

const (
	DeploymentMethodCreate  DeploymentMethod = "CREATE"
	DeploymentMethodCreate3 DeploymentMethod = "CREATE3"
)

// Deployment is the persisted record of a named contract on one chain.
// Once written it is authoritative: later runs return it instead of touching the chain.
type Deployment struct {
	// Core identification
	Name    string         `json:"name"`
	ChainID uint64         `json:"chainId"`
	Address common.Address `json:"address"`

	// TransactionHash is nil when the contract was found already deployed at
	// the predicted address and no transaction was sent.
	TransactionHash *common.Hash `json:"transactionHash"`

	ABI      json.RawMessage `json:"abi"`
	Args     []string        `json:"args"`
	Bytecode string          `json:"bytecode"` // Linked creation bytecode, without constructor args

	// Deployment strategy
	Strategy DeploymentStrategy `json:"strategy"`

	// Contract artifact information
	Artifact ArtifactInfo `json:"artifact"`

	// Libraries maps linked library fully qualified names to their addresses
	Libraries map[string]common.Address `json:"libraries,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// DeploymentStrategy contains the salted factory deployment details
type DeploymentStrategy struct {
	Method          DeploymentMethod `json:"method"`
	Factory         common.Address   `json:"factory"`
	Salt            string           `json:"salt"`
	Entropy         string           `json:"entropy"`
	SaltGuard       string           `json:"saltGuard"`
	ConstructorArgs hexutil.Bytes    `json:"constructorArgs,omitempty"`
	InitCodeHash    common.Hash      `json:"initCodeHash"`
}

// ArtifactInfo identifies the compiled contract that was deployed
type ArtifactInfo struct {
	SourceName      string `json:"sourceName"`
	ContractName    string `json:"contractName"`
	CompilerVersion string `json:"compilerVersion,omitempty"`
}

// FullyQualifiedName returns "sourceName:contractName"
func (a ArtifactInfo) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// WasBroadcast reports whether this record was produced by a transaction of ours
func (d *Deployment) WasBroadcast() bool {
	return d.TransactionHash != nil
}

// TransactionHashHex returns the hash or "-" when no transaction was sent
func (d *Deployment) TransactionHashHex() string {
	if d.TransactionHash == nil {
		return "-"
	}
	return d.TransactionHash.Hex()
}
