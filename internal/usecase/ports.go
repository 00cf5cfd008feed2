package usecase

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

// ChainClient reads chain state for the selected network.
// Failures are returned as *domain.ChainError so callers can tell transient from fatal.
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)
	NonceAt(ctx context.Context, address common.Address) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// FactoryClient talks to the salted deployment factory (CreateX)
type FactoryClient interface {
	Address() common.Address
	// ComputeCreate3Address asks the factory where a CREATE3 deployment with salt would land
	ComputeCreate3Address(ctx context.Context, salt [32]byte) (common.Address, error)
	// ComputeCreateAddress asks the factory for the CREATE address of deployer at nonce
	ComputeCreateAddress(ctx context.Context, deployer common.Address, nonce uint64) (common.Address, error)
	// SimulateDeployCreate3 dry-runs the deployment from the deployer without sending a transaction
	SimulateDeployCreate3(ctx context.Context, from common.Address, salt domain.Salt, initCode []byte) (common.Address, error)
	// DeployCreate3 signs and sends the deployment transaction
	DeployCreate3(ctx context.Context, cred *domain.Credential, salt domain.Salt, initCode []byte) (common.Hash, error)
	// CreatedContract extracts the deployed address from a factory creation log
	CreatedContract(log *types.Log) (common.Address, bool)
}

// DeploymentRepository handles persistence of deployment records
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, chainID uint64, name string) (*models.Deployment, error)
	// CreateDeploymentIfAbsent stores the record unless one already exists for
	// (chainID, name). It returns the stored record and whether it was created.
	CreateDeploymentIfAbsent(ctx context.Context, deployment *models.Deployment) (*models.Deployment, bool, error)
	ListDeployments(ctx context.Context, chainID uint64) ([]*models.Deployment, error)
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	// GetArtifact resolves "Name" or "path/To.sol:Name" to a compiled artifact
	GetArtifact(ctx context.Context, ref string) (*models.Artifact, error)
}

// ConstructorEncoder converts textual constructor arguments to ABI-encoded bytes
type ConstructorEncoder interface {
	EncodeConstructorArgs(abiJSON json.RawMessage, args []string) ([]byte, error)
}

// VerificationRequest carries what a source verifier needs
type VerificationRequest struct {
	Deployment *models.Deployment
	Network    *config.Network
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req VerificationRequest) error
}

// CredentialProvider supplies the signing credential for a single invocation
type CredentialProvider interface {
	Credential(ctx context.Context) (*domain.Credential, error)
}

// PlanLoader reads deployment plans
type PlanLoader interface {
	LoadPlan(ctx context.Context, path string) (*domain.DeploymentPlan, error)
}

// NetworkConfirmer asks the user to confirm broadcasting to a production network
type NetworkConfirmer interface {
	ConfirmNetwork(ctx context.Context, network *config.Network, deployer common.Address) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
