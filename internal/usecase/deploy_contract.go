package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

// DeploymentState is the terminal state of a successful deployment request
type DeploymentState string

const (
	// StateAlreadyRecorded means a record existed and the chain was not consulted
	StateAlreadyRecorded DeploymentState = "already-recorded"
	// StateAlreadyDeployed means code was found at the predicted address and adopted
	StateAlreadyDeployed DeploymentState = "already-deployed"
	// StateDeployed means a transaction was sent and confirmed
	StateDeployed DeploymentState = "deployed"
)

// DeployParams contains parameters for a single salted deployment
type DeployParams struct {
	// Name keys the deployment record
	Name string
	// Contract is the artifact reference; defaults to Name
	Contract string
	Entropy  *big.Int
	Args     []string
	// Libraries maps a library reference ("Book" or "path/Book.sol:Book") to its address
	Libraries map[string]common.Address
	// Credentials signs the deployment; required unless a record already exists
	Credentials CredentialProvider
	SkipVerify  bool
}

// DeployResult contains the outcome of a deployment request
type DeployResult struct {
	Deployment *models.Deployment
	State      DeploymentState
	Salt       domain.Salt
	Predicted  common.Address
	// PredictionMismatch is set when the creation event reported an address
	// other than the factory prediction. The event address is recorded.
	PredictionMismatch bool
	Verified           bool
}

// DeployContract performs one idempotent salted deployment through the factory
type DeployContract struct {
	config    *config.RuntimeConfig
	chain     ChainClient
	factory   FactoryClient
	repo      DeploymentRepository
	artifacts ArtifactRepository
	encoder   ConstructorEncoder
	waiter    *ReceiptWaiter
	notifier  *VerificationNotifier
	confirmer NetworkConfirmer
	sink      ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	chain ChainClient,
	factory FactoryClient,
	repo DeploymentRepository,
	artifacts ArtifactRepository,
	encoder ConstructorEncoder,
	waiter *ReceiptWaiter,
	notifier *VerificationNotifier,
	confirmer NetworkConfirmer,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		chain:     chain,
		factory:   factory,
		repo:      repo,
		artifacts: artifacts,
		encoder:   encoder,
		waiter:    waiter,
		notifier:  notifier,
		confirmer: confirmer,
		sink:      sink,
		log:       log.With("component", "DeployContract"),
	}
}

// Run executes the deployment state machine
func (uc *DeployContract) Run(ctx context.Context, params DeployParams) (*DeployResult, error) {
	if err := domain.ValidateEntropy(params.Entropy); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Value: params.Name, Err: errors.New("deployment name is required")}
	}
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("%w: no network selected", domain.ErrInvalidConfig)
	}

	// A persisted record is authoritative
	existing, err := uc.repo.GetDeployment(ctx, network.ChainID, params.Name)
	if err == nil {
		uc.log.Info("deployment already recorded", "name", params.Name, "address", existing.Address.Hex())
		return &DeployResult{Deployment: existing, State: StateAlreadyRecorded, Predicted: existing.Address}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up deployment record: %w", err)
	}

	// Build init code before touching the chain so link errors fail closed
	contractRef := params.Contract
	if contractRef == "" {
		contractRef = params.Name
	}
	artifact, err := uc.artifacts.GetArtifact(ctx, contractRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", contractRef, err)
	}
	links, err := resolveLibraryLinks(artifact, params.Libraries)
	if err != nil {
		return nil, err
	}
	linked, err := domain.LinkAndVerify(artifact.Bytecode.Object, links)
	if err != nil {
		return nil, fmt.Errorf("failed to link %s: %w", artifact.FullyQualifiedName(), err)
	}
	bytecode, err := domain.DecodeBytecode(linked)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s bytecode: %w", artifact.FullyQualifiedName(), err)
	}
	encodedArgs, err := uc.encoder.EncodeConstructorArgs(artifact.ABI, params.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	initCode := append(append([]byte{}, bytecode...), encodedArgs...)

	if params.Credentials == nil {
		return nil, fmt.Errorf("%w: no credential provider for deployment", domain.ErrInvalidConfig)
	}
	cred, err := params.Credentials.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployer credential: %w", err)
	}

	// SALT_COMPUTED
	salt, err := domain.NewSalt(cred.Address, params.Entropy)
	if err != nil {
		return nil, err
	}
	guard := uc.config.Factory.SaltGuard
	uc.log.Debug("salt computed", "name", params.Name, "salt", salt.Hex(), "guard", guard)

	// ADDRESS_PREDICTED
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "predicting", Message: fmt.Sprintf("Predicting address for %s", params.Name), Spinner: true})
	predicted, err := uc.factory.ComputeCreate3Address(ctx, guard.PredictionSalt(cred.Address, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to predict address: %w", err)
	}
	uc.log.Debug("address predicted", "name", params.Name, "address", predicted.Hex())

	code, err := uc.chain.CodeAt(ctx, predicted)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", predicted.Hex(), err)
	}

	record := &models.Deployment{
		Name:     params.Name,
		ChainID:  network.ChainID,
		Address:  predicted,
		ABI:      artifact.ABI,
		Args:     params.Args,
		Bytecode: linked,
		Strategy: models.DeploymentStrategy{
			Method:          models.DeploymentMethodCreate3,
			Factory:         uc.factory.Address(),
			Salt:            salt.Hex(),
			Entropy:         params.Entropy.String(),
			SaltGuard:       string(guard),
			ConstructorArgs: encodedArgs,
			InitCodeHash:    crypto.Keccak256Hash(initCode),
		},
		Artifact:  artifact.Info(),
		Libraries: linkMap(links),
		CreatedAt: time.Now().UTC(),
	}

	state := StateAlreadyDeployed
	if len(code) > 0 {
		uc.log.Info("contract already deployed", "name", params.Name, "address", predicted.Hex())
	} else {
		txHash, deployed, err := uc.broadcast(ctx, network, cred, salt, initCode, predicted, params.Name)
		if err != nil {
			return nil, err
		}
		record.Address = deployed
		record.TransactionHash = &txHash
		state = StateDeployed
	}

	// RECORD_PERSISTED
	stored, created, err := uc.repo.CreateDeploymentIfAbsent(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save deployment record: %w", err)
	}
	if !created {
		uc.log.Warn("deployment recorded concurrently, keeping existing record", "name", params.Name, "address", stored.Address.Hex())
	}

	result := &DeployResult{
		Deployment:         stored,
		State:              state,
		Salt:               salt,
		Predicted:          predicted,
		PredictionMismatch: stored.Address != predicted,
	}

	// VERIFIED (best effort)
	if !params.SkipVerify && created {
		result.Verified = uc.notifier.Notify(ctx, stored, network)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "completed", Message: fmt.Sprintf("%s at %s", params.Name, stored.Address.Hex())})
	return result, nil
}

// broadcast simulates, sends and confirms the factory deployment and returns
// the transaction hash and the address reported by the creation event.
func (uc *DeployContract) broadcast(
	ctx context.Context,
	network *config.Network,
	cred *domain.Credential,
	salt domain.Salt,
	initCode []byte,
	predicted common.Address,
	name string,
) (common.Hash, common.Address, error) {
	simulated, err := uc.factory.SimulateDeployCreate3(ctx, cred.Address, salt, initCode)
	if err != nil {
		return common.Hash{}, common.Address{}, fmt.Errorf("deployment simulation failed: %w", err)
	}
	if simulated != predicted {
		return common.Hash{}, common.Address{}, &domain.SaltGuardMismatchError{
			Guard:     uc.config.Factory.SaltGuard,
			Predicted: predicted,
			Simulated: simulated,
		}
	}

	if network.Production && uc.confirmer != nil {
		ok, err := uc.confirmer.ConfirmNetwork(ctx, network, cred.Address)
		if err != nil {
			return common.Hash{}, common.Address{}, err
		}
		if !ok {
			return common.Hash{}, common.Address{}, fmt.Errorf("deployment to %s cancelled", network.Name)
		}
	}

	// TX_SUBMITTED
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "broadcasting", Message: fmt.Sprintf("Deploying %s", name), Spinner: true})
	txHash, err := uc.factory.DeployCreate3(ctx, cred, salt, initCode)
	if err != nil {
		return common.Hash{}, common.Address{}, fmt.Errorf("failed to send deployment transaction: %w", err)
	}
	uc.log.Info("deployment transaction sent", "name", name, "tx", txHash.Hex())

	// RECEIPT_CONFIRMED
	receipt, err := uc.waiter.Wait(ctx, txHash)
	if err != nil {
		return txHash, common.Address{}, fmt.Errorf("failed to get receipt for %s: %w", txHash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return txHash, common.Address{}, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, txHash.Hex())
	}

	deployed, ok := uc.createdContract(receipt)
	if !ok {
		return txHash, common.Address{}, &domain.CreationEventMissingError{TxHash: txHash, Factory: uc.factory.Address()}
	}
	if deployed != predicted {
		uc.log.Warn("deployed address differs from prediction", "name", name, "predicted", predicted.Hex(), "deployed", deployed.Hex())
	}
	uc.log.Info("contract created", "name", name, "address", deployed.Hex())
	return txHash, deployed, nil
}

// createdContract scans the factory's logs for a ContractCreation event
func (uc *DeployContract) createdContract(receipt *types.Receipt) (common.Address, bool) {
	factory := uc.factory.Address()
	for _, log := range receipt.Logs {
		if log.Address != factory {
			continue
		}
		if addr, ok := uc.factory.CreatedContract(log); ok {
			return addr, true
		}
	}
	return common.Address{}, false
}

// resolveLibraryLinks maps user library references onto the fully qualified
// names the artifact was compiled against. A bare contract name must match
// exactly one required library.
func resolveLibraryLinks(artifact *models.Artifact, libraries map[string]common.Address) ([]domain.LibraryLink, error) {
	if len(libraries) == 0 {
		return nil, nil
	}
	required := artifact.RequiredLibraries()

	links := make([]domain.LibraryLink, 0, len(libraries))
	for ref, addr := range libraries {
		if idx := strings.LastIndex(ref, ":"); idx > 0 {
			links = append(links, domain.LibraryLink{SourceName: ref[:idx], ContractName: ref[idx+1:], Address: addr})
			continue
		}

		var matches []models.LibraryRef
		for _, lib := range required {
			if lib.ContractName == ref {
				matches = append(matches, lib)
			}
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("library %s is not referenced by %s", ref, artifact.FullyQualifiedName())
		case 1:
			links = append(links, domain.LibraryLink{SourceName: matches[0].SourceName, ContractName: ref, Address: addr})
		default:
			return nil, fmt.Errorf("library %s is ambiguous in %s, use path:name", ref, artifact.FullyQualifiedName())
		}
	}
	return links, nil
}

func linkMap(links []domain.LibraryLink) map[string]common.Address {
	if len(links) == 0 {
		return nil
	}
	m := make(map[string]common.Address, len(links))
	for _, l := range links {
		m[l.FullyQualifiedName()] = l.Address
	}
	return m
}
