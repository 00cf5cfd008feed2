package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	Name string
	// Network overrides the selected network
	Network string
	// CheckCode reports whether code is still present at the recorded address
	CheckCode bool
}

// ShowDeploymentResult contains a deployment record and its on-chain status
type ShowDeploymentResult struct {
	Deployment *models.Deployment
	Network    *config.Network
	// HasCode is only meaningful when CodeChecked is set
	HasCode     bool
	CodeChecked bool
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	chain  ChainClient
	sink   ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, repo DeploymentRepository, chain ChainClient, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		repo:   repo,
		chain:  chain,
		sink:   sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})

	network, err := resolveNetwork(uc.config, params.Network)
	if err != nil {
		return nil, err
	}

	deployment, err := uc.repo.GetDeployment(ctx, network.ChainID, params.Name)
	if err != nil {
		return nil, fmt.Errorf("deployment %s on %s: %w", params.Name, network.Name, err)
	}

	result := &ShowDeploymentResult{Deployment: deployment, Network: network}

	// The chain client is bound to the selected network only
	if params.CheckCode && uc.config.Network != nil && uc.config.Network.ChainID == network.ChainID {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Message: "Checking code on chain",
			Spinner: true,
		})
		code, err := uc.chain.CodeAt(ctx, deployment.Address)
		if err != nil {
			return nil, err
		}
		result.HasCode = len(code) > 0
		result.CodeChecked = true
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployment loaded",
	})

	return result, nil
}

// resolveNetwork returns the named network, or the selected one when name is empty
func resolveNetwork(cfg *config.RuntimeConfig, name string) (*config.Network, error) {
	if name != "" && cfg.Networks != nil {
		return cfg.Networks.Resolve(name)
	}
	if cfg.Network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}
	return cfg.Network, nil
}
