package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// ContractName filters by artifact contract name
	ContractName string
	// Network overrides the selected network; empty lists every configured network
	Network string
}

// DeploymentListResult contains the listed deployments and a summary
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary counts deployments by chain and method
type DeploymentSummary struct {
	Total       int
	ByChain     map[uint64]int
	ByMethod    map[models.DeploymentMethod]int
	Broadcasted int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		repo:   repo,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	chainIDs, err := uc.chainIDs(params.Network)
	if err != nil {
		return nil, err
	}

	var deployments []*models.Deployment
	for _, chainID := range chainIDs {
		found, err := uc.repo.ListDeployments(ctx, chainID)
		if err != nil {
			return nil, fmt.Errorf("failed to list deployments on chain %d: %w", chainID, err)
		}
		for _, d := range found {
			if params.ContractName != "" && d.Artifact.ContractName != params.ContractName {
				continue
			}
			deployments = append(deployments, d)
		}
	}

	sortDeployments(deployments)
	summary := calculateSummary(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}, nil
}

func (uc *ListDeployments) chainIDs(network string) ([]uint64, error) {
	if network != "" {
		if uc.config.Networks == nil {
			return nil, fmt.Errorf("network '%s': %w", network, domain.ErrNotFound)
		}
		n, err := uc.config.Networks.Resolve(network)
		if err != nil {
			return nil, err
		}
		return []uint64{n.ChainID}, nil
	}
	if uc.config.Network != nil {
		return []uint64{uc.config.Network.ChainID}, nil
	}
	if uc.config.Networks == nil {
		return nil, nil
	}

	all := uc.config.Networks.All()
	ids := make([]uint64, 0, len(all))
	for _, n := range all {
		ids = append(ids, n.ChainID)
	}
	return ids, nil
}

// sortDeployments sorts deployments by chain ID, then by name
func sortDeployments(deployments []*models.Deployment) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].ChainID != deployments[j].ChainID {
			return deployments[i].ChainID < deployments[j].ChainID
		}
		return deployments[i].Name < deployments[j].Name
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:    len(deployments),
		ByChain:  make(map[uint64]int),
		ByMethod: make(map[models.DeploymentMethod]int),
	}

	for _, dep := range deployments {
		summary.ByChain[dep.ChainID]++
		summary.ByMethod[dep.Strategy.Method]++
		if dep.WasBroadcast() {
			summary.Broadcasted++
		}
	}

	return summary
}
