package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

// VerifyDeployment re-submits recorded deployments for source verification
type VerifyDeployment struct {
	config   *config.RuntimeConfig
	repo     DeploymentRepository
	verifier ContractVerifier
	sink     ProgressSink
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	repo DeploymentRepository,
	verifier ContractVerifier,
	sink ProgressSink,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:   cfg,
		repo:     repo,
		verifier: verifier,
		sink:     sink,
	}
}

// VerifyParams selects what to verify. An empty Name verifies every
// deployment recorded on the network.
type VerifyParams struct {
	Name    string
	Network string
}

// VerifyResult contains the result of verifying one deployment
type VerifyResult struct {
	Deployment *models.Deployment
	Success    bool
	Skipped    string
	Error      error
}

// VerifyAllResult contains results for a batch of deployments
type VerifyAllResult struct {
	Results      []*VerifyResult
	SuccessCount int
}

// Run executes verification. Individual failures are reported in the result.
func (v *VerifyDeployment) Run(ctx context.Context, params VerifyParams) (*VerifyAllResult, error) {
	network, err := resolveNetwork(v.config, params.Network)
	if err != nil {
		return nil, err
	}

	var deployments []*models.Deployment
	if params.Name != "" {
		d, err := v.repo.GetDeployment(ctx, network.ChainID, params.Name)
		if err != nil {
			return nil, fmt.Errorf("deployment %s on %s: %w", params.Name, network.Name, err)
		}
		deployments = []*models.Deployment{d}
	} else {
		deployments, err = v.repo.ListDeployments(ctx, network.ChainID)
		if err != nil {
			return nil, fmt.Errorf("failed to list deployments: %w", err)
		}
		sortDeployments(deployments)
	}

	result := &VerifyAllResult{}
	for i, d := range deployments {
		r := &VerifyResult{Deployment: d}
		result.Results = append(result.Results, r)

		if network.IsLocal() {
			r.Skipped = "Local chain"
			continue
		}
		if len(network.Verifiers) == 0 {
			r.Skipped = "No verifiers configured"
			continue
		}

		v.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "verifying",
			Current: i + 1,
			Total:   len(deployments),
			Message: fmt.Sprintf("Verifying %s", d.Name),
			Spinner: true,
		})

		if err := v.verifier.Verify(ctx, VerificationRequest{Deployment: d, Network: network}); err != nil {
			r.Error = err
			continue
		}
		r.Success = true
		result.SuccessCount++
	}

	v.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: fmt.Sprintf("%d of %d verified", result.SuccessCount, len(deployments))})
	return result, nil
}
