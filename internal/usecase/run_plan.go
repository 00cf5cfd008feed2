package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

// RunPlanParams contains parameters for executing a deployment plan
type RunPlanParams struct {
	PlanPath    string
	Credentials CredentialProvider
	// DryRun resolves the execution order without deploying
	DryRun     bool
	SkipVerify bool
}

// PlanStepResult is the outcome of one plan step
type PlanStepResult struct {
	Step   *domain.PlanStep
	Result *DeployResult
	Error  error
}

// RunPlanResult contains the result of running a plan
type RunPlanResult struct {
	Plan       *domain.DeploymentPlan
	Steps      []*domain.PlanStep
	Executed   []*PlanStepResult
	FailedStep *PlanStepResult
	Success    bool
}

// RunPlan deploys every component of a plan in dependency order.
// Each step is an idempotent deployment, so a failed run can simply be repeated.
type RunPlan struct {
	config *config.RuntimeConfig
	loader PlanLoader
	deploy *DeployContract
	repo   DeploymentRepository
	sink   ProgressSink
	log    *slog.Logger
}

// NewRunPlan creates a new RunPlan use case
func NewRunPlan(
	cfg *config.RuntimeConfig,
	loader PlanLoader,
	deploy *DeployContract,
	repo DeploymentRepository,
	sink ProgressSink,
	log *slog.Logger,
) *RunPlan {
	return &RunPlan{
		config: cfg,
		loader: loader,
		deploy: deploy,
		repo:   repo,
		sink:   sink,
		log:    log.With("component", "RunPlan"),
	}
}

// Run executes the plan, stopping at the first failing step
func (uc *RunPlan) Run(ctx context.Context, params RunPlanParams) (*RunPlanResult, error) {
	plan, err := uc.loader.LoadPlan(ctx, params.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	steps, err := plan.ExecutionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build execution order: %w", err)
	}

	result := &RunPlanResult{Plan: plan, Steps: steps}
	if params.DryRun {
		result.Success = true
		return result, nil
	}
	if uc.config.Network == nil {
		return nil, fmt.Errorf("%w: no network selected", domain.ErrInvalidConfig)
	}
	if params.Credentials == nil {
		return nil, fmt.Errorf("%w: no credential provider for deployment", domain.ErrInvalidConfig)
	}

	// Unlock once for the whole plan
	cred, err := params.Credentials.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployer credential: %w", err)
	}
	creds := unlockedCredential{cred}

	addresses := make(map[string]common.Address, len(steps))
	for i, step := range steps {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "step",
			Current: i + 1,
			Total:   len(steps),
			Message: fmt.Sprintf("Deploying %s (%s)", step.Name, step.Component.Contract),
		})

		stepResult := &PlanStepResult{Step: step}
		deployParams, err := uc.stepParams(ctx, plan, step, cred.Address, addresses)
		if err == nil {
			deployParams.Credentials = creds
			deployParams.SkipVerify = params.SkipVerify
			stepResult.Result, err = uc.deploy.Run(ctx, deployParams)
		}
		if err != nil {
			stepResult.Error = err
			result.FailedStep = stepResult
			uc.log.Error("plan step failed", "step", step.Name, "error", err)
			return result, fmt.Errorf("step %s failed: %w", step.Name, err)
		}

		addresses[step.Name] = stepResult.Result.Deployment.Address
		result.Executed = append(result.Executed, stepResult)
	}

	result.Success = true
	return result, nil
}

func (uc *RunPlan) stepParams(
	ctx context.Context,
	plan *domain.DeploymentPlan,
	step *domain.PlanStep,
	deployer common.Address,
	addresses map[string]common.Address,
) (DeployParams, error) {
	component := step.Component

	entropyStr := component.Entropy
	if entropyStr == "" {
		entropyStr = plan.Entropy
	}
	entropy, err := domain.ParseEntropy(entropyStr)
	if err != nil {
		return DeployParams{}, err
	}

	args := make([]string, len(component.Args))
	for i, arg := range component.Args {
		if arg == domain.DeployerRef {
			args[i] = deployer.Hex()
			continue
		}
		name, ok := domain.ArgReference(arg)
		if !ok {
			args[i] = arg
			continue
		}
		addr, err := uc.lookup(ctx, name, addresses)
		if err != nil {
			return DeployParams{}, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = addr.Hex()
	}

	var libraries map[string]common.Address
	if len(component.Libraries) > 0 {
		libraries = make(map[string]common.Address, len(component.Libraries))
		for ref, provider := range component.Libraries {
			addr, err := uc.lookup(ctx, provider, addresses)
			if err != nil {
				return DeployParams{}, fmt.Errorf("library %s: %w", ref, err)
			}
			libraries[ref] = addr
		}
	}

	return DeployParams{
		Name:      step.Name,
		Contract:  component.Contract,
		Entropy:   new(big.Int).Set(entropy),
		Args:      args,
		Libraries: libraries,
	}, nil
}

// lookup resolves a name to an address deployed earlier in this run or recorded before it
func (uc *RunPlan) lookup(ctx context.Context, name string, addresses map[string]common.Address) (common.Address, error) {
	if addr, ok := addresses[name]; ok {
		return addr, nil
	}
	d, err := uc.repo.GetDeployment(ctx, uc.config.Network.ChainID, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return common.Address{}, fmt.Errorf("reference to '%s': %w", name, err)
		}
		return common.Address{}, err
	}
	return d.Address, nil
}

// unlockedCredential serves an already unlocked credential
type unlockedCredential struct {
	cred *domain.Credential
}

func (u unlockedCredential) Credential(context.Context) (*domain.Credential, error) {
	return u.cred, nil
}
