package app

import (
	"github.com/trebuchet-org/treb-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/senders"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Senders *senders.Service
	Chain   *blockchain.ClientAdapter

	// Use cases
	DeployContract       *usecase.DeployContract
	RunPlan              *usecase.RunPlan
	PredictAddress       *usecase.PredictAddress
	ComputeCreateAddress *usecase.ComputeCreateAddress
	ListDeployments      *usecase.ListDeployments
	ShowDeployment       *usecase.ShowDeployment
	ListNetworks         *usecase.ListNetworks
	VerifyDeployment     *usecase.VerifyDeployment
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	senderService *senders.Service,
	chain *blockchain.ClientAdapter,
	deployContract *usecase.DeployContract,
	runPlan *usecase.RunPlan,
	predictAddress *usecase.PredictAddress,
	computeCreateAddress *usecase.ComputeCreateAddress,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	verifyDeployment *usecase.VerifyDeployment,
) (*App, error) {
	return &App{
		Config:               cfg,
		Senders:              senderService,
		Chain:                chain,
		DeployContract:       deployContract,
		RunPlan:              runPlan,
		PredictAddress:       predictAddress,
		ComputeCreateAddress: computeCreateAddress,
		ListDeployments:      listDeployments,
		ShowDeployment:       showDeployment,
		ListNetworks:         listNetworks,
		VerifyDeployment:     verifyDeployment,
	}, nil
}

// Close releases the RPC connection, if one was opened
func (a *App) Close() {
	if a.Chain != nil {
		a.Chain.Close()
	}
}
