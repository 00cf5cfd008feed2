package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

func init() {
	color.NoColor = true
}

var (
	counterAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bookAddress    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	txHash         = common.HexToHash("0xabc")
)

func counterDeployment() *models.Deployment {
	return &models.Deployment{
		Name:            "Counter",
		ChainID:         11155111,
		Address:         counterAddress,
		TransactionHash: &txHash,
		Strategy: models.DeploymentStrategy{
			Method:  models.DeploymentMethodCreate3,
			Salt:    "0xf39fd6e51aad88f6f4ce6ab8827279cfffb922660000000000000000000003e8",
			Entropy: "1000",
		},
		Artifact:  models.ArtifactInfo{SourceName: "src/Counter.sol", ContractName: "Counter"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Already Recorded", Title(string(usecase.StateAlreadyRecorded)))
	assert.Equal(t, "Deployed", Title(string(usecase.StateDeployed)))
}

func TestRenderDeploy(t *testing.T) {
	t.Run("deployed", func(t *testing.T) {
		var out bytes.Buffer
		err := NewDeployRenderer(&out).RenderDeploy(&usecase.DeployResult{
			Deployment: counterDeployment(),
			State:      usecase.StateDeployed,
			Predicted:  counterAddress,
			Verified:   true,
		})
		require.NoError(t, err)

		assert.Contains(t, out.String(), "Deployed Counter")
		assert.Contains(t, out.String(), counterAddress.Hex())
		assert.Contains(t, out.String(), txHash.Hex())
		assert.NotContains(t, out.String(), "differs from prediction")
		assert.NotContains(t, out.String(), "treb-deploy verify")
	})

	t.Run("prediction mismatch", func(t *testing.T) {
		var out bytes.Buffer
		err := NewDeployRenderer(&out).RenderDeploy(&usecase.DeployResult{
			Deployment:         counterDeployment(),
			State:              usecase.StateDeployed,
			Predicted:          bookAddress,
			PredictionMismatch: true,
			Verified:           true,
		})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "differs from prediction "+bookAddress.Hex())
	})

	t.Run("adopted without transaction", func(t *testing.T) {
		d := counterDeployment()
		d.TransactionHash = nil

		var out bytes.Buffer
		err := NewDeployRenderer(&out).RenderDeploy(&usecase.DeployResult{
			Deployment: d,
			State:      usecase.StateAlreadyDeployed,
			Predicted:  counterAddress,
		})
		require.NoError(t, err)

		assert.Contains(t, out.String(), "already deployed at the predicted address")
		assert.Contains(t, out.String(), "Already Deployed")
		assert.Contains(t, out.String(), "Transaction:    -")
		assert.Contains(t, out.String(), "treb-deploy verify Counter")
	})
}

func TestRenderPlan(t *testing.T) {
	book := &domain.PlanStep{Name: "Book", Component: &domain.PlanComponent{Contract: "Book"}}
	manager := &domain.PlanStep{Name: "BookManager", Component: &domain.PlanComponent{Contract: "BookManager"}, Dependencies: []string{"Book"}}
	bookDeployment := counterDeployment()
	bookDeployment.Name = "Book"
	bookDeployment.Address = bookAddress

	var out bytes.Buffer
	err := NewDeployRenderer(&out).RenderPlan(&usecase.RunPlanResult{
		Plan:  &domain.DeploymentPlan{Group: "Library"},
		Steps: []*domain.PlanStep{book, manager},
		Executed: []*usecase.PlanStepResult{
			{Step: book, Result: &usecase.DeployResult{Deployment: bookDeployment, State: usecase.StateDeployed}},
		},
		FailedStep: &usecase.PlanStepResult{Step: manager, Error: errors.New("execution reverted")},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Plan: Library")
	assert.Contains(t, out.String(), "1. Book "+bookAddress.Hex()+" (Deployed)")
	assert.Contains(t, out.String(), "2. BookManager failed: execution reverted")
}

func TestRenderDeploymentList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&out, nil).RenderDeploymentList(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", out.String())
	})

	t.Run("grouped by chain", func(t *testing.T) {
		local := counterDeployment()
		local.ChainID = config.LocalChainID
		local.TransactionHash = nil

		var out bytes.Buffer
		err := NewDeploymentsRenderer(&out, map[uint64]string{11155111: "sepolia"}).RenderDeploymentList(&usecase.DeploymentListResult{
			Deployments: []*models.Deployment{local, counterDeployment()},
			Summary: usecase.DeploymentSummary{
				Total:       2,
				ByChain:     map[uint64]int{11155111: 1, config.LocalChainID: 1},
				Broadcasted: 1,
			},
		})
		require.NoError(t, err)

		s := out.String()
		sepolia := bytes.Index(out.Bytes(), []byte("sepolia (11155111)"))
		anvil := bytes.Index(out.Bytes(), []byte("chain 31337"))
		require.NotEqual(t, -1, sepolia)
		require.NotEqual(t, -1, anvil)
		assert.Less(t, anvil, sepolia)
		assert.Contains(t, s, "adopted")
		assert.Contains(t, s, "2026-01-02 03:04:05")
		assert.Contains(t, s, "2 deployments on 2 chains, 1 sent by us")
	})
}

func TestRenderVerifyResults(t *testing.T) {
	var out bytes.Buffer
	book := counterDeployment()
	book.Name = "Book"

	err := NewVerifyRenderer(&out).RenderVerifyResults(&usecase.VerifyAllResult{
		Results: []*usecase.VerifyResult{
			{Deployment: counterDeployment(), Success: true},
			{Deployment: book, Error: errors.New("invalid api key")},
		},
		SuccessCount: 1,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Counter: ✓ Verified")
	assert.Contains(t, out.String(), "Book: ✗ Failed - invalid api key")
	assert.Contains(t, out.String(), "1 verified, 1 failed, 0 skipped")
}

func TestRenderNetworksList(t *testing.T) {
	var out bytes.Buffer
	err := NewNetworksRenderer(&out).RenderNetworksList(&usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Network: &config.Network{ChainID: 1, Name: "mainnet", Production: true}, RemoteChainID: 1},
			{Network: &config.Network{ChainID: 31337, Name: "anvil"}, Error: errors.New("connection refused")},
		},
		Selected: "mainnet",
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "* ✅ mainnet - Chain ID: 1 [production]")
	assert.Contains(t, out.String(), "❌ anvil - Chain ID: 31337 - Error: connection refused")
}
