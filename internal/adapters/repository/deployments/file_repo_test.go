package deployments_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

func newRepo(t *testing.T) (*deployments.FileRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := deployments.NewFileRepository(
		&config.RuntimeConfig{DeploymentsDir: dir},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	return repo, dir
}

func testDeployment(name string, address string) *models.Deployment {
	tx := common.HexToHash("0xdead")
	return &models.Deployment{
		Name:            name,
		ChainID:         31337,
		Address:         common.HexToAddress(address),
		TransactionHash: &tx,
		Args:            []string{},
		Bytecode:        "0x6080",
		Strategy: models.DeploymentStrategy{
			Method:  models.DeploymentMethodCreate3,
			Factory: config.DefaultFactoryAddress,
			Salt:    "0xabcd",
			Entropy: "1000",
		},
		Artifact: models.ArtifactInfo{
			SourceName:      "src/Counter.sol",
			ContractName:    "Counter",
			CompilerVersion: "0.8.24",
		},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and retrieve deployment", func(t *testing.T) {
		repo, dir := newRepo(t)
		d := testDeployment("Counter", "0x1234567890123456789012345678901234567890")

		stored, created, err := repo.CreateDeploymentIfAbsent(ctx, d)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, d, stored)
		assert.FileExists(t, filepath.Join(dir, "31337", "Counter.json"))

		got, err := repo.GetDeployment(ctx, 31337, "Counter")
		require.NoError(t, err)
		assert.Equal(t, d.Address, got.Address)
		assert.Equal(t, *d.TransactionHash, *got.TransactionHash)
		assert.Equal(t, d.Strategy, got.Strategy)
		assert.Equal(t, d.Artifact, got.Artifact)
	})

	t.Run("existing record wins", func(t *testing.T) {
		repo, _ := newRepo(t)
		first := testDeployment("Counter", "0x1111111111111111111111111111111111111111")
		second := testDeployment("Counter", "0x2222222222222222222222222222222222222222")

		_, created, err := repo.CreateDeploymentIfAbsent(ctx, first)
		require.NoError(t, err)
		require.True(t, created)

		stored, created, err := repo.CreateDeploymentIfAbsent(ctx, second)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.Address, stored.Address)
	})

	t.Run("concurrent creates store exactly one record", func(t *testing.T) {
		repo, dir := newRepo(t)

		var wg sync.WaitGroup
		results := make([]bool, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, created, err := repo.CreateDeploymentIfAbsent(ctx, testDeployment("Counter", "0x1111111111111111111111111111111111111111"))
				assert.NoError(t, err)
				results[i] = created
			}(i)
		}
		wg.Wait()

		createdCount := 0
		for _, c := range results {
			if c {
				createdCount++
			}
		}
		assert.Equal(t, 1, createdCount)

		entries, err := os.ReadDir(filepath.Join(dir, "31337"))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary files must be cleaned up")
	})

	t.Run("missing record is not found", func(t *testing.T) {
		repo, _ := newRepo(t)

		_, err := repo.GetDeployment(ctx, 31337, "Missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("adopted deployments have no transaction hash", func(t *testing.T) {
		repo, _ := newRepo(t)
		d := testDeployment("Adopted", "0x3333333333333333333333333333333333333333")
		d.TransactionHash = nil

		_, _, err := repo.CreateDeploymentIfAbsent(ctx, d)
		require.NoError(t, err)

		got, err := repo.GetDeployment(ctx, 31337, "Adopted")
		require.NoError(t, err)
		assert.Nil(t, got.TransactionHash)
		assert.False(t, got.WasBroadcast())
		assert.Equal(t, "-", got.TransactionHashHex())
	})

	t.Run("lists records of one chain sorted by name", func(t *testing.T) {
		repo, _ := newRepo(t)
		for _, name := range []string{"Zeta", "Alpha", "Mid"} {
			_, _, err := repo.CreateDeploymentIfAbsent(ctx, testDeployment(name, "0x1111111111111111111111111111111111111111"))
			require.NoError(t, err)
		}
		other := testDeployment("Other", "0x1111111111111111111111111111111111111111")
		other.ChainID = 1
		_, _, err := repo.CreateDeploymentIfAbsent(ctx, other)
		require.NoError(t, err)

		list, err := repo.ListDeployments(ctx, 31337)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Alpha", list[0].Name)
		assert.Equal(t, "Mid", list[1].Name)
		assert.Equal(t, "Zeta", list[2].Name)

		empty, err := repo.ListDeployments(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("rejects names that escape the directory", func(t *testing.T) {
		repo, _ := newRepo(t)

		_, _, err := repo.CreateDeploymentIfAbsent(ctx, testDeployment("../evil", "0x1111111111111111111111111111111111111111"))
		require.Error(t, err)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
