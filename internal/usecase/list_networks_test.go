package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

type proberFunc func(ctx context.Context, rpcURL string) (uint64, error)

func (f proberFunc) ProbeChainID(ctx context.Context, rpcURL string) (uint64, error) {
	return f(ctx, rpcURL)
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()

	sepolia := &config.Network{ChainID: 11155111, Name: "sepolia", RPCURL: "https://sepolia.example"}
	anvil := &config.Network{ChainID: 31337, Name: "anvil", RPCURL: "http://localhost:8545"}
	registry, err := config.NewNetworkRegistry([]*config.Network{sepolia, anvil})
	require.NoError(t, err)

	cfg := &config.RuntimeConfig{Networks: registry, Network: anvil}

	t.Run("lists networks by chain id without dialing", func(t *testing.T) {
		called := false
		prober := proberFunc(func(context.Context, string) (uint64, error) {
			called = true
			return 0, nil
		})

		result, err := usecase.NewListNetworks(cfg, prober).Run(ctx, usecase.ListNetworksParams{})
		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, "anvil", result.Selected)
		require.Len(t, result.Networks, 2)
		assert.Equal(t, "anvil", result.Networks[0].Network.Name)
		assert.Equal(t, "sepolia", result.Networks[1].Network.Name)
	})

	t.Run("probe records remote chain ids and errors", func(t *testing.T) {
		prober := proberFunc(func(_ context.Context, rpcURL string) (uint64, error) {
			if rpcURL == anvil.RPCURL {
				return 31337, nil
			}
			return 0, errors.New("connection refused")
		})

		result, err := usecase.NewListNetworks(cfg, prober).Run(ctx, usecase.ListNetworksParams{Probe: true})
		require.NoError(t, err)
		require.Len(t, result.Networks, 2)
		assert.Equal(t, uint64(31337), result.Networks[0].RemoteChainID)
		assert.NoError(t, result.Networks[0].Error)
		assert.EqualError(t, result.Networks[1].Error, "connection refused")
	})

	t.Run("no registry", func(t *testing.T) {
		result, err := usecase.NewListNetworks(&config.RuntimeConfig{}, nil).Run(ctx, usecase.ListNetworksParams{})
		require.NoError(t, err)
		assert.Empty(t, result.Networks)
		assert.Empty(t, result.Selected)
	})
}
