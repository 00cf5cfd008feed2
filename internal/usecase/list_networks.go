package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe dials each network and compares the reported chain ID
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Network *config.Network
	// RemoteChainID is set when the network was probed successfully
	RemoteChainID uint64
	Error         error
}

// ChainProber dials an RPC endpoint and returns the chain ID it reports
type ChainProber interface {
	ProbeChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	config *config.RuntimeConfig
	prober ChainProber
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, prober ChainProber) *ListNetworks {
	return &ListNetworks{
		config: cfg,
		prober: prober,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	result := &ListNetworksResult{}
	if uc.config.Network != nil {
		result.Selected = uc.config.Network.Name
	}
	if uc.config.Networks == nil {
		return result, nil
	}

	for _, n := range uc.config.Networks.All() {
		status := NetworkStatus{Network: n}
		if params.Probe {
			pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			status.RemoteChainID, status.Error = uc.prober.ProbeChainID(pctx, n.RPCURL)
			cancel()
		}
		result.Networks = append(result.Networks, status)
	}

	return result, nil
}
