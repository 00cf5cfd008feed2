package config

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/trebuchet-org/treb-deploy/internal/domain"
)

// Supported verifier names
const (
	VerifierEtherscan  = "etherscan"
	VerifierSourcify   = "sourcify"
	VerifierBlockscout = "blockscout"
)

// NetworkRegistry is the set of configured networks keyed by chain ID
type NetworkRegistry struct {
	byChainID map[uint64]*Network
	byName    map[string]*Network
}

// NewNetworkRegistry validates the networks and indexes them. Chain IDs and
// names must be unique, and every network needs an RPC URL.
func NewNetworkRegistry(networks []*Network) (*NetworkRegistry, error) {
	r := &NetworkRegistry{
		byChainID: make(map[uint64]*Network, len(networks)),
		byName:    make(map[string]*Network, len(networks)),
	}

	for _, n := range networks {
		if err := validateNetwork(n); err != nil {
			return nil, err
		}
		if existing, ok := r.byChainID[n.ChainID]; ok {
			return nil, fmt.Errorf("%w: networks '%s' and '%s' share chain ID %d", domain.ErrInvalidConfig, existing.Name, n.Name, n.ChainID)
		}
		if _, ok := r.byName[n.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate network name '%s'", domain.ErrInvalidConfig, n.Name)
		}
		r.byChainID[n.ChainID] = n
		r.byName[n.Name] = n
	}

	return r, nil
}

func validateNetwork(n *Network) error {
	if n.Name == "" {
		return fmt.Errorf("%w: network name is required", domain.ErrInvalidConfig)
	}
	if n.ChainID == 0 {
		return fmt.Errorf("%w: network '%s' has no chain_id", domain.ErrInvalidConfig, n.Name)
	}
	if n.RPCURL == "" {
		return fmt.Errorf("%w: network '%s' has no rpc_url", domain.ErrInvalidConfig, n.Name)
	}
	if u, err := url.Parse(n.RPCURL); err != nil || u.Scheme == "" {
		return fmt.Errorf("%w: network '%s' has an invalid rpc_url %q", domain.ErrInvalidConfig, n.Name, n.RPCURL)
	}
	for _, v := range n.Verifiers {
		switch v {
		case VerifierEtherscan, VerifierSourcify, VerifierBlockscout:
		default:
			return fmt.Errorf("%w: network '%s' has unknown verifier '%s'", domain.ErrInvalidConfig, n.Name, v)
		}
	}
	return nil
}

// ByChainID returns the network for a chain ID
func (r *NetworkRegistry) ByChainID(chainID uint64) (*Network, error) {
	n, ok := r.byChainID[chainID]
	if !ok {
		return nil, fmt.Errorf("network with chain ID %d: %w", chainID, domain.ErrNotFound)
	}
	return n, nil
}

// Resolve looks a network up by name or by decimal chain ID
func (r *NetworkRegistry) Resolve(ref string) (*Network, error) {
	ref = strings.TrimSpace(ref)
	if n, ok := r.byName[ref]; ok {
		return n, nil
	}
	if chainID, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return r.ByChainID(chainID)
	}
	return nil, fmt.Errorf("network '%s': %w (available: %s)", ref, domain.ErrNotFound, strings.Join(r.Names(), ", "))
}

// Names returns the configured network names, sorted
func (r *NetworkRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the networks ordered by chain ID
func (r *NetworkRegistry) All() []*Network {
	all := make([]*Network, 0, len(r.byChainID))
	for _, n := range r.byChainID {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ChainID < all[j].ChainID })
	return all
}

// Len returns the number of configured networks
func (r *NetworkRegistry) Len() int {
	return len(r.byChainID)
}
