package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
)

// ComputeCreateAddressParams contains parameters for CREATE address derivation
type ComputeCreateAddressParams struct {
	Origin common.Address
	// Nonce is read from the chain when nil
	Nonce *uint64
	// CrossCheck compares the local derivation with the factory's
	CrossCheck bool
}

// ComputeCreateAddressResult contains a derived CREATE address
type ComputeCreateAddressResult struct {
	Origin       common.Address
	Nonce        uint64
	NonceOnChain bool
	Address      common.Address
	// FactoryAddress is set when CrossCheck was requested
	FactoryAddress *common.Address
}

// ComputeCreateAddress derives the address of a contract created by an account
type ComputeCreateAddress struct {
	chain   ChainClient
	factory FactoryClient
}

// NewComputeCreateAddress creates a new ComputeCreateAddress use case
func NewComputeCreateAddress(chain ChainClient, factory FactoryClient) *ComputeCreateAddress {
	return &ComputeCreateAddress{
		chain:   chain,
		factory: factory,
	}
}

// Run executes the derivation
func (uc *ComputeCreateAddress) Run(ctx context.Context, params ComputeCreateAddressParams) (*ComputeCreateAddressResult, error) {
	result := &ComputeCreateAddressResult{Origin: params.Origin}

	if params.Nonce != nil {
		result.Nonce = *params.Nonce
	} else {
		nonce, err := uc.chain.NonceAt(ctx, params.Origin)
		if err != nil {
			return nil, fmt.Errorf("failed to read nonce of %s: %w", params.Origin.Hex(), err)
		}
		result.Nonce = nonce
		result.NonceOnChain = true
	}

	addr, err := domain.ComputeCreateAddress(params.Origin, result.Nonce)
	if err != nil {
		return nil, err
	}
	result.Address = addr

	if params.CrossCheck {
		remote, err := uc.factory.ComputeCreateAddress(ctx, params.Origin, result.Nonce)
		if err != nil {
			return nil, fmt.Errorf("factory computeCreateAddress failed: %w", err)
		}
		if remote != addr {
			return nil, fmt.Errorf("factory computed %s but local derivation gave %s", remote.Hex(), addr.Hex())
		}
		result.FactoryAddress = &remote
	}

	return result, nil
}
