package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

// PredictAddressParams contains parameters for address prediction
type PredictAddressParams struct {
	Entropy *big.Int
	// Deployer is used when set; otherwise Credentials supplies the address
	Deployer    *common.Address
	Credentials CredentialProvider
}

// PredictAddressResult contains a predicted CREATE3 address
type PredictAddressResult struct {
	Deployer       common.Address
	Salt           domain.Salt
	PredictionSalt common.Hash
	Guard          domain.SaltGuard
	Factory        common.Address
	Address        common.Address
	Deployed       bool
}

// PredictAddress computes where a salted deployment would land without sending anything
type PredictAddress struct {
	config  *config.RuntimeConfig
	chain   ChainClient
	factory FactoryClient
}

// NewPredictAddress creates a new PredictAddress use case
func NewPredictAddress(cfg *config.RuntimeConfig, chain ChainClient, factory FactoryClient) *PredictAddress {
	return &PredictAddress{
		config:  cfg,
		chain:   chain,
		factory: factory,
	}
}

// Run executes the prediction
func (uc *PredictAddress) Run(ctx context.Context, params PredictAddressParams) (*PredictAddressResult, error) {
	if err := domain.ValidateEntropy(params.Entropy); err != nil {
		return nil, err
	}

	var deployer common.Address
	switch {
	case params.Deployer != nil:
		deployer = *params.Deployer
	case params.Credentials != nil:
		cred, err := params.Credentials.Credential(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load deployer credential: %w", err)
		}
		deployer = cred.Address
	default:
		return nil, fmt.Errorf("%w: a deployer address or sender is required", domain.ErrInvalidConfig)
	}

	salt, err := domain.NewSalt(deployer, params.Entropy)
	if err != nil {
		return nil, err
	}
	guard := uc.config.Factory.SaltGuard
	predictionSalt := guard.PredictionSalt(deployer, salt)

	addr, err := uc.factory.ComputeCreate3Address(ctx, predictionSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to predict address: %w", err)
	}
	code, err := uc.chain.CodeAt(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", addr.Hex(), err)
	}

	return &PredictAddressResult{
		Deployer:       deployer,
		Salt:           salt,
		PredictionSalt: common.Hash(predictionSalt),
		Guard:          guard,
		Factory:        uc.factory.Address(),
		Address:        addr,
		Deployed:       len(code) > 0,
	}, nil
}
