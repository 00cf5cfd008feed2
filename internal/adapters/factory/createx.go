package factory

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/bindings"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// CreateXAdapter implements usecase.FactoryClient against a CreateX deployment
type CreateXAdapter struct {
	address common.Address
	chainID uint64
	client  *blockchain.ClientAdapter
	createx *bindings.CreateX
	log     *slog.Logger

	mu      sync.Mutex
	checked bool
}

// NewCreateXAdapter creates a factory client for the configured factory address
func NewCreateXAdapter(cfg *config.RuntimeConfig, client *blockchain.ClientAdapter, log *slog.Logger) *CreateXAdapter {
	var chainID uint64
	if cfg.Network != nil {
		chainID = cfg.Network.ChainID
	}
	return &CreateXAdapter{
		address: cfg.Factory.Address,
		chainID: chainID,
		client:  client,
		createx: bindings.NewCreateX(),
		log:     log.With("component", "CreateX"),
	}
}

// Address returns the factory address
func (f *CreateXAdapter) Address() common.Address {
	return f.address
}

// instance returns the bound factory, failing if no code lives at its address
func (f *CreateXAdapter) instance(ctx context.Context) (*bind.BoundContract, error) {
	backend, err := f.client.Backend(ctx)
	if err != nil {
		return nil, err
	}

	// Only a successful code check is remembered
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.checked {
		code, err := f.client.CodeAt(ctx, f.address)
		if err != nil {
			return nil, err
		}
		if len(code) == 0 {
			return nil, fmt.Errorf("%w: no factory deployed at %s on chain %d", domain.ErrInvalidConfig, f.address.Hex(), f.chainID)
		}
		f.checked = true
	}

	return f.createx.Instance(backend, f.address), nil
}

// ComputeCreate3Address calls computeCreate3Address(bytes32) on the factory
func (f *CreateXAdapter) ComputeCreate3Address(ctx context.Context, salt [32]byte) (common.Address, error) {
	instance, err := f.instance(ctx)
	if err != nil {
		return common.Address{}, err
	}

	addr, err := bind.Call(instance, &bind.CallOpts{Context: ctx}, f.createx.PackComputeCreate3Address0(salt), f.createx.UnpackComputeCreate3Address0)
	if err != nil {
		return common.Address{}, domain.NewFatalChainError("computeCreate3Address", err)
	}
	return addr, nil
}

// ComputeCreateAddress calls computeCreateAddress(address,uint256) on the factory
func (f *CreateXAdapter) ComputeCreateAddress(ctx context.Context, deployer common.Address, nonce uint64) (common.Address, error) {
	instance, err := f.instance(ctx)
	if err != nil {
		return common.Address{}, err
	}

	packed := f.createx.PackComputeCreateAddress0(deployer, new(big.Int).SetUint64(nonce))
	addr, err := bind.Call(instance, &bind.CallOpts{Context: ctx}, packed, f.createx.UnpackComputeCreateAddress0)
	if err != nil {
		return common.Address{}, domain.NewFatalChainError("computeCreateAddress", err)
	}
	return addr, nil
}

// SimulateDeployCreate3 runs deployCreate3(bytes32,bytes) as an eth_call from the deployer
func (f *CreateXAdapter) SimulateDeployCreate3(ctx context.Context, from common.Address, salt domain.Salt, initCode []byte) (common.Address, error) {
	instance, err := f.instance(ctx)
	if err != nil {
		return common.Address{}, err
	}

	packed, err := f.createx.TryPackDeployCreate30(salt, initCode)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack deployCreate3: %w", err)
	}
	addr, err := bind.Call(instance, &bind.CallOpts{Context: ctx, From: from}, packed, f.createx.UnpackDeployCreate30)
	if err != nil {
		return common.Address{}, domain.NewFatalChainError("deployCreate3 (simulated)", err)
	}
	return addr, nil
}

// DeployCreate3 signs and sends deployCreate3(bytes32,bytes) and waits for it to be mined
func (f *CreateXAdapter) DeployCreate3(ctx context.Context, cred *domain.Credential, salt domain.Salt, initCode []byte) (common.Hash, error) {
	instance, err := f.instance(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	backend, err := f.client.Backend(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	packed, err := f.createx.TryPackDeployCreate30(salt, initCode)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack deployCreate3: %w", err)
	}

	opts := bind.NewKeyedTransactor(cred.PrivateKey, new(big.Int).SetUint64(f.chainID))
	opts.Context = ctx

	tx, err := bind.Transact(instance, opts, packed)
	if err != nil {
		return common.Hash{}, domain.NewFatalChainError("deployCreate3", err)
	}
	f.log.Debug("transaction sent", "tx", tx.Hash().Hex(), "nonce", tx.Nonce(), "gas", tx.Gas())

	if _, err := bind.WaitMined(ctx, backend, tx.Hash()); err != nil {
		return tx.Hash(), fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}
	return tx.Hash(), nil
}

// CreatedContract extracts the new contract address from a ContractCreation log
func (f *CreateXAdapter) CreatedContract(log *types.Log) (common.Address, bool) {
	return f.createx.UnpackCreatedContract(log)
}

var _ usecase.FactoryClient = (*CreateXAdapter)(nil)
