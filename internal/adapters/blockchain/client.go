package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// callTimeout bounds each individual RPC call
const callTimeout = 15 * time.Second

// ClientAdapter implements usecase.ChainClient on top of ethclient.
// The connection is opened on first use and checked against the configured chain ID.
// Failed connection attempts are not cached.
type ClientAdapter struct {
	network *config.Network
	log     *slog.Logger

	mu     sync.Mutex
	client *ethclient.Client
}

// NewClientAdapter creates a chain client for the selected network
func NewClientAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ClientAdapter {
	return &ClientAdapter{
		network: cfg.Network,
		log:     log.With("component", "ChainClient"),
	}
}

// Backend returns the connected client, dialing it if needed
func (c *ClientAdapter) Backend(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

func (c *ClientAdapter) connect(ctx context.Context) (*ethclient.Client, error) {
	if c.network == nil {
		return nil, fmt.Errorf("%w: no network selected", domain.ErrInvalidConfig)
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, domain.NewFatalChainError("dial", fmt.Errorf("failed to connect to %s: %w", c.network.Name, err))
	}

	// Verify chain ID matches
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	remote, err := client.ChainID(cctx)
	if err != nil {
		client.Close()
		return nil, classify("eth_chainId", err)
	}
	if remote.Uint64() != c.network.ChainID {
		client.Close()
		return nil, domain.NewFatalChainError("eth_chainId", fmt.Errorf(
			"chain ID mismatch for %s: expected %d, got %d", c.network.Name, c.network.ChainID, remote.Uint64(),
		))
	}

	c.log.Debug("connected", "network", c.network.Name, "chainId", c.network.ChainID)
	return client, nil
}

// ChainID returns the chain ID of the connected network
func (c *ClientAdapter) ChainID(ctx context.Context) (uint64, error) {
	if _, err := c.Backend(ctx); err != nil {
		return 0, err
	}
	return c.network.ChainID, nil
}

// CodeAt returns the runtime code at address in the latest block
func (c *ClientAdapter) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	client, err := c.Backend(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, classify("eth_getCode", err)
	}
	return code, nil
}

// NonceAt returns the latest nonce of address
func (c *ClientAdapter) NonceAt(ctx context.Context, address common.Address) (uint64, error) {
	client, err := c.Backend(ctx)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	nonce, err := client.NonceAt(ctx, address, nil)
	if err != nil {
		return 0, classify("eth_getTransactionCount", err)
	}
	return nonce, nil
}

// TransactionReceipt returns the receipt of txHash. A receipt that does not
// exist yet is reported as a transient error.
func (c *ClientAdapter) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	client, err := c.Backend(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, classify("eth_getTransactionReceipt", err)
	}
	return receipt, nil
}

// Close releases the connection if one was opened
func (c *ClientAdapter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

// ProbeChainID dials rpcURL and returns the chain ID it reports
func (c *ClientAdapter) ProbeChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, domain.NewFatalChainError("dial", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, classify("eth_chainId", err)
	}
	return id.Uint64(), nil
}

// classify wraps an RPC failure as transient or fatal. Missing data, timeouts,
// rate limits and network errors are transient; everything else is fatal.
func classify(op string, err error) error {
	if isTransient(err) {
		return domain.NewTransientChainError(op, err)
	}
	return domain.NewFatalChainError(op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, ethereum.NotFound) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}

	// -32005: limit exceeded
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == -32005 {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

var (
	_ usecase.ChainClient = (*ClientAdapter)(nil)
	_ usecase.ChainProber = (*ClientAdapter)(nil)
)
