package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

// DefaultReceiptRetryDelay is the pause before the single receipt retry
const DefaultReceiptRetryDelay = 500 * time.Millisecond

// ReceiptWaiter fetches a transaction receipt, retrying exactly once after a
// short delay when the chain reports a transient failure (typically "not yet
// included"). Any other failure, or a second failure, is returned as is.
type ReceiptWaiter struct {
	chain ChainClient
	delay time.Duration
	log   *slog.Logger
}

// NewReceiptWaiter creates a new ReceiptWaiter
func NewReceiptWaiter(cfg *config.RuntimeConfig, chain ChainClient, log *slog.Logger) *ReceiptWaiter {
	delay := cfg.ReceiptRetryDelay
	if delay <= 0 {
		delay = DefaultReceiptRetryDelay
	}
	return &ReceiptWaiter{
		chain: chain,
		delay: delay,
		log:   log.With("component", "ReceiptWaiter"),
	}
}

// Wait returns the receipt of txHash
func (w *ReceiptWaiter) Wait(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	receipt, err := w.chain.TransactionReceipt(ctx, txHash)
	if err == nil {
		return receipt, nil
	}
	if !domain.IsTransient(err) {
		return nil, err
	}

	w.log.Debug("receipt not available, retrying", "tx", txHash.Hex(), "delay", w.delay, "error", err)

	timer := time.NewTimer(w.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return w.chain.TransactionReceipt(ctx, txHash)
}
