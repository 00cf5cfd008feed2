package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
)

// DefaultVerifyTimeout bounds a single verification attempt
const DefaultVerifyTimeout = 2 * time.Minute

// VerificationNotifier submits deployed contracts for source verification.
// Failures are logged and never fail the deployment.
type VerificationNotifier struct {
	verifier ContractVerifier
	timeout  time.Duration
	skip     bool
	sink     ProgressSink
	log      *slog.Logger
}

// NewVerificationNotifier creates a new VerificationNotifier
func NewVerificationNotifier(cfg *config.RuntimeConfig, verifier ContractVerifier, sink ProgressSink, log *slog.Logger) *VerificationNotifier {
	timeout := cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	return &VerificationNotifier{
		verifier: verifier,
		timeout:  timeout,
		skip:     cfg.SkipVerify,
		sink:     sink,
		log:      log.With("component", "VerificationNotifier"),
	}
}

// Notify requests verification of d on network and reports whether it succeeded.
// Local development chains and disabled verification are skipped.
func (n *VerificationNotifier) Notify(ctx context.Context, d *models.Deployment, network *config.Network) bool {
	if n.skip || network == nil || network.IsLocal() {
		n.log.Debug("verification skipped", "name", d.Name, "chainId", d.ChainID)
		return false
	}

	n.sink.OnProgress(ctx, ProgressEvent{Stage: "verifying", Message: "Verifying " + d.Name, Spinner: true})

	vctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err := n.verifier.Verify(vctx, VerificationRequest{Deployment: d, Network: network})
	if err == nil {
		n.log.Info("contract verified", "name", d.Name, "address", d.Address.Hex())
		return true
	}

	var verr *domain.VerificationError
	if !errors.As(err, &verr) {
		verr = &domain.VerificationError{Name: d.Name, Address: d.Address, Err: err}
	}
	n.log.Warn("verification failed", "name", d.Name, "address", d.Address.Hex(), "error", verr)
	n.sink.Error(verr.Error())
	return false
}
