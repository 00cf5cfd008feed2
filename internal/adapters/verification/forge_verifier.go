package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// commandRunner runs forge with args in dir and returns the combined output
type commandRunner func(ctx context.Context, dir string, args []string) ([]byte, error)

func runForge(ctx context.Context, dir string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// ForgeVerifier submits deployments with `forge verify-contract`, once per
// verifier configured on the network.
type ForgeVerifier struct {
	projectRoot string
	run         commandRunner
	log         *slog.Logger
}

// NewForgeVerifier creates a new ForgeVerifier
func NewForgeVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: cfg.ProjectRoot,
		run:         runForge,
		log:         log.With("component", "ForgeVerifier"),
	}
}

// Verify fails only when every configured verifier failed
func (v *ForgeVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) error {
	d, network := req.Deployment, req.Network
	if len(network.Verifiers) == 0 {
		return nil
	}

	var errs []error
	for _, verifier := range network.Verifiers {
		args := v.buildArgs(d, network, verifier)
		v.log.Debug("verifying", "name", d.Name, "verifier", verifier, "cmd", "forge "+strings.Join(args, " "))

		if err := v.execute(ctx, args); err != nil {
			errs = append(errs, &domain.VerificationError{Name: d.Name, Address: d.Address, Verifier: verifier, Err: err})
			continue
		}
		v.log.Info("verified", "name", d.Name, "verifier", verifier, "url", explorerURL(network, verifier, d))
	}

	if len(errs) == len(network.Verifiers) {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		v.log.Warn("verifier failed", "error", err)
	}
	return nil
}

// Commands returns the forge invocations Verify would run
func (v *ForgeVerifier) Commands(d *models.Deployment, network *config.Network) []string {
	cmds := make([]string, 0, len(network.Verifiers))
	for _, verifier := range network.Verifiers {
		cmds = append(cmds, "forge "+strings.Join(v.buildArgs(d, network, verifier), " "))
	}
	return cmds
}

func (v *ForgeVerifier) buildArgs(d *models.Deployment, network *config.Network, verifier string) []string {
	args := []string{
		"verify-contract",
		d.Address.Hex(),
		d.Artifact.FullyQualifiedName(),
		"--chain-id", strconv.FormatUint(network.ChainID, 10),
		"--verifier", verifier,
		"--watch",
	}

	switch verifier {
	case config.VerifierEtherscan:
		if apiKey := os.Getenv("ETHERSCAN_API_KEY"); apiKey != "" {
			args = append(args, "--etherscan-api-key", apiKey)
		}
	case config.VerifierBlockscout:
		if network.ExplorerURL != "" {
			args = append(args, "--verifier-url", strings.TrimRight(network.ExplorerURL, "/")+"/api/")
		}
	}

	if d.Artifact.CompilerVersion != "" {
		args = append(args, "--compiler-version", d.Artifact.CompilerVersion)
	}
	if len(d.Strategy.ConstructorArgs) > 0 {
		args = append(args, "--constructor-args", strings.TrimPrefix(hexutil.Encode(d.Strategy.ConstructorArgs), "0x"))
	}

	libs := make([]string, 0, len(d.Libraries))
	for fqn, addr := range d.Libraries {
		libs = append(libs, fqn+":"+addr.Hex())
	}
	sort.Strings(libs)
	for _, lib := range libs {
		args = append(args, "--libraries", lib)
	}

	return args
}

func (v *ForgeVerifier) execute(ctx context.Context, args []string) error {
	output, err := v.run(ctx, v.projectRoot, args)
	out := string(output)
	if alreadyVerified(out) {
		return nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s", strings.TrimSpace(out))
	}
	if strings.Contains(out, "Contract successfully verified") {
		return nil
	}
	return fmt.Errorf("verification status unclear: %s", strings.TrimSpace(out))
}

func alreadyVerified(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "already verified")
}

func explorerURL(network *config.Network, verifier string, d *models.Deployment) string {
	switch {
	case verifier == config.VerifierSourcify:
		return fmt.Sprintf("https://repo.sourcify.dev/%d/%s", network.ChainID, d.Address.Hex())
	case network.ExplorerURL != "":
		return fmt.Sprintf("%s/address/%s#code", strings.TrimRight(network.ExplorerURL, "/"), d.Address.Hex())
	}
	return ""
}

var _ usecase.ContractVerifier = (*ForgeVerifier)(nil)
