package verification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

type fakeForge struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeForge) run(_ context.Context, _ string, args []string) ([]byte, error) {
	f.calls = append(f.calls, args)
	verifier := ""
	for i, a := range args {
		if a == "--verifier" && i+1 < len(args) {
			verifier = args[i+1]
		}
	}
	return []byte(f.outputs[verifier]), f.errs[verifier]
}

func newTestVerifier(forge *fakeForge) *ForgeVerifier {
	v := NewForgeVerifier(&config.RuntimeConfig{ProjectRoot: "."}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	v.run = forge.run
	return v
}

func testRequest(verifiers ...string) usecase.VerificationRequest {
	return usecase.VerificationRequest{
		Deployment: &models.Deployment{
			Name:    "BookManager",
			Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
			Artifact: models.ArtifactInfo{
				SourceName:      "contracts/BookManager.sol",
				ContractName:    "BookManager",
				CompilerVersion: "0.8.24",
			},
			Strategy: models.DeploymentStrategy{ConstructorArgs: common.LeftPadBytes([]byte{0x01}, 32)},
			Libraries: map[string]common.Address{
				"contracts/libraries/Book.sol:Book": common.HexToAddress("0x2222222222222222222222222222222222222222"),
			},
		},
		Network: &config.Network{
			ChainID:     11155111,
			Name:        "sepolia",
			ExplorerURL: "https://eth-sepolia.blockscout.com",
			Verifiers:   verifiers,
		},
	}
}

func TestForgeVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("builds forge arguments", func(t *testing.T) {
		t.Setenv("ETHERSCAN_API_KEY", "KEY")
		forge := &fakeForge{outputs: map[string]string{config.VerifierEtherscan: "Contract successfully verified"}}

		err := newTestVerifier(forge).Verify(ctx, testRequest(config.VerifierEtherscan))
		require.NoError(t, err)
		require.Len(t, forge.calls, 1)
		assert.Equal(t, []string{
			"verify-contract",
			"0x1111111111111111111111111111111111111111",
			"contracts/BookManager.sol:BookManager",
			"--chain-id", "11155111",
			"--verifier", "etherscan",
			"--watch",
			"--etherscan-api-key", "KEY",
			"--compiler-version", "0.8.24",
			"--constructor-args", "0000000000000000000000000000000000000000000000000000000000000001",
			"--libraries", "contracts/libraries/Book.sol:Book:0x2222222222222222222222222222222222222222",
		}, forge.calls[0])
	})

	t.Run("blockscout uses the explorer api", func(t *testing.T) {
		forge := &fakeForge{outputs: map[string]string{config.VerifierBlockscout: "Contract successfully verified"}}

		cmds := newTestVerifier(forge).Commands(testRequest().Deployment, testRequest(config.VerifierBlockscout).Network)
		require.Len(t, cmds, 1)
		assert.Contains(t, cmds[0], "--verifier-url https://eth-sepolia.blockscout.com/api/")
	})

	t.Run("already verified counts as success", func(t *testing.T) {
		forge := &fakeForge{
			outputs: map[string]string{config.VerifierSourcify: "Contract is already verified"},
			errs:    map[string]error{config.VerifierSourcify: errors.New("exit status 1")},
		}

		assert.NoError(t, newTestVerifier(forge).Verify(ctx, testRequest(config.VerifierSourcify)))
	})

	t.Run("one working verifier is enough", func(t *testing.T) {
		forge := &fakeForge{
			outputs: map[string]string{
				config.VerifierEtherscan: "rate limited",
				config.VerifierSourcify:  "Contract successfully verified",
			},
			errs: map[string]error{config.VerifierEtherscan: errors.New("exit status 1")},
		}

		assert.NoError(t, newTestVerifier(forge).Verify(ctx, testRequest(config.VerifierEtherscan, config.VerifierSourcify)))
		assert.Len(t, forge.calls, 2)
	})

	t.Run("fails when every verifier fails", func(t *testing.T) {
		forge := &fakeForge{
			outputs: map[string]string{config.VerifierEtherscan: "invalid api key"},
			errs:    map[string]error{config.VerifierEtherscan: errors.New("exit status 1")},
		}

		err := newTestVerifier(forge).Verify(ctx, testRequest(config.VerifierEtherscan))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)

		var verr *domain.VerificationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, config.VerifierEtherscan, verr.Verifier)
		assert.Contains(t, verr.Error(), "invalid api key")
	})

	t.Run("unclear output is a failure", func(t *testing.T) {
		forge := &fakeForge{outputs: map[string]string{config.VerifierEtherscan: "submitted"}}

		err := newTestVerifier(forge).Verify(ctx, testRequest(config.VerifierEtherscan))
		assert.ErrorContains(t, err, "status unclear")
	})
}
