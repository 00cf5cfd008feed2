package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deploy/internal/cli/render"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		name       string
		entropy    string
		args       []string
		libraries  []string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <contract>",
		Short: "Deploy a contract to its deterministic CREATE3 address",
		Long: `Deploy a compiled contract through the CreateX factory.

The address depends only on the sender and the entropy, so it can be predicted
before deploying. If a deployment with the same name is already recorded for the
network nothing is sent; if code already exists at the predicted address it is
recorded without sending a transaction.`,
		Example: `  # Deploy Counter with entropy 1000
  treb-deploy deploy Counter --entropy 1000 -n sepolia

  # Deploy a contract that links a library and takes constructor arguments
  treb-deploy deploy BookManager --entropy 1001 \
    --lib Book=0x5FbDB2315678afecb367f032d93F642f64180aa3 \
    --arg 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entropyValue, err := domain.ParseEntropy(entropy)
			if err != nil {
				return err
			}
			links, err := parseLibraryFlags(libraries)
			if err != nil {
				return err
			}
			creds, err := app.Senders.Provider()
			if err != nil {
				return err
			}

			contract := positional[0]
			if name == "" {
				name = contractName(contract)
			}

			result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployParams{
				Name:        name,
				Contract:    contract,
				Entropy:     entropyValue,
				Args:        args,
				Libraries:   links,
				Credentials: creds,
				SkipVerify:  skipVerify,
			})
			if err != nil {
				return err
			}

			if outputJSON(cmd) {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Deployment name (defaults to the contract name)")
	cmd.Flags().StringVarP(&entropy, "entropy", "e", "", "Salt entropy, decimal or 0x-hex, below 2^88")
	cmd.Flags().StringArrayVar(&args, "arg", nil, "Constructor argument, in order (repeatable; arrays as JSON)")
	cmd.Flags().StringArrayVar(&libraries, "lib", nil, "Library link as <library>=<address> (repeatable)")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Skip source verification")
	_ = cmd.MarkFlagRequired("entropy")

	return cmd
}

// parseLibraryFlags parses --lib values of the form "Name=0x..." or "path/To.sol:Name=0x..."
func parseLibraryFlags(values []string) (map[string]common.Address, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]common.Address, len(values))
	for _, v := range values {
		ref, addr, ok := strings.Cut(v, "=")
		if !ok || ref == "" {
			return nil, fmt.Errorf("invalid --lib %q, expected <library>=<address>", v)
		}
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid --lib %q: bad address %q", v, addr)
		}
		out[ref] = common.HexToAddress(addr)
	}
	return out, nil
}

// contractName strips the source path from "path/To.sol:Name"
func contractName(ref string) string {
	if idx := strings.LastIndex(ref, ":"); idx != -1 {
		return ref[idx+1:]
	}
	return ref
}
