package cli

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deploy/internal/cli/render"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	var (
		entropy  string
		deployer string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the CREATE3 address for a deployer and entropy",
		Example: `  # Predict with the configured sender
  treb-deploy predict --entropy 1000 -n sepolia

  # Predict for another deployer without unlocking any key
  treb-deploy predict --entropy 1000 --deployer 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266 -n sepolia`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entropyValue, err := domain.ParseEntropy(entropy)
			if err != nil {
				return err
			}

			params := usecase.PredictAddressParams{Entropy: entropyValue}
			if deployer != "" {
				if !common.IsHexAddress(deployer) {
					return fmt.Errorf("invalid deployer address %q", deployer)
				}
				addr := common.HexToAddress(deployer)
				params.Deployer = &addr
			} else if params.Credentials, err = app.Senders.Provider(); err != nil {
				return err
			}

			result, err := app.PredictAddress.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if outputJSON(cmd) {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewAddressRenderer(cmd.OutOrStdout()).RenderPrediction(result)
		},
	}

	cmd.Flags().StringVarP(&entropy, "entropy", "e", "", "Salt entropy, decimal or 0x-hex, below 2^88")
	cmd.Flags().StringVar(&deployer, "deployer", "", "Deployer address (defaults to the configured sender)")
	_ = cmd.MarkFlagRequired("entropy")

	return cmd
}

// NewCreateAddressCmd creates the create-address command
func NewCreateAddressCmd() *cobra.Command {
	var (
		nonce      string
		crossCheck bool
	)

	cmd := &cobra.Command{
		Use:   "create-address <origin>",
		Short: "Compute the CREATE address of an account at a nonce",
		Long: `Compute the address a contract created by <origin> gets at a nonce.

Without --nonce the current account nonce is read from the selected network.`,
		Example: `  treb-deploy create-address 0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0 --nonce 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("invalid origin address %q", args[0])
			}
			params := usecase.ComputeCreateAddressParams{
				Origin:     common.HexToAddress(args[0]),
				CrossCheck: crossCheck,
			}
			if nonce != "" {
				n, err := strconv.ParseUint(nonce, 0, 64)
				if err != nil {
					return fmt.Errorf("invalid nonce %q: %w", nonce, err)
				}
				params.Nonce = &n
			}

			result, err := app.ComputeCreateAddress.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if outputJSON(cmd) {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewAddressRenderer(cmd.OutOrStdout()).RenderCreateAddress(result)
		},
	}

	cmd.Flags().StringVar(&nonce, "nonce", "", "Account nonce (defaults to the current on-chain nonce)")
	cmd.Flags().BoolVar(&crossCheck, "cross-check", false, "Compare with the factory's computeCreateAddress")

	return cmd
}
