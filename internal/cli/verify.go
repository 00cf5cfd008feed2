package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deploy/internal/cli/render"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [name]",
		Short: "Verify deployed contract sources on block explorers",
		Long: `Submit recorded deployments to the verifiers configured for the network.

Without a name every deployment recorded on the network is verified.`,
		Example: `  # Verify one deployment
  treb-deploy verify Counter -n sepolia

  # Verify everything on sepolia
  treb-deploy verify -n sepolia`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.VerifyParams{}
			if len(args) == 1 {
				params.Name = args[0]
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if err := render.NewVerifyRenderer(cmd.OutOrStdout()).RenderVerifyResults(result); err != nil {
				return err
			}
			for _, res := range result.Results {
				if res.Error != nil {
					return fmt.Errorf("verification failed for %s", res.Deployment.Name)
				}
			}
			return nil
		},
	}

	return cmd
}
