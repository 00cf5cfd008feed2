package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deploy/internal/cli/render"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var contractName string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List recorded deployments.

Without --network every configured network is listed.`,
		Example: `  # List all deployments
  treb-deploy list

  # List Counter deployments on sepolia
  treb-deploy list --contract Counter -n sepolia`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				ContractName: contractName,
			})
			if err != nil {
				return err
			}

			if outputJSON(cmd) {
				return render.JSON(cmd.OutOrStdout(), result.Deployments)
			}

			names := make(map[uint64]string)
			for _, n := range app.Config.Networks.All() {
				names[n.ChainID] = n.Name
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), names).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	return cmd
}
