package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deploy/internal/cli/render"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var checkCode bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a recorded deployment",
		Example: `  treb-deploy show Counter -n sepolia --check`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Name:      args[0],
				CheckCode: checkCode,
			})
			if err != nil {
				return err
			}

			if outputJSON(cmd) {
				return render.JSON(cmd.OutOrStdout(), result.Deployment)
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout()).RenderDeployment(result)
		},
	}

	cmd.Flags().BoolVar(&checkCode, "check", false, "Check that code is still present at the recorded address")

	return cmd
}
