package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deploy/internal/cli/render"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var (
		dryRun     bool
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "plan <plan.yaml>",
		Short: "Deploy every component of a YAML deployment plan",
		Long: `Deploy the components of a plan in dependency order.

Arguments of the form @Name resolve to the address of another component or of a
previously recorded deployment, and @deployer to the sender. Every step is
idempotent, so a failed plan can be re-run to resume it.`,
		Example: `  # Show the execution order
  treb-deploy plan plans/library.yaml --dry-run

  # Deploy the plan
  treb-deploy plan plans/library.yaml -n sepolia`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RunPlanParams{
				PlanPath:   args[0],
				DryRun:     dryRun,
				SkipVerify: skipVerify,
			}
			if !dryRun {
				if params.Credentials, err = app.Senders.Provider(); err != nil {
					return err
				}
			}

			result, runErr := app.RunPlan.Run(cmd.Context(), params)
			if result == nil {
				return runErr
			}

			if outputJSON(cmd) {
				if err := render.JSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				return runErr
			}
			if err := render.NewDeployRenderer(cmd.OutOrStdout()).RenderPlan(result); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the execution order without deploying")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Skip source verification")

	return cmd
}
