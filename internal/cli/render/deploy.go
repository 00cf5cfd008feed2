package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// DeployRenderer renders deployment and plan outcomes
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderDeploy renders the outcome of a single deployment
func (r *DeployRenderer) RenderDeploy(result *usecase.DeployResult) error {
	d := result.Deployment

	switch result.State {
	case usecase.StateDeployed:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s", d.Name)))
	case usecase.StateAlreadyDeployed:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was already deployed at the predicted address, recorded without a transaction", d.Name)))
	case usecase.StateAlreadyRecorded:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s is already recorded on chain %d, nothing to do", d.Name, d.ChainID)))
	}
	fmt.Fprintln(r.out)

	field(r.out, "State", Title(string(result.State)))
	field(r.out, "Contract", d.Artifact.FullyQualifiedName())
	field(r.out, "Address", nameStyle.Sprint(d.Address.Hex()))
	field(r.out, "Chain ID", d.ChainID)
	field(r.out, "Salt", d.Strategy.Salt)
	field(r.out, "Entropy", d.Strategy.Entropy)
	field(r.out, "Transaction", d.TransactionHashHex())

	if result.PredictionMismatch {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("deployed address differs from prediction %s", result.Predicted.Hex())))
	}
	if result.State != usecase.StateAlreadyRecorded && !result.Verified {
		labelStyle.Fprintln(r.out, "  Source verification was skipped or failed, run `treb-deploy verify "+d.Name+"` to retry")
	}

	return nil
}

// RenderPlan renders the outcome of a plan run
func (r *DeployRenderer) RenderPlan(result *usecase.RunPlanResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Plan: %s\n", result.Plan.Group)

	executed := lo.SliceToMap(result.Executed, func(s *usecase.PlanStepResult) (string, *usecase.PlanStepResult) {
		return s.Step.Name, s
	})

	for i, step := range result.Steps {
		prefix := fmt.Sprintf("  %d. %s", i+1, step.Name)
		stepResult, ok := executed[step.Name]
		switch {
		case ok:
			d := stepResult.Result.Deployment
			fmt.Fprintf(r.out, "%s %s %s\n", prefix, addressStyle.Sprint(d.Address.Hex()), labelStyle.Sprintf("(%s)", Title(string(stepResult.Result.State))))
		case result.FailedStep != nil && result.FailedStep.Step.Name == step.Name:
			fmt.Fprintf(r.out, "%s %s\n", prefix, color.New(color.FgRed).Sprintf("failed: %v", result.FailedStep.Error))
		default:
			deps := ""
			if len(step.Dependencies) > 0 {
				deps = fmt.Sprintf(" after %v", step.Dependencies)
			}
			fmt.Fprintf(r.out, "%s %s\n", prefix, labelStyle.Sprintf("(%s%s)", step.Component.Contract, deps))
		}
	}

	if result.Success && len(result.Executed) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%d components deployed or confirmed", len(result.Executed))))
	}
	return nil
}
