package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// VerifyRenderer renders verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// RenderVerifyResults renders one line per deployment and a summary
func (r *VerifyRenderer) RenderVerifyResults(result *usecase.VerifyAllResult) error {
	if len(result.Results) == 0 {
		fmt.Fprintln(r.out, "No deployments to verify")
		return nil
	}

	skipped := 0
	for _, res := range result.Results {
		name := res.Deployment.Name
		switch {
		case res.Success:
			color.New(color.FgGreen).Fprintf(r.out, "  %s: ✓ Verified\n", name)
		case res.Skipped != "":
			skipped++
			color.New(color.FgYellow).Fprintf(r.out, "  %s: ⊘ Skipped - %s\n", name, res.Skipped)
		default:
			color.New(color.FgRed).Fprintf(r.out, "  %s: ✗ Failed - %v\n", name, res.Error)
		}
	}

	failed := len(result.Results) - result.SuccessCount - skipped
	fmt.Fprintln(r.out)
	if failed > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d verified, %d failed, %d skipped", result.SuccessCount, failed, skipped)))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%d verified, %d skipped", result.SuccessCount, skipped)))
	return nil
}
