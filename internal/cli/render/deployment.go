package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(result *usecase.ShowDeploymentResult) error {
	d := result.Deployment

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.Name)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	field(r.out, "Contract", color.New(color.FgYellow).Sprint(d.Artifact.FullyQualifiedName()))
	field(r.out, "Address", d.Address.Hex())
	network := fmt.Sprintf("%d", d.ChainID)
	if result.Network != nil {
		network = fmt.Sprintf("%s (%d)", result.Network.Name, d.ChainID)
	}
	field(r.out, "Network", network)
	field(r.out, "Created", d.CreatedAt.Format("2006-01-02 15:04:05"))
	if result.CodeChecked {
		if result.HasCode {
			field(r.out, "On-chain code", color.New(color.FgGreen).Sprint("present"))
		} else {
			field(r.out, "On-chain code", color.New(color.FgRed).Sprint("missing"))
		}
	}

	fmt.Fprintln(r.out, "\nDeployment Strategy:")
	field(r.out, "Method", d.Strategy.Method)
	field(r.out, "Factory", d.Strategy.Factory.Hex())
	field(r.out, "Salt", d.Strategy.Salt)
	field(r.out, "Entropy", d.Strategy.Entropy)
	field(r.out, "Salt guard", d.Strategy.SaltGuard)
	field(r.out, "Init code hash", d.Strategy.InitCodeHash.Hex())

	fmt.Fprintln(r.out, "\nArtifact Information:")
	field(r.out, "Source", d.Artifact.SourceName)
	if d.Artifact.CompilerVersion != "" {
		field(r.out, "Compiler", d.Artifact.CompilerVersion)
	}
	if len(d.Args) > 0 {
		field(r.out, "Arguments", strings.Join(d.Args, ", "))
	}

	if len(d.Libraries) > 0 {
		fmt.Fprintln(r.out, "\nLinked Libraries:")
		fqns := make([]string, 0, len(d.Libraries))
		for fqn := range d.Libraries {
			fqns = append(fqns, fqn)
		}
		sort.Strings(fqns)
		for _, fqn := range fqns {
			fmt.Fprintf(r.out, "  %s => %s\n", fqn, d.Libraries[fqn].Hex())
		}
	}

	fmt.Fprintln(r.out, "\nTransaction Information:")
	if d.WasBroadcast() {
		field(r.out, "Hash", d.TransactionHash.Hex())
	} else {
		field(r.out, "Hash", labelStyle.Sprint("none, found already deployed"))
	}

	return nil
}
