package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// DeploymentsRenderer renders deployment lists as one table per chain
type DeploymentsRenderer struct {
	out          io.Writer
	networkNames map[uint64]string
}

// NewDeploymentsRenderer creates a new deployments renderer. networkNames
// labels chain sections and may be nil.
func NewDeploymentsRenderer(out io.Writer, networkNames map[uint64]string) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:          out,
		networkNames: networkNames,
	}
}

// RenderDeploymentList renders deployments grouped by chain
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byChain := lo.GroupBy(result.Deployments, func(d *models.Deployment) uint64 { return d.ChainID })
	chainIDs := lo.Keys(byChain)
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for i, chainID := range chainIDs {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, chainHeader.Sprintf(" %s ", r.chainLabel(chainID)))
		fmt.Fprintln(r.out, renderDeploymentTable(byChain[chainID]))
	}

	fmt.Fprintln(r.out)
	labelStyle.Fprintf(r.out, "%d deployments on %d chains, %d sent by us\n",
		result.Summary.Total, len(result.Summary.ByChain), result.Summary.Broadcasted)
	return nil
}

func (r *DeploymentsRenderer) chainLabel(chainID uint64) string {
	if name, ok := r.networkNames[chainID]; ok {
		return fmt.Sprintf("%s (%d)", name, chainID)
	}
	return fmt.Sprintf("chain %d", chainID)
}

func renderDeploymentTable(deployments []*models.Deployment) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, d := range deployments {
		origin := "adopted"
		if d.WasBroadcast() {
			origin = d.CreatedAt.Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{
			nameStyle.Sprint(d.Name),
			addressStyle.Sprint(d.Address.Hex()),
			d.Artifact.ContractName,
			labelStyle.Sprint(origin),
		})
	}

	return t.Render()
}
