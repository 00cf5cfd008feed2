package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks, with probe results when present
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in treb-deploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, status := range result.Networks {
		n := status.Network
		marker := " "
		if n.Name == result.Selected {
			marker = "*"
		}

		var tags []string
		if n.Production {
			tags = append(tags, color.New(color.FgRed).Sprint("production"))
		}
		if n.IsLocal() {
			tags = append(tags, "local")
		}
		if len(n.Verifiers) > 0 {
			tags = append(tags, "verify: "+strings.Join(n.Verifiers, ", "))
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " " + labelStyle.Sprintf("[%s]", strings.Join(tags, "; "))
		}

		switch {
		case status.Error != nil:
			fmt.Fprintf(r.out, "%s ❌ %s - Chain ID: %d - Error: %v\n", marker, n.Name, n.ChainID, status.Error)
		case status.RemoteChainID != 0:
			fmt.Fprintf(r.out, "%s ✅ %s - Chain ID: %d%s\n", marker, n.Name, n.ChainID, suffix)
		default:
			fmt.Fprintf(r.out, "%s    %s - Chain ID: %d%s\n", marker, n.Name, n.ChainID, suffix)
		}
	}

	return nil
}
