package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// NetworkConfirmer asks before broadcasting to networks marked as production
type NetworkConfirmer struct {
	nonInteractive bool
	prompt         func(label string) (string, error)
}

// NewNetworkConfirmer creates a new confirmer. In non-interactive mode every
// network is confirmed without asking.
func NewNetworkConfirmer(cfg *config.RuntimeConfig) *NetworkConfirmer {
	return &NetworkConfirmer{
		nonInteractive: cfg.NonInteractive,
		prompt:         runConfirmPrompt,
	}
}

// ConfirmNetwork asks the user to confirm a deployment from deployer to network
func (c *NetworkConfirmer) ConfirmNetwork(ctx context.Context, network *config.Network, deployer common.Address) (bool, error) {
	if c.nonInteractive {
		return true, nil
	}

	label := fmt.Sprintf("Deploy to %s (chain %d) from %s",
		color.New(color.FgRed, color.Bold).Sprint(network.Name),
		network.ChainID,
		color.New(color.FgCyan).Sprint(deployer.Hex()),
	)

	_, err := c.prompt(label)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	default:
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
}

func runConfirmPrompt(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	return prompt.Run()
}

var _ usecase.NetworkConfirmer = (*NetworkConfirmer)(nil)
