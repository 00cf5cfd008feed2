package plan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Loader reads deployment plans from YAML files
type Loader struct {
	projectRoot string
}

// NewLoader creates a new plan loader. Relative plan paths resolve against the project root.
func NewLoader(cfg *config.RuntimeConfig) *Loader {
	return &Loader{projectRoot: cfg.ProjectRoot}
}

// LoadPlan reads, parses and validates the plan at path
func (l *Loader) LoadPlan(_ context.Context, path string) (*domain.DeploymentPlan, error) {
	if !filepath.IsAbs(path) && l.projectRoot != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = filepath.Join(l.projectRoot, path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plan file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	return Parse(data)
}

// Parse parses a deployment plan from YAML data
func Parse(data []byte) (*domain.DeploymentPlan, error) {
	var p domain.DeploymentPlan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deployment plan: %w", err)
	}
	if _, err := p.ExecutionOrder(); err != nil {
		return nil, fmt.Errorf("invalid deployment plan: %w", err)
	}

	return &p, nil
}

var _ usecase.PlanLoader = (*Loader)(nil)
