package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// DeployerRef is the argument reference that resolves to the deployer address
const DeployerRef = "@deployer"

// DeploymentPlan is a set of named contract deployments with dependencies
type DeploymentPlan struct {
	Group      string                    `yaml:"group"`
	Entropy    string                    `yaml:"entropy,omitempty"`
	Components map[string]*PlanComponent `yaml:"components"`
}

// PlanComponent describes a single contract deployment within a plan.
// Libraries maps an artifact reference of a linked library to the name of the
// component (or already recorded deployment) whose address links it.
type PlanComponent struct {
	Contract  string            `yaml:"contract"`
	Entropy   string            `yaml:"entropy,omitempty"`
	Args      []string          `yaml:"args,omitempty"`
	Libraries map[string]string `yaml:"libraries,omitempty"`
	Deps      []string          `yaml:"deps,omitempty"`
}

// PlanStep is a component placed in execution order
type PlanStep struct {
	Name         string
	Component    *PlanComponent
	Dependencies []string
}

// References returns the names this component needs deployed first: explicit
// deps, library providers and @Name constructor arguments.
func (c *PlanComponent) References() []string {
	refs := append([]string{}, c.Deps...)
	for _, provider := range c.Libraries {
		refs = append(refs, provider)
	}
	for _, arg := range c.Args {
		if name, ok := ArgReference(arg); ok && arg != DeployerRef {
			refs = append(refs, name)
		}
	}
	refs = lo.Uniq(refs)
	sort.Strings(refs)
	return refs
}

// ArgReference reports whether arg is an @-reference and returns the referenced name
func ArgReference(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "@") || len(arg) == 1 {
		return "", false
	}
	return arg[1:], true
}

// Validate checks the plan for missing fields and unknown or self references.
// References to names outside the plan are only allowed for library providers
// and @-arguments, which may point at previously recorded deployments.
func (p *DeploymentPlan) Validate() error {
	if p.Group == "" {
		return fmt.Errorf("group name is required")
	}
	if len(p.Components) == 0 {
		return fmt.Errorf("at least one component is required")
	}
	if p.Entropy != "" {
		if _, err := ParseEntropy(p.Entropy); err != nil {
			return fmt.Errorf("plan entropy: %w", err)
		}
	}

	for name, component := range p.Components {
		if component == nil || component.Contract == "" {
			return fmt.Errorf("component '%s' must specify a contract", name)
		}
		if component.Entropy != "" {
			if _, err := ParseEntropy(component.Entropy); err != nil {
				return fmt.Errorf("component '%s' entropy: %w", name, err)
			}
		}
		for _, dep := range component.Deps {
			if dep == name {
				return fmt.Errorf("component '%s' cannot depend on itself", name)
			}
			if _, exists := p.Components[dep]; !exists {
				return fmt.Errorf("component '%s' depends on non-existent component '%s'", name, dep)
			}
		}
		for _, ref := range component.References() {
			if ref == name {
				return fmt.Errorf("component '%s' cannot reference itself", name)
			}
		}
	}

	if p.Entropy == "" && lo.SomeBy(lo.Values(p.Components), func(c *PlanComponent) bool { return c.Entropy == "" }) {
		return fmt.Errorf("entropy is required for the plan or for every component")
	}

	return nil
}

// ExecutionOrder topologically sorts the components. Ties are broken by name so
// the order is stable across runs. References outside the plan are ignored here.
func (p *DeploymentPlan) ExecutionOrder() ([]*PlanStep, error) {
	inDegree := make(map[string]int, len(p.Components))
	dependents := make(map[string][]string)
	deps := make(map[string][]string, len(p.Components))

	for name := range p.Components {
		inDegree[name] = 0
	}
	for name, component := range p.Components {
		for _, ref := range component.References() {
			if _, inPlan := p.Components[ref]; !inPlan {
				continue
			}
			deps[name] = append(deps[name], ref)
			dependents[ref] = append(dependents[ref], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	steps := make([]*PlanStep, 0, len(p.Components))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		steps = append(steps, &PlanStep{
			Name:         current,
			Component:    p.Components[current],
			Dependencies: deps[current],
		})

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				sort.Strings(queue)
			}
		}
	}

	if len(steps) != len(p.Components) {
		cycle := lo.Keys(lo.PickBy(inDegree, func(_ string, degree int) bool { return degree > 0 }))
		sort.Strings(cycle)
		return nil, fmt.Errorf("circular dependency detected involving components: %v", cycle)
	}

	return steps, nil
}
