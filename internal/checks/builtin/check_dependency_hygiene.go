package builtin

import (
	"context"
	"fmt"
	"strings"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
)

// Defaults mirror the library's dependency cleanup: the parent-project
// packages must be gone, the scientific stack must be declared.
var (
	defaultForbidden = []string{"phate", "scprep"}
	defaultRequired  = []string{
		"numpy", "scipy", "scikit-learn", "statsmodels", "tasklogger",
		"graphtools", "matplotlib", "s_gd2", "pygsp", "Deprecated",
	}
)

// DependencyHygieneCheck verifies the canonical declaration: forbidden
// (deprecated) dependency names are absent and the expected set is present.
type DependencyHygieneCheck struct {
	forbidden []string
	required  []string
}

func (c *DependencyHygieneCheck) ID() string {
	return "dependency-hygiene"
}

func (c *DependencyHygieneCheck) Title() string {
	return "Canonical Dependency Hygiene"
}

func (c *DependencyHygieneCheck) Description() string {
	return "Verifies that deprecated dependencies are absent from the canonical declaration in setup.py and that every expected dependency is declared."
}

func (c *DependencyHygieneCheck) Options() []checks.Option {
	return []checks.Option{
		{
			Name:        "forbid",
			Description: "Comma-separated dependency names that must NOT be declared.",
			Default:     strings.Join(defaultForbidden, ","),
		},
		{
			Name:        "require",
			Description: "Comma-separated dependency names that must be declared.",
			Default:     strings.Join(defaultRequired, ","),
		},
	}
}

func (c *DependencyHygieneCheck) Configure(opts map[string]string) error {
	if val, ok := opts["forbid"]; ok {
		c.forbidden = splitNames(val)
	}
	if val, ok := opts["require"]; ok {
		c.required = splitNames(val)
	}
	return nil
}

func (c *DependencyHygieneCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepSetupManifest}
}

func (c *DependencyHygieneCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	manifest, res, ok := dep[*models.SetupManifest](dc, data.DepSetupManifest, project, c.ID())
	if !ok {
		return res, nil
	}

	forbidden := c.forbidden
	if forbidden == nil {
		forbidden = defaultForbidden
	}
	required := c.required
	if required == nil {
		required = defaultRequired
	}

	var present []string
	for _, name := range forbidden {
		if manifest.HasRequirement(name) {
			present = append(present, name)
		}
	}
	if len(present) > 0 {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("deprecated dependencies still declared: %s", strings.Join(present, ", "))), nil
	}

	var missing []string
	for _, name := range required {
		if !manifest.HasRequirement(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("missing dependencies: %s", strings.Join(missing, ", "))), nil
	}

	return checks.PassResultWithMessage(project, c.ID(),
		fmt.Sprintf("%d dependencies declared, none deprecated", len(manifest.Requirements))), nil
}

func splitNames(val string) []string {
	out := []string{}
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() {
	checks.Register(&DependencyHygieneCheck{})
}
