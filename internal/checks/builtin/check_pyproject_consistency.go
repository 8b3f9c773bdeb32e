package builtin

import (
	"context"
	"fmt"
	"strings"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
	"relgate/internal/errs"
	"relgate/internal/pyproject"
)

// PyprojectConsistencyCheck verifies the mirror config file against the
// canonical declaration and the installed package: the mirror's version must
// equal the package's, and every canonical specifier must appear verbatim in
// the mirror's dependency array.
type PyprojectConsistencyCheck struct{}

func (c *PyprojectConsistencyCheck) ID() string {
	return "pyproject-consistency"
}

func (c *PyprojectConsistencyCheck) Title() string {
	return "Mirror Config Consistency"
}

func (c *PyprojectConsistencyCheck) Description() string {
	return "Verifies that pyproject.toml declares the installed package's version and carries every dependency specifier from the canonical declaration, exactly as written."
}

func (c *PyprojectConsistencyCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepPyproject, data.DepSetupManifest, data.DepPackageProbe}
}

func (c *PyprojectConsistencyCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	doc, res, ok := dep[*pyproject.Document](dc, data.DepPyproject, project, c.ID())
	if !ok {
		return res, nil
	}
	manifest, res, ok := dep[*models.SetupManifest](dc, data.DepSetupManifest, project, c.ID())
	if !ok {
		return res, nil
	}
	probe, res, ok := dep[*models.PackageProbe](dc, data.DepPackageProbe, project, c.ID())
	if !ok {
		return res, nil
	}

	if !doc.HasProjectTable() {
		return checks.FailResult(project, c.ID(), "mirror has no [project] table"), nil
	}
	if !probe.OK {
		return checks.FailResultWithEvidence(project, c.ID(),
			"cannot verify mirror version: package is not importable",
			map[string]string{"detail": probe.Detail}), nil
	}
	version, ok := doc.Version()
	if !ok {
		return checks.FailResult(project, c.ID(), "mirror declares no version"), nil
	}
	if version != probe.Version {
		return checks.FailResultWithEvidence(project, c.ID(),
			fmt.Sprintf("mirror version %q does not match package version %q", version, probe.Version),
			map[string]string{"kind": errs.KindValueMismatch.String()}), nil
	}

	deps, ok := doc.Dependencies()
	if !ok {
		return checks.FailResult(project, c.ID(), "mirror has no dependencies array"), nil
	}
	declared := make(map[string]bool, len(deps))
	for _, d := range deps {
		declared[d] = true
	}
	var missing []string
	for _, req := range manifest.Requirements {
		if !declared[req.String()] {
			missing = append(missing, req.String())
		}
	}
	if len(missing) > 0 {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("dependencies missing from mirror: %s", strings.Join(missing, ", "))), nil
	}

	return checks.PassResultWithMessage(project, c.ID(),
		fmt.Sprintf("mirror matches: version %s, %d dependencies", version, len(manifest.Requirements))), nil
}

func init() {
	checks.Register(&PyprojectConsistencyCheck{})
}
