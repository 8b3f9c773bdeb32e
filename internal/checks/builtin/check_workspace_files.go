package builtin

import (
	"context"
	"fmt"
	"strings"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
)

// WorkspaceFilesCheck verifies that the release-required files exist. Build
// artifacts in the workspace produce a warning on an otherwise passing
// result, never a failure.
type WorkspaceFilesCheck struct{}

func (c *WorkspaceFilesCheck) ID() string {
	return "workspace-files"
}

func (c *WorkspaceFilesCheck) Title() string {
	return "Workspace File Status"
}

func (c *WorkspaceFilesCheck) Description() string {
	return "Verifies that every release-required file exists (setup.py, the package marker files, changelog, release guide, requirements.txt) and warns about leftover build artifacts."
}

func (c *WorkspaceFilesCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepWorkspace}
}

func (c *WorkspaceFilesCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	status, res, ok := dep[*models.WorkspaceStatus](dc, data.DepWorkspace, project, c.ID())
	if !ok {
		return res, nil
	}

	if len(status.Missing) > 0 {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("missing required files: %s", strings.Join(status.Missing, ", "))), nil
	}

	result := checks.PassResultWithMessage(project, c.ID(), "all required files present")
	if len(status.Artifacts) > 0 {
		result.Warning = fmt.Sprintf("build artifacts found (should clean): %s", strings.Join(status.Artifacts, ", "))
	}
	return result, nil
}

func init() {
	checks.Register(&WorkspaceFilesCheck{})
}
