package builtin

import (
	"context"
	"fmt"
	"strings"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
	"relgate/internal/python"
)

// FunctionalitySmokeCheck verifies that the installed library still embeds:
// the primary operator, run on a fixed seeded input, must produce an
// embedding of the expected shape and carry its operator attributes.
type FunctionalitySmokeCheck struct{}

func (c *FunctionalitySmokeCheck) ID() string {
	return "functionality-smoke"
}

func (c *FunctionalitySmokeCheck) Title() string {
	return "Core Functionality Smoke Test"
}

func (c *FunctionalitySmokeCheck) Description() string {
	return "Runs the library's primary transform on a fixed-seed synthetic input and verifies the embedding shape and the presence of the operator attributes."
}

func (c *FunctionalitySmokeCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepSmokeReport}
}

func (c *FunctionalitySmokeCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	report, res, ok := dep[*models.SmokeReport](dc, data.DepSmokeReport, project, c.ID())
	if !ok {
		return res, nil
	}

	wantRows, wantCols := python.SmokeShape()
	if !report.OK {
		return checks.FailResultWithEvidence(project, c.ID(),
			"smoke probe failed to run", map[string]string{"detail": report.Detail}), nil
	}
	if report.Rows != wantRows || report.Cols != wantCols {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("embedding shape (%d, %d), expected (%d, %d)",
				report.Rows, report.Cols, wantRows, wantCols)), nil
	}
	if len(report.MissingAttrs) > 0 {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("operator missing attributes: %s", strings.Join(report.MissingAttrs, ", "))), nil
	}
	return checks.PassResultWithMessage(project, c.ID(),
		fmt.Sprintf("embedding shape (%d, %d) with all operator attributes", report.Rows, report.Cols)), nil
}

func init() {
	checks.Register(&FunctionalitySmokeCheck{})
}
