package builtin

import (
	"context"
	"fmt"
	"time"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
)

// TestSuiteCheck runs the project's unit tests and fails on a non-zero exit
// or a timeout, independent of what the tests themselves assert.
type TestSuiteCheck struct{}

func (c *TestSuiteCheck) ID() string {
	return "test-suite"
}

func (c *TestSuiteCheck) Title() string {
	return "Unit Test Suite"
}

func (c *TestSuiteCheck) Description() string {
	return "Invokes pytest over the project's test directory as a bounded subprocess; any non-zero exit code or timeout fails the gate."
}

func (c *TestSuiteCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepTestRun}
}

func (c *TestSuiteCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	report, res, ok := dep[*models.TestRunReport](dc, data.DepTestRun, project, c.ID())
	if !ok {
		return res, nil
	}

	if report.TimedOut {
		return checks.FailResult(project, c.ID(),
			fmt.Sprintf("test run timed out after %s", report.Duration.Round(time.Millisecond))), nil
	}
	if report.ExitCode != 0 {
		return checks.FailResultWithEvidence(project, c.ID(),
			fmt.Sprintf("tests failed (exit code %d)", report.ExitCode),
			map[string]string{"output": tailLines(report.Output, 20)}), nil
	}
	return checks.PassResultWithMessage(project, c.ID(),
		fmt.Sprintf("all tests pass in %s", report.Duration.Round(time.Millisecond))), nil
}

func init() {
	checks.Register(&TestSuiteCheck{})
}
