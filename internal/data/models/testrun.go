package models

import "time"

// TestRunReport records one invocation of the project's test runner.
type TestRunReport struct {
	// ExitCode is the runner's exit code. -1 when the run never produced one
	// (timeout, failure to start).
	ExitCode int
	// TimedOut is true when the run exceeded the configured deadline.
	TimedOut bool
	// Output is the combined stdout/stderr of the run.
	Output string
	// Duration is how long the run took.
	Duration time.Duration
}

// Passed reports whether the run completed in time with a zero exit code.
func (r *TestRunReport) Passed() bool {
	return !r.TimedOut && r.ExitCode == 0
}
