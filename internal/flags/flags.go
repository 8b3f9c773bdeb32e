// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants helps avoid drift between Cobra flag
// wiring and other code paths that need to reference flags.
// IMPORTANT: These are flag *names* without leading dashes.
package flags

const (
	// Project
	FlagProject       = "project"
	FlagPackage       = "package"
	FlagExpectVersion = "expect-version"
	FlagPython        = "python"
	FlagTestDir       = "test-dir"

	// Modes
	FlagUpdateOnly = "update-only"
	FlagNoUpdate   = "no-update"

	// Checks
	FlagChecks  = "checks"
	FlagSet     = "set"
	FlagOffline = "offline"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagEmit                = "emit"
	FlagNoConsole           = "no-console"

	// Runtime
	FlagTimeout     = "timeout"
	FlagTestTimeout = "test-timeout"
)
