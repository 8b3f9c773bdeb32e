package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"relgate/internal/config"
	"relgate/internal/engine"
	"relgate/internal/flags"
)

var cfg = config.New()

var (
	updateOnly bool
	noUpdate   bool
)

const verifyHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
  RELGATE_PYTHON
    Interpreter used for probes when --python is not given (falls back to
    python3, then python, on PATH).

  GITHUB_TOKEN
    Access token for the release-tag check. Without it, relgate reuses
    GitHub CLI authentication (gh auth token) when available, and falls
    back to unauthenticated requests for public repositories.

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}Use "{{.CommandPath}} [command] --help" for more information about a command.
`

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a project is ready for release",
	Long: `Verify a Python project is ready for release.

By default, verify first synchronizes the mirror config file (pyproject.toml)
from the canonical declaration (setup.py) and the version marker
(<pkg>/version.py), then runs every registered check.

Modes:
  --update-only   synchronize pyproject.toml and stop
  --no-update     run checks without touching pyproject.toml

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --no-console: suppress the console sink (use with --emit/--out)

	NDJSON mode emits one JSON object per line: lifecycle Events with a "type"
	field (run.started, check.result, run.finished). Check results are Events
	with type "check.result" and a nested "result" payload.

Exit codes:
	0 = synchronization (if requested) succeeded and all checks passed
	1 = anything else

Examples:
  # Full gate
  relgate verify --project ~/src/tphate

  # Pin the release version the marker must declare
  relgate verify --project ~/src/tphate --expect-version 1.2.1

  # Checks only, no file rewriting, no network
  relgate verify --project ~/src/tphate --no-update --offline

  # AI agent: stream machine-readable events to stdout
  relgate verify --project ~/src/tphate --no-console --emit ndjson
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		mode, err := resolveMode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Runtime.Verbose = verbose

		os.Exit(engine.Run(context.Background(), cfg, mode))
	},
}

func resolveMode() (config.Mode, error) {
	switch {
	case updateOnly && noUpdate:
		return "", fmt.Errorf("--%s and --%s are mutually exclusive", flags.FlagUpdateOnly, flags.FlagNoUpdate)
	case updateOnly:
		return config.ModeUpdateOnly, nil
	case noUpdate:
		return config.ModeNoUpdate, nil
	default:
		return config.ModeDefault, nil
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.SetHelpTemplate(verifyHelpTemplate)

	// Project
	verifyCmd.Flags().StringVar(&cfg.Project.Dir, flags.FlagProject, ".", "Project root directory")
	verifyCmd.Flags().StringVar(&cfg.Project.Package, flags.FlagPackage, "", "Importable package name (default: inferred from the project layout)")
	verifyCmd.Flags().StringVar(&cfg.Project.ExpectVersion, flags.FlagExpectVersion, "", "Release version the marker file must declare")
	verifyCmd.Flags().StringVar(&cfg.Project.Python, flags.FlagPython, "", "Python interpreter for probes (default: $RELGATE_PYTHON, python3, python)")
	verifyCmd.Flags().StringVar(&cfg.Project.TestDir, flags.FlagTestDir, "test", "Test directory handed to pytest, relative to the project root")

	// Modes
	verifyCmd.Flags().BoolVar(&updateOnly, flags.FlagUpdateOnly, false, "Only synchronize pyproject.toml, run no checks")
	verifyCmd.Flags().BoolVar(&noUpdate, flags.FlagNoUpdate, false, "Run checks without synchronizing pyproject.toml")

	// Checks
	verifyCmd.Flags().StringVar(&cfg.Checks.Selector, flags.FlagChecks, "", "Comma-separated check IDs to run (empty = all checks)")
	verifyCmd.Flags().StringArrayVar(&cfg.Checks.Set, flags.FlagSet, nil, "Per-check options as checkID.option=value (repeatable)")
	verifyCmd.Flags().BoolVar(&cfg.Checks.Offline, flags.FlagOffline, false, "Skip checks that need the network")

	// Output
	verifyCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson")
	verifyCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (PASS, FAIL, SKIPPED, ERROR). Comma-separated.")
	verifyCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	verifyCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	verifyCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	verifyCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out)")

	// Runtime
	verifyCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout for the run")
	verifyCmd.Flags().DurationVar(&cfg.Runtime.TestTimeout, flags.FlagTestTimeout, cfg.Runtime.TestTimeout, "Timeout for the test-runner subprocess")
}
