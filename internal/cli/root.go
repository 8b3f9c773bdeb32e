package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "relgate",
	Short: "Pre-release verification gate for Python packages",
	Long: `Relgate verifies a Python project is ready to release and keeps its
packaging metadata in sync.

It reads the version marker (<pkg>/version.py) and the canonical dependency
declaration (setup.py), synchronizes pyproject.toml to match, and runs a
fixed set of independent verification checks: version consistency, dependency
hygiene, mirror consistency, a functionality smoke test, the unit test suite,
workspace cleanliness, and release-tag availability.

Examples:
	# Show available commands and global flags
	relgate --help

	# Synchronize pyproject.toml and run all checks
	relgate verify --project path/to/project

	# List checks
	relgate checks list

	# Print build info
	relgate version

Output:
	By default, commands write human-readable output to stdout.
	Structured output is available via emitter flags (see "relgate verify --help").`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging (prints every probe and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
