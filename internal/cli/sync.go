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

// syncCmd is shorthand for "verify --update-only" with its own minimal
// config, so packaging scripts can resynchronize the mirror without the
// check surface.
var syncCfg = config.New()

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize pyproject.toml from setup.py and the version marker",
	Long: `Synchronize the mirror config file (pyproject.toml) with the canonical
declaration (setup.py) and the version marker (<pkg>/version.py).

Rewrites in place:
  - [project] version
  - [project] dependencies
  - [build-system] requires

A pyproject.toml without a [project] table fails the run; nothing is
written on failure.

Examples:
  relgate sync --project ~/src/tphate
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := syncCfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		syncCfg.Runtime.Verbose = verbose
		os.Exit(engine.Run(context.Background(), syncCfg, config.ModeUpdateOnly))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncCfg.Project.Dir, flags.FlagProject, ".", "Project root directory")
	syncCmd.Flags().StringVar(&syncCfg.Project.Package, flags.FlagPackage, "", "Importable package name (default: inferred from the project layout)")
}
