package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"relgate/internal/flags"
	"relgate/internal/project"
	"relgate/internal/python"
)

var (
	describeDir     string
	describePackage string
	describePython  string
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the assembled distribution metadata record",
	Long: `Assemble the distribution metadata record from the version marker and the
canonical declaration (setup.py) and print it as JSON.

This is the record packaging would build: name, version, license, URL,
python requirement, keywords, classifiers and the dependency specifiers.
Any missing input is a fatal error, as it would be for packaging, and so is
an interpreter below the declared python_requires floor.

Examples:
  relgate describe --project ~/src/tphate
  relgate describe --project ~/src/tphate | jq .version
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(describeDir)
		if err != nil {
			return err
		}
		layout := project.NewLayout(dir, describePackage, "")
		desc, err := project.Describe(layout)
		if err != nil {
			return err
		}
		if desc.PythonRequires != "" {
			interp, err := python.Resolve(describePython)
			if err != nil {
				return err
			}
			version, err := interp.Version(cmd.Context())
			if err != nil {
				return err
			}
			if err := project.CheckPythonRequires(desc.PythonRequires, version); err != nil {
				return err
			}
		}
		out, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeDir, flags.FlagProject, ".", "Project root directory")
	describeCmd.Flags().StringVar(&describePackage, flags.FlagPackage, "", "Importable package name (default: inferred from the project layout)")
	describeCmd.Flags().StringVar(&describePython, flags.FlagPython, "", "Python interpreter (default: $RELGATE_PYTHON, then python3/python on PATH)")
}
