package data

const (
	// DepVersionMarker is the parsed version marker file (<pkg>/version.py).
	DepVersionMarker DependencyKey = "project.version_marker"

	// DepSetupManifest is the canonical dependency declaration parsed from
	// setup.py: the install_requires list plus surrounding metadata.
	DepSetupManifest DependencyKey = "project.setup_manifest"

	// DepPyproject is the mirror config file (pyproject.toml) loaded into a
	// structured document model.
	DepPyproject DependencyKey = "project.pyproject"

	// DepWorkspace is the workspace file status: required files that are
	// missing and build artifacts that are present.
	DepWorkspace DependencyKey = "project.workspace"

	// DepPackageProbe is the installed package's self-reported version,
	// obtained by importing it in the configured interpreter.
	DepPackageProbe DependencyKey = "python.package_probe"

	// DepSmokeReport is the result of running the library's primary transform
	// on a fixed synthetic input inside the configured interpreter.
	DepSmokeReport DependencyKey = "python.smoke"

	// DepTestRun is the result of invoking the project's test runner as a
	// bounded subprocess.
	DepTestRun DependencyKey = "python.tests"

	// DepReleaseTags is the set of tags already published on the project's
	// remote repository, or a skip reason when the remote is unreachable.
	DepReleaseTags DependencyKey = "github.release_tags"
)
