package models

// WorkspaceStatus records workspace cleanliness: which required files are
// missing and which build artifacts are lying around.
type WorkspaceStatus struct {
	// Missing lists required files (relative to the project root) that do
	// not exist.
	Missing []string
	// Artifacts lists build-artifact paths that exist. Their presence is a
	// warning, never a failure.
	Artifacts []string
}
