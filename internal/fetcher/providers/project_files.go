// Package providers registers the data providers for every dependency key.
// Importing it (blank import in main) wires the registry.
package providers

import (
	"context"
	"os"
	"path/filepath"

	"relgate/internal/data"
	"relgate/internal/data/models"
	"relgate/internal/fetcher"
	"relgate/internal/project"
	"relgate/internal/pyproject"
)

type versionMarkerProvider struct{}

func (versionMarkerProvider) Key() data.DependencyKey { return data.DepVersionMarker }

func (versionMarkerProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	return project.ReadVersionMarker(f.Layout.VersionFile())
}

type setupManifestProvider struct{}

func (setupManifestProvider) Key() data.DependencyKey { return data.DepSetupManifest }

func (setupManifestProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	return project.ReadSetupManifest(f.Layout.SetupFile())
}

type pyprojectProvider struct{}

func (pyprojectProvider) Key() data.DependencyKey { return data.DepPyproject }

func (pyprojectProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	return pyproject.Load(f.Layout.PyprojectFile())
}

type workspaceProvider struct{}

func (workspaceProvider) Key() data.DependencyKey { return data.DepWorkspace }

// Build-artifact paths whose presence warrants a warning. The pytest cache
// is ignored: the gate itself creates it by running the suite.
var artifactDirs = []string{"build", "dist", "__pycache__"}

func (workspaceProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	status := &models.WorkspaceStatus{}
	for _, rel := range f.Layout.RequiredFiles() {
		if _, err := os.Stat(filepath.Join(f.Layout.Dir, rel)); err != nil {
			status.Missing = append(status.Missing, rel)
		}
	}
	for _, dir := range artifactDirs {
		if info, err := os.Stat(filepath.Join(f.Layout.Dir, dir)); err == nil && info.IsDir() {
			status.Artifacts = append(status.Artifacts, dir+"/")
		}
	}
	if matches, err := filepath.Glob(filepath.Join(f.Layout.Dir, "*.egg-info")); err == nil {
		for _, m := range matches {
			status.Artifacts = append(status.Artifacts, filepath.Base(m)+"/")
		}
	}
	return status, nil
}

func init() {
	fetcher.RegisterProvider(versionMarkerProvider{})
	fetcher.RegisterProvider(setupManifestProvider{})
	fetcher.RegisterProvider(pyprojectProvider{})
	fetcher.RegisterProvider(workspaceProvider{})
}
