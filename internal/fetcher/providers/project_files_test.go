package providers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"relgate/internal/data/models"
	"relgate/internal/fetcher"
	"relgate/internal/project"
	"relgate/internal/pyproject"
)

func populate(t *testing.T, dir string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func fetcherFor(t *testing.T, dir string) *fetcher.Fetcher {
	t.Helper()
	return fetcher.New(project.NewLayout(dir, "tphate", ""), fetcher.Options{})
}

func allRequiredFiles() []string {
	return project.Layout{Package: "tphate"}.RequiredFiles()
}

func TestWorkspaceProvider(t *testing.T) {
	t.Run("complete workspace", func(t *testing.T) {
		dir := t.TempDir()
		populate(t, dir, allRequiredFiles()...)

		val, err := workspaceProvider{}.Fetch(context.Background(), fetcherFor(t, dir))
		if err != nil {
			t.Fatal(err)
		}
		status := val.(*models.WorkspaceStatus)
		if len(status.Missing) != 0 {
			t.Errorf("missing = %v", status.Missing)
		}
		if len(status.Artifacts) != 0 {
			t.Errorf("artifacts = %v", status.Artifacts)
		}
	})

	t.Run("missing files reported", func(t *testing.T) {
		dir := t.TempDir()
		populate(t, dir, "setup.py", "requirements.txt")

		val, err := workspaceProvider{}.Fetch(context.Background(), fetcherFor(t, dir))
		if err != nil {
			t.Fatal(err)
		}
		status := val.(*models.WorkspaceStatus)
		if len(status.Missing) != 4 {
			t.Errorf("missing = %v, want 4 entries", status.Missing)
		}
	})

	t.Run("artifacts reported", func(t *testing.T) {
		dir := t.TempDir()
		populate(t, dir, allRequiredFiles()...)
		for _, d := range []string{"build", "dist", "tphate.egg-info"} {
			if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
				t.Fatal(err)
			}
		}

		val, err := workspaceProvider{}.Fetch(context.Background(), fetcherFor(t, dir))
		if err != nil {
			t.Fatal(err)
		}
		status := val.(*models.WorkspaceStatus)
		if len(status.Missing) != 0 {
			t.Errorf("missing = %v", status.Missing)
		}
		if len(status.Artifacts) != 3 {
			t.Errorf("artifacts = %v, want build/, dist/, tphate.egg-info/", status.Artifacts)
		}
	})
}

func TestVersionMarkerProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tphate", "version.py")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("__version__ = \"1.0.1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	val, err := versionMarkerProvider{}.Fetch(context.Background(), fetcherFor(t, dir))
	if err != nil {
		t.Fatal(err)
	}
	marker := val.(*models.VersionMarker)
	if marker.Version != "1.0.1" {
		t.Errorf("version = %q", marker.Version)
	}
}

func TestPyprojectProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"),
		[]byte("[project]\nname = \"tphate\"\nversion = \"1.0.1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	val, err := pyprojectProvider{}.Fetch(context.Background(), fetcherFor(t, dir))
	if err != nil {
		t.Fatal(err)
	}
	doc := val.(*pyproject.Document)
	if v, _ := doc.Version(); v != "1.0.1" {
		t.Errorf("version = %q", v)
	}
}
