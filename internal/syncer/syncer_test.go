package syncer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"relgate/internal/errs"
	"relgate/internal/project"
	"relgate/internal/pyproject"
)

func writeProject(t *testing.T, pyprojectContent string) project.Layout {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		filepath.Join("tphate", "__init__.py"): "from .tphate import TPHATE\n",
		filepath.Join("tphate", "version.py"):  "__version__ = \"1.0.1\"\n",
		"setup.py": `install_requires = [
    "numpy>=1.16.0",
    "scipy>=1.1.0",
    "pygsp",
]

setup(
    name="tphate",
    install_requires=install_requires,
)
`,
		"pyproject.toml": pyprojectContent,
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return project.NewLayout(dir, "tphate", "")
}

const mirrorWithAnchor = `[build-system]
requires = ["setuptools"]
build-backend = "setuptools.build_meta"

[project]
name = "tphate"
version = "0.0.0"
dependencies = ["stale"]
`

func TestSync(t *testing.T) {
	layout := writeProject(t, mirrorWithAnchor)

	outcome, err := Sync(layout)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if outcome.Version != "1.0.1" {
		t.Errorf("outcome version = %q", outcome.Version)
	}
	if outcome.Dependencies != 3 {
		t.Errorf("outcome dependencies = %d, want 3", outcome.Dependencies)
	}

	doc, err := pyproject.Load(layout.PyprojectFile())
	if err != nil {
		t.Fatalf("reload mirror: %v", err)
	}
	if v, _ := doc.Version(); v != "1.0.1" {
		t.Errorf("mirror version = %q, want 1.0.1", v)
	}
	wantDeps := []string{"numpy>=1.16.0", "scipy>=1.1.0", "pygsp"}
	if got, _ := doc.Dependencies(); !reflect.DeepEqual(got, wantDeps) {
		t.Errorf("mirror dependencies = %v, want %v", got, wantDeps)
	}
	wantReqs := append([]string{"setuptools>=61.0", "wheel"}, wantDeps...)
	if got, _ := doc.BuildRequires(); !reflect.DeepEqual(got, wantReqs) {
		t.Errorf("mirror build requires = %v, want %v", got, wantReqs)
	}
}

func TestSyncIdempotent(t *testing.T) {
	layout := writeProject(t, mirrorWithAnchor)

	if _, err := Sync(layout); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	first, err := os.ReadFile(layout.PyprojectFile())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Sync(layout); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	second, err := os.ReadFile(layout.PyprojectFile())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("second sync changed the mirror:\n--- first\n%s\n--- second\n%s", first, second)
	}
}

// Sync rewrites three fields and nothing else: the author's comments and
// unrelated tables come through the rewrite untouched.
func TestSyncPreservesMirrorContent(t *testing.T) {
	const mirror = `# Packaging metadata for tphate.
[build-system]
requires = ["setuptools"]
build-backend = "setuptools.build_meta"

[project]
name = "tphate"
# Release version, synced from tphate/version.py.
version = "0.0.0"
dependencies = ["stale"]

[tool.pytest.ini_options]
testpaths = ["test"]  # unit tests only
`
	layout := writeProject(t, mirror)

	if _, err := Sync(layout); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	out, err := os.ReadFile(layout.PyprojectFile())
	if err != nil {
		t.Fatal(err)
	}
	got := string(out)

	for _, want := range []string{
		"# Packaging metadata for tphate.",
		"# Release version, synced from tphate/version.py.",
		"[tool.pytest.ini_options]",
		`testpaths = ["test"]  # unit tests only`,
		`version = "1.0.1"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("sync dropped %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "[tool]") || strings.Contains(got, "[tool.pytest]") {
		t.Errorf("sync restructured the [tool.pytest.ini_options] header:\n%s", got)
	}
}

func TestSyncAnchorMissing(t *testing.T) {
	layout := writeProject(t, "[build-system]\nrequires = [\"setuptools\"]\n")

	before, err := os.ReadFile(layout.PyprojectFile())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Sync(layout); !errors.Is(err, pyproject.ErrAnchorMissing) {
		t.Fatalf("err = %v, want ErrAnchorMissing", err)
	}
	after, err := os.ReadFile(layout.PyprojectFile())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed sync rewrote the mirror")
	}
}

func TestSyncMissingInputs(t *testing.T) {
	layout := writeProject(t, mirrorWithAnchor)

	t.Run("missing version marker", func(t *testing.T) {
		if err := os.Remove(layout.VersionFile()); err != nil {
			t.Fatal(err)
		}
		_, err := Sync(layout)
		if err == nil {
			t.Fatal("expected error")
		}
		if got := errs.KindOf(err); got != errs.KindMissingFile {
			t.Errorf("kind = %v, want %v", got, errs.KindMissingFile)
		}
	})
}
