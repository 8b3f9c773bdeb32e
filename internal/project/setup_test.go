package project

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"relgate/internal/errs"
)

const sampleSetup = `import os
from setuptools import setup, find_packages

install_requires = [
    "numpy>=1.16.0",
    "scipy>=1.1.0",
    "scikit-learn>=0.20.0",  # pinned for the estimator API
    "s_gd2>=1.8.1",
    "pygsp",
    "Deprecated",
]

version_py = os.path.join(os.path.dirname(__file__), "tphate", "version.py")
version = open(version_py).read().strip().split("=")[-1].replace('"', "").strip()

setup(
    name="tphate",
    version=version,
    description="Temporal PHATE",
    url="https://github.com/KrishnaswamyLab/TPHATE",
    license="GNU General Public License Version 2",
    python_requires=">=3.6",
    install_requires=install_requires,
    packages=find_packages(),
    keywords=[
        "big-data",
        "manifold-learning",
        "dimensionality-reduction",
    ],
    classifiers=[
        "Development Status :: 4 - Beta",
        "Programming Language :: Python :: 3",
    ],
)
`

func TestReadSetupManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.py")
	writeFile(t, path, sampleSetup)

	m, err := ReadSetupManifest(path)
	if err != nil {
		t.Fatalf("ReadSetupManifest: %v", err)
	}

	wantSpecs := []string{
		"numpy>=1.16.0",
		"scipy>=1.1.0",
		"scikit-learn>=0.20.0",
		"s_gd2>=1.8.1",
		"pygsp",
		"Deprecated",
	}
	var gotSpecs []string
	for _, req := range m.Requirements {
		gotSpecs = append(gotSpecs, req.String())
	}
	if !reflect.DeepEqual(gotSpecs, wantSpecs) {
		t.Errorf("requirements = %v, want %v", gotSpecs, wantSpecs)
	}

	if m.Name != "tphate" {
		t.Errorf("name = %q, want %q", m.Name, "tphate")
	}
	if m.URL != "https://github.com/KrishnaswamyLab/TPHATE" {
		t.Errorf("url = %q", m.URL)
	}
	if m.License != "GNU General Public License Version 2" {
		t.Errorf("license = %q", m.License)
	}
	if m.PythonRequires != ">=3.6" {
		t.Errorf("python_requires = %q", m.PythonRequires)
	}
	if want := []string{"big-data", "manifold-learning", "dimensionality-reduction"}; !reflect.DeepEqual(m.Keywords, want) {
		t.Errorf("keywords = %v, want %v", m.Keywords, want)
	}
	if len(m.Classifiers) != 2 {
		t.Errorf("classifiers = %v, want 2 entries", m.Classifiers)
	}

	if !m.HasRequirement("numpy") {
		t.Error("HasRequirement(numpy) = false")
	}
	if m.HasRequirement("phate") {
		t.Error("HasRequirement(phate) = true")
	}
}

func TestReadSetupManifestNoInstallRequires(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.py")
	writeFile(t, path, "from setuptools import setup\nsetup(name=\"pkg\")\n")

	_, err := ReadSetupManifest(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errs.KindOf(err); got != errs.KindFormatMismatch {
		t.Fatalf("kind = %v, want %v", got, errs.KindFormatMismatch)
	}
}

// The manifest reader is called from concurrently fetched providers; it
// must not mutate shared state under the race detector.
func TestReadSetupManifestConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.py")
	writeFile(t, path, sampleSetup)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ReadSetupManifest(path); err != nil {
				t.Errorf("ReadSetupManifest: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestReadSetupManifestMissingFile(t *testing.T) {
	_, err := ReadSetupManifest(filepath.Join(t.TempDir(), "setup.py"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errs.KindOf(err); got != errs.KindMissingFile {
		t.Fatalf("kind = %v, want %v", got, errs.KindMissingFile)
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "setup.py"), sampleSetup)
	writeFile(t, filepath.Join(dir, "tphate", "__init__.py"), "")
	writeFile(t, filepath.Join(dir, "tphate", "version.py"), "__version__ = \"1.0.1\"\n")

	desc, err := Describe(NewLayout(dir, "tphate", ""))
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if desc.Name != "tphate" || desc.Version != "1.0.1" {
		t.Errorf("descriptor = %+v", desc)
	}
	if len(desc.Requirements) != 6 {
		t.Errorf("requirements = %v", desc.Requirements)
	}
	if desc.PythonRequires != ">=3.6" {
		t.Errorf("python_requires = %q", desc.PythonRequires)
	}
}

func TestDescribeMissingMarker(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "setup.py"), sampleSetup)

	_, err := Describe(NewLayout(dir, "tphate", ""))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errs.KindOf(err); got != errs.KindMissingFile {
		t.Fatalf("kind = %v, want %v", got, errs.KindMissingFile)
	}
}

func TestListLiteral(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		ident     string
		want      []string
		wantFound bool
	}{
		{
			name:      "simple list",
			content:   `deps = ["a", "b"]`,
			ident:     "deps",
			want:      []string{"a", "b"},
			wantFound: true,
		},
		{
			name:      "single quotes and trailing comma",
			content:   "deps = ['a', 'b',]",
			ident:     "deps",
			want:      []string{"a", "b"},
			wantFound: true,
		},
		{
			name:      "comment inside list",
			content:   "deps = [\n  \"a\",  # \"not-an-entry\"\n  \"b\",\n]",
			ident:     "deps",
			want:      []string{"a", "b"},
			wantFound: true,
		},
		{
			name:      "nested brackets",
			content:   `deps = ["a[extra]", "b"]`,
			ident:     "deps",
			want:      []string{"a[extra]", "b"},
			wantFound: true,
		},
		{
			name:      "absent identifier",
			content:   `other = ["a"]`,
			ident:     "deps",
			wantFound: false,
		},
		{
			name:      "keyword argument",
			content:   "setup(\n    keywords=[\"x\", \"y\"],\n)",
			ident:     "keywords",
			want:      []string{"x", "y"},
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := listLiteral(tt.content, tt.ident)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if tt.wantFound && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("entries = %v, want %v", got, tt.want)
			}
		})
	}
}
