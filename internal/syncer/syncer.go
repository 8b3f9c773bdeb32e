// Package syncer keeps the mirror config file consistent with the canonical
// declaration: it rewrites pyproject.toml's version and dependency fields to
// match version.py and setup.py, leaving everything else alone.
package syncer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"relgate/internal/data/models"
	"relgate/internal/project"
	"relgate/internal/pyproject"
)

// Build-system requirements that always lead the requires array, ahead of
// the project's own dependencies.
var baseBuildRequires = []string{"setuptools>=61.0", "wheel"}

// Outcome reports what a synchronization run wrote.
type Outcome struct {
	Version      string
	Dependencies int
	Path         string
}

// Sync reads the version from the marker file and the requirement list from
// the canonical declaration, then rewrites the mirror file to match:
//
//   - [project] version
//   - [project] dependencies (the exact specifier strings)
//   - [build-system] requires (base build tools + the same specifiers)
//
// A mirror without a [project] table fails with pyproject.ErrAnchorMissing;
// nothing is written on any failure. Running Sync twice yields a
// byte-identical mirror after the first run.
func Sync(layout project.Layout) (*Outcome, error) {
	marker, err := project.ReadVersionMarker(layout.VersionFile())
	if err != nil {
		return nil, fmt.Errorf("read version marker: %w", err)
	}
	manifest, err := project.ReadSetupManifest(layout.SetupFile())
	if err != nil {
		return nil, fmt.Errorf("read canonical declaration: %w", err)
	}

	doc, err := pyproject.Load(layout.PyprojectFile())
	if err != nil {
		return nil, fmt.Errorf("load mirror: %w", err)
	}

	specs := specStrings(manifest.Requirements)
	if err := doc.SetVersion(marker.Version); err != nil {
		return nil, err
	}
	if err := doc.SetDependencies(specs); err != nil {
		return nil, err
	}
	if err := doc.SetBuildRequires(append(append([]string{}, baseBuildRequires...), specs...)); err != nil {
		return nil, err
	}

	if err := doc.Save(); err != nil {
		return nil, fmt.Errorf("write mirror: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"version": marker.Version,
		"deps":    len(specs),
		"path":    doc.Path(),
	}).Debug("synchronized mirror config")

	return &Outcome{
		Version:      marker.Version,
		Dependencies: len(specs),
		Path:         doc.Path(),
	}, nil
}

func specStrings(reqs []models.Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.String()
	}
	return out
}
