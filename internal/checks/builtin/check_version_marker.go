// Package builtin holds the registered verification checks of the release
// gate, one per file.
package builtin

import (
	"context"
	"fmt"
	"strings"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
	"relgate/internal/errs"
)

// VersionMarkerCheck verifies that the version marker file declares a
// version and that the installed package reports the same one. With the
// "expect" option set, the marker must additionally equal that literal.
type VersionMarkerCheck struct {
	expect string
}

func (c *VersionMarkerCheck) ID() string {
	return "version-marker"
}

func (c *VersionMarkerCheck) Title() string {
	return "Version Marker Consistency"
}

func (c *VersionMarkerCheck) Description() string {
	return "Verifies that the version marker file declares the release version and that the installed package reports exactly that version when imported."
}

func (c *VersionMarkerCheck) Options() []checks.Option {
	return []checks.Option{
		{
			Name:        "expect",
			Description: "Pin the release version: the marker must declare exactly this string.",
		},
	}
}

func (c *VersionMarkerCheck) Configure(opts map[string]string) error {
	c.expect = strings.TrimSpace(opts["expect"])
	return nil
}

func (c *VersionMarkerCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepVersionMarker, data.DepPackageProbe}
}

func (c *VersionMarkerCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	marker, res, ok := dep[*models.VersionMarker](dc, data.DepVersionMarker, project, c.ID())
	if !ok {
		return res, nil
	}
	probe, res, ok := dep[*models.PackageProbe](dc, data.DepPackageProbe, project, c.ID())
	if !ok {
		return res, nil
	}

	if c.expect != "" && marker.Version != c.expect {
		return checks.FailResultWithEvidence(project, c.ID(),
			fmt.Sprintf("version marker declares %q, expected %q", marker.Version, c.expect),
			map[string]string{"kind": errs.KindValueMismatch.String()}), nil
	}
	if !probe.OK {
		return checks.FailResultWithEvidence(project, c.ID(),
			"package cannot be imported", map[string]string{"detail": probe.Detail}), nil
	}
	if probe.Version != marker.Version {
		return checks.FailResultWithEvidence(project, c.ID(),
			fmt.Sprintf("import version mismatch: package reports %q, marker declares %q", probe.Version, marker.Version),
			map[string]string{"kind": errs.KindValueMismatch.String()}), nil
	}
	return checks.PassResultWithMessage(project, c.ID(),
		fmt.Sprintf("version %s correctly set and importable", marker.Version)), nil
}

func init() {
	checks.Register(&VersionMarkerCheck{})
}
