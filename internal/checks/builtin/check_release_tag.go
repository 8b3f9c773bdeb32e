package builtin

import (
	"context"
	"fmt"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
)

// ReleaseTagCheck verifies that the candidate version has not already been
// tagged on the project's GitHub remote. Without a remote (or in offline
// mode) the check is skipped, not failed.
type ReleaseTagCheck struct{}

func (c *ReleaseTagCheck) ID() string {
	return "release-tag-unused"
}

func (c *ReleaseTagCheck) Title() string {
	return "Release Tag Not Yet Published"
}

func (c *ReleaseTagCheck) Description() string {
	return "Verifies that neither vVERSION nor VERSION exists as a tag on the project's GitHub repository, so the release would not collide with a published one."
}

func (c *ReleaseTagCheck) Dependencies() []data.DependencyKey {
	return []data.DependencyKey{data.DepReleaseTags, data.DepVersionMarker}
}

func (c *ReleaseTagCheck) Evaluate(ctx context.Context, project string, dc data.DataContext) (checks.Result, error) {
	tags, res, ok := dep[*models.ReleaseTags](dc, data.DepReleaseTags, project, c.ID())
	if !ok {
		return res, nil
	}
	marker, res, ok := dep[*models.VersionMarker](dc, data.DepVersionMarker, project, c.ID())
	if !ok {
		return res, nil
	}

	if tags.SkipReason != "" {
		return checks.SkippedResult(project, c.ID(), tags.SkipReason), nil
	}

	for _, candidate := range []string{"v" + marker.Version, marker.Version} {
		if tags.Has(candidate) {
			return checks.FailResult(project, c.ID(),
				fmt.Sprintf("tag %q already exists on %s/%s", candidate, tags.Owner, tags.Repo)), nil
		}
	}
	return checks.PassResultWithMessage(project, c.ID(),
		fmt.Sprintf("no tag for %s on %s/%s", marker.Version, tags.Owner, tags.Repo)), nil
}

func init() {
	checks.Register(&ReleaseTagCheck{})
}
