package providers

import (
	"context"

	"relgate/internal/data"
	"relgate/internal/data/models"
	"relgate/internal/fetcher"
	gh "relgate/internal/github"
)

type releaseTagsProvider struct{}

func (releaseTagsProvider) Key() data.DependencyKey { return data.DepReleaseTags }

// Fetch lists the tags on the project's GitHub remote. It depends on the
// canonical manifest (for the project URL), so the fetch chains through the
// fetcher and shares its cache. Skips, not errors: offline mode and a
// missing or non-GitHub URL. An unreachable API is a real error.
func (releaseTagsProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	if f.Opts.Offline {
		return &models.ReleaseTags{SkipReason: "offline mode"}, nil
	}

	val, err := f.Fetch(ctx, data.DepSetupManifest)
	if err != nil {
		return nil, err
	}
	manifest := val.(*models.SetupManifest)
	owner, repo, ok := gh.ParseRepoURL(manifest.URL)
	if !ok {
		return &models.ReleaseTags{SkipReason: "no github.com project URL in canonical declaration"}, nil
	}

	// Missing credentials are fine for public repos; the client goes
	// unauthenticated.
	token, _, err := gh.ResolveAuthToken(ctx)
	if err != nil {
		return nil, err
	}
	client, err := gh.NewClient(ctx, token, f.Opts.Verbose)
	if err != nil {
		return nil, err
	}
	tags, err := client.ListTags(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return &models.ReleaseTags{Owner: owner, Repo: repo, Tags: tags}, nil
}

func init() {
	fetcher.RegisterProvider(releaseTagsProvider{})
}
