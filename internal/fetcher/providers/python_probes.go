package providers

import (
	"context"

	"relgate/internal/data"
	"relgate/internal/fetcher"
)

type packageProbeProvider struct{}

func (packageProbeProvider) Key() data.DependencyKey { return data.DepPackageProbe }

func (packageProbeProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	interp, err := f.Interpreter()
	if err != nil {
		return nil, err
	}
	return interp.ProbeVersion(ctx, f.Layout.Dir, f.Layout.Package)
}

type smokeProvider struct{}

func (smokeProvider) Key() data.DependencyKey { return data.DepSmokeReport }

func (smokeProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	interp, err := f.Interpreter()
	if err != nil {
		return nil, err
	}
	return interp.ProbeSmoke(ctx, f.Layout.Dir, f.Layout.Package)
}

type testRunProvider struct{}

func (testRunProvider) Key() data.DependencyKey { return data.DepTestRun }

func (testRunProvider) Fetch(ctx context.Context, f *fetcher.Fetcher) (any, error) {
	interp, err := f.Interpreter()
	if err != nil {
		return nil, err
	}
	return interp.RunTests(ctx, f.Layout.Dir, f.Layout.TestDir, f.Opts.TestTimeout)
}

func init() {
	fetcher.RegisterProvider(packageProbeProvider{})
	fetcher.RegisterProvider(smokeProvider{})
	fetcher.RegisterProvider(testRunProvider{})
}
