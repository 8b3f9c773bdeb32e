// Package fetcher loads the project data checks depend on. Providers do all
// file reads, interpreter probes and remote lookups; results are cached per
// run so checks sharing a dependency (several read the canonical manifest)
// pay for it once. The layer is safe for concurrent use even though the
// engine runs sequentially.
package fetcher

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"relgate/internal/data"
	"relgate/internal/project"
	"relgate/internal/python"
)

// Provider fetches one dependency key's data.
type Provider interface {
	Key() data.DependencyKey
	Fetch(ctx context.Context, f *Fetcher) (any, error)
}

var (
	providerRegistry = make(map[data.DependencyKey]Provider)
	providerMu       sync.RWMutex
)

func RegisterProvider(p Provider) {
	if p == nil {
		panic("provider is nil")
	}
	k := p.Key()
	if k == "" {
		panic("provider key is empty")
	}

	providerMu.Lock()
	defer providerMu.Unlock()
	if _, exists := providerRegistry[k]; exists {
		panic(fmt.Sprintf("provider %s already registered", k))
	}
	providerRegistry[k] = p
}

func ResolveProvider(key data.DependencyKey) (Provider, bool) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	p, ok := providerRegistry[key]
	return p, ok
}

func ListProviders() []Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()

	all := make([]Provider, 0, len(providerRegistry))
	for _, p := range providerRegistry {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Key() < all[j].Key()
	})
	return all
}

// Options carries the run-scoped knobs providers need.
type Options struct {
	// PythonOverride is the --python flag value; empty means default lookup.
	PythonOverride string
	// TestTimeout bounds the test-runner subprocess.
	TestTimeout time.Duration
	// Offline suppresses remote lookups.
	Offline bool
	// Verbose enables request-level diagnostics on remote clients.
	Verbose bool
}

// Fetcher resolves dependency keys against one project.
type Fetcher struct {
	Layout project.Layout
	Opts   Options

	cache *Cache
	group Group

	interpOnce sync.Once
	interp     python.Interpreter
	interpErr  error
}

func New(layout project.Layout, opts Options) *Fetcher {
	if opts.TestTimeout <= 0 {
		opts.TestTimeout = 60 * time.Second
	}
	return &Fetcher{
		Layout: layout,
		Opts:   opts,
		cache:  NewCache(),
	}
}

// Interpreter resolves the probe interpreter once per run.
func (f *Fetcher) Interpreter() (python.Interpreter, error) {
	f.interpOnce.Do(func() {
		f.interp, f.interpErr = python.Resolve(f.Opts.PythonOverride)
		if f.interpErr == nil {
			logrus.WithField("python", f.interp.Path).Debug("resolved interpreter")
		}
	})
	return f.interp, f.interpErr
}

// Fetch resolves one dependency key, serving repeats from cache and
// deduplicating identical in-flight fetches.
func (f *Fetcher) Fetch(ctx context.Context, key data.DependencyKey) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Fetch: nil context")
	}
	if f == nil || f.cache == nil {
		return nil, fmt.Errorf("Fetch: nil Fetcher (use New)")
	}
	if key == "" {
		return nil, fmt.Errorf("Fetch: empty dependency key")
	}

	p, ok := ResolveProvider(key)
	if !ok {
		return nil, fmt.Errorf("unsupported dependency key: %s", key)
	}

	flightKey := string(key)
	if val, ok := f.cache.Get(flightKey); ok {
		return val, nil
	}

	val, err, _ := f.group.Do(flightKey, func() (interface{}, error) {
		logrus.WithField("key", flightKey).Debug("fetching dependency")
		return p.Fetch(ctx, f)
	})
	if err == nil {
		f.cache.Set(flightKey, val)
	}
	return val, err
}
