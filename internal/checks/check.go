package checks

import (
	"context"

	"relgate/internal/data"
)

// Check is one independent, stateless verification step of the release gate.
type Check interface {
	ID() string
	Title() string
	Description() string

	// Dependencies declares the project data this check needs.
	Dependencies() []data.DependencyKey

	// Evaluate runs check logic using only the DataContext. Checks MUST NOT
	// touch the filesystem, subprocesses, or the network themselves.
	Evaluate(ctx context.Context, project string, dc data.DataContext) (Result, error)
}

type Option struct {
	Name        string
	Description string
	Default     string
}

// ConfigurableCheck is a Check with per-run options, settable via
// --set checkID.option=value.
type ConfigurableCheck interface {
	Check
	Options() []Option
	Configure(opts map[string]string) error
}
