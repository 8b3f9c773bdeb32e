package builtin

import (
	"strings"

	"relgate/internal/checks"
	"relgate/internal/data"
)

// dep pulls a typed dependency out of the context. On a missing or
// wrongly-typed value it returns ok=false and a ready-made ERROR result, so
// every check handles the three failure shapes identically.
func dep[T any](dc data.DataContext, key data.DependencyKey, project, checkID string) (T, checks.Result, bool) {
	var zero T
	val, ok := dc.Get(key)
	if !ok {
		return zero, checks.ErrorResult(project, checkID, "dependency missing: "+string(key)), false
	}
	if val == nil {
		return zero, checks.ErrorResult(project, checkID, "dependency is nil: "+string(key)), false
	}
	typed, ok := val.(T)
	if !ok {
		return zero, checks.ErrorResult(project, checkID, "invalid dependency type: "+string(key)), false
	}
	return typed, checks.Result{}, true
}

// tailLines returns at most n trailing lines of s, for compact evidence.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
