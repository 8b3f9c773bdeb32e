// Package python locates the target interpreter and runs bounded probe
// commands in it. Every run carries a deadline so a wedged interpreter or
// test suite cannot hang the gate.
package python

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"relgate/internal/errs"
)

// Interpreter is a resolved Python executable.
type Interpreter struct {
	Path string
}

// Resolve locates the interpreter to probe with.
//
// Precedence:
//  1. explicit override (flag)
//  2. RELGATE_PYTHON environment variable
//  3. python3, then python, on PATH
func Resolve(override string) (Interpreter, error) {
	candidates := []string{}
	if p := strings.TrimSpace(override); p != "" {
		candidates = append(candidates, p)
	} else if env := strings.TrimSpace(os.Getenv("RELGATE_PYTHON")); env != "" {
		candidates = append(candidates, env)
	} else {
		candidates = append(candidates, "python3", "python")
	}

	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return Interpreter{Path: path}, nil
		}
	}
	return Interpreter{}, fmt.Errorf("no python interpreter found (tried %s)", strings.Join(candidates, ", "))
}

// runResult is the raw outcome of one interpreter invocation.
type runResult struct {
	stdout   string
	combined string
	exitCode int
	timedOut bool
	duration time.Duration
}

// run executes the interpreter with args in dir, bounded by timeout (or by
// an existing ctx deadline, whichever is sooner). It never returns an error
// for a non-zero exit; that is the caller's verdict to make.
func (i Interpreter) run(ctx context.Context, dir string, timeout time.Duration, args ...string) (*runResult, error) {
	if i.Path == "" {
		return nil, fmt.Errorf("interpreter not resolved")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, i.Path, args...)
	cmd.Dir = dir
	var stdout, combined strings.Builder
	cmd.Stdout = tee(&stdout, &combined)
	cmd.Stderr = &combined

	start := time.Now()
	runErr := cmd.Run()
	res := &runResult{
		stdout:   stdout.String(),
		combined: combined.String(),
		duration: time.Since(start),
		exitCode: -1,
	}
	if ctx.Err() == context.DeadlineExceeded {
		res.timedOut = true
		return res, nil
	}
	if runErr == nil {
		res.exitCode = 0
		return res, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		res.exitCode = exitErr.ExitCode()
		return res, nil
	}
	// Failed to start at all (missing binary, permission).
	return nil, errs.SubprocessFailure("%s failed to start: %v", i.Path, runErr)
}

// tee fans one stream out to both builders so stdout can be parsed on its
// own while the combined transcript keeps interleaving for diagnostics.
func tee(a, b *strings.Builder) *teeWriter {
	return &teeWriter{a: a, b: b}
}

type teeWriter struct {
	a, b *strings.Builder
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.a.Write(p)
	w.b.Write(p)
	return len(p), nil
}

// tail returns at most n trailing characters of s, for compact diagnostics.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
