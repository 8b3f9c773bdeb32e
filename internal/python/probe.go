package python

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"relgate/internal/data/models"
)

// probeTimeout bounds the quick probes (import, smoke transform). The test
// runner has its own, caller-supplied deadline.
const probeTimeout = 60 * time.Second

// Fixed smoke-probe parameters: a seeded 50x10 synthetic input reduced to 2
// components must come back as a (50, 2) embedding carrying the operator
// attributes below.
const (
	smokeSeed       = 42
	smokeRows       = 50
	smokeCols       = 10
	smokeComponents = 2
)

var smokeAttrs = []string{"diff_op", "autocorr_op", "phate_diffop"}

// SmokeAttrs returns the operator attributes the smoke probe requires.
func SmokeAttrs() []string {
	return append([]string{}, smokeAttrs...)
}

// Version reports the interpreter's own dotted version, e.g. "3.11.4".
func (i Interpreter) Version(ctx context.Context) (string, error) {
	res, err := i.run(ctx, "", probeTimeout, "-c", "import sys; print('%d.%d.%d' % sys.version_info[:3])")
	if err != nil {
		return "", err
	}
	if res.timedOut {
		return "", fmt.Errorf("interpreter version probe timed out")
	}
	if res.exitCode != 0 {
		return "", fmt.Errorf("interpreter version probe failed: %s", tail(res.combined, 400))
	}
	return strings.TrimSpace(res.stdout), nil
}

// ProbeVersion imports the package in the interpreter and returns its
// self-reported __version__.
func (i Interpreter) ProbeVersion(ctx context.Context, dir, pkg string) (*models.PackageProbe, error) {
	script := fmt.Sprintf("import %s; print(%s.__version__)", pkg, pkg)
	res, err := i.run(ctx, dir, probeTimeout, "-c", script)
	if err != nil {
		return nil, err
	}
	if res.timedOut {
		return &models.PackageProbe{Detail: fmt.Sprintf("import of %s timed out", pkg)}, nil
	}
	if res.exitCode != 0 {
		return &models.PackageProbe{Detail: tail(res.combined, 400)}, nil
	}
	return &models.PackageProbe{OK: true, Version: strings.TrimSpace(res.stdout)}, nil
}

// ProbeSmoke runs the library's primary transform on the fixed synthetic
// input and reports the embedding shape plus any missing operator
// attributes. The entry point is the upper-cased package name, matching the
// library's convention (tphate.TPHATE).
func (i Interpreter) ProbeSmoke(ctx context.Context, dir, pkg string) (*models.SmokeReport, error) {
	script := smokeScript(pkg)
	res, err := i.run(ctx, dir, probeTimeout, "-c", script)
	if err != nil {
		return nil, err
	}
	if res.timedOut {
		return &models.SmokeReport{Detail: "smoke probe timed out"}, nil
	}
	if res.exitCode != 0 {
		return &models.SmokeReport{Detail: tail(res.combined, 400)}, nil
	}

	var payload struct {
		Rows    int      `json:"rows"`
		Cols    int      `json:"cols"`
		Missing []string `json:"missing"`
	}
	// The payload is the last stdout line; the library may chat before it.
	out := strings.TrimSpace(res.stdout)
	if idx := strings.LastIndexByte(out, '\n'); idx >= 0 {
		out = out[idx+1:]
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return &models.SmokeReport{Detail: fmt.Sprintf("unparseable smoke payload: %v", err)}, nil
	}
	return &models.SmokeReport{
		OK:           true,
		Rows:         payload.Rows,
		Cols:         payload.Cols,
		MissingAttrs: payload.Missing,
	}, nil
}

// RunTests invokes pytest over the project's test directory, bounded by
// timeout. Non-zero exit and timeout are recorded, not returned as errors.
func (i Interpreter) RunTests(ctx context.Context, dir, testDir string, timeout time.Duration) (*models.TestRunReport, error) {
	res, err := i.run(ctx, dir, timeout, "-m", "pytest", testDir, "-v", "--tb=short")
	if err != nil {
		return nil, err
	}
	return &models.TestRunReport{
		ExitCode: res.exitCode,
		TimedOut: res.timedOut,
		Output:   res.combined,
		Duration: res.duration,
	}, nil
}

func smokeScript(pkg string) string {
	attrs := make([]string, len(smokeAttrs))
	for i, a := range smokeAttrs {
		attrs[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf(`
import json
import numpy as np
import %[1]s

np.random.seed(%[2]d)
data = np.random.randn(%[3]d, %[4]d)
op = %[1]s.%[5]s(n_components=%[6]d, verbose=False)
emb = op.fit_transform(data)
missing = [a for a in [%[7]s] if not hasattr(op, a)]
print(json.dumps({"rows": int(emb.shape[0]), "cols": int(emb.shape[1]), "missing": missing}))
`, pkg, smokeSeed, smokeRows, smokeCols, strings.ToUpper(pkg), smokeComponents, strings.Join(attrs, ", "))
}

// SmokeShape returns the expected embedding shape for the fixed probe input.
func SmokeShape() (rows, cols int) {
	return smokeRows, smokeComponents
}
