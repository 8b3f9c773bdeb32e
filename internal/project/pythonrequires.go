package project

import (
	"fmt"
	"strconv"
	"strings"

	"relgate/internal/errs"
)

// Ordered longest-first so ">=" wins over ">".
var pythonRequiresOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// CheckPythonRequires reports whether an interpreter version satisfies the
// canonical declaration's python_requires constraint, e.g. ">=3.6" or
// ">=3.7, <4". An empty constraint always passes. A violation comes back as
// a ValueMismatch error, an unparsable constraint or version as a
// FormatMismatch.
//
// "~=" is enforced as its lower bound; a trailing ".*" compares only the
// segments it spells out.
func CheckPythonRequires(requires, version string) error {
	requires = strings.TrimSpace(requires)
	if requires == "" {
		return nil
	}
	have, err := parsePyVersion(version)
	if err != nil {
		return errs.FormatMismatch("", "interpreter version %q: %v", version, err)
	}
	for _, clause := range strings.Split(requires, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		op, bound := splitPyConstraint(clause)
		wildcard := strings.HasSuffix(bound, ".*")
		want, err := parsePyVersion(strings.TrimSuffix(bound, ".*"))
		if err != nil {
			return errs.FormatMismatch("", "python_requires clause %q: %v", clause, err)
		}
		cmpHave := have
		if wildcard && len(have) > len(want) {
			cmpHave = have[:len(want)]
		}
		if !pyVersionSatisfies(comparePyVersions(cmpHave, want), op) {
			return errs.ValueMismatch("python %s does not satisfy python_requires %q", version, requires)
		}
	}
	return nil
}

func splitPyConstraint(clause string) (op, bound string) {
	for _, o := range pythonRequiresOps {
		if strings.HasPrefix(clause, o) {
			return o, strings.TrimSpace(clause[len(o):])
		}
	}
	// A bare version pins exactly.
	return "==", clause
}

func parsePyVersion(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version")
	}
	parts := strings.Split(s, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad version segment %q", p)
		}
		out[i] = n
	}
	return out, nil
}

// comparePyVersions compares segment-wise; missing segments count as zero.
func comparePyVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func pyVersionSatisfies(cmp int, op string) bool {
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">=", "~=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	}
	return false
}
