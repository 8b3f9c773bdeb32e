package models

import (
	"fmt"
	"strings"
)

// Requirement is a single dependency specifier from the canonical
// declaration: a package name plus an optional comparison operator and
// version bound, e.g. "numpy>=1.16.0", "scikit-learn==0.24" or "pygsp".
type Requirement struct {
	Name    string `json:"name"`
	Op      string `json:"op,omitempty"`
	Version string `json:"version,omitempty"`

	// Raw is the specifier exactly as declared, interior whitespace and
	// all; the mirror must carry the declared string verbatim.
	Raw string `json:"-"`
}

// Ordered longest-first so ">=" wins over ">".
var requirementOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// ParseRequirement parses a specifier string. The name must be non-empty;
// a version is required whenever an operator is present.
func ParseRequirement(s string) (Requirement, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Requirement{}, fmt.Errorf("empty requirement")
	}
	for _, op := range requirementOps {
		if name, version, ok := strings.Cut(raw, op); ok {
			name = strings.TrimSpace(name)
			version = strings.TrimSpace(version)
			if name == "" {
				return Requirement{}, fmt.Errorf("requirement %q has no name", s)
			}
			if version == "" {
				return Requirement{}, fmt.Errorf("requirement %q has an operator but no version", s)
			}
			return Requirement{Name: name, Op: op, Version: version, Raw: raw}, nil
		}
	}
	return Requirement{Name: raw, Raw: raw}, nil
}

// String reproduces the specifier exactly as declared. Values constructed
// by hand render as "Name" or "NameOpVersion".
func (r Requirement) String() string {
	if r.Raw != "" {
		return r.Raw
	}
	if r.Op == "" {
		return r.Name
	}
	return r.Name + r.Op + r.Version
}
