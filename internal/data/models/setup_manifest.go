package models

// SetupManifest is the canonical dependency declaration parsed from
// setup.py. It is the single source of truth the mirror config file is
// synchronized against.
type SetupManifest struct {
	// Path is the manifest location relative to the project root.
	Path string

	// Requirements is the install_requires list, in declaration order.
	Requirements []Requirement

	// Name, URL and License are the distribution metadata assignments, when
	// present.
	Name    string
	URL     string
	License string

	// PythonRequires is the declared interpreter constraint (e.g. ">=3.7").
	PythonRequires string

	// Keywords and Classifiers are the respective list literals, when present.
	Keywords    []string
	Classifiers []string
}

// HasRequirement reports whether a requirement with the given name is
// declared, ignoring any version constraint.
func (m *SetupManifest) HasRequirement(name string) bool {
	for _, r := range m.Requirements {
		if r.Name == name {
			return true
		}
	}
	return false
}
