package models

// Descriptor is the assembled distribution metadata record: what packaging
// would publish. It is constructed once from the version marker and the
// canonical declaration and never mutated.
type Descriptor struct {
	Name           string        `json:"name"`
	Version        string        `json:"version"`
	License        string        `json:"license,omitempty"`
	URL            string        `json:"url,omitempty"`
	PythonRequires string        `json:"python_requires,omitempty"`
	Keywords       []string      `json:"keywords,omitempty"`
	Classifiers    []string      `json:"classifiers,omitempty"`
	Requirements   []Requirement `json:"requirements"`
}
