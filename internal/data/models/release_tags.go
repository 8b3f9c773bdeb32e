package models

// ReleaseTags is the set of tags already published on the project's remote
// repository. When the remote could not or should not be consulted,
// SkipReason says why and the rest of the record is empty.
type ReleaseTags struct {
	Owner string
	Repo  string
	Tags  []string
	// SkipReason is non-empty when the lookup was skipped (offline mode or
	// no github.com project URL).
	SkipReason string
}

// Has reports whether the given tag name is already published.
func (t *ReleaseTags) Has(name string) bool {
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}
