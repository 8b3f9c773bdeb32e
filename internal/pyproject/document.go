// Package pyproject is a document model over the mirror config file
// (pyproject.toml). Reads go through a parsed TOML tree; writes are
// line-surgical edits of the original bytes, so comments, blank lines and
// the author's formatting survive a rewrite untouched. The synchronizer and
// the consistency check both go through it.
package pyproject

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml"

	"relgate/internal/errs"
)

// ErrAnchorMissing is returned when the [project] table, the anchor the
// dependency array hangs off, does not exist in the mirror file.
var ErrAnchorMissing = errors.New("pyproject.toml has no [project] table")

// Document is a loaded mirror file. Mutations are applied to the raw bytes
// and re-parsed immediately, but only persisted by Save, so a failed update
// never half-writes the file.
type Document struct {
	path string
	raw  []byte
	tree *toml.Tree
}

func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.MissingFile(path, err)
		}
		return nil, err
	}
	tree, err := toml.LoadBytes(raw)
	if err != nil {
		return nil, errs.FormatMismatch(path, "invalid TOML: %v", err)
	}
	return &Document{path: path, raw: raw, tree: tree}, nil
}

func (d *Document) Path() string { return d.path }

// HasProjectTable reports whether the [project] anchor exists.
func (d *Document) HasProjectTable() bool {
	return d.tree.HasPath([]string{"project"})
}

// Version returns the declared project version, if any.
func (d *Document) Version() (string, bool) {
	v, ok := d.tree.GetPath([]string{"project", "version"}).(string)
	return v, ok
}

// Dependencies returns the [project] dependencies array, if present.
func (d *Document) Dependencies() ([]string, bool) {
	return stringArray(d.tree.GetPath([]string{"project", "dependencies"}))
}

// BuildRequires returns the [build-system] requires array, if present.
func (d *Document) BuildRequires() ([]string, bool) {
	return stringArray(d.tree.GetPath([]string{"build-system", "requires"}))
}

// SetVersion sets [project] version. The [project] anchor must exist.
func (d *Document) SetVersion(version string) error {
	if !d.HasProjectTable() {
		return ErrAnchorMissing
	}
	raw, err := setScalar(d.raw, "project", "version", version)
	if err != nil {
		return errs.FormatMismatch(d.path, "%v", err)
	}
	return d.reload(raw)
}

// SetDependencies replaces (or creates) the [project] dependencies array.
// The [project] anchor must exist; a missing anchor is a hard failure, not a
// silent skip.
func (d *Document) SetDependencies(deps []string) error {
	if !d.HasProjectTable() {
		return ErrAnchorMissing
	}
	raw, err := setArray(d.raw, "project", "dependencies", deps)
	if err != nil {
		return errs.FormatMismatch(d.path, "%v", err)
	}
	return d.reload(raw)
}

// SetBuildRequires replaces the [build-system] requires array, creating the
// table when absent.
func (d *Document) SetBuildRequires(reqs []string) error {
	raw := d.raw
	if !d.tree.HasPath([]string{"build-system"}) {
		raw = appendTableHeader(raw, "build-system")
	}
	raw, err := setArray(raw, "build-system", "requires", reqs)
	if err != nil {
		return errs.FormatMismatch(d.path, "%v", err)
	}
	return d.reload(raw)
}

// reload swaps in edited raw bytes after confirming they still parse. The
// document is unchanged when they do not.
func (d *Document) reload(raw []byte) error {
	tree, err := toml.LoadBytes(raw)
	if err != nil {
		return errs.FormatMismatch(d.path, "edit produced invalid TOML: %v", err)
	}
	d.raw = raw
	d.tree = tree
	return nil
}

// Marshal returns the document bytes, original formatting intact.
func (d *Document) Marshal() ([]byte, error) {
	return append([]byte(nil), d.raw...), nil
}

// Save rewrites the mirror file in place.
func (d *Document) Save() error {
	out, err := d.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, out, 0644)
}

func stringArray(v any) ([]string, bool) {
	switch arr := v.(type) {
	case []string:
		return arr, true
	case []interface{}:
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
