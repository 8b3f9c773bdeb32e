package models

// VersionMarker is the parsed version marker file: a file whose sole purpose
// is to declare the current release version as an importable constant.
type VersionMarker struct {
	// Path is the marker file location relative to the project root.
	Path string
	// Version is the declared version string, unquoted.
	Version string
	// Line is the raw assignment line the version was parsed from.
	Line string
}
