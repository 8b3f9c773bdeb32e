package models

// PackageProbe records what the installed package reports about itself when
// imported in the configured interpreter.
type PackageProbe struct {
	// OK is false when the import failed.
	OK bool
	// Version is the package's __version__, when the import succeeded.
	Version string
	// Detail carries the interpreter's complaint when the import failed.
	Detail string
}

// SmokeReport records the outcome of running the library's primary transform
// on a fixed-shape synthetic input.
type SmokeReport struct {
	// OK is false when the probe script itself failed to run.
	OK bool
	// Rows and Cols are the shape of the produced embedding.
	Rows int
	Cols int
	// MissingAttrs lists expected operator attributes that were absent.
	MissingAttrs []string
	// Detail carries the interpreter's complaint when the probe failed.
	Detail string
}
