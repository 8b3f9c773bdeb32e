// Package errs defines the failure taxonomy shared by the project readers,
// the synchronizer, and the verification checks. Every failure a check
// reports maps to exactly one Kind, so diagnostics stay comparable across
// checks and output sinks.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes a gate failure.
type Kind int

const (
	// KindMissingFile means a required file was absent.
	KindMissingFile Kind = iota
	// KindFormatMismatch means a file existed but an expected pattern or
	// structure was not found in it.
	KindFormatMismatch
	// KindValueMismatch means a declared value differed from the expected or
	// observed value.
	KindValueMismatch
	// KindSubprocessFailure means an external command exited non-zero or
	// exceeded its deadline.
	KindSubprocessFailure
	// KindUnexpected covers everything else, including recovered panics.
	KindUnexpected
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindMissingFile:
		return "MissingFile"
	case KindFormatMismatch:
		return "FormatMismatch"
	case KindValueMismatch:
		return "ValueMismatch"
	case KindSubprocessFailure:
		return "SubprocessFailure"
	default:
		return "Unexpected"
	}
}

// Error is a categorized gate error, optionally tied to a file path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Kind, e.Err)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func MissingFile(path string, err error) *Error {
	return &Error{Kind: KindMissingFile, Path: path, Err: err}
}

func FormatMismatch(path, format string, args ...any) *Error {
	return &Error{Kind: KindFormatMismatch, Path: path, Err: fmt.Errorf(format, args...)}
}

func ValueMismatch(format string, args ...any) *Error {
	return &Error{Kind: KindValueMismatch, Err: fmt.Errorf(format, args...)}
}

func SubprocessFailure(format string, args ...any) *Error {
	return &Error{Kind: KindSubprocessFailure, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err, walking the wrap chain.
// Errors outside the taxonomy report KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
