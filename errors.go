package jsondiff

import "github.com/pkg/errors"

// Sentinel error kinds. Errors returned by this package wrap one of these;
// match them with errors.Is.
var (
	// ErrInvalidInput is returned by Diff when a root document is not a JSON
	// object.
	ErrInvalidInput = errors.New("input is not a JSON object")

	// ErrTraversal is returned when a pointer segment does not resolve inside
	// the document: an intermediate segment addresses a scalar or a missing
	// key, or a remove targets a key that is not there.
	ErrTraversal = errors.New("pointer does not traverse the document")

	// ErrPathNotFound is returned by a replace operation whose target location
	// does not already exist.
	ErrPathNotFound = errors.New("path not found")
)
