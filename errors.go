package engine

import "errors"

var (
	// ErrInvalidComponent is returned when the values passed to
	// CreateEntity don't exactly match a composition's declared type set,
	// or duplicate an already-present type.
	ErrInvalidComponent = errors.New("engine: invalid or duplicate component for this composition")

	// ErrNotFound is the package's not-found sentinel. No function in this
	// package returns it.
	ErrNotFound = errors.New("engine: not found")
)
