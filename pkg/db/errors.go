package db

import "errors"

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a write was rejected because it would violate
	// a scheduling invariant (position taken, game full, suggestion no
	// longer pending)
	ErrConflict = errors.New("conflicting state")
)
