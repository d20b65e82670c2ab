package suggest

import "errors"

// Sentinel kinds for suggestion operation failures. Callers (CLI, HTTP)
// map these to exit codes or response statuses; wrapped detail carries the
// context.
var (
	// ErrValidation indicates malformed input (weights out of range, bad ids)
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a referenced game, referee or suggestion does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the operation lost to scheduling state: the
	// suggestion expired or was already processed, or the game gained a
	// competing assignment
	ErrConflict = errors.New("conflict")

	// ErrInternal indicates a data-store or other internal failure
	ErrInternal = errors.New("internal error")
)
