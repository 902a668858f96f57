package apperrors

import "errors"

// Sentinel errors the services wrap with fmt.Errorf("%w: ...") so handlers
// can map failures onto HTTP statuses without string matching.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the operation contradicts current state, like
	// settling an already-settled entry or opening a second pending entry
	// for the same truck.
	ErrConflict = errors.New("conflict")

	// ErrValidation means the input failed a precondition before any write.
	ErrValidation = errors.New("invalid input")

	// ErrUpstreamStore means the backing store failed mid-operation; the
	// wrapped message names any partial state left behind.
	ErrUpstreamStore = errors.New("store failure")
)
