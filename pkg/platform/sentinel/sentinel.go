package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these, optionally wrapped,
// and services decide what they mean for the caller:
//   - ErrNotFound: no record matches the key
//   - ErrConflict: a unique identifier is already taken
//   - ErrUnavailable: the backing store cannot be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
