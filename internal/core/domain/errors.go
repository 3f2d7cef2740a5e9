package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the search snapshot could not be
	// fetched. Kept distinct from an empty result set so callers can tell
	// "no matches" apart from "index failed to load".
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrContentUnavailable indicates the content store could not supply
	// the record collections.
	ErrContentUnavailable = errors.New("content unavailable")
)
