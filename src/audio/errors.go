package audio

import "errors"

// Validation errors. Rejected requests leave the engine untouched.
var (
	// ErrInvalidSize is returned when a table size is not a non-zero power of two.
	ErrInvalidSize = errors.New("table size is not a non-zero power of two")
	// ErrInvalidMode is returned for an interpolation mode outside [0, 3).
	ErrInvalidMode = errors.New("invalid interpolation mode")
	// ErrInvalidArgument is returned for malformed or missing command arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownCommand is returned for a command the engine does not understand.
	ErrUnknownCommand = errors.New("unknown command")
)

// ErrTableTooLarge reports that a table of the requested size will not be allocated.
// The engine keeps its previous table.
var ErrTableTooLarge = errors.New("table size exceeds limit")
