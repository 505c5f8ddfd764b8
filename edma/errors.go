package edma

import "errors"

// Errors returned by the driver entry points. Callers are expected to test
// with errors.Is; the concrete message carries the failing resource or
// parameter.
var (
	// ErrInvalidArg reports an out-of-range channel or resource index, or a
	// malformed configuration value. Nothing has been written to hardware.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrNotSupported reports a transfer configuration the engine cannot
	// express (direction, count overflow) or a resource pool that ran dry.
	ErrNotSupported = errors.New("unsupported configuration")

	// ErrNoResource is returned by Hardware allocators when no resource
	// matching the request is free.
	ErrNoResource = errors.New("no free resource")

	// ErrCanceled reports a hardware deallocation that failed while tearing
	// a channel down.
	ErrCanceled = errors.New("hardware operation failed")
)
