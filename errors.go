package typebus

import (
	"errors"
)

// Errors returned by registration and lifecycle operations. Removal
// operations never fail: unsubscribing something that is already gone
// leaves the desired end state in place and is treated as a no-op.
var (
	// ErrNilCallback is returned when subscribing with a nil callback.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrNilHandler is returned when registering a nil handler object.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilFilter is returned when a filtered subscription is given a nil filter.
	ErrNilFilter = errors.New("filter cannot be nil")

	// ErrNilOwner is returned when a weak subscription is given a nil owner.
	ErrNilOwner = errors.New("owner cannot be nil")

	// ErrBusClosed is returned when registering on, or closing, an already closed bus.
	ErrBusClosed = errors.New("event bus already closed")
)
