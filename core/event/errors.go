package event

import "errors"

var (
	// ErrNilEvent is returned when Dispatch receives a nil event.
	ErrNilEvent = errors.New("event is nil")

	// ErrListenerPanic wraps a panic recovered from a listener.
	ErrListenerPanic = errors.New("event listener panicked")
)
