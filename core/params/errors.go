package params

import "errors"

var (
	// ErrInvalidJSON is returned when decoding malformed JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")

	// ErrNotObject is returned when a store is decoded from JSON that is not an object.
	ErrNotObject = errors.New("JSON document is not an object")

	// ErrNotMapping is returned when a store is decoded from YAML that is not a mapping.
	ErrNotMapping = errors.New("YAML document is not a mapping")

	// ErrUnsupportedNumber is returned when encoding NaN or infinite numbers.
	ErrUnsupportedNumber = errors.New("number cannot be encoded as JSON")

	// ErrUnknownKind is returned when encoding a value of an unknown kind.
	ErrUnknownKind = errors.New("unknown value kind")
)
