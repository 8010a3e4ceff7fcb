package request

import "errors"

var (
	// ErrNilEnv is returned when a request is constructed without an environment source.
	ErrNilEnv = errors.New("request: environment source is required")

	// ErrInvalidProxy is returned when a trusted proxy entry cannot be parsed.
	ErrInvalidProxy = errors.New("request: invalid trusted proxy")

	// ErrBodyLoaded is returned when the request body is loaded a second time.
	ErrBodyLoaded = errors.New("request: body already loaded")

	// ErrBodyTooLarge is returned when the request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request: body too large")

	// ErrReadBody is returned when the request body cannot be read.
	ErrReadBody = errors.New("request: failed to read body")
)
