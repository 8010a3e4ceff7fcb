package binder

import "errors"

var (
	// ErrFailedToParseForm indicates body parameters could not be converted to the target fields.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseQuery indicates query parameters could not be converted to the target fields.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
)
